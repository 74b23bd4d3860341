package income

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// Repository handles dividend/income event persistence. Events are supplied
// by external sources (sync job or bulk push) and are read-only to the
// accounting engine.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new income event repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "income").Logger(),
	}
}

// Upsert inserts an event or refreshes its payment date and rate when the
// same (ticker, type, record date) was already declared.
func (r *Repository) Upsert(event accounting.DividendEvent) error {
	query := `
		INSERT INTO income_events (ticker, type, record_date, payment_date, rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker, type, record_date)
		DO UPDATE SET payment_date = excluded.payment_date, rate = excluded.rate
	`

	_, err := r.db.Exec(query,
		accounting.NormalizeTicker(event.Ticker),
		string(event.Type),
		event.RecordDate,
		event.PaymentDate,
		event.Rate,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert income event: %w", err)
	}

	return nil
}

// UpsertAll stores a batch of events, skipping entries without the minimum
// shape (ticker and a parseable record date).
func (r *Repository) UpsertAll(events []accounting.DividendEvent) (int, error) {
	stored := 0
	for _, event := range events {
		if accounting.NormalizeTicker(event.Ticker) == "" {
			continue
		}
		if _, ok := accounting.ParseLocalDate(event.RecordDate); !ok {
			continue
		}

		if err := r.Upsert(event); err != nil {
			return stored, err
		}
		stored++
	}

	r.log.Info().Int("stored", stored).Int("received", len(events)).Msg("Income events stored")
	return stored, nil
}

// GetAll retrieves all events, newest record date first
func (r *Repository) GetAll() ([]accounting.DividendEvent, error) {
	query := `
		SELECT ticker, type, record_date, payment_date, rate
		FROM income_events
		ORDER BY record_date DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query income events: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// GetByTicker retrieves all events for one normalized ticker
func (r *Repository) GetByTicker(ticker string) ([]accounting.DividendEvent, error) {
	query := `
		SELECT ticker, type, record_date, payment_date, rate
		FROM income_events
		WHERE ticker = ?
		ORDER BY record_date DESC
	`

	rows, err := r.db.Query(query, accounting.NormalizeTicker(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to query income events: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

func (r *Repository) scanEvents(rows *sql.Rows) ([]accounting.DividendEvent, error) {
	var result []accounting.DividendEvent

	for rows.Next() {
		var event accounting.DividendEvent
		var typ string

		if err := rows.Scan(
			&event.Ticker,
			&typ,
			&event.RecordDate,
			&event.PaymentDate,
			&event.Rate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income event: %w", err)
		}

		event.Type = accounting.IncomeType(typ)
		result = append(result, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income events: %w", err)
	}

	return result, nil
}
