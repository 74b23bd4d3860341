package snapshots

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles snapshot persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
}

// Upsert stores a snapshot, replacing any existing row for the same date
func (r *Repository) Upsert(snap Snapshot) error {
	query := `
		INSERT INTO snapshots (date, invested, balance, dividends, sales_gain, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			invested = excluded.invested,
			balance = excluded.balance,
			dividends = excluded.dividends,
			sales_gain = excluded.sales_gain,
			created_at = excluded.created_at
	`

	_, err := r.db.Exec(query,
		snap.Date,
		snap.Invested,
		snap.Balance,
		snap.Dividends,
		snap.SalesGain,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// GetHistory returns the most recent snapshots, oldest first, capped at
// the given number of days. days <= 0 returns the full history.
func (r *Repository) GetHistory(days int) ([]Snapshot, error) {
	query := `
		SELECT date, invested, balance, dividends, sales_gain
		FROM snapshots
		ORDER BY date DESC
	`
	args := []interface{}{}
	if days > 0 {
		query += " LIMIT ?"
		args = append(args, days)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var series []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.Date, &snap.Invested, &snap.Balance, &snap.Dividends, &snap.SalesGain); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		series = append(series, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	// Reverse into chronological order for charting.
	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}

	return series, nil
}

// GetLatest returns the most recent snapshot, or nil if none exist
func (r *Repository) GetLatest() (*Snapshot, error) {
	query := `
		SELECT date, invested, balance, dividends, sales_gain
		FROM snapshots
		ORDER BY date DESC
		LIMIT 1
	`

	var snap Snapshot
	err := r.db.QueryRow(query).Scan(&snap.Date, &snap.Invested, &snap.Balance, &snap.Dividends, &snap.SalesGain)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	return &snap, nil
}
