package transactions

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carteira-app/carteira/internal/modules/accounting"
)

// ErrNotFound is returned when a transaction ID does not exist. The HTTP
// client relies on this to roll back its optimistic local update.
var ErrNotFound = errors.New("transaction not found")

// Repository handles transaction persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "transactions").Logger(),
	}
}

// Create inserts a new transaction, assigning an ID when none is provided
func (r *Repository) Create(tx *accounting.Transaction) error {
	if err := Validate(tx); err != nil {
		return err
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	query := `
		INSERT INTO transactions (id, ticker, type, quantity, price, date, asset_class, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		tx.ID,
		tx.Ticker,
		string(tx.Type),
		tx.Quantity,
		tx.Price,
		tx.Date,
		string(tx.Class),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	r.log.Info().
		Str("id", tx.ID).
		Str("ticker", tx.Ticker).
		Str("type", string(tx.Type)).
		Float64("quantity", tx.Quantity).
		Msg("Transaction created")

	return nil
}

// Update replaces an existing transaction. Records are immutable in place,
// an update is a full replace keyed by ID.
func (r *Repository) Update(tx *accounting.Transaction) error {
	if err := Validate(tx); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET ticker = ?, type = ?, quantity = ?, price = ?, date = ?, asset_class = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		tx.Ticker,
		string(tx.Type),
		tx.Quantity,
		tx.Price,
		tx.Date,
		string(tx.Class),
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.log.Info().Str("id", tx.ID).Msg("Transaction updated")
	return nil
}

// Delete removes a transaction by ID
func (r *Repository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.log.Info().Str("id", id).Msg("Transaction deleted")
	return nil
}

// GetByID retrieves a transaction by ID
func (r *Repository) GetByID(id string) (*accounting.Transaction, error) {
	query := `
		SELECT id, ticker, type, quantity, price, date, asset_class
		FROM transactions
		WHERE id = ?
	`

	var tx accounting.Transaction
	var typ, class string

	err := r.db.QueryRow(query, id).Scan(
		&tx.ID,
		&tx.Ticker,
		&typ,
		&tx.Quantity,
		&tx.Price,
		&tx.Date,
		&class,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	tx.Type = accounting.TransactionType(typ)
	tx.Class = accounting.AssetClass(class)
	return &tx, nil
}

// GetAll retrieves all transactions ordered by date, then insertion order.
// The accounting engine re-sorts defensively, this ordering is for display.
func (r *Repository) GetAll() ([]accounting.Transaction, error) {
	query := `
		SELECT id, ticker, type, quantity, price, date, asset_class
		FROM transactions
		ORDER BY date ASC, rowid ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return r.scanTransactions(rows)
}

// GetByTicker retrieves all transactions for one normalized ticker family
func (r *Repository) GetByTicker(ticker string) ([]accounting.Transaction, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}

	// Filter in memory: fractional-lot rows (PETR4F) must surface under the
	// whole-lot symbol, which a SQL equality match would miss.
	key := accounting.NormalizeTicker(ticker)
	var result []accounting.Transaction
	for _, tx := range all {
		if accounting.NormalizeTicker(tx.Ticker) == key {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (r *Repository) scanTransactions(rows *sql.Rows) ([]accounting.Transaction, error) {
	var result []accounting.Transaction

	for rows.Next() {
		var tx accounting.Transaction
		var typ, class string

		if err := rows.Scan(
			&tx.ID,
			&tx.Ticker,
			&typ,
			&tx.Quantity,
			&tx.Price,
			&tx.Date,
			&class,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Type = accounting.TransactionType(typ)
		tx.Class = accounting.AssetClass(class)
		result = append(result, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return result, nil
}
