package income

import "database/sql"

// Schema ensures the income_events table exists. One row per declared
// dividend/JCP/yield event; the (ticker, type, record_date) key keeps the
// periodic sync idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS income_events (
    id INTEGER PRIMARY KEY,
    ticker TEXT NOT NULL,
    type TEXT NOT NULL,
    record_date TEXT NOT NULL,
    payment_date TEXT NOT NULL,
    rate REAL NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE(ticker, type, record_date)
);

CREATE INDEX IF NOT EXISTS idx_income_events_ticker ON income_events(ticker);
CREATE INDEX IF NOT EXISTS idx_income_events_payment ON income_events(payment_date);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
