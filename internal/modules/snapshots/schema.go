package snapshots

import "database/sql"

// Schema ensures the snapshots table exists. One row per calendar day; the
// daily job overwrites the current day's row on re-run.
const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    date TEXT PRIMARY KEY,
    invested REAL NOT NULL,
    balance REAL NOT NULL,
    dividends REAL NOT NULL,
    sales_gain REAL NOT NULL,
    created_at TEXT NOT NULL
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
