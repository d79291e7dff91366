package state

import (
	"database/sql"
)

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS match_records (
			line INTEGER PRIMARY KEY,
			raw TEXT NOT NULL,
			artist TEXT NOT NULL,
			title TEXT NOT NULL,
			library_path TEXT,
			score REAL NOT NULL,
			status INTEGER NOT NULL
		);
	`)
	return err
}
