package database

// schema is applied on every open; the database never outlives the process.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS diary_entries (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT    NOT NULL UNIQUE,
		date       TEXT    NOT NULL,
		category   TEXT    NOT NULL CHECK (category IN ('speaking', 'writing', 'reading')),
		difficulty TEXT    NOT NULL CHECK (difficulty IN ('low', 'medium', 'high')),
		notes      TEXT    NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_diary_entries_date ON diary_entries (date, seq)`,
}
