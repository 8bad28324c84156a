package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// Migrate creates the snapshot schema if it does not exist yet.
func (db *DB) Migrate() error {
	migration := `
-- Singleton settings row; reminder flags ride along with the settings.
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    target REAL NOT NULL,
    accent TEXT NOT NULL,
    reminder_interval_s REAL NOT NULL,
    retention_days REAL NOT NULL,
    time_to_drink INTEGER NOT NULL DEFAULT 0,
    banner_visible INTEGER NOT NULL DEFAULT 0
);

-- Intake records. Position preserves the engine's insertion order.
CREATE TABLE IF NOT EXISTS records (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    recorded_at_ns INTEGER NOT NULL,
    volume REAL NOT NULL CHECK (volume > 0)
);
CREATE INDEX IF NOT EXISTS idx_records_recorded_at ON records(recorded_at_ns);
`
	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
