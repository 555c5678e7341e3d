package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS rule_template (
		alias TEXT PRIMARY KEY,
		sessions_per_week INTEGER NOT NULL,
		session_length_min INTEGER NOT NULL,
		intensity TEXT NOT NULL,
		aerobic_ratio REAL NOT NULL,
		strength_ratio REAL NOT NULL,
		mindbody_ratio REAL NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS assessment (
		participant_id TEXT PRIMARY KEY,
		pre TEXT,
		post TEXT,
		meta TEXT
	);

	CREATE TABLE IF NOT EXISTS rule_audit (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		occurred_at TEXT NOT NULL,
		ip_address TEXT,
		detail TEXT
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
