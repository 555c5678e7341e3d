package ruleset

import (
	"context"
	"database/sql"
	"fmt"

	domain "execogim/internal/domain/ruleset"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new rule table store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves the full alias -> template mapping.
// POST: Returns an empty (non-nil) mapping when no rules are stored
func (s *SQLiteStore) Load(ctx context.Context) (domain.Rules, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT alias, sessions_per_week, session_length_min, intensity, aerobic_ratio, strength_ratio, mindbody_ratio, notes FROM rule_template")
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	defer rows.Close()

	rules := make(domain.Rules)
	for rows.Next() {
		var alias string
		var tpl domain.Template
		if err := rows.Scan(&alias, &tpl.SessionsPerWeek, &tpl.SessionLengthMin, &tpl.Intensity,
			&tpl.AerobicRatio, &tpl.StrengthRatio, &tpl.MindbodyRatio, &tpl.Notes); err != nil {
			return nil, fmt.Errorf("scan rule template: %w", err)
		}
		rules[alias] = tpl
	}
	return rules, rows.Err()
}

// Replace swaps the stored rule table for the given one in a single
// transaction.
// PRE: rules has been parsed and validated by the caller
// POST: The previous table is gone; only the given aliases remain
func (s *SQLiteStore) Replace(ctx context.Context, rules domain.Rules) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace rules: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rule_template"); err != nil {
		return fmt.Errorf("clear rule table: %w", err)
	}
	for alias, tpl := range rules {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO rule_template (alias, sessions_per_week, session_length_min, intensity, aerobic_ratio, strength_ratio, mindbody_ratio, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			alias, tpl.SessionsPerWeek, tpl.SessionLengthMin, tpl.Intensity,
			tpl.AerobicRatio, tpl.StrengthRatio, tpl.MindbodyRatio, tpl.Notes)
		if err != nil {
			return fmt.Errorf("insert rule template %q: %w", alias, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored aliases.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rule_template").Scan(&n)
	return n, err
}
