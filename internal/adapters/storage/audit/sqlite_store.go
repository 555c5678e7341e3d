package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "execogim/internal/domain/audit"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new audit store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Append persists a new audit entry.
// PRE: entry has been validated
// POST: Entry is stored; existing entries are never modified
func (s *SQLiteStore) Append(ctx context.Context, entry domain.Entry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO rule_audit (id, action, occurred_at, ip_address, detail) VALUES (?, ?, ?, ?, ?)",
		entry.ID, string(entry.Action), entry.OccurredAt.UTC().Format(time.RFC3339), entry.IPAddress, entry.Detail)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// List retrieves all audit entries, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, action, occurred_at, ip_address, detail FROM rule_audit ORDER BY occurred_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var results []domain.Entry
	for rows.Next() {
		var entry domain.Entry
		var action, occurredAt string
		var ip, detail sql.NullString
		if err := rows.Scan(&entry.ID, &action, &occurredAt, &ip, &detail); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.Action = domain.Action(action)
		if ts, err := time.Parse(time.RFC3339, occurredAt); err == nil {
			entry.OccurredAt = ts
		}
		entry.IPAddress = ip.String
		entry.Detail = detail.String
		results = append(results, entry)
	}
	return results, rows.Err()
}
