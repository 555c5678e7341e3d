package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	domain "execogim/internal/domain/assessment"
)

// SQLiteStore implements Store using SQLite. Measurement sets are stored as
// JSON columns on a single row per participant.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new assessment store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a participant's record.
// POST: Returns a zero Record (not an error) for an unknown participant
func (s *SQLiteStore) Get(ctx context.Context, participantID string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT pre, post, meta FROM assessment WHERE participant_id = ?", participantID)

	var pre, post, meta sql.NullString
	err := row.Scan(&pre, &post, &meta)
	if err == sql.ErrNoRows {
		return domain.Record{}, nil
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("get assessment %q: %w", participantID, err)
	}

	var rec domain.Record
	if err := decodeColumn(pre, &rec.Pre); err != nil {
		return domain.Record{}, fmt.Errorf("decode pre for %q: %w", participantID, err)
	}
	if err := decodeColumn(post, &rec.Post); err != nil {
		return domain.Record{}, fmt.Errorf("decode post for %q: %w", participantID, err)
	}
	if err := decodeColumn(meta, &rec.Meta); err != nil {
		return domain.Record{}, fmt.Errorf("decode meta for %q: %w", participantID, err)
	}
	return rec, nil
}

// Save persists the full record for a participant, replacing any prior row.
// PRE: rec was produced by Get + Record.SetType, so the untouched type is
// carried through the write
// POST: Row upserted; last write wins
func (s *SQLiteStore) Save(ctx context.Context, participantID string, rec domain.Record) error {
	pre, err := encodeColumn(rec.Pre)
	if err != nil {
		return fmt.Errorf("encode pre for %q: %w", participantID, err)
	}
	post, err := encodeColumn(rec.Post)
	if err != nil {
		return fmt.Errorf("encode post for %q: %w", participantID, err)
	}
	meta, err := encodeColumn(rec.Meta)
	if err != nil {
		return fmt.Errorf("encode meta for %q: %w", participantID, err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO assessment (participant_id, pre, post, meta) VALUES (?, ?, ?, ?) ON CONFLICT(participant_id) DO UPDATE SET pre=excluded.pre, post=excluded.post, meta=excluded.meta",
		participantID, pre, post, meta)
	if err != nil {
		return fmt.Errorf("save assessment %q: %w", participantID, err)
	}
	return nil
}

// decodeColumn unmarshals a nullable JSON column into dst, leaving dst nil
// for NULL or empty columns.
func decodeColumn[T any](col sql.NullString, dst *T) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}

// encodeColumn marshals a map column, storing NULL for empty maps.
func encodeColumn[T any](v map[string]T) (any, error) {
	if len(v) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
