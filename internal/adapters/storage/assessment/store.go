package assessment

import (
	"context"

	domain "execogim/internal/domain/assessment"
)

// Store persists participant assessment records. Each Save writes the full
// record; concurrent saves for the same participant are last-write-wins.
type Store interface {
	Get(ctx context.Context, participantID string) (domain.Record, error)
	Save(ctx context.Context, participantID string, rec domain.Record) error
}
