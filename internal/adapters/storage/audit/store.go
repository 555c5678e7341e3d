package audit

import (
	"context"

	domain "execogim/internal/domain/audit"
)

// Store persists administrative audit entries. Entries are append-only.
type Store interface {
	Append(ctx context.Context, entry domain.Entry) error
	List(ctx context.Context) ([]domain.Entry, error)
}
