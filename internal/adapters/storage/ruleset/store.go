package ruleset

import (
	"context"

	domain "execogim/internal/domain/ruleset"
)

// Store persists the cohort rule table. The table is read wholesale on every
// plan generation and replaced wholesale by administrative edits.
type Store interface {
	Load(ctx context.Context) (domain.Rules, error)
	Replace(ctx context.Context, rules domain.Rules) error
	Count(ctx context.Context) (int, error)
}
