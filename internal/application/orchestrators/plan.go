package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	rulesetStore "execogim/internal/adapters/storage/ruleset"
	"execogim/internal/domain/plan"
	"execogim/internal/domain/ruleset"
)

// GeneratePlanInput carries the plan request attributes. Age and
// FitnessLevel are accepted but not yet consumed by generation (reserved).
type GeneratePlanInput struct {
	Genotype     string `json:"genotype"`
	Age          int    `json:"age"`
	FitnessLevel string `json:"fitness_level"`
}

// GeneratePlanDeps holds dependencies for GeneratePlan.
type GeneratePlanDeps struct {
	RuleStore rulesetStore.Store
	Now       func() time.Time
}

// ExecuteGeneratePlan resolves the cohort template and generates the
// 12-week schedule.
// PRE: deps are wired; input may be entirely empty
// POST: Always returns a plan when the rule table loads; unknown genotypes
// and missing templates fall back rather than fail
func ExecuteGeneratePlan(ctx context.Context, input GeneratePlanInput, deps GeneratePlanDeps) (plan.Plan, error) {
	rules, err := deps.RuleStore.Load(ctx)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("load rule table: %w", err)
	}

	tpl, cohort := ruleset.Resolve(input.Genotype, rules)
	p := plan.Generate(tpl, cohort, deps.Now())

	slog.Info("plan_event", "event", "plan_generated", "cohort", string(cohort),
		"session_length_min", tpl.SessionLengthMin, "weeks", len(p.Weeks))
	return p, nil
}
