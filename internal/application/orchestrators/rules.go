package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	auditStore "execogim/internal/adapters/storage/audit"
	rulesetStore "execogim/internal/adapters/storage/ruleset"
	"execogim/internal/domain/audit"
	"execogim/internal/domain/ruleset"
)

// ReplaceRulesInput carries the replacement rule table as submitted text.
type ReplaceRulesInput struct {
	RulesJSON string
	SourceIP  string
}

// ReplaceRulesDeps holds dependencies for ReplaceRules.
type ReplaceRulesDeps struct {
	RuleStore  rulesetStore.Store
	AuditStore auditStore.Store
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteReplaceRules parses and persists a replacement rule table.
// PRE: RulesJSON is administrator-supplied text
// POST: On parse error nothing is persisted and the error carries a
// human-readable message; on success the table is replaced wholesale and
// an audit entry appended
func ExecuteReplaceRules(ctx context.Context, input ReplaceRulesInput, deps ReplaceRulesDeps) (ruleset.Rules, error) {
	rules, err := ruleset.Parse(input.RulesJSON)
	if err != nil {
		slog.Warn("rules_event", "event", "rules_parse_failed", "error", err)
		return nil, err
	}

	if err := deps.RuleStore.Replace(ctx, rules); err != nil {
		return nil, fmt.Errorf("persist rule table: %w", err)
	}

	entry := audit.Entry{
		ID:         deps.GenerateID(),
		Action:     audit.ActionRulesReplace,
		OccurredAt: deps.Now(),
		IPAddress:  input.SourceIP,
		Detail:     fmt.Sprintf("aliases=%d", len(rules)),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := deps.AuditStore.Append(ctx, entry); err != nil {
		// The edit itself succeeded; a lost audit row is logged, not fatal.
		slog.Warn("rules_event", "event", "rules_audit_failed", "error", err)
	}

	slog.Info("rules_event", "event", "rules_replaced", "aliases", len(rules), "ip", input.SourceIP)
	return rules, nil
}

// SeedRulesDeps holds dependencies for SeedRules.
type SeedRulesDeps struct {
	RuleStore rulesetStore.Store
}

// ExecuteSeedRules installs the default rule table on first boot.
// POST: Idempotent; an already-populated table is left untouched
func ExecuteSeedRules(ctx context.Context, deps SeedRulesDeps) error {
	n, err := deps.RuleStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("count rule table: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := deps.RuleStore.Replace(ctx, ruleset.Defaults()); err != nil {
		return fmt.Errorf("seed rule table: %w", err)
	}
	slog.Info("rules_event", "event", "rules_seeded")
	return nil
}
