package orchestrators

import (
	"context"
	"time"

	"execogim/internal/domain/assessment"
	"execogim/internal/domain/audit"
	"execogim/internal/domain/report"
	"execogim/internal/domain/ruleset"
)

var fixedClock = func() time.Time {
	return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
}

// mockRuleStore implements the rule table store for testing.
type mockRuleStore struct {
	rules    ruleset.Rules
	loadErr  error
	replaced []ruleset.Rules
}

// Load implements the mock rule store.
// PRE: valid parameters
// POST: returns configured rules or error
func (m *mockRuleStore) Load(_ context.Context) (ruleset.Rules, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.rules == nil {
		return ruleset.Rules{}, nil
	}
	return m.rules, nil
}

// Replace implements the mock rule store.
// PRE: valid parameters
// POST: rules recorded as the new table
func (m *mockRuleStore) Replace(_ context.Context, rules ruleset.Rules) error {
	m.rules = rules
	m.replaced = append(m.replaced, rules)
	return nil
}

// Count implements the mock rule store.
// PRE: valid parameters
// POST: returns the number of aliases
func (m *mockRuleStore) Count(_ context.Context) (int, error) {
	return len(m.rules), nil
}

// mockAssessmentStore implements the assessment store for testing.
type mockAssessmentStore struct {
	records map[string]assessment.Record
	saveErr error
}

// Get implements the mock assessment store.
// PRE: valid parameters
// POST: returns the stored record or a zero record
func (m *mockAssessmentStore) Get(_ context.Context, participantID string) (assessment.Record, error) {
	return m.records[participantID], nil
}

// Save implements the mock assessment store.
// PRE: valid parameters
// POST: record stored under participantID
func (m *mockAssessmentStore) Save(_ context.Context, participantID string, rec assessment.Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.records == nil {
		m.records = make(map[string]assessment.Record)
	}
	m.records[participantID] = rec
	return nil
}

// mockAuditStore implements the audit store for testing.
type mockAuditStore struct {
	entries []audit.Entry
}

// Append implements the mock audit store.
// PRE: valid parameters
// POST: entry recorded
func (m *mockAuditStore) Append(_ context.Context, entry audit.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

// List implements the mock audit store.
// PRE: valid parameters
// POST: returns recorded entries
func (m *mockAuditStore) List(_ context.Context) ([]audit.Entry, error) {
	return m.entries, nil
}

// mockRenderer records the document it was asked to render.
type mockRenderer struct {
	docs []report.Document
}

// Render implements the mock renderer.
// PRE: valid parameters
// POST: returns placeholder bytes
func (m *mockRenderer) Render(doc report.Document) ([]byte, string, error) {
	m.docs = append(m.docs, doc)
	return []byte("%PDF-mock"), "application/pdf", nil
}
