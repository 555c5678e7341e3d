package audit

import (
	"errors"
	"time"
)

// Action represents the administrative action that occurred.
type Action string

const (
	ActionRulesReplace Action = "rules_replace"
)

// Domain errors
var (
	ErrEmptyID     = errors.New("audit entry id is required")
	ErrEmptyAction = errors.New("audit entry action is required")
)

// Entry is a single administrative audit record.
type Entry struct {
	ID         string    `json:"id"`
	Action     Action    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
	IPAddress  string    `json:"ip_address,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}

// Validate checks that the Entry has valid data.
// PRE: Entry fields may be empty
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if e.Action == "" {
		return ErrEmptyAction
	}
	return nil
}
