package ruleset

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cohort is one of the two classification buckets derived from a BDNF
// genotype label. The values are display labels, carried verbatim into
// generated plans and exported documents.
type Cohort string

const (
	CohortValVal     Cohort = "Val/Val"
	CohortMetCarrier Cohort = "Met carrier"
)

// Template holds the base parameters a cohort's schedule is generated from.
// The ratio fields are advisory weights and are not required to sum to 1.
type Template struct {
	SessionsPerWeek  int     `json:"sessions_per_week"`
	SessionLengthMin int     `json:"session_length_min"`
	Intensity        string  `json:"intensity"`
	AerobicRatio     float64 `json:"aerobic_ratio"`
	StrengthRatio    float64 `json:"strength_ratio"`
	MindbodyRatio    float64 `json:"mindbody_ratio"`
	Notes            string  `json:"notes,omitempty"`
}

// Rules maps cohort alias strings to templates. Edited wholesale by an
// administrator; read on every plan generation.
type Rules map[string]Template

// Alias lookup order per cohort. The first alias present in the rule
// table wins.
var (
	valValAliases     = []string{"Val/Val", "Val", "ValVal"}
	metCarrierAliases = []string{"Met"}
)

// DefaultTemplate returns the built-in fallback used when the rule table
// has no entry for the resolved cohort.
func DefaultTemplate() Template {
	return Template{
		SessionsPerWeek:  4,
		SessionLengthMin: 30,
		Intensity:        "moderate",
		AerobicRatio:     0.5,
		StrengthRatio:    0.3,
		MindbodyRatio:    0.2,
	}
}

// Resolve classifies a raw genotype label into a cohort and selects the
// matching template from the rule table.
// PRE: rules may be nil or missing either cohort's aliases
// POST: Always returns a usable template and cohort; never fails
// INVARIANT: Every genotype string maps to exactly one cohort
func Resolve(genotype string, rules Rules) (Template, Cohort) {
	if genotype == "" {
		genotype = "Met"
	}
	if strings.HasPrefix(strings.ToLower(genotype), "val") {
		return lookup(rules, valValAliases), CohortValVal
	}
	return lookup(rules, metCarrierAliases), CohortMetCarrier
}

// lookup returns the first template found under the given aliases, or the
// built-in default when none is configured.
func lookup(rules Rules, aliases []string) Template {
	for _, alias := range aliases {
		if tpl, ok := rules[alias]; ok {
			return tpl
		}
	}
	return DefaultTemplate()
}

// Parse decodes a replacement rule table from JSON text. A malformed body
// (including non-numeric session lengths) is reported back to the editor;
// nothing is persisted on error.
func Parse(text string) (Rules, error) {
	var rules Rules
	if err := json.Unmarshal([]byte(text), &rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return rules, nil
}

// Defaults returns the rule table seeded on first boot: one tuned template
// per cohort under its primary alias.
func Defaults() Rules {
	return Rules{
		"Val/Val": {
			SessionsPerWeek:  5,
			SessionLengthMin: 35,
			Intensity:        "high",
			AerobicRatio:     0.4,
			StrengthRatio:    0.4,
			MindbodyRatio:    0.2,
			Notes:            "Responds well to higher intensity and earlier skill complexity.",
		},
		"Met": {
			SessionsPerWeek:  4,
			SessionLengthMin: 30,
			Intensity:        "moderate",
			AerobicRatio:     0.5,
			StrengthRatio:    0.3,
			MindbodyRatio:    0.2,
			Notes:            "Favour gradual duration increases and consistent sequencing.",
		},
	}
}
