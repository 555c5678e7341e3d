package plan

import (
	"execogim/internal/domain/ruleset"
)

// Weekday constants in fixed schedule order.
const (
	Mon = "Mon"
	Tue = "Tue"
	Wed = "Wed"
	Thu = "Thu"
	Fri = "Fri"
	Sat = "Sat"
	Sun = "Sun"
)

// Weekdays lists the seven days in the order sessions are generated.
var Weekdays = []string{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// TypeRest is the Sunday session type for both cohorts.
const TypeRest = "Rest"

// TotalWeeks is the fixed length of every generated plan.
const TotalWeeks = 12

// Session is one scheduled day within a week.
type Session struct {
	Day         string `json:"day"`
	Type        string `json:"type"`
	DurationMin int    `json:"duration_min"`
}

// Signals carries the per-week progression adjustments. ComplexityFlag is
// computed for the Val/Val cohort but not yet consumed when building
// sessions; it is a reserved extension point and must stay on the week.
type Signals struct {
	DurationBump   int  `json:"duration_bump"`
	ComplexityFlag bool `json:"complexity_flag"`
}

// Week is one of the twelve plan weeks, always seven sessions Mon..Sun.
type Week struct {
	Number   int       `json:"week"`
	Signals  Signals   `json:"signals"`
	Sessions []Session `json:"sessions"`
}

// Summary echoes the template parameters the plan was generated from.
type Summary struct {
	SessionsPerWeek  int    `json:"sessions_per_week"`
	SessionLengthMin int    `json:"session_length_min"`
	Intensity        string `json:"intensity"`
	Notes            string `json:"notes"`
}

// Plan is a fully derived 12-week schedule. It has no persisted identity
// and is regenerated fresh on every request.
type Plan struct {
	GenotypeLabel ruleset.Cohort `json:"genotype_label"`
	Summary       Summary        `json:"summary"`
	Weeks         []Week         `json:"weeks"`
	GeneratedAt   string         `json:"generated_at"`
}
