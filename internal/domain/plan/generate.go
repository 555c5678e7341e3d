package plan

import (
	"time"

	"execogim/internal/domain/ruleset"
)

// Generate produces the deterministic 12-week schedule for a resolved
// template and cohort. Identical inputs always yield identical weeks; only
// GeneratedAt varies with the supplied clock.
// PRE: tpl.SessionLengthMin is the base session length in minutes
// POST: Exactly 12 weeks, each with 7 sessions Mon..Sun, Sunday always Rest/0
func Generate(tpl ruleset.Template, cohort ruleset.Cohort, now time.Time) Plan {
	weeks := make([]Week, 0, TotalWeeks)
	for wk := 1; wk <= TotalWeeks; wk++ {
		sig := signalsFor(cohort, wk)
		weeks = append(weeks, Week{
			Number:   wk,
			Signals:  sig,
			Sessions: sessionsFor(cohort, tpl.SessionLengthMin, sig),
		})
	}
	return Plan{
		GenotypeLabel: cohort,
		Summary: Summary{
			SessionsPerWeek:  tpl.SessionsPerWeek,
			SessionLengthMin: tpl.SessionLengthMin,
			Intensity:        tpl.Intensity,
			Notes:            tpl.Notes,
		},
		Weeks:       weeks,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
}

// signalsFor computes the progression signals for one week. Val/Val raises
// complexity at weeks 4, 8 and 11 with no duration change; Met carriers add
// five minutes at weeks 4, 7 and 10.
func signalsFor(cohort ruleset.Cohort, week int) Signals {
	var sig Signals
	if cohort == ruleset.CohortValVal {
		if week == 4 || week == 8 || week == 11 {
			sig.ComplexityFlag = true
		}
		return sig
	}
	if week == 4 || week == 7 || week == 10 {
		sig.DurationBump = 5
	}
	return sig
}

// sessionsFor builds the seven sessions of a week from the cohort's session
// table. Fractional durations truncate toward zero.
func sessionsFor(cohort ruleset.Cohort, length int, sig Signals) []Session {
	bump := sig.DurationBump
	if cohort == ruleset.CohortValVal {
		return []Session{
			{Day: Mon, Type: "HIIT", DurationMin: length + bump},
			{Day: Tue, Type: "Resistance", DurationMin: scaled(length, 0.9) + bump},
			{Day: Wed, Type: "Skill/Dual-task", DurationMin: scaled(length, 0.8) + bump},
			{Day: Thu, Type: "Active Recovery", DurationMin: 20},
			{Day: Fri, Type: "Mixed Cardio-Strength", DurationMin: length + bump},
			{Day: Sat, Type: "Optional Sport", DurationMin: 30},
			{Day: Sun, Type: TypeRest, DurationMin: 0},
		}
	}
	return []Session{
		{Day: Mon, Type: "Endurance (steady)", DurationMin: length + bump},
		{Day: Tue, Type: "Strength+Balance", DurationMin: scaled(length, 0.8) + bump},
		{Day: Wed, Type: "Adventure Mode", DurationMin: 20 + bump},
		{Day: Thu, Type: "Yoga/Tai Chi", DurationMin: 30},
		{Day: Fri, Type: "Endurance intervals", DurationMin: length + bump},
		{Day: Sat, Type: "Light aerobic + memory", DurationMin: 30},
		{Day: Sun, Type: TypeRest, DurationMin: 0},
	}
}

// scaled truncates length*factor toward zero.
func scaled(length int, factor float64) int {
	return int(float64(length) * factor)
}
