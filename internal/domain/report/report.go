package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"execogim/internal/domain/assessment"
	"execogim/internal/domain/plan"
)

// Placeholder rendered for missing or non-numeric values.
const Placeholder = "-"

// NoAssessmentsNotice replaces the comparison table when nothing is stored.
const NoAssessmentsNotice = "No assessments stored for this participant."

// ConsentText is the fixed consent boilerplate included in every export.
const ConsentText = "I confirm that I have received information about the exercise program. " +
	"I understand the risks and benefits, and I consent to participate. " +
	"I confirm that I have disclosed any medical conditions to the clinician."

// Filename is the attachment name for the exported document.
const Filename = "bdnf_plan_and_consent.pdf"

// Participant identifies who the document is for.
type Participant struct {
	Name string
	ID   string
	DOB  string
}

// Row is one line of the pre/post comparison table.
type Row struct {
	Label  string
	Pre    string
	Post   string
	Change string
}

// Section is one ordered block of the document. Exactly one of Rows, Weeks
// or Lines carries the content; Lines may accompany either for headers.
type Section struct {
	Heading   string
	Lines     []string
	Rows      []Row
	Weeks     []plan.Week
	PageBreak bool
}

// Document is the ordered structure handed to the external renderer.
type Document struct {
	Title    string
	Filename string
	Sections []Section
}

// Assemble combines a generated plan with a participant's stored assessments
// into the ordered document structure. Missing or non-numeric measure values
// degrade to placeholders; assembly never fails.
// POST: Sections are header, comparison (or notice), 12-week breakdown,
// consent — always in that order
func Assemble(p plan.Plan, rec assessment.Record, who Participant, today string) Document {
	name := who.Name
	if name == "" {
		name = "Participant"
	}
	dob := who.DOB
	if dob == "" {
		dob = "YYYY-MM-DD"
	}

	sections := []Section{{
		Lines: []string{
			"Participant: " + name,
			"Genotype: " + string(p.GenotypeLabel),
			"Generated: " + today,
		},
	}}

	if rec.IsEmpty() {
		sections = append(sections, Section{Lines: []string{NoAssessmentsNotice}})
	} else {
		sections = append(sections, Section{
			Heading: "Assessment Summary (Pre vs Post)",
			Rows:    comparisonRows(rec),
		})
	}

	sections = append(sections, Section{
		Heading: "12-week Plan (overview)",
		Weeks:   p.Weeks,
	})

	sections = append(sections, Section{
		Heading:   "Participant Consent Form",
		PageBreak: true,
		Lines: []string{
			ConsentText,
			"Participant name: " + name,
			"Date of birth: " + dob,
			"Signature: ____________________________",
			"Date: ____________________",
		},
	})

	return Document{
		Title:    "BDNF Genotype Exercise Plan (12-week)",
		Filename: Filename,
		Sections: sections,
	}
}

// comparisonRows builds the fixed eight-measure table in display order.
func comparisonRows(rec assessment.Record) []Row {
	rows := make([]Row, 0, len(assessment.Measures))
	for _, m := range assessment.Measures {
		preVal, preOK := rec.Pre[m.Key]
		postVal, postOK := rec.Post[m.Key]

		change := Placeholder
		if preOK && postOK {
			pre, preNum := assessment.Numeric(preVal)
			post, postNum := assessment.Numeric(postVal)
			if preNum && postNum {
				change = formatChange(post - pre)
			}
		}

		rows = append(rows, Row{
			Label:  m.Label,
			Pre:    formatValue(preVal, preOK),
			Post:   formatValue(postVal, postOK),
			Change: change,
		})
	}
	return rows
}

// formatValue renders a stored measure value, or the placeholder when absent.
func formatValue(v any, ok bool) string {
	if !ok || v == nil {
		return Placeholder
	}
	switch n := v.(type) {
	case string:
		if n == "" {
			return Placeholder
		}
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return fmt.Sprint(v)
	}
}

// formatChange renders a delta rounded to two decimals, always keeping at
// least one decimal place so a whole-number change reads "5.0".
func formatChange(d float64) string {
	rounded := math.Round(d*100) / 100
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
