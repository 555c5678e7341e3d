package assessment

import (
	"encoding/json"
	"errors"
)

// Assessment type constants.
const (
	TypePre  = "pre"
	TypePost = "post"
)

// ErrInvalidType is returned when the assessment type is neither pre nor post.
var ErrInvalidType = errors.New("assessment type must be 'pre' or 'post'")

// ValidType reports whether t is a known assessment type.
func ValidType(t string) bool {
	return t == TypePre || t == TypePost
}

// TypeMeta records when the measurements of one type were taken.
type TypeMeta struct {
	Date string `json:"date"`
}

// Record is a participant's stored measurement sets. Measures are free-form
// name -> value mappings; values may be numeric or strings.
type Record struct {
	Pre  map[string]any      `json:"pre,omitempty"`
	Post map[string]any      `json:"post,omitempty"`
	Meta map[string]TypeMeta `json:"_meta,omitempty"`
}

// IsEmpty reports whether the record holds no measurements of either type.
func (r Record) IsEmpty() bool {
	return len(r.Pre) == 0 && len(r.Post) == 0
}

// SetType upserts one measurement set, replacing any prior value for that
// type entirely and leaving the other type untouched.
// PRE: atype is pre or post; date is YYYY-MM-DD
// POST: Measures stored under atype, Meta[atype].Date set; Meta never
// overwrites measure data
func (r *Record) SetType(atype string, measures map[string]any, date string) error {
	if !ValidType(atype) {
		return ErrInvalidType
	}
	if measures == nil {
		measures = map[string]any{}
	}
	switch atype {
	case TypePre:
		r.Pre = measures
	case TypePost:
		r.Post = measures
	}
	if r.Meta == nil {
		r.Meta = make(map[string]TypeMeta)
	}
	r.Meta[atype] = TypeMeta{Date: date}
	return nil
}

// Measure is one of the fixed assessment measures shown on reports.
type Measure struct {
	Key   string
	Label string
}

// Measures lists the eight reported measures in display order.
var Measures = []Measure{
	{Key: "MoCA", Label: "MoCA"},
	{Key: "DigitSpan", Label: "Digit Span"},
	{Key: "TMT_A", Label: "TMT-A (s)"},
	{Key: "TMT_B", Label: "TMT-B (s)"},
	{Key: "6MWT", Label: "6MWT (m)"},
	{Key: "TUG", Label: "TUG (s)"},
	{Key: "Handgrip", Label: "Handgrip (kg)"},
	{Key: "BBS", Label: "BBS (0-56)"},
}

// Numeric coerces a stored measure value to float64. JSON decoding yields
// float64 or json.Number; ints appear when records are built in code.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
