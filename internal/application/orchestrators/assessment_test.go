package orchestrators

import (
	"context"
	"testing"

	"execogim/internal/domain/assessment"
)

// TestExecuteSaveAssessment tests the save/ack flow and defaults.
func TestExecuteSaveAssessment(t *testing.T) {
	store := &mockAssessmentStore{}
	deps := SaveAssessmentDeps{AssessmentStore: store, Now: fixedClock}

	ack, err := ExecuteSaveAssessment(context.Background(), SaveAssessmentInput{
		ParticipantID:  "p1",
		AssessmentType: "pre",
		Measures:       map[string]any{"MoCA": 25.0},
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteSaveAssessment() error = %v", err)
	}
	if ack.Status != "ok" || ack.Participant != "p1" || ack.Type != "pre" {
		t.Errorf("ack = %+v", ack)
	}

	rec := store.records["p1"]
	if rec.Pre["MoCA"] != 25.0 {
		t.Errorf("stored Pre[MoCA] = %v", rec.Pre["MoCA"])
	}
	if rec.Meta["pre"].Date != "2026-06-15" {
		t.Errorf("Meta[pre].Date = %q, want current UTC date", rec.Meta["pre"].Date)
	}
}

// TestExecuteSaveAssessment_UpsertKeepsOtherType tests pre survives a post save.
func TestExecuteSaveAssessment_UpsertKeepsOtherType(t *testing.T) {
	store := &mockAssessmentStore{}
	deps := SaveAssessmentDeps{AssessmentStore: store, Now: fixedClock}
	ctx := context.Background()

	if _, err := ExecuteSaveAssessment(ctx, SaveAssessmentInput{
		ParticipantID: "p1", AssessmentType: "pre", Measures: map[string]any{"MoCA": 25.0}, Date: "2026-01-05",
	}, deps); err != nil {
		t.Fatalf("pre save error = %v", err)
	}
	if _, err := ExecuteSaveAssessment(ctx, SaveAssessmentInput{
		ParticipantID: "p1", AssessmentType: "post", Measures: map[string]any{"MoCA": 27.0},
	}, deps); err != nil {
		t.Fatalf("post save error = %v", err)
	}

	rec := store.records["p1"]
	if rec.Pre["MoCA"] != 25.0 || rec.Post["MoCA"] != 27.0 {
		t.Errorf("record = %+v, want both types", rec)
	}
	if rec.Meta["pre"].Date != "2026-01-05" {
		t.Errorf("Meta[pre].Date = %q, pre metadata should be untouched", rec.Meta["pre"].Date)
	}
}

// TestExecuteSaveAssessment_Identity tests participant id fallbacks.
func TestExecuteSaveAssessment_Identity(t *testing.T) {
	tests := []struct {
		name  string
		input SaveAssessmentInput
		want  string
	}{
		{name: "id wins", input: SaveAssessmentInput{ParticipantID: "p9", ParticipantName: "Ana"}, want: "p9"},
		{name: "name fallback", input: SaveAssessmentInput{ParticipantName: "Ana"}, want: "Ana"},
		{name: "unknown fallback", input: SaveAssessmentInput{}, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockAssessmentStore{}
			deps := SaveAssessmentDeps{AssessmentStore: store, Now: fixedClock}
			ack, err := ExecuteSaveAssessment(context.Background(), tt.input, deps)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if ack.Participant != tt.want {
				t.Errorf("participant = %q, want %q", ack.Participant, tt.want)
			}
			if ack.Type != "pre" {
				t.Errorf("type = %q, want default pre", ack.Type)
			}
		})
	}
}

// TestExecuteSaveAssessment_InvalidType tests rejection of unknown types.
func TestExecuteSaveAssessment_InvalidType(t *testing.T) {
	store := &mockAssessmentStore{}
	deps := SaveAssessmentDeps{AssessmentStore: store, Now: fixedClock}

	_, err := ExecuteSaveAssessment(context.Background(), SaveAssessmentInput{
		ParticipantID: "p1", AssessmentType: "during",
	}, deps)
	if err != assessment.ErrInvalidType {
		t.Errorf("error = %v, want ErrInvalidType", err)
	}
	if len(store.records) != 0 {
		t.Error("store modified by rejected save")
	}
}

// TestExecuteGetAssessment tests lookups including the unknown path.
func TestExecuteGetAssessment(t *testing.T) {
	store := &mockAssessmentStore{records: map[string]assessment.Record{
		"p1": {Pre: map[string]any{"MoCA": 25.0}},
	}}
	deps := GetAssessmentDeps{AssessmentStore: store}

	rec, err := ExecuteGetAssessment(context.Background(), "p1", deps)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if rec.Pre["MoCA"] != 25.0 {
		t.Errorf("rec = %+v", rec)
	}

	rec, err = ExecuteGetAssessment(context.Background(), "nobody", deps)
	if err != nil {
		t.Fatalf("unknown participant error = %v", err)
	}
	if !rec.IsEmpty() {
		t.Errorf("unknown participant rec = %+v, want empty", rec)
	}
}
