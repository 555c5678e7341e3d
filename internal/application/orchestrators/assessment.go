package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	assessmentStore "execogim/internal/adapters/storage/assessment"
	"execogim/internal/domain/assessment"
)

// SaveAssessmentInput carries one submitted measurement set.
type SaveAssessmentInput struct {
	ParticipantID   string         `json:"participant_id"`
	ParticipantName string         `json:"participant_name"`
	AssessmentType  string         `json:"assessment_type"`
	Measures        map[string]any `json:"measures"`
	Date            string         `json:"date"`
}

// SaveAssessmentDeps holds dependencies for SaveAssessment.
type SaveAssessmentDeps struct {
	AssessmentStore assessmentStore.Store
	Now             func() time.Time
}

// SaveAssessmentAck is returned to the submitter.
type SaveAssessmentAck struct {
	Status      string `json:"status"`
	Participant string `json:"participant"`
	Type        string `json:"type"`
}

// ExecuteSaveAssessment upserts one measurement set for a participant,
// creating the record lazily and leaving the other type untouched.
// PRE: Measures may be empty; a missing type defaults to pre
// POST: Record persisted with _meta date set to the given or current UTC date
func ExecuteSaveAssessment(ctx context.Context, input SaveAssessmentInput, deps SaveAssessmentDeps) (SaveAssessmentAck, error) {
	pid := input.ParticipantID
	if pid == "" {
		pid = input.ParticipantName
	}
	if pid == "" {
		pid = "unknown"
	}

	atype := input.AssessmentType
	if atype == "" {
		atype = assessment.TypePre
	}

	date := input.Date
	if date == "" {
		date = deps.Now().UTC().Format("2006-01-02")
	}

	rec, err := deps.AssessmentStore.Get(ctx, pid)
	if err != nil {
		return SaveAssessmentAck{}, fmt.Errorf("load assessment record: %w", err)
	}
	if err := rec.SetType(atype, input.Measures, date); err != nil {
		return SaveAssessmentAck{}, err
	}
	if err := deps.AssessmentStore.Save(ctx, pid, rec); err != nil {
		return SaveAssessmentAck{}, fmt.Errorf("save assessment record: %w", err)
	}

	slog.Info("assessment_event", "event", "assessment_saved", "participant", pid,
		"type", atype, "measures", len(input.Measures))
	return SaveAssessmentAck{Status: "ok", Participant: pid, Type: atype}, nil
}

// GetAssessmentDeps holds dependencies for GetAssessment.
type GetAssessmentDeps struct {
	AssessmentStore assessmentStore.Store
}

// ExecuteGetAssessment returns a participant's stored record, or an empty
// record for a never-seen participant. Unknown ids are not an error.
func ExecuteGetAssessment(ctx context.Context, participantID string, deps GetAssessmentDeps) (assessment.Record, error) {
	rec, err := deps.AssessmentStore.Get(ctx, participantID)
	if err != nil {
		return assessment.Record{}, fmt.Errorf("load assessment record: %w", err)
	}
	return rec, nil
}
