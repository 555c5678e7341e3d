package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"execogim/internal/adapters/render"
	assessmentStore "execogim/internal/adapters/storage/assessment"
	rulesetStore "execogim/internal/adapters/storage/ruleset"
	"execogim/internal/domain/plan"
	"execogim/internal/domain/report"
	"execogim/internal/domain/ruleset"
)

// ExportDocumentInput carries the plan request attributes plus participant
// identity for the combined plan-and-consent document.
type ExportDocumentInput struct {
	Genotype        string `json:"genotype"`
	Age             int    `json:"age"`
	FitnessLevel    string `json:"fitness_level"`
	ParticipantName string `json:"participant_name"`
	ParticipantID   string `json:"participant_id"`
	DOB             string `json:"dob"`
}

// ExportDocumentDeps holds dependencies for ExportDocument.
type ExportDocumentDeps struct {
	RuleStore       rulesetStore.Store
	AssessmentStore assessmentStore.Store
	Renderer        render.Renderer
	Now             func() time.Time
}

// ExportResult is the rendered byte stream plus download metadata.
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ExecuteExportDocument regenerates the plan, looks up stored assessments,
// assembles the combined document and renders it.
// PRE: deps are wired; participant fields may all be empty
// POST: Returns a rendered document; missing assessments degrade to the
// notice line rather than failing
func ExecuteExportDocument(ctx context.Context, input ExportDocumentInput, deps ExportDocumentDeps) (ExportResult, error) {
	rules, err := deps.RuleStore.Load(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("load rule table: %w", err)
	}
	tpl, cohort := ruleset.Resolve(input.Genotype, rules)
	p := plan.Generate(tpl, cohort, deps.Now())

	who := participantFor(input)
	rec, err := deps.AssessmentStore.Get(ctx, who.ID)
	if err != nil {
		return ExportResult{}, fmt.Errorf("load assessment record: %w", err)
	}

	today := deps.Now().UTC().Format("2006-01-02")
	doc := report.Assemble(p, rec, who, today)

	data, contentType, err := deps.Renderer.Render(doc)
	if err != nil {
		return ExportResult{}, fmt.Errorf("render document: %w", err)
	}

	slog.Info("export_event", "event", "document_exported", "participant", who.ID,
		"cohort", string(cohort), "bytes", len(data), "has_assessments", !rec.IsEmpty())
	return ExportResult{Data: data, Filename: doc.Filename, ContentType: contentType}, nil
}

// participantFor fills identity defaults: a missing id falls back to the
// name with spaces replaced by underscores.
func participantFor(input ExportDocumentInput) report.Participant {
	name := input.ParticipantName
	if name == "" {
		name = "Participant"
	}
	pid := input.ParticipantID
	if pid == "" {
		pid = strings.ReplaceAll(name, " ", "_")
	}
	return report.Participant{Name: name, ID: pid, DOB: input.DOB}
}
