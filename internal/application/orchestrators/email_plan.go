package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	emailAdapter "execogim/internal/adapters/email"
)

// Domain errors for plan delivery.
var (
	ErrNoRecipient   = errors.New("recipient address is required")
	ErrEmailDisabled = errors.New("email delivery is not configured")
)

// EmailPlanInput carries the export inputs plus the destination address.
type EmailPlanInput struct {
	Export ExportDocumentInput
	To     string
}

// EmailPlanDeps holds dependencies for EmailPlan.
type EmailPlanDeps struct {
	Export      ExportDocumentDeps
	EmailSender emailAdapter.Sender
	FromAddress string
	ReplyTo     string
}

// ExecuteEmailPlan renders the plan-and-consent document and delivers it as
// an email attachment.
// PRE: To is non-empty and the sender is configured
// POST: Exactly one email with the PDF attached is queued for delivery
func ExecuteEmailPlan(ctx context.Context, input EmailPlanInput, deps EmailPlanDeps) error {
	if input.To == "" {
		return ErrNoRecipient
	}
	if !deps.EmailSender.Enabled() {
		return ErrEmailDisabled
	}

	result, err := ExecuteExportDocument(ctx, input.Export, deps.Export)
	if err != nil {
		return err
	}

	name := input.Export.ParticipantName
	if name == "" {
		name = "Participant"
	}

	req := emailAdapter.SendRequest{
		To:      []string{input.To},
		From:    deps.FromAddress,
		Subject: "12-week exercise plan and consent form",
		HTML: fmt.Sprintf("<p>Attached is the gene-guided 12-week exercise plan and consent form for %s.</p>",
			name),
		ReplyTo: deps.ReplyTo,
		Attachments: []emailAdapter.Attachment{{
			Filename:    result.Filename,
			Content:     result.Data,
			ContentType: result.ContentType,
		}},
	}

	sent, err := deps.EmailSender.Send(ctx, req)
	if err != nil {
		return fmt.Errorf("deliver plan email: %w", err)
	}

	slog.Info("export_event", "event", "plan_emailed", "to", input.To, "message_id", sent.MessageID)
	return nil
}
