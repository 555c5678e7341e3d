package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"execogim/internal/application/orchestrators"
	"execogim/internal/domain/assessment"
)

// strictDecode decodes JSON with unknown fields disallowed.
func strictDecode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// internalError logs the error and writes a generic 500 so internals
// never leak to clients.
func internalError(w http.ResponseWriter, context string, err error) {
	slog.Error("http_error", "context", context, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// isHTMLRequest reports whether the client prefers an HTML response.
func isHTMLRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// generateID returns a new random identifier for audit rows.
func generateID() string {
	return uuid.NewString()
}

var mdRenderer = goldmark.New()

// renderMarkdown converts markdown text to sanitizable HTML for templates.
func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}

// renderTemplate parses and executes a page template from the templates dir.
func renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"renderMarkdown": renderMarkdown,
	}).ParseFiles("internal/adapters/http/templates/" + name)
	if err != nil {
		internalError(w, "parse template "+name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("http_error", "context", "execute template "+name, "error", err)
	}
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("http_error", "context", "encode response", "error", err)
	}
}

// registerRoutes attaches all API and admin handlers to the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate_plan", handleGeneratePlan)
	mux.HandleFunc("/api/save_assessment", handleSaveAssessment)
	mux.HandleFunc("/api/get_assessment/", handleGetAssessment)
	mux.HandleFunc("/api/download_plan_pdf", handleDownloadPlanPDF)
	mux.HandleFunc("/api/email_plan", handleEmailPlan)
	mux.HandleFunc("/admin/rules", handleAdminRules)
}

// handleGeneratePlan builds a 12-week plan for the posted genotype.
func handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var input orchestrators.GeneratePlanInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	p, err := orchestrators.ExecuteGeneratePlan(r.Context(), input, orchestrators.GeneratePlanDeps{
		RuleStore: stores.RuleStore,
		Now:       timeNow,
	})
	if err != nil {
		internalError(w, "generate plan", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleSaveAssessment upserts one pre/post measurement set.
func handleSaveAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var input orchestrators.SaveAssessmentInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	ack, err := orchestrators.ExecuteSaveAssessment(r.Context(), input, orchestrators.SaveAssessmentDeps{
		AssessmentStore: stores.AssessmentStore,
		Now:             timeNow,
	})
	if errors.Is(err, assessment.ErrInvalidType) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		internalError(w, "save assessment", err)
		return
	}
	writeJSON(w, http.StatusOK, ack)
}

// handleGetAssessment returns a participant's stored record. Unknown
// participants get an empty object, not a 404.
func handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	pid := strings.TrimPrefix(r.URL.Path, "/api/get_assessment/")
	if pid == "" {
		http.Error(w, "participant id required", http.StatusBadRequest)
		return
	}

	rec, err := orchestrators.ExecuteGetAssessment(r.Context(), pid, orchestrators.GetAssessmentDeps{
		AssessmentStore: stores.AssessmentStore,
	})
	if err != nil {
		internalError(w, "get assessment", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDownloadPlanPDF streams the combined plan-and-consent document.
func handleDownloadPlanPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var input orchestrators.ExportDocumentInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteExportDocument(r.Context(), input, exportDeps())
	if err != nil {
		internalError(w, "export document", err)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	if _, err := w.Write(result.Data); err != nil {
		slog.Error("http_error", "context", "write pdf", "error", err)
	}
}

// handleEmailPlan renders the document and emails it as an attachment.
func handleEmailPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var input struct {
		orchestrators.ExportDocumentInput
		To string `json:"to"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteEmailPlan(r.Context(), orchestrators.EmailPlanInput{
		Export: input.ExportDocumentInput,
		To:     input.To,
	}, orchestrators.EmailPlanDeps{
		Export:      exportDeps(),
		EmailSender: emailSender,
		FromAddress: emailFromAddress,
		ReplyTo:     emailReplyTo,
	})
	switch {
	case errors.Is(err, orchestrators.ErrNoRecipient):
		http.Error(w, "recipient address required", http.StatusBadRequest)
		return
	case errors.Is(err, orchestrators.ErrEmailDisabled):
		http.Error(w, "email delivery is not configured", http.StatusServiceUnavailable)
		return
	case err != nil:
		internalError(w, "email plan", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func exportDeps() orchestrators.ExportDocumentDeps {
	return orchestrators.ExportDocumentDeps{
		RuleStore:       stores.RuleStore,
		AssessmentStore: stores.AssessmentStore,
		Renderer:        renderer,
		Now:             timeNow,
	}
}
