package web

import (
	"encoding/json"
	"html/template"
	"net"
	"net/http"

	"github.com/gorilla/csrf"

	"execogim/internal/application/orchestrators"
	"execogim/internal/domain/ruleset"
)

// adminRulesPage is the view model for the rule editor.
type adminRulesPage struct {
	Key       string
	RulesJSON string
	Error     string
	Saved     bool
	Notes     []aliasNote
	CSRFField template.HTML
}

// aliasNote pairs an alias with its notes for the markdown preview.
type aliasNote struct {
	Alias string
	Notes string
}

// handleAdminRules shows and updates the genotype rule table. Access is
// gated by the administrator key, compared against a bcrypt hash.
func handleAdminRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		key := r.URL.Query().Get("key")
		if !checkAdminKey(key) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		renderAdminRules(w, r, key, "", "", false)
	case http.MethodPost:
		key := r.FormValue("key")
		if !checkAdminKey(key) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		rulesJSON := r.FormValue("rules")
		_, err := orchestrators.ExecuteReplaceRules(r.Context(), orchestrators.ReplaceRulesInput{
			RulesJSON: rulesJSON,
			SourceIP:  clientIP(r),
		}, orchestrators.ReplaceRulesDeps{
			RuleStore:  stores.RuleStore,
			AuditStore: stores.AuditStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			// Re-render the submitted text so the admin can fix it in place.
			renderAdminRules(w, r, key, rulesJSON, err.Error(), false)
			return
		}
		renderAdminRules(w, r, key, "", "", true)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// renderAdminRules loads the current table (unless overridden by submitted
// text) and renders the editor page.
func renderAdminRules(w http.ResponseWriter, r *http.Request, key, submitted, errMsg string, saved bool) {
	rules, err := stores.RuleStore.Load(r.Context())
	if err != nil {
		internalError(w, "load rule table", err)
		return
	}

	text := submitted
	if text == "" {
		pretty, err := json.MarshalIndent(rules, "", "  ")
		if err != nil {
			internalError(w, "marshal rule table", err)
			return
		}
		text = string(pretty)
	}

	renderTemplate(w, "admin_rules.html", adminRulesPage{
		Key:       key,
		RulesJSON: text,
		Error:     errMsg,
		Saved:     saved,
		Notes:     notesFor(rules),
		CSRFField: csrf.TemplateField(r),
	})
}

// notesFor collects non-empty per-alias notes in a stable order.
func notesFor(rules ruleset.Rules) []aliasNote {
	var out []aliasNote
	for _, alias := range []string{"Val/Val", "Val", "ValVal", "Met"} {
		tpl, ok := rules[alias]
		if ok && tpl.Notes != "" {
			out = append(out, aliasNote{Alias: alias, Notes: tpl.Notes})
		}
	}
	return out
}

// clientIP strips the port from RemoteAddr for audit rows.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
