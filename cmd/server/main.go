package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "execogim/internal/adapters/email"
	web "execogim/internal/adapters/http"
	"execogim/internal/adapters/render"
	"execogim/internal/adapters/storage"
	assessmentStore "execogim/internal/adapters/storage/assessment"
	auditStore "execogim/internal/adapters/storage/audit"
	rulesetStore "execogim/internal/adapters/storage/ruleset"
	"execogim/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("EXECOGIM_DB", "execogim.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	ruleStore := rulesetStore.NewSQLiteStore(db)
	stores := &web.Stores{
		RuleStore:       ruleStore,
		AssessmentStore: assessmentStore.NewSQLiteStore(db),
		AuditStore:      auditStore.NewSQLiteStore(db),
	}

	// Seed the genotype rule table on first boot
	if err := orchestrators.ExecuteSeedRules(context.Background(), orchestrators.SeedRulesDeps{RuleStore: ruleStore}); err != nil {
		log.Fatalf("failed to seed rule table: %v", err)
	}

	// Administrator key gating /admin/rules
	adminKey := os.Getenv("EXECOGIM_ADMIN_KEY")
	if adminKey == "" {
		if os.Getenv("EXECOGIM_ENV") == "production" {
			log.Fatal("EXECOGIM_ADMIN_KEY is required in production")
		}
		adminKey = "admin"
		log.Println("WARNING: using default admin key. Set EXECOGIM_ADMIN_KEY for production.")
	}
	web.SetAdminKey(adminKey)

	// Configure email sender
	resendKey := os.Getenv("EXECOGIM_RESEND_KEY")
	emailFrom := envOrDefault("EXECOGIM_RESEND_FROM", "EXECOGIM <noreply@execogim.example>")
	emailReply := envOrDefault("EXECOGIM_REPLY_TO", "clinic@execogim.example")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("EXECOGIM_ENV") == "production" {
			log.Println("WARNING: EXECOGIM_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set EXECOGIM_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware
	mux := web.NewMux("static", stores, render.NewPDFRenderer())

	// Start server
	addr := envOrDefault("EXECOGIM_ADDR", ":8080")
	log.Printf("EXECOGIM %s starting on %s (env=%s)", version, addr, envOrDefault("EXECOGIM_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
