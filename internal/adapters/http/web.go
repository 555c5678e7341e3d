package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"

	"execogim/internal/adapters/email"
	"execogim/internal/adapters/http/middleware"
	"execogim/internal/adapters/render"
	assessmentStore "execogim/internal/adapters/storage/assessment"
	auditStore "execogim/internal/adapters/storage/audit"
	rulesetStore "execogim/internal/adapters/storage/ruleset"
)

// Stores holds all storage dependencies.
type Stores struct {
	RuleStore       rulesetStore.Store
	AssessmentStore assessmentStore.Store
	AuditStore      auditStore.Store
}

// loadCSRFKey reads the CSRF secret from EXECOGIM_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("EXECOGIM_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("EXECOGIM_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("EXECOGIM_ENV") == "production" {
		log.Fatal("EXECOGIM_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set EXECOGIM_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global document renderer (set by NewMux)
var renderer render.Renderer

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// bcrypt hash of the administrator key (set by SetAdminKey)
var adminKeyHash []byte

// timeNow is swappable in tests.
var timeNow = time.Now

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// SetAdminKey hashes and stores the administrator key that gates /admin/rules.
func SetAdminKey(key string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin key: %v", err)
	}
	adminKeyHash = hash
}

// checkAdminKey compares a presented key against the configured hash.
func checkAdminKey(key string) bool {
	if len(adminKeyHash) == 0 || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(adminKeyHash, []byte(key)) == nil
}

// spaHandler serves files from staticDir, falling back to index.html for
// paths with no matching file so client-side routes work on reload.
func spaHandler(staticDir string) http.Handler {
	fs := http.FileServer(http.Dir(staticDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			full := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
			if info, err := os.Stat(full); err != nil || info.IsDir() {
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
		}
		fs.ServeHTTP(w, r)
	})
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, rend render.Renderer) http.Handler {
	stores = s
	renderer = rend

	mux := http.NewServeMux()
	mux.Handle("/", spaHandler(staticDir))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RateLimit -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
	)
}
