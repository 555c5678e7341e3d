package ruleset_test

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"execogim/internal/adapters/storage"
	rulesetStore "execogim/internal/adapters/storage/ruleset"
	domain "execogim/internal/domain/ruleset"
)

func openTestStore(t *testing.T) *rulesetStore.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	return rulesetStore.NewSQLiteStore(db)
}

// TestSQLiteStore_LoadEmpty tests that an unseeded table loads as empty rules.
func TestSQLiteStore_LoadEmpty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rules, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rules == nil || len(rules) != 0 {
		t.Errorf("Load() = %v, want empty non-nil rules", rules)
	}
	n, err := store.Count(ctx)
	if err != nil || n != 0 {
		t.Errorf("Count() = %d, %v, want 0, nil", n, err)
	}
}

// TestSQLiteStore_ReplaceRoundTrip tests wholesale replacement and reload.
func TestSQLiteStore_ReplaceRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, domain.Defaults()); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	rules, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("len(rules) = %d, want 2", len(rules))
	}
	if rules["Met"].Intensity != "moderate" {
		t.Errorf("Met intensity = %q", rules["Met"].Intensity)
	}
	if rules["Val/Val"].SessionLengthMin != 35 {
		t.Errorf("Val/Val session length = %d", rules["Val/Val"].SessionLengthMin)
	}

	// A second replace drops aliases not present in the new table.
	next := domain.Rules{"Met": {SessionsPerWeek: 3, SessionLengthMin: 20, Intensity: "low"}}
	if err := store.Replace(ctx, next); err != nil {
		t.Fatalf("second Replace() error = %v", err)
	}
	rules, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("len(rules) after replace = %d, want 1", len(rules))
	}
	if _, ok := rules["Val/Val"]; ok {
		t.Error("Val/Val alias survived a wholesale replace")
	}
}
