package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"gamecat/internal/catalog"
	"gamecat/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// InsertEntry stores a pending entry for tests.
func InsertEntry(t testing.TB, store *catalog.Store, id int64, name string) *catalog.Entry {
	t.Helper()

	entry := &catalog.Entry{ID: id, Name: name}
	if err := store.Insert(context.Background(), entry); err != nil {
		t.Fatalf("store.Insert(%d): %v", id, err)
	}
	return entry
}

// EnrichEntry stores a minimal detail for an existing entry.
func EnrichEntry(t testing.TB, store *catalog.Store, id int64, isGame bool) {
	t.Helper()

	if _, err := store.UpsertDetail(context.Background(), &catalog.Detail{EntryID: id, Name: "detail", IsGame: isGame}); err != nil {
		t.Fatalf("store.UpsertDetail(%d): %v", id, err)
	}
}

// AssertInvariant fails the test when any entry's enriched flag disagrees with
// detail existence.
func AssertInvariant(t testing.TB, store *catalog.Store) {
	t.Helper()

	violations, err := store.CountInvariantViolations(context.Background())
	if err != nil {
		t.Fatalf("CountInvariantViolations: %v", err)
	}
	if violations != 0 {
		t.Fatalf("expected no enrichment invariant violations, got %d", violations)
	}
}

// FailOn installs a trigger named name that aborts every statement matching
// event, e.g. "BEFORE DELETE ON catalog_entries". It uses a second connection
// so the store under test is left untouched.
func FailOn(t testing.TB, store *catalog.Store, name, event string) {
	t.Helper()

	db, err := sql.Open("sqlite", store.Path())
	if err != nil {
		t.Fatalf("open %s: %v", store.Path(), err)
	}
	defer db.Close()
	stmt := fmt.Sprintf(`CREATE TRIGGER %s %s BEGIN SELECT RAISE(ABORT, 'injected failure'); END`, name, event)
	if _, err := db.Exec(stmt); err != nil {
		t.Fatalf("create trigger %s: %v", name, err)
	}
}
