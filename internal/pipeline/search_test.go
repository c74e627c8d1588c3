package pipeline_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gamecat/internal/catalog"
	"gamecat/internal/pipeline"
	"gamecat/internal/services"
	"gamecat/internal/testsupport"
)

func newSearcher(t *testing.T) (*pipeline.Searcher, *fakeSteam, *catalog.Store) {
	t.Helper()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	fake, client := newFakeSteam(t)
	enricher := pipeline.NewEnricher(store, client, nil, nil)
	return pipeline.NewSearcher(store, enricher, nil), fake, store
}

func TestSearchAndEnrichRejectsBlankQuery(t *testing.T) {
	searcher, fake, _ := newSearcher(t)
	for _, query := range []string{"", "   "} {
		result, err := searcher.SearchAndEnrich(context.Background(), query)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("query %q: expected ErrValidation, got %v", query, err)
		}
		if len(result.Entries) != 0 {
			t.Fatalf("query %q: expected no entries", query)
		}
	}
	if fake.totalCalls() != 0 {
		t.Fatal("no remote calls expected for blank queries")
	}
}

func TestSearchAndEnrichEnrichesPendingMatches(t *testing.T) {
	searcher, fake, store := newSearcher(t)
	ctx := context.Background()

	testsupport.InsertEntry(t, store, 70, "Half-Life")
	testsupport.InsertEntry(t, store, 71, "Half-Life Soundtrack")
	testsupport.InsertEntry(t, store, 72, "Half-Life 2")
	testsupport.InsertEntry(t, store, 80, "Portal")
	fake.setDetail(70, "game", "Half-Life")
	fake.setDetail(71, "music", "Half-Life Soundtrack")
	fake.failDetail(72, http.StatusInternalServerError)

	result, err := searcher.SearchAndEnrich(ctx, "half-life")
	if err != nil {
		t.Fatalf("SearchAndEnrich: %v", err)
	}
	if result.Enriched != 1 || result.Removed != 1 || result.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Entries) != 2 || result.Entries[0].ID != 70 || result.Entries[1].ID != 72 {
		t.Fatalf("unexpected entries: %#v", result.Entries)
	}
	if !result.Entries[0].Enriched || result.Entries[1].Enriched {
		t.Fatalf("unexpected enriched flags: %#v", result.Entries)
	}
	if entry, _ := store.FindByID(ctx, 71); entry != nil {
		t.Fatal("non-game match should be deleted")
	}
	if fake.calls(80) != 0 {
		t.Fatal("non-matching entries must not be enriched")
	}
	testsupport.AssertInvariant(t, store)
}

func TestSearchAndEnrichSkipsEnrichedEntries(t *testing.T) {
	searcher, fake, store := newSearcher(t)

	testsupport.InsertEntry(t, store, 10, "Counter-Strike")
	testsupport.EnrichEntry(t, store, 10, true)

	result, err := searcher.SearchAndEnrich(context.Background(), "counter")
	if err != nil {
		t.Fatalf("SearchAndEnrich: %v", err)
	}
	if len(result.Entries) != 1 || result.Enriched != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if fake.totalCalls() != 0 {
		t.Fatal("enriched entries must not hit the remote")
	}
}

func TestSearchAndEnrichNoMatches(t *testing.T) {
	searcher, _, _ := newSearcher(t)
	result, err := searcher.SearchAndEnrich(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("SearchAndEnrich: %v", err)
	}
	if result.Query != "nothing" || len(result.Entries) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func seedPending(t *testing.T, store *catalog.Store, fake *fakeSteam) {
	t.Helper()
	testsupport.InsertEntry(t, store, 1, "Game")
	testsupport.InsertEntry(t, store, 2, "Expansion")
	testsupport.InsertEntry(t, store, 3, "Delisted")
	testsupport.InsertEntry(t, store, 4, "Flaky")
	testsupport.InsertEntry(t, store, 5, "Already Done")
	testsupport.EnrichEntry(t, store, 5, true)
	fake.setDetail(1, "game", "Game")
	fake.setDetail(2, "dlc", "Expansion")
	fake.failDetail(4, http.StatusServiceUnavailable)
}

func TestEnrichAllPending(t *testing.T) {
	searcher, fake, store := newSearcher(t)
	seedPending(t, store, fake)
	ctx := context.Background()

	report, err := searcher.EnrichAllPending(ctx, 0)
	if err != nil {
		t.Fatalf("EnrichAllPending: %v", err)
	}
	want := pipeline.PendingReport{Scanned: 4, Enriched: 1, Removed: 1, NotFound: 1, Failed: 1}
	if report != want {
		t.Fatalf("report = %+v, want %+v", report, want)
	}
	if fake.calls(5) != 0 {
		t.Fatal("enriched entries must not be fetched")
	}

	pending, err := store.ListUnenriched(ctx, 0)
	if err != nil {
		t.Fatalf("ListUnenriched: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != 3 || pending[1].ID != 4 {
		t.Fatalf("unexpected pending entries: %#v", pending)
	}
	testsupport.AssertInvariant(t, store)
}

func TestEnrichAllPendingHonorsLimit(t *testing.T) {
	searcher, fake, store := newSearcher(t)
	seedPending(t, store, fake)

	report, err := searcher.EnrichAllPending(context.Background(), 2)
	if err != nil {
		t.Fatalf("EnrichAllPending: %v", err)
	}
	if report.Scanned != 2 || report.Enriched != 1 || report.Removed != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if fake.calls(3) != 0 || fake.calls(4) != 0 {
		t.Fatal("entries beyond the limit must not be fetched")
	}
}

func TestEnrichAllPendingEmptyCatalog(t *testing.T) {
	searcher, _, _ := newSearcher(t)
	report, err := searcher.EnrichAllPending(context.Background(), 0)
	if err != nil {
		t.Fatalf("EnrichAllPending: %v", err)
	}
	if report != (pipeline.PendingReport{}) {
		t.Fatalf("unexpected report: %+v", report)
	}
}
