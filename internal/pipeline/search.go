package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gamecat/internal/catalog"
	"gamecat/internal/logging"
	"gamecat/internal/services"
)

const stageSearch = "search"

// SearchResult lists the entries matching a query after on-demand enrichment.
type SearchResult struct {
	Query    string          `json:"query"`
	Entries  []catalog.Entry `json:"entries"`
	Enriched int             `json:"enriched"`
	Removed  int             `json:"removed"`
	Failed   int             `json:"failed"`
}

// PendingReport summarises a batch enrichment of pending entries.
type PendingReport struct {
	Scanned   int `json:"scanned"`
	Enriched  int `json:"enriched"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
	NotFound  int `json:"not_found"`
	Failed    int `json:"failed"`
}

// Searcher answers name queries and drives batch enrichment.
type Searcher struct {
	store    SearchStore
	enricher *Enricher
	logger   *slog.Logger
}

// NewSearcher constructs a Searcher. Enrichment metrics are recorded by the
// enricher. logger may be nil.
func NewSearcher(store SearchStore, enricher *Enricher, logger *slog.Logger) *Searcher {
	return &Searcher{
		store:    store,
		enricher: enricher,
		logger:   logging.NewComponentLogger(logger, stageSearch),
	}
}

// SearchAndEnrich returns entries whose name contains substring, enriching
// each pending match first. Enrichment failures are logged and the entry is
// returned as pending; entries removed as non-games are dropped.
func (s *Searcher) SearchAndEnrich(ctx context.Context, substring string) (SearchResult, error) {
	ctx = services.WithStage(ctx, stageSearch)
	logger := logging.WithContext(ctx, s.logger)
	query := strings.TrimSpace(substring)
	result := SearchResult{Query: query, Entries: []catalog.Entry{}}

	if query == "" {
		return result, services.Wrap(services.ErrValidation, stageSearch, "search", "query must not be empty", nil)
	}

	matches, err := s.store.FindByNameContains(ctx, query)
	if err != nil {
		return result, services.Wrap(services.ErrStorage, stageSearch, "find entries", "", err)
	}

	for _, entry := range matches {
		if entry.Enriched {
			result.Entries = append(result.Entries, entry)
			continue
		}
		outcome, err := s.enricher.Enrich(ctx, entry.ID)
		if err != nil {
			result.Failed++
			logging.WarnWithContext(logger, "enrichment during search failed", "search_enrich_failed",
				logging.Int64(logging.FieldEntryID, entry.ID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "entry returned without details"),
			)
			result.Entries = append(result.Entries, entry)
			continue
		}
		switch outcome {
		case EnrichRemoved:
			result.Removed++
		default:
			entry.Enriched = true
			result.Enriched++
			result.Entries = append(result.Entries, entry)
		}
	}

	logger.Info("search complete", logging.Args(
		logging.String("query", query),
		logging.Int("matches", len(result.Entries)),
		logging.Int("enriched", result.Enriched),
		logging.Int("removed", result.Removed),
		logging.Int("failed", result.Failed),
	)...)
	return result, nil
}

// EnrichAllPending enriches pending entries one at a time, at most limit when
// limit > 0. Individual failures are counted and never stop the batch.
func (s *Searcher) EnrichAllPending(ctx context.Context, limit int) (PendingReport, error) {
	ctx = services.WithStage(ctx, stageEnrich)
	logger := logging.WithContext(ctx, s.logger)
	var report PendingReport

	pending, err := s.store.ListUnenriched(ctx, limit)
	if err != nil {
		return report, services.Wrap(services.ErrStorage, stageEnrich, "list pending", "", err)
	}
	report.Scanned = len(pending)

	for _, entry := range pending {
		if err := ctx.Err(); err != nil {
			return report, services.Wrap(services.ErrTransient, stageEnrich, "enrich pending", "interrupted", err)
		}
		outcome, err := s.enricher.Enrich(ctx, entry.ID)
		switch {
		case err == nil && outcome == EnrichCreated:
			report.Enriched++
		case err == nil && outcome == EnrichUnchanged:
			report.Unchanged++
		case err == nil && outcome == EnrichRemoved:
			report.Removed++
		case errors.Is(err, services.ErrNotFound):
			report.NotFound++
		default:
			report.Failed++
			logging.WarnWithContext(logger, "pending enrichment failed", "enrich_pending_failed",
				logging.Int64(logging.FieldEntryID, entry.ID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "entry stays pending"),
			)
		}
	}

	logger.Info("pending enrichment complete", logging.Args(
		logging.Int("scanned", report.Scanned),
		logging.Int("enriched", report.Enriched),
		logging.Int("unchanged", report.Unchanged),
		logging.Int("removed", report.Removed),
		logging.Int("not_found", report.NotFound),
		logging.Int("failed", report.Failed),
	)...)
	return report, nil
}
