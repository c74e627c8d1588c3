package pipeline

import (
	"context"
	"log/slog"

	"gamecat/internal/catalog"
	"gamecat/internal/classify"
	"gamecat/internal/logging"
	"gamecat/internal/metrics"
	"gamecat/internal/services"
)

const stageCleanup = "cleanup"

// CleanupReport summarises one cleanup pass.
type CleanupReport struct {
	Scanned int `json:"scanned"`
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

// Cleaner removes non-game entries after the fact.
type Cleaner struct {
	store    CleanupStore
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewCleaner constructs a Cleaner. logger and recorder may be nil.
func NewCleaner(store CleanupStore, logger *slog.Logger, recorder *metrics.Recorder) *Cleaner {
	return &Cleaner{
		store:    store,
		logger:   logging.NewComponentLogger(logger, stageCleanup),
		recorder: recorder,
	}
}

// PurgeNonGamesByRecordedVerdict deletes every entry whose stored detail
// records a non-game verdict. The pass is not transactional as a whole.
func (c *Cleaner) PurgeNonGamesByRecordedVerdict(ctx context.Context) (CleanupReport, error) {
	ctx = services.WithStage(ctx, stageCleanup)
	logger := logging.WithContext(ctx, c.logger).With(logging.String("rule", metrics.RuleVerdict))
	var report CleanupReport

	details, err := c.store.FindNonGameDetails(ctx)
	if err != nil {
		return report, services.Wrap(services.ErrStorage, stageCleanup, "scan recorded verdicts", "", err)
	}
	report.Scanned = len(details)

	for _, detail := range details {
		if err := ctx.Err(); err != nil {
			return report, services.Wrap(services.ErrTransient, stageCleanup, "remove entries", "interrupted", err)
		}
		removed, err := c.store.Delete(ctx, detail.EntryID)
		if err != nil {
			c.recordFailure(logger, &report, detail.EntryID, err)
			continue
		}
		if removed {
			report.Removed++
			c.recorder.CleanupRemoved(metrics.RuleVerdict)
		}
	}

	logger.Info("verdict cleanup complete", logging.Args(
		logging.Int("scanned", report.Scanned),
		logging.Int("removed", report.Removed),
		logging.Int("failed", report.Failed),
	)...)
	return report, nil
}

// PurgeByKeywordHeuristic deletes every entry whose name contains one of the
// keywords under Unicode case folding. Every name is checked with
// classify.ByKeyword; SQLite LIKE only folds ASCII and would miss matches
// such as "ÉDITION" for "édition". An empty keyword set is rejected.
func (c *Cleaner) PurgeByKeywordHeuristic(ctx context.Context, keywords classify.Keywords) (CleanupReport, error) {
	ctx = services.WithStage(ctx, stageCleanup)
	logger := logging.WithContext(ctx, c.logger).With(logging.String("rule", metrics.RuleKeyword))
	var report CleanupReport

	if keywords.Len() == 0 {
		return report, services.Wrap(services.ErrValidation, stageCleanup, "keyword cleanup", "keyword set is empty", nil)
	}

	candidates, err := c.store.List(ctx, catalog.ListFilter{})
	if err != nil {
		return report, services.Wrap(services.ErrStorage, stageCleanup, "scan entry names", "", err)
	}
	report.Scanned = len(candidates)

	for _, entry := range candidates {
		if err := ctx.Err(); err != nil {
			return report, services.Wrap(services.ErrTransient, stageCleanup, "remove entries", "interrupted", err)
		}
		if classify.ByKeyword(entry.Name, keywords) {
			continue
		}
		keyword, _ := keywords.Match(entry.Name)

		if _, err := c.store.DeleteDetail(ctx, entry.ID); err != nil {
			c.recordFailure(logger, &report, entry.ID, err)
			continue
		}
		removed, err := c.store.Delete(ctx, entry.ID)
		if err != nil {
			c.recordFailure(logger, &report, entry.ID, err)
			continue
		}
		if removed {
			report.Removed++
			c.recorder.CleanupRemoved(metrics.RuleKeyword)
			logger.Debug("entry removed", logging.Args(
				logging.Int64(logging.FieldEntryID, entry.ID),
				logging.String("name", entry.Name),
				logging.String("keyword", keyword),
			)...)
		}
	}

	logger.Info("keyword cleanup complete", logging.Args(
		logging.Int("keywords", keywords.Len()),
		logging.Int("scanned", report.Scanned),
		logging.Int("removed", report.Removed),
		logging.Int("failed", report.Failed),
	)...)
	return report, nil
}

func (c *Cleaner) recordFailure(logger *slog.Logger, report *CleanupReport, id int64, err error) {
	report.Failed++
	logging.WarnWithContext(logger, "entry removal failed", "cleanup_delete_failed",
		logging.Int64(logging.FieldEntryID, id),
		logging.Error(err),
		logging.String(logging.FieldImpact, "entry kept; rerun cleanup to retry"),
	)
}
