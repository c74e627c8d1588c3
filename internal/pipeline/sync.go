package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"gamecat/internal/catalog"
	"gamecat/internal/logging"
	"gamecat/internal/metrics"
	"gamecat/internal/services"
)

const stageSync = "sync"

// SyncReport summarises one catalog sync pass.
type SyncReport struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Existing int `json:"existing"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Syncer copies the remote directory into the catalog.
type Syncer struct {
	store    SyncStore
	remote   RemoteCatalog
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewSyncer constructs a Syncer. logger and recorder may be nil.
func NewSyncer(store SyncStore, remote RemoteCatalog, logger *slog.Logger, recorder *metrics.Recorder) *Syncer {
	return &Syncer{
		store:    store,
		remote:   remote,
		logger:   logging.NewComponentLogger(logger, stageSync),
		recorder: recorder,
	}
}

// SyncCatalog inserts every listed app that is not yet catalogued. Existing
// entries are never updated or removed, so repeated passes are idempotent.
// Apps with a non-positive id are skipped. A remote failure aborts the pass;
// entries inserted before the failure stay.
func (s *Syncer) SyncCatalog(ctx context.Context) (SyncReport, error) {
	ctx = services.WithStage(ctx, stageSync)
	logger := logging.WithContext(ctx, s.logger)
	var report SyncReport

	apps, err := s.remote.AppList(ctx)
	if err != nil {
		logging.ErrorWithContext(logger, "app list fetch failed", "sync_fetch_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access and steam.app_list_url"),
		)
		return report, services.Wrap(services.ErrTransient, stageSync, "fetch app list", "", err)
	}
	report.Fetched = len(apps)
	logger.Debug("app list fetched", logging.Args(logging.Int("apps", len(apps)))...)

	for _, app := range apps {
		if err := ctx.Err(); err != nil {
			return report, services.Wrap(services.ErrTransient, stageSync, "insert entries", "interrupted", err)
		}
		if app.AppID <= 0 {
			report.Skipped++
			s.recorder.SyncApp(metrics.ResultSkipped)
			continue
		}

		exists, err := s.store.ExistsByID(ctx, app.AppID)
		if err != nil {
			s.recordFailure(logger, &report, app.AppID, err)
			continue
		}
		if exists {
			report.Existing++
			s.recorder.SyncApp(metrics.ResultExisting)
			continue
		}

		if err := s.store.Insert(ctx, &catalog.Entry{ID: app.AppID, Name: app.Name}); err != nil {
			if errors.Is(err, catalog.ErrEntryExists) {
				report.Existing++
				s.recorder.SyncApp(metrics.ResultExisting)
				continue
			}
			s.recordFailure(logger, &report, app.AppID, err)
			continue
		}
		report.Inserted++
		s.recorder.SyncApp(metrics.ResultInserted)
	}

	logger.Info("catalog sync complete", logging.Args(
		logging.Int("fetched", report.Fetched),
		logging.Int("inserted", report.Inserted),
		logging.Int("existing", report.Existing),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", report.Failed),
	)...)
	return report, nil
}

func (s *Syncer) recordFailure(logger *slog.Logger, report *SyncReport, id int64, err error) {
	report.Failed++
	s.recorder.SyncApp(metrics.ResultFailed)
	logging.WarnWithContext(logger, "entry insert failed", "sync_insert_failed",
		logging.Int64(logging.FieldEntryID, id),
		logging.Error(err),
		logging.String(logging.FieldImpact, "entry will be retried on the next sync"),
	)
}
