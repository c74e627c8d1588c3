package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gamecat/internal/catalog"
	"gamecat/internal/classify"
	"gamecat/internal/logging"
	"gamecat/internal/metrics"
	"gamecat/internal/services"
	"gamecat/internal/steam"
)

const stageEnrich = "enrich"

// EnrichResult is the terminal state of a successful enrichment.
type EnrichResult string

const (
	// EnrichCreated means a new Detail was stored.
	EnrichCreated EnrichResult = "created"
	// EnrichUnchanged means a Detail already existed and was kept.
	EnrichUnchanged EnrichResult = "unchanged"
	// EnrichRemoved means the storefront declared a non-game and the entry was deleted.
	EnrichRemoved EnrichResult = "removed"
)

// Enricher fetches storefront details for one entry at a time.
type Enricher struct {
	store    EnrichStore
	remote   RemoteCatalog
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewEnricher constructs an Enricher. logger and recorder may be nil.
func NewEnricher(store EnrichStore, remote RemoteCatalog, logger *slog.Logger, recorder *metrics.Recorder) *Enricher {
	return &Enricher{
		store:    store,
		remote:   remote,
		logger:   logging.NewComponentLogger(logger, stageEnrich),
		recorder: recorder,
	}
}

// Enrich fetches details for the entry and either stores them or, when the
// declared type is not a game, deletes the entry. Unknown ids fail with
// services.ErrNotFound before any remote call. Remote failures leave the entry
// untouched.
func (e *Enricher) Enrich(ctx context.Context, id int64) (EnrichResult, error) {
	ctx = services.WithStage(services.WithEntryID(ctx, id), stageEnrich)
	logger := logging.WithContext(ctx, e.logger)

	entry, err := e.store.FindByID(ctx, id)
	if err != nil {
		e.recorder.Enrich(metrics.ResultFailed)
		return "", services.Wrap(services.ErrStorage, stageEnrich, "lookup entry", "", err)
	}
	if entry == nil {
		e.recorder.Enrich(metrics.ResultNotFound)
		return "", services.Wrap(services.ErrNotFound, stageEnrich, "lookup entry", fmt.Sprintf("entry %d is not catalogued", id), nil)
	}

	details, err := e.remote.AppDetails(ctx, id)
	if err != nil {
		if errors.Is(err, steam.ErrAppNotFound) {
			e.recorder.Enrich(metrics.ResultNotFound)
			logging.WarnWithContext(logger, "storefront has no details", "enrich_not_found",
				logging.Error(err),
				logging.String(logging.FieldImpact, "entry stays pending"),
			)
			return "", services.Wrap(services.ErrNotFound, stageEnrich, "fetch details", "", err)
		}
		e.recorder.Enrich(metrics.ResultFailed)
		return "", services.Wrap(services.ErrTransient, stageEnrich, "fetch details", "", err)
	}

	if !classify.ByType(details.Type) {
		if _, err := e.store.Delete(ctx, id); err != nil {
			e.recorder.Enrich(metrics.ResultFailed)
			return "", services.Wrap(services.ErrStorage, stageEnrich, "remove non-game", "", err)
		}
		e.recorder.Enrich(metrics.ResultRemoved)
		logger.Info("non-game removed", logging.Args(
			logging.String("name", entry.Name),
			logging.String("declared_type", details.Type),
		)...)
		return EnrichRemoved, nil
	}

	created, err := e.store.UpsertDetail(ctx, detailFromApp(id, details))
	if err != nil {
		e.recorder.Enrich(metrics.ResultFailed)
		if errors.Is(err, catalog.ErrEntryNotFound) {
			return "", services.Wrap(services.ErrNotFound, stageEnrich, "store details", "entry disappeared", err)
		}
		return "", services.Wrap(services.ErrStorage, stageEnrich, "store details", "", err)
	}
	if !created {
		e.recorder.Enrich(metrics.ResultUnchanged)
		logger.Debug("details already stored")
		return EnrichUnchanged, nil
	}
	e.recorder.Enrich(metrics.ResultCreated)
	logger.Info("entry enriched", logging.Args(logging.String("name", entry.Name))...)
	return EnrichCreated, nil
}

func detailFromApp(id int64, details *steam.AppDetails) *catalog.Detail {
	return &catalog.Detail{
		EntryID:          id,
		Name:             details.Name,
		About:            details.About(),
		ShortDescription: details.ShortDescription,
		HeaderImageURL:   details.HeaderImage,
		WebsiteURL:       details.Website,
		IsGame:           classify.ByType(details.Type),
		IsFree:           details.IsFree,
		RequiredAge:      details.RequiredAge,
		Developers:       strings.Join(details.Developers, ", "),
		Publishers:       strings.Join(details.Publishers, ", "),
		Genres:           strings.Join(details.Genres, ", "),
		ReleaseDate:      details.ReleaseDate,
		PriceInfo:        details.PriceOverview,
		Categories:       details.Categories,
	}
}
