package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gamecat/internal/catalog"
	"gamecat/internal/config"
	"gamecat/internal/logging"
	"gamecat/internal/metrics"
	"gamecat/internal/pipeline"
	"gamecat/internal/services"
	"gamecat/internal/steam"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger   *slog.Logger
	store    *catalog.Store
	recorder *metrics.Recorder
	lock     *flock.Flock
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// session holds the collaborators for one command run.
type session struct {
	ctx      context.Context
	cfg      *config.Config
	logger   *slog.Logger
	store    *catalog.Store
	recorder *metrics.Recorder
}

// begin loads config, opens the store and stamps a correlation id onto the
// command context. Mutating commands pass exclusive=true to take the run lock.
// Callers must defer the returned release function.
func (c *commandContext) begin(cmd *cobra.Command, exclusive bool) (*session, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	if c.logger == nil {
		logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if err != nil {
			return nil, nil, fmt.Errorf("init logging: %w", err)
		}
		c.logger = logger
	}

	if exclusive {
		if err := c.acquireLock(cfg); err != nil {
			return nil, nil, err
		}
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		c.releaseLock()
		return nil, nil, services.Wrap(services.ErrStorage, "catalog", "open", "", err)
	}
	c.store = store
	c.recorder = metrics.New()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	logging.WithContext(ctx, c.logger).Debug("command started", logging.Args(logging.String("command", cmd.CommandPath()))...)

	s := &session{ctx: ctx, cfg: cfg, logger: c.logger, store: store, recorder: c.recorder}
	return s, c.release, nil
}

func (c *commandContext) acquireLock(cfg *config.Config) error {
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another gamecat run holds %s", cfg.LockPath())
	}
	c.lock = lock
	return nil
}

func (c *commandContext) releaseLock() {
	if c.lock == nil {
		return
	}
	if err := c.lock.Unlock(); err != nil && c.logger != nil {
		c.logger.Warn("failed to release run lock", logging.Args(logging.Error(err))...)
	}
	c.lock = nil
}

// release flushes metrics, closes the store and drops the run lock.
func (c *commandContext) release() {
	if c.store != nil {
		c.flushMetrics()
		if err := c.store.Close(); err != nil && c.logger != nil {
			c.logger.Warn("failed to close catalog", logging.Args(logging.Error(err))...)
		}
		c.store = nil
	}
	c.releaseLock()
}

func (c *commandContext) flushMetrics() {
	if c.config == nil || c.config.Metrics.TextfilePath == "" || c.recorder == nil {
		return
	}
	if stats, err := c.store.Stats(context.Background()); err == nil {
		c.recorder.SetCatalogCounts(stats.Enriched, stats.Pending)
	}
	if err := c.recorder.WriteTextfile(c.config.Metrics.TextfilePath); err != nil && c.logger != nil {
		logging.WarnWithContext(c.logger, "metrics export failed", "metrics_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "textfile metrics are stale"),
		)
	}
}

func (s *session) steamClient() (*steam.Client, error) {
	cfg := s.cfg
	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}
	client, err := steam.New(
		cfg.Steam.AppListURL,
		cfg.Steam.AppDetailsURL,
		steam.WithHTTPClient(httpClient),
		steam.WithAPIKey(cfg.Steam.APIKey),
		steam.WithLocale(cfg.Steam.Language, cfg.Steam.CountryCode),
		steam.WithLatencyObserver(s.recorder),
	)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "steam", "client", "", err)
	}
	return client, nil
}

func (s *session) enricher() (*pipeline.Enricher, error) {
	client, err := s.steamClient()
	if err != nil {
		return nil, err
	}
	return pipeline.NewEnricher(s.store, client, s.logger, s.recorder), nil
}

func (s *session) searcher() (*pipeline.Searcher, error) {
	enricher, err := s.enricher()
	if err != nil {
		return nil, err
	}
	return pipeline.NewSearcher(s.store, enricher, s.logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
