package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for sync and enrichment counters.
const (
	ResultInserted  = "inserted"
	ResultExisting  = "existing"
	ResultSkipped   = "skipped"
	ResultFailed    = "failed"
	ResultCreated   = "created"
	ResultUnchanged = "unchanged"
	ResultRemoved   = "removed"
	ResultNotFound  = "not_found"
)

// Rule labels for cleanup removals.
const (
	RuleVerdict = "verdict"
	RuleKeyword = "keyword"
)

// Recorder owns the gamecat collectors.
type Recorder struct {
	registry       *prometheus.Registry
	syncApps       *prometheus.CounterVec
	enrich         *prometheus.CounterVec
	cleanupRemoved *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	catalogEntries *prometheus.GaugeVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Recorder{
		registry: registry,
		syncApps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamecat_sync_apps_total",
				Help: "Apps seen by catalog sync, by result",
			},
			[]string{"result"},
		),
		enrich: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamecat_enrich_total",
				Help: "Enrichment attempts, by result",
			},
			[]string{"result"},
		),
		cleanupRemoved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamecat_cleanup_removed_total",
				Help: "Entries removed by cleanup, by rule",
			},
			[]string{"rule"},
		),
		remoteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gamecat_remote_request_duration_seconds",
				Help:    "Steam request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		catalogEntries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gamecat_catalog_entries",
				Help: "Catalog entries by enrichment state",
			},
			[]string{"state"},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// SyncApp counts one app handled by catalog sync.
func (r *Recorder) SyncApp(result string) {
	if r == nil {
		return
	}
	r.syncApps.WithLabelValues(result).Inc()
}

// Enrich counts one enrichment attempt.
func (r *Recorder) Enrich(result string) {
	if r == nil {
		return
	}
	r.enrich.WithLabelValues(result).Inc()
}

// CleanupRemoved counts one entry removed by the named cleanup rule.
func (r *Recorder) CleanupRemoved(rule string) {
	if r == nil {
		return
	}
	r.cleanupRemoved.WithLabelValues(rule).Inc()
}

// ObserveRemoteRequest records a Steam request latency.
func (r *Recorder) ObserveRemoteRequest(endpoint string, latency time.Duration) {
	if r == nil {
		return
	}
	r.remoteDuration.WithLabelValues(endpoint).Observe(latency.Seconds())
}

// SetCatalogCounts updates the catalog size gauges.
func (r *Recorder) SetCatalogCounts(enriched, pending int) {
	if r == nil {
		return
	}
	r.catalogEntries.WithLabelValues("enriched").Set(float64(enriched))
	r.catalogEntries.WithLabelValues("pending").Set(float64(pending))
}

// WriteTextfile writes the registry to path in Prometheus text format. The file
// is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
