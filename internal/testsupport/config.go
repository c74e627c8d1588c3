package testsupport

import (
	"path/filepath"
	"testing"

	"gamecat/internal/config"
)

// ConfigOption adjusts a generated test config.
type ConfigOption func(*config.Config)

// NewConfig returns the default config rooted in a fresh temp directory, with
// no API key and no metrics export.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Steam.APIKey = ""
	cfg.Metrics.TextfilePath = ""
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSteamServer points both Steam endpoints at a test server base URL.
func WithSteamServer(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Steam.AppListURL = baseURL + "/ISteamApps/GetAppList/v2/"
		cfg.Steam.AppDetailsURL = baseURL + "/api/appdetails"
	}
}

// BaseDir returns the temp directory backing cfg.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
