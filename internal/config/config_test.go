package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"gamecat/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "gamecat")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "catalog.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.Steam.AppListURL != config.Default().Steam.AppListURL {
		t.Fatalf("unexpected app list url: %q", cfg.Steam.AppListURL)
	}
	if len(cfg.Classifier.NonGameKeywords) == 0 {
		t.Fatal("expected default non-game keywords")
	}
	if cfg.RequestTimeout().Seconds() != 30 {
		t.Fatalf("unexpected request timeout: %v", cfg.RequestTimeout())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "gamecat.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Steam struct {
			AppDetailsURL string `toml:"app_details_url"`
			CountryCode   string `toml:"country_code"`
		} `toml:"steam"`
		Classifier struct {
			NonGameKeywords []string `toml:"non_game_keywords"`
		} `toml:"classifier"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Steam.AppDetailsURL = "https://example.com/api/appdetails"
	custom.Steam.CountryCode = " DE "
	custom.Classifier.NonGameKeywords = []string{"DLC", " dlc ", "", "Soundtrack"}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempDir, "data", "logs") {
		t.Fatalf("expected log dir to follow data dir, got %q", cfg.Paths.LogDir)
	}
	if cfg.Steam.AppDetailsURL != "https://example.com/api/appdetails" {
		t.Fatalf("expected app details override, got %q", cfg.Steam.AppDetailsURL)
	}
	if cfg.Steam.CountryCode != "de" {
		t.Fatalf("expected normalized country code, got %q", cfg.Steam.CountryCode)
	}
	if got := strings.Join(cfg.Classifier.NonGameKeywords, ","); got != "DLC,Soundtrack" {
		t.Fatalf("expected de-duplicated keywords, got %q", got)
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "gamecat.toml")

	type payload struct {
		Steam struct {
			APIKey string `toml:"api_key"`
		} `toml:"steam"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Steam.APIKey = "file-key"
	custom.Logging.Level = "info"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	dataDir := filepath.Join(tempDir, "env-data")
	t.Setenv("STEAM_API_KEY", "env-key")
	t.Setenv("GAMECAT_DATA_DIR", dataDir)
	t.Setenv("GAMECAT_LOG_LEVEL", "DEBUG")
	t.Setenv("GAMECAT_LOG_FORMAT", "json")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Steam.APIKey != "env-key" {
		t.Errorf("expected Steam key from env, got %q", cfg.Steam.APIKey)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Errorf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level from env, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format from env, got %q", cfg.Logging.Format)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.DataDir, "gamecat") {
		t.Fatalf("expected data dir to contain gamecat, got %q", cfg.Paths.DataDir)
	}
	if len(cfg.Classifier.NonGameKeywords) == 0 {
		t.Fatal("expected sample to list non-game keywords")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad app list scheme", func(c *config.Config) { c.Steam.AppListURL = "ftp://example.com/list" }},
		{"missing details url", func(c *config.Config) { c.Steam.AppDetailsURL = "" }},
		{"negative timeout", func(c *config.Config) { c.Steam.RequestTimeout = -1 }},
		{"long country code", func(c *config.Config) { c.Steam.CountryCode = "usa" }},
		{"no keywords", func(c *config.Config) { c.Classifier.NonGameKeywords = nil }},
		{"unknown level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"textfile suffix", func(c *config.Config) { c.Metrics.TextfilePath = "/tmp/gamecat.txt" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	missing := filepath.Join(dir, "absent.toml")
	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if exists || resolved != missing {
		t.Fatalf("expected defaults for missing file, got exists=%v resolved=%q", exists, resolved)
	}
	if cfg.Steam.Language != "english" {
		t.Fatalf("expected default language, got %q", cfg.Steam.Language)
	}

	if _, _, _, err := config.Load(dir); err == nil {
		t.Fatal("expected an error when the config path is a directory")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
