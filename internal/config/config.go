package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains data and log directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Steam contains configuration for the upstream application directory.
type Steam struct {
	AppListURL     string `toml:"app_list_url"`
	AppDetailsURL  string `toml:"app_details_url"`
	APIKey         string `toml:"api_key"`
	Language       string `toml:"language"`
	CountryCode    string `toml:"country_code"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Classifier contains the name heuristics used by keyword cleanup.
type Classifier struct {
	NonGameKeywords []string `toml:"non_game_keywords"`
}

// Enrichment contains batch enrichment settings.
type Enrichment struct {
	// PendingLimit caps how many pending entries a single batch enriches.
	// Zero means no limit.
	PendingLimit int `toml:"pending_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Metrics contains configuration for the Prometheus textfile export.
type Metrics struct {
	TextfilePath string `toml:"textfile_path"`
}

// Config encapsulates all configuration values for gamecat.
//
// Configuration sections by subsystem:
//   - Paths: catalog database and log directories
//   - Steam: app list and app details endpoints
//   - Classifier: non-game keyword list
//   - Enrichment: batch limits
//   - Logging: log format and level
//   - Metrics: optional textfile export
type Config struct {
	Paths      Paths      `toml:"paths"`
	Steam      Steam      `toml:"steam"`
	Classifier Classifier `toml:"classifier"`
	Enrichment Enrichment `toml:"enrichment"`
	Logging    Logging    `toml:"logging"`
	Metrics    Metrics    `toml:"metrics"`
}

// DefaultConfigPath returns the expanded ~/.config/gamecat/config.toml.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the config file (when one exists), applies environment overrides,
// normalizes and validates. It returns the resolved file path and whether that
// file existed; a missing file leaves the defaults in place.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := cfg.decodeFile(resolved); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath honours an explicit path even when the file is missing.
// Otherwise it tries the user config, then ./gamecat.toml, and falls back to
// the user config location.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		ok, err := isFile(expanded)
		return expanded, ok, err
	}

	userPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("gamecat.toml")
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite catalog location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "catalog.db")
}

// LockPath returns the file used to serialize mutating runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "gamecat.lock")
}

// RequestTimeout returns the upstream HTTP timeout. Zero disables it.
func (c *Config) RequestTimeout() time.Duration {
	if c.Steam.RequestTimeout <= 0 {
		return 0
	}
	return time.Duration(c.Steam.RequestTimeout) * time.Second
}

// expandPath resolves a leading ~ against the home directory and returns an
// absolute, cleaned path. Empty input stays empty.
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value[1:], "/"))
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
