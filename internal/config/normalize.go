package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"gamecat/internal/classify"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSteam()
	c.normalizeClassifier()
	if c.Enrichment.PendingLimit < 0 {
		c.Enrichment.PendingLimit = 0
	}
	c.normalizeLogging()
	return c.normalizeMetrics()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSteam() {
	c.Steam.AppListURL = strings.TrimSpace(c.Steam.AppListURL)
	if c.Steam.AppListURL == "" {
		c.Steam.AppListURL = defaultAppListURL
	}
	c.Steam.AppDetailsURL = strings.TrimSpace(c.Steam.AppDetailsURL)
	if c.Steam.AppDetailsURL == "" {
		c.Steam.AppDetailsURL = defaultAppDetailsURL
	}
	c.Steam.APIKey = strings.TrimSpace(c.Steam.APIKey)
	c.Steam.Language = strings.TrimSpace(c.Steam.Language)
	c.Steam.CountryCode = strings.ToLower(strings.TrimSpace(c.Steam.CountryCode))
}

func (c *Config) normalizeClassifier() {
	if len(c.Classifier.NonGameKeywords) == 0 {
		c.Classifier.NonGameKeywords = classify.DefaultKeywordList()
		return
	}
	c.Classifier.NonGameKeywords = classify.NewKeywords(c.Classifier.NonGameKeywords...).List()
}

// Keywords returns the configured non-game keyword set.
func (c *Config) Keywords() classify.Keywords {
	return classify.NewKeywords(c.Classifier.NonGameKeywords...)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeMetrics() error {
	c.Metrics.TextfilePath = strings.TrimSpace(c.Metrics.TextfilePath)
	if c.Metrics.TextfilePath == "" {
		return nil
	}
	var err error
	if c.Metrics.TextfilePath, err = expandPath(c.Metrics.TextfilePath); err != nil {
		return fmt.Errorf("metrics.textfile_path: %w", err)
	}
	return nil
}
