package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateMetrics(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSteam() error {
	if err := validateHTTPURL("steam.app_list_url", c.Steam.AppListURL); err != nil {
		return err
	}
	if err := validateHTTPURL("steam.app_details_url", c.Steam.AppDetailsURL); err != nil {
		return err
	}
	if c.Steam.RequestTimeout < 0 {
		return errors.New("steam.request_timeout must be >= 0 (seconds, 0 disables)")
	}
	if cc := c.Steam.CountryCode; cc != "" && len(cc) != 2 {
		return fmt.Errorf("steam.country_code must be a two-letter code, got %q", cc)
	}
	return nil
}

func (c *Config) validateClassifier() error {
	if len(c.Classifier.NonGameKeywords) == 0 {
		return errors.New("classifier.non_game_keywords must include at least one keyword")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func (c *Config) validateMetrics() error {
	if c.Metrics.TextfilePath == "" {
		return nil
	}
	if !strings.HasSuffix(c.Metrics.TextfilePath, ".prom") {
		return errors.New("metrics.textfile_path must end in .prom for the textfile collector")
	}
	return nil
}

func validateHTTPURL(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must be set", field)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", field, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s is missing a host", field)
	}
	return nil
}
