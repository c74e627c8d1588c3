package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the environment variables that win over file values.
type envOverrides struct {
	SteamAPIKey string `env:"STEAM_API_KEY"`
	DataDir     string `env:"GAMECAT_DATA_DIR"`
	LogLevel    string `env:"GAMECAT_LOG_LEVEL"`
	LogFormat   string `env:"GAMECAT_LOG_FORMAT"`
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if value := strings.TrimSpace(overrides.SteamAPIKey); value != "" {
		c.Steam.APIKey = value
	}
	if value := strings.TrimSpace(overrides.DataDir); value != "" {
		c.Paths.DataDir = value
	}
	if value := strings.TrimSpace(overrides.LogLevel); value != "" {
		c.Logging.Level = value
	}
	if value := strings.TrimSpace(overrides.LogFormat); value != "" {
		c.Logging.Format = value
	}
	return nil
}
