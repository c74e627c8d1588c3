// Package config reads gamecat's TOML configuration.
//
// Load layers the file over Default(), then the environment (STEAM_API_KEY,
// GAMECAT_DATA_DIR, GAMECAT_LOG_LEVEL, GAMECAT_LOG_FORMAT), then expands and
// validates the result. The sample written by CreateSample documents every key.
package config
