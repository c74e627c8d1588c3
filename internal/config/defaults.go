package config

import "gamecat/internal/classify"

const (
	defaultConfigPath     = "~/.config/gamecat/config.toml"
	defaultDataDir        = "~/.local/share/gamecat"
	defaultAppListURL     = "https://api.steampowered.com/ISteamApps/GetAppList/v2/"
	defaultAppDetailsURL  = "https://store.steampowered.com/api/appdetails"
	defaultSteamLanguage  = "english"
	defaultRequestTimeout = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		// An empty LogDir follows DataDir during normalization.
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Steam: Steam{
			AppListURL:     defaultAppListURL,
			AppDetailsURL:  defaultAppDetailsURL,
			Language:       defaultSteamLanguage,
			RequestTimeout: defaultRequestTimeout,
		},
		Classifier: Classifier{
			NonGameKeywords: classify.DefaultKeywordList(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
