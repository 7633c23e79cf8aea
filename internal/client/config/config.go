// Package config assembles the client configuration from layered sources.
// Later sources override earlier ones:
//
//	defaults -> environment (.env supported) -> JSON file -> command-line flags
//
// The JSON file path is taken from -c/-config. Each stage parses only its own
// flags (see internal/flagx), so the stages do not interfere.
package config

import "time"

// Config holds runtime settings for the EchoWave client.
type Config struct {
	// APIBaseURL is the root of the REST backend, e.g. "https://api.echowave.app".
	APIBaseURL string

	// DatabasePath is the SQLite file backing the persistent key-value store.
	DatabasePath string

	// AssistantURL is the websocket endpoint of the voice-assistant widget.
	AssistantURL string

	// AssistantPlatform identifies this client to the widget.
	AssistantPlatform string

	// AssistantEnabled turns the widget bridge on.
	AssistantEnabled bool

	// RequestTimeout bounds individual HTTP calls. Zero means no timeout;
	// callers then own cancellation via context.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.DatabasePath = "echowave.db"
	c.AssistantPlatform = "echowave-client"
	c.AssistantEnabled = false
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
