package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envConfig uses pointer fields so that only variables actually present in
// the environment overlay the config.
type envConfig struct {
	APIBaseURL        *string        `env:"ECHOWAVE_API_URL"`
	DatabasePath      *string        `env:"ECHOWAVE_DB_PATH"`
	AssistantURL      *string        `env:"ECHOWAVE_ASSISTANT_URL"`
	AssistantPlatform *string        `env:"ECHOWAVE_ASSISTANT_PLATFORM"`
	AssistantEnabled  *bool          `env:"ECHOWAVE_ASSISTANT_ENABLED"`
	RequestTimeout    *time.Duration `env:"ECHOWAVE_REQUEST_TIMEOUT"`
}

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first when present; a missing file
// is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != nil {
		cfg.APIBaseURL = *ec.APIBaseURL
	}
	if ec.DatabasePath != nil {
		cfg.DatabasePath = *ec.DatabasePath
	}
	if ec.AssistantURL != nil {
		cfg.AssistantURL = *ec.AssistantURL
	}
	if ec.AssistantPlatform != nil {
		cfg.AssistantPlatform = *ec.AssistantPlatform
	}
	if ec.AssistantEnabled != nil {
		cfg.AssistantEnabled = *ec.AssistantEnabled
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
}
