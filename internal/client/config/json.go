package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/echowave/echowave/internal/flagx"
	"github.com/echowave/echowave/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be strings like "3s" or integer nanoseconds (see timex.Duration). Pointer
// fields distinguish "absent" from zero values.
type JsonConfig struct {
	APIBaseURL        *string         `json:"api_base_url"`
	DatabasePath      *string         `json:"database_path"`
	AssistantURL      *string         `json:"assistant_url"`
	AssistantPlatform *string         `json:"assistant_platform"`
	AssistantEnabled  *bool           `json:"assistant_enabled"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values from the JSON file pointed to by the
// -c/-config flags. No flag means no JSON stage. Read or unmarshal errors
// panic; the entry point treats a broken config file as fatal.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.AssistantURL != nil {
		cfg.AssistantURL = *jc.AssistantURL
	}
	if jc.AssistantPlatform != nil {
		cfg.AssistantPlatform = *jc.AssistantPlatform
	}
	if jc.AssistantEnabled != nil {
		cfg.AssistantEnabled = *jc.AssistantEnabled
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
