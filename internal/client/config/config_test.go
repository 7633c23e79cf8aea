package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func writeJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, "echowave.db", cfg.DatabasePath)
	assert.False(t, cfg.AssistantEnabled)
	assert.Zero(t, cfg.RequestTimeout)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("ECHOWAVE_API_URL", "https://api.staging.echowave.app")
	t.Setenv("ECHOWAVE_ASSISTANT_ENABLED", "true")
	t.Setenv("ECHOWAVE_REQUEST_TIMEOUT", "15s")

	cfg := LoadConfig()

	assert.Equal(t, "https://api.staging.echowave.app", cfg.APIBaseURL)
	assert.True(t, cfg.AssistantEnabled)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JsonOverridesEnv(t *testing.T) {
	t.Setenv("ECHOWAVE_API_URL", "https://from-env")
	url := "https://from-json"
	path := writeJSON(t, map[string]any{"api_base_url": url, "request_timeout": "3s"})
	resetArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, "https://from-json", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	path := writeJSON(t, map[string]any{"api_base_url": "https://from-json"})
	resetArgs(t, "-c", path, "-a", "https://from-flag", "-t", "30")

	cfg := LoadConfig()

	assert.Equal(t, "https://from-flag", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JsonPartialOverlay(t *testing.T) {
	path := writeJSON(t, map[string]any{"database_path": "/tmp/other.db"})
	resetArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
	// untouched fields keep earlier-stage values
	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	resetArgs(t, "-c", "/does/not/exist.json")

	assert.Panics(t, func() { LoadConfig() })
}
