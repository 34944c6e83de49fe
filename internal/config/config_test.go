package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 8501, cfg.WebPort)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, "gemini-1.5-flash", cfg.Model)
	assert.InDelta(t, 0.1, cfg.Temperature, 1e-6)
	assert.Equal(t, 60*time.Second, cfg.AITimeout.Std())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"port": 9000,
		"model": "gemini-1.5-pro",
		"ai_timeout": "90s",
		"log_format": "json"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "gemini-1.5-pro", cfg.Model)
	assert.Equal(t, 90*time.Second, cfg.AITimeout.Std())
	assert.Equal(t, "json", cfg.LogFormat)
	// untouched fields keep their defaults
	assert.Equal(t, 8501, cfg.WebPort)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "web_port: 3000\napi_base_url: http://api.internal:8000\nai_timeout: 2m\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.WebPort)
	assert.Equal(t, "http://api.internal:8000", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Minute, cfg.AITimeout.Std())
	assert.Equal(t, 8000, cfg.Port)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yml", "port: [unterminated")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"port": 9000, "model": "from-file"}`)
	t.Setenv("PORT", "9100")
	t.Setenv("AI_TIMEOUT", "15s")
	t.Setenv("GEMINI_API_KEY", "key-from-environment")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.AITimeout.Std())
	assert.Equal(t, "key-from-environment", cfg.APIKey)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("AI_TIMEOUT", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse environment")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{name: "zero port", mutate: func(c *Config) { c.Port = 0 }, errMsg: "'port'"},
		{name: "web port too large", mutate: func(c *Config) { c.WebPort = 70000 }, errMsg: "'web_port'"},
		{name: "relative api url", mutate: func(c *Config) { c.APIBaseURL = "localhost:8000" }, errMsg: "'api_base_url'"},
		{name: "empty model", mutate: func(c *Config) { c.Model = "" }, errMsg: "'model'"},
		{name: "negative temperature", mutate: func(c *Config) { c.Temperature = -0.5 }, errMsg: "'temperature'"},
		{name: "zero timeout", mutate: func(c *Config) { c.AITimeout = 0 }, errMsg: "'ai_timeout'"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, errMsg: "'log_level'"},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, errMsg: "'log_format'"},
		{name: "negative rotation", mutate: func(c *Config) { c.LogMaxAge = -1 }, errMsg: "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "missing", key: "", wantErr: "is required"},
		{name: "whitespace", key: "   ", wantErr: "is required"},
		{name: "too short", key: "abc123", wantErr: "looks invalid"},
		{name: "plausible", key: "AIzaSyExampleKey0123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{APIKey: tt.key}
			err := cfg.RequireAPIKey()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("ninety")))
}
