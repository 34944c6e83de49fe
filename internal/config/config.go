// Package config provides configuration loading and validation for the
// server, the web frontend and the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MinAPIKeyLength is the shortest value accepted as a Gemini API key.
const MinAPIKeyLength = 10

// Config holds every setting of the application. Values are layered: Default,
// then an optional JSON or YAML file, then environment variables.
type Config struct {
	// Listeners
	Port       int    `json:"port,omitempty" yaml:"port,omitempty" env:"PORT"`
	WebPort    int    `json:"web_port,omitempty" yaml:"web_port,omitempty" env:"WEB_PORT"`
	APIBaseURL string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty" env:"API_BASE_URL"` // Where the frontend finds the API

	// Model
	APIKey      string   `json:"api_key,omitempty" yaml:"api_key,omitempty" env:"GEMINI_API_KEY"`
	Model       string   `json:"model,omitempty" yaml:"model,omitempty" env:"GEMINI_MODEL"`
	Temperature float32  `json:"temperature,omitempty" yaml:"temperature,omitempty" env:"GEMINI_TEMPERATURE"`
	AITimeout   Duration `json:"ai_timeout,omitempty" yaml:"ai_timeout,omitempty" env:"AI_TIMEOUT"`

	// Logging. LogFile empty means stdout only; rotation sizes are in MB and ages in days.
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty" env:"LOG_LEVEL"`
	LogFormat     string `json:"log_format,omitempty" yaml:"log_format,omitempty" env:"LOG_FORMAT"`
	LogFile       string `json:"log_file,omitempty" yaml:"log_file,omitempty" env:"LOG_FILE"`
	LogMaxSize    int    `json:"log_max_size,omitempty" yaml:"log_max_size,omitempty" env:"LOG_MAX_SIZE"`
	LogMaxBackups int    `json:"log_max_backups,omitempty" yaml:"log_max_backups,omitempty" env:"LOG_MAX_BACKUPS"`
	LogMaxAge     int    `json:"log_max_age,omitempty" yaml:"log_max_age,omitempty" env:"LOG_MAX_AGE"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:          8000,
		WebPort:       8501,
		APIBaseURL:    "http://127.0.0.1:8000",
		Model:         "gemini-1.5-flash",
		Temperature:   0.1,
		AITimeout:     Duration(60 * time.Second),
		LogLevel:      "info",
		LogFormat:     "text",
		LogMaxSize:    100,
		LogMaxBackups: 7,
		LogMaxAge:     7,
	}
}

// Load builds the configuration from defaults, the file at path (skipped when
// path is empty) and the environment. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads configuration from a JSON or YAML file on top of Default.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: the API key is checked separately by RequireAPIKey since not every
// command talks to the model.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.WebPort <= 0 || c.WebPort > 65535 {
		return fmt.Errorf("config error: 'web_port' must be between 1 and 65535")
	}
	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config error: 'api_base_url' must be an absolute URL, got %q", c.APIBaseURL)
	}
	if c.Model == "" {
		return fmt.Errorf("config error: 'model' must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("config error: 'ai_timeout' must be positive")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: 'log_level' %q is not a valid level", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json, got %q", c.LogFormat)
	}
	if c.LogMaxSize < 0 || c.LogMaxBackups < 0 || c.LogMaxAge < 0 {
		return fmt.Errorf("config error: log rotation settings must be non-negative")
	}
	return nil
}

// RequireAPIKey fails when no plausible Gemini API key is configured.
func (c *Config) RequireAPIKey() error {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return fmt.Errorf("GEMINI_API_KEY is required (set it in the environment or a .env file)")
	}
	if len(key) < MinAPIKeyLength {
		return fmt.Errorf("GEMINI_API_KEY looks invalid: expected at least %d characters", MinAPIKeyLength)
	}
	return nil
}
