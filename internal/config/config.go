// Package config provides configuration loading and validation for the CLI
// and HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by MergeWithDefaults when a field is unset.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultPort          = 8080
	DefaultScrapeTimeout = 10 * time.Second
	DefaultRateLimit     = 5.0
	DefaultRateBurst     = 10
	DefaultConcurrency   = 4
)

// Config represents the configuration that can be loaded from a JSON file
// and overridden from the environment. All fields are optional.
type Config struct {
	// Extraction
	VocabularyPath string `json:"vocabulary,omitempty"`  // Path to a replacement vocabulary file
	UseBrowser     bool   `json:"use_browser,omitempty"` // Re-render pages with a headless browser when no description is found
	UseLLM         bool   `json:"use_llm,omitempty"`     // Extract with the model instead of the heuristics
	APIKey         string `json:"api_key,omitempty"`     // Gemini API key

	// Scraping
	ScrapeTimeoutSeconds int `json:"scrape_timeout_seconds,omitempty" validate:"gte=0,lte=300"`

	// Batch
	Concurrency int `json:"concurrency,omitempty" validate:"gte=0,lte=64"`

	// Server
	Port        int     `json:"port,omitempty" validate:"gte=0,lte=65535"`
	RateLimit   float64 `json:"rate_limit,omitempty" validate:"gte=0"` // Requests per second per client
	RateBurst   int     `json:"rate_burst,omitempty" validate:"gte=0"`
	DatabaseURL string  `json:"database_url,omitempty"` // PostgreSQL connection URL; history is disabled when empty

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`
	Verbose   bool   `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load reads the optional config file at path, applies environment
// overrides, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Defaults returns the configuration used for unset fields.
func Defaults() Config {
	return Config{
		ScrapeTimeoutSeconds: int(DefaultScrapeTimeout / time.Second),
		Concurrency:          DefaultConcurrency,
		Port:                 DefaultPort,
		RateLimit:            DefaultRateLimit,
		RateBurst:            DefaultRateBurst,
		LogLevel:             DefaultLogLevel,
		LogFormat:            DefaultLogFormat,
	}
}

// ApplyEnv overrides fields from environment variables read through getenv.
// Unset or empty variables leave the field unchanged.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, field *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*field = v
		}
	}
	setInt := func(key string, field *int) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", key, err)
		}
		*field = n
		return nil
	}

	setString("GEMINI_API_KEY", &c.APIKey)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)
	setString("VOCABULARY_PATH", &c.VocabularyPath)

	if err := setInt("SCRAPE_TIMEOUT", &c.ScrapeTimeoutSeconds); err != nil {
		return err
	}
	return setInt("PORT", &c.Port)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.VocabularyPath != "" {
		if _, err := os.Stat(c.VocabularyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.VocabularyPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.VocabularyPath == "" {
		result.VocabularyPath = defaults.VocabularyPath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.ScrapeTimeoutSeconds == 0 {
		result.ScrapeTimeoutSeconds = defaults.ScrapeTimeoutSeconds
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}
	if result.RateBurst == 0 {
		result.RateBurst = defaults.RateBurst
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ScrapeTimeout returns the per-request scrape timeout.
func (c *Config) ScrapeTimeout() time.Duration {
	if c.ScrapeTimeoutSeconds <= 0 {
		return DefaultScrapeTimeout
	}
	return time.Duration(c.ScrapeTimeoutSeconds) * time.Second
}
