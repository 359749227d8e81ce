package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults used when no configuration is supplied.
const (
	DefaultRate            = 5.0
	DefaultBurst           = 10
	DefaultCleanupInterval = 5 * time.Minute
	DefaultIdleTTL         = time.Hour
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

func (e *EndpointConfig) rate() float64 {
	if e.Window <= 0 {
		return float64(e.Limit)
	}
	return float64(e.Limit) / e.Window.Seconds()
}

func (e *EndpointConfig) burst() int {
	if e.Burst <= 0 {
		return e.Limit
	}
	return e.Burst
}

// NewConfig returns an enabled configuration with the given per-client
// default rate and burst plus the default endpoint overrides.
func NewConfig(rps float64, burst int) *Config {
	return &Config{
		Enabled:         true,
		Rate:            rps,
		Burst:           burst,
		CleanupInterval: DefaultCleanupInterval,
		IdleTTL:         DefaultIdleTTL,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig builds a configuration from the given defaults and the
// RATE_LIMIT_* environment variables.
func LoadConfig(rps float64, burst int) *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := NewConfig(rps, burst)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Outbound fetches and model calls
		{Path: "/jobs/scrape", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/resume/extract", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Local parsing only
		{Path: "/jobs/extract", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Everything else uses Config.Rate; /health is unlimited (see MatchEndpoint)
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
