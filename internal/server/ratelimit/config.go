package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig overrides the default limit for requests whose path starts with Path.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // 0 means Limit
}

// LoadConfig reads the RATE_LIMIT_* environment variables. Unset or unparsable
// values fall back to the defaults.
func LoadConfig() *Config {
	if !env("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   env("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: env("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		IdleTimeout:     env("RATE_LIMIT_IDLE_TIMEOUT", time.Hour, time.ParseDuration),
		Whitelist:       ipSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       ipSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs limits the scoring, printing and credential endpoints.
// Form edits use the default limit and /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/analyze-json", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/v1/resume/analyze", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/v1/resume/pdf", Method: "GET", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/v1/auth/register", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/v1/auth/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
	}
}

func env[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
