// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Default values applied by Defaults.
const (
	DefaultStorePath   = ".resume-builder/state.db"
	DefaultATSEndpoint = "http://localhost:5000"
	DefaultTheme       = "professional"
	DefaultOutputDir   = "."
)

// knownThemes mirrors the themes the renderer ships.
var knownThemes = map[string]bool{
	"professional": true,
	"creative":     true,
	"modern":       true,
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Storage
	StorePath   string `json:"store_path,omitempty"`   // sqlite file holding the local form state
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for accounts and server sessions

	// Analysis
	ATSEndpoint string `json:"ats_endpoint,omitempty"` // base URL of the scoring service
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key used by serve-ats
	Model       string `json:"model,omitempty"`        // Gemini model override

	// Rendering
	Theme      string `json:"theme,omitempty"`       // default document theme
	OutputDir  string `json:"output_dir,omitempty"`  // where rendered PDFs are written
	ChromePath string `json:"chrome_path,omitempty"` // browser binary used for printing

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration, with environment variables taking precedence.
func Defaults() Config {
	return Config{
		StorePath:   envOr("RESUME_STORE", DefaultStorePath),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ATSEndpoint: envOr("ATS_ENDPOINT", DefaultATSEndpoint),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:       os.Getenv("GEMINI_MODEL"),
		Theme:       DefaultTheme,
		OutputDir:   DefaultOutputDir,
		ChromePath:  os.Getenv("CHROME_PATH"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Theme != "" && !knownThemes[strings.ToLower(strings.TrimSpace(c.Theme))] {
		return fmt.Errorf("theme %q is not one of professional, creative, modern", c.Theme)
	}
	if c.ATSEndpoint != "" {
		u, err := url.Parse(c.ATSEndpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("ats_endpoint must be an absolute URL, got %q", c.ATSEndpoint)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Values already set in c take precedence.
func (c Config) MergeWithDefaults(defaults Config) Config {
	result := c

	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ATSEndpoint == "" {
		result.ATSEndpoint = defaults.ATSEndpoint
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Theme == "" {
		result.Theme = defaults.Theme
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
