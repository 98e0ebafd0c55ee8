// Package llm provides model configuration and a client abstraction over the LLM provider.
package llm

import (
	"os"
	"strings"
)

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for short classification style prompts
	TierLite ModelTier = "lite"
	// TierStandard is for structured scoring output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-context reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps scoring output stable between runs.
const DefaultTemperature = 0.1

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini configuration. GEMINI_MODEL, when set, replaces the standard tier model.
func DefaultConfig() *Config {
	cfg := DefaultGeminiConfig()
	if model := strings.TrimSpace(os.Getenv("GEMINI_MODEL")); model != "" {
		cfg = cfg.WithModel(TierStandard, model)
	}
	return cfg
}

// DefaultGeminiConfig returns the built-in Gemini model set
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
