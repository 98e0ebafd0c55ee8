package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultJWTIssuer is the iss claim used when JWT_ISSUER is unset.
const DefaultJWTIssuer = "resume-builder"

// DefaultJWTExpirationHours is the session token lifetime when JWT_EXPIRATION_HOURS is unset.
const DefaultJWTExpirationHours = 24

// JWTConfig configures the session tokens issued to accounts.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig reads JWT_SECRET, JWT_EXPIRATION_HOURS and JWT_ISSUER. The secret is required.
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          os.Getenv("JWT_SECRET"),
		ExpirationHours: DefaultJWTExpirationHours,
		Issuer:          os.Getenv("JWT_ISSUER"),
	}
	if cfg.Secret == "" {
		return nil, errors.New("JWT_SECRET is required but not set")
	}
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		cfg.ExpirationHours = hours
	}
	if cfg.ExpirationHours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", cfg.ExpirationHours)
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultJWTIssuer
	}
	return cfg, nil
}

// Lifetime is how long an issued token stays valid.
func (c *JWTConfig) Lifetime() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
