// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Authentication modes.
const (
	AuthModeSimulated   = "simulated"
	AuthModeCredentials = "credentials"
)

// minSessionSecretLen is the shortest accepted HS256 signing key.
const minSessionSecretLen = 32

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Session store (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Account database (PostgreSQL), only used in credentials mode
	DatabaseURL string `env:"DATABASE_URL"`

	// Authentication
	AuthMode             string        `env:"AUTH_MODE" envDefault:"simulated"`
	AuthSimulatedLatency time.Duration `env:"AUTH_SIMULATED_LATENCY" envDefault:"1s"`

	// Browser session
	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Login rate limiting
	LoginRateLimitEnabled   bool `env:"LOGIN_RATE_LIMIT_ENABLED" envDefault:"true"`
	LoginRateLimitPerMinute int  `env:"LOGIN_RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	LoginRateLimitBurst     int  `env:"LOGIN_RATE_LIMIT_BURST" envDefault:"5"`

	// Request body size limit in bytes (default 64KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesCredentials reports whether logins are checked against stored accounts.
func (c *Config) UsesCredentials() bool {
	return c.AuthMode == AuthModeCredentials
}

// Validate checks rules that span more than one variable.
func (c *Config) Validate() error {
	var errs []error

	switch c.AuthMode {
	case AuthModeSimulated:
	case AuthModeCredentials:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when AUTH_MODE=credentials"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeSimulated, AuthModeCredentials, c.AuthMode))
	}

	if len(c.SessionSecret) < minSessionSecretLen {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLen))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("SESSION_TTL must not be negative"))
	}
	if c.AuthSimulatedLatency < 0 {
		errs = append(errs, errors.New("AUTH_SIMULATED_LATENCY must not be negative"))
	}
	if c.LoginRateLimitEnabled && (c.LoginRateLimitPerMinute <= 0 || c.LoginRateLimitBurst <= 0) {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT_PER_MINUTE and LOGIN_RATE_LIMIT_BURST must be positive"))
	}
	if c.MaxRequestBodySize <= 0 {
		errs = append(errs, errors.New("MAX_REQUEST_BODY_SIZE must be positive"))
	}

	return errors.Join(errs...)
}

// Load parses environment variables and returns a validated Config.
// Returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
