// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// We start from Defaults(), overlay a local .env file (godotenv) and then the
// process environment (caarlos0/env), and finally validate. Everything is
// resolved once at startup and passed down explicitly.
package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/ytt-client/pkg/api"
)

// Modes select which backend address the client talks to.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config holds all application configuration.
type Config struct {
	// Client settings
	Mode       string `env:"YTT_MODE"`         // "development" or "production"
	DevAPIBase string `env:"YTT_DEV_API_BASE"` // Separate local backend used in development
	Origin     string `env:"YTT_ORIGIN"`       // Same origin the UI is served from
	APIPrefix  string `env:"YTT_API_PREFIX"`   // Path of the API under the origin

	// RequestTimeout is set on the http.Client built by NewAPIClient.
	// Zero means no timeout; the client core never sets one itself.
	RequestTimeout time.Duration `env:"YTT_REQUEST_TIMEOUT"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"`  // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT"` // console or json

	// Fake backend settings
	Port           string   `env:"PORT"`
	GinMode        string   `env:"GIN_MODE"` // "debug", "release", or "test"
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// Build info reported by /version and /health
	BuildVersion string `env:"BUILD_VERSION"`
	BuildDate    string `env:"BUILD_DATE"`
	GitCommit    string `env:"GIT_COMMIT"`
}

// Defaults returns the configuration before .env and environment overrides.
func Defaults() *Config {
	return &Config{
		Mode:       ModeProduction,
		DevAPIBase: "http://localhost:8001/api",
		Origin:     "http://localhost:8000",
		APIPrefix:  "/api",

		LogLevel:  "info",
		LogFormat: "console",

		Port:    "8001",
		GinMode: "debug",
		AllowedOrigins: []string{
			"http://localhost:5173", // Vite dev server default
		},

		BuildVersion: "1.0.0",
		BuildDate:    "dev",
		GitCommit:    "dev",
	}
}

// Load reads configuration from .env and the environment on top of Defaults.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail later and obscurely.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("YTT_MODE must be %q or %q, got %q", ModeDevelopment, ModeProduction, c.Mode)
	}

	if c.IsDevelopment() {
		if _, err := url.ParseRequestURI(c.DevAPIBase); err != nil {
			return fmt.Errorf("YTT_DEV_API_BASE is not a valid URL: %w", err)
		}
	} else {
		u, err := url.Parse(c.Origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("YTT_ORIGIN must be an absolute URL, got %q", c.Origin)
		}
	}

	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("YTT_API_PREFIX must start with '/', got %q", c.APIPrefix)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("YTT_REQUEST_TIMEOUT must not be negative")
	}
	return nil
}

// IsDevelopment reports whether the client targets the separate local backend.
func (c *Config) IsDevelopment() bool {
	return c.Mode == ModeDevelopment
}

// APIBase resolves the backend address: the local development backend, or the
// API prefix under the same origin the UI is served from.
func (c *Config) APIBase() string {
	if c.IsDevelopment() {
		return strings.TrimRight(c.DevAPIBase, "/")
	}
	return strings.TrimRight(c.Origin, "/") + c.APIPrefix
}

// NewAPIClient builds a client for APIBase. RequestTimeout, when set, bounds
// every call through the underlying http.Client.
func (c *Config) NewAPIClient(logger *zap.SugaredLogger) *api.Client {
	return api.New(c.APIBase(),
		api.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		api.WithLogger(logger),
	)
}
