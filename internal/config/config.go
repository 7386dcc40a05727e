// Package config loads client configuration from the environment (optionally
// seeded by a .env file) with guardrails applied after parsing.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the env-driven client configuration. The workspace config file
// (internal/store) can provide a base URL as well; the environment wins.
type Config struct {
	// BaseURL is the versioned API root, e.g. "http://localhost:8000/api/v1".
	BaseURL string `env:"PALCHI_API_URL" envDefault:"http://localhost:8000/api/v1"`

	// RequestTimeout bounds every HTTP call. A request exceeding it surfaces
	// as a distinct "request expired" error.
	RequestTimeout time.Duration `env:"PALCHI_HTTP_TIMEOUT" envDefault:"30s"`

	// Dir overrides the workspace directory (default ~/.palchi).
	Dir string `env:"PALCHI_CONFIG_DIR"`

	// Debug widens the console log sink from warnings to everything.
	Debug bool `env:"PALCHI_DEBUG" envDefault:"false"`
}

// Load parses configuration from the environment. A .env file in the working
// directory is honored when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.Sanitize()
	return &cfg, nil
}

// Sanitize applies guardrails to values loaded from env.
func (c *Config) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.RequestTimeout < time.Second {
		c.RequestTimeout = time.Second
	}
	if c.RequestTimeout > 5*time.Minute {
		c.RequestTimeout = 5 * time.Minute
	}
}
