package web

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the HTTP server.
type Config struct {
	Addr           string        `env:"TALENTQUIZ_HTTP_ADDR"       envDefault:":8080"`
	CORSOrigins    []string      `env:"TALENTQUIZ_CORS_ORIGINS"    envDefault:"*" envSeparator:","`
	SessionTTL     time.Duration `env:"TALENTQUIZ_SESSION_TTL"     envDefault:"2h"`
	RequestTimeout time.Duration `env:"TALENTQUIZ_REQUEST_TIMEOUT" envDefault:"60s"`
}

// LoadConfig reads the server configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	var errs []string
	if c.Addr == "" {
		errs = append(errs, "address is empty")
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Sprintf("session TTL must be positive, got %s", c.SessionTTL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("web config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
