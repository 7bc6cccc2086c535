// Package config provides configuration loading for the aggregator client and CLI.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all application configuration
type Config struct {
	// Base URL of the aggregator API, with trailing slash
	BaseURL string `env:"RANGO_BASE_URL" envDefault:"https://api.rango.exchange/"`

	// API key sent as the apiKey query parameter
	APIKey string `env:"RANGO_API_KEY"`

	// Per-request timeout
	Timeout time.Duration `env:"RANGO_TIMEOUT" envDefault:"20s"`

	// OpenTelemetry endpoint for observability
	OtelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"rango"`
}

// Load creates a new Config from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	return cfg, nil
}

// Validate checks values env.Parse cannot.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid RANGO_BASE_URL %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("RANGO_TIMEOUT must be positive, got %s", c.Timeout)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: expected text or json", c.LogFormat)
	}
	return nil
}
