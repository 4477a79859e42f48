package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

// App holds runtime configuration derived from environment variables.
type App struct {
	DatabaseURL  string `env:"DATABASE_URL"`
	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"event-records"`
	APIPort      string `env:"API_PORT" envDefault:"8080"`
	Environment  string `env:"ENVIRONMENT" envDefault:"production"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogEncoding  string `env:"LOG_ENCODING" envDefault:"json"`

	OIDCIssuerURL string `env:"OIDC_ISSUER_URL"`
	OIDCClientID  string `env:"OIDC_CLIENT_ID"`

	RawCORSOrigins string   `env:"CORS_ORIGINS"`
	CORSOrigins    []string `env:"-"`
}

// FromEnv loads the application configuration from environment variables.
func FromEnv() (App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return App{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.CORSOrigins = splitOrigins(cfg.RawCORSOrigins)
	return cfg, nil
}

// Brokers returns the configured Kafka brokers, or nil when the change feed is disabled.
func (a App) Brokers() []string {
	return splitList(a.KafkaBrokers)
}

// splitOrigins parses a comma separated origin list. An unset or blank list allows every origin.
func splitOrigins(raw string) []string {
	if origins := splitList(raw); len(origins) > 0 {
		return origins
	}
	return []string{"*"}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
