// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	DatabasePath string
	LogLevel     string
	Environment  string

	// CronSpecReevaluate drives the periodic alert re-evaluation. The
	// default re-runs every minute so reminder due times fire promptly.
	CronSpecReevaluate string

	Locale         language.Tag
	CurrencySymbol string

	// TenantID and OwnerID scope every CLI operation. A single-user
	// install keeps the defaults.
	TenantID string
	OwnerID  string
}

// Load reads configuration from the environment. A .env file is honored when
// present but never overrides variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:       getenv("FUNNEL_DB", "funnel.db"),
		LogLevel:           strings.ToLower(getenv("LOG_LEVEL", "info")),
		Environment:        strings.ToLower(getenv("ENVIRONMENT", "development")),
		CronSpecReevaluate: getenv("CRON_SPEC_REEVALUATE", "* * * * *"),
		CurrencySymbol:     getenv("CURRENCY_SYMBOL", "R$"),
		TenantID:           getenv("FUNNEL_TENANT", "default"),
		OwnerID:            getenv("FUNNEL_OWNER", "default"),
	}

	locale := getenv("LOCALE", "pt-BR")
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCALE %q: %w", locale, err)
	}
	cfg.Locale = tag

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
