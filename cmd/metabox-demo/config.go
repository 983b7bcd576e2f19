package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment.
type Config struct {
	Addr        string `env:"METABOX_ADDR" envDefault:":8080"`
	Definitions string `env:"METABOX_DEFINITIONS" envDefault:"definitions"`
	Screen      string `env:"METABOX_SCREEN" envDefault:"post"`
	SiteName    string `env:"METABOX_SITE_NAME" envDefault:"metabox demo"`
	// TemplatesDir shadows templates/page.tmpl and templates/panel.tmpl.
	TemplatesDir string        `env:"METABOX_TEMPLATES_DIR"`
	SQLitePath   string        `env:"METABOX_SQLITE_PATH"`
	DatabaseURL  string        `env:"METABOX_DATABASE_URL"`
	NonceSecret  string        `env:"METABOX_NONCE_SECRET"`
	NonceTTL     time.Duration `env:"METABOX_NONCE_TTL" envDefault:"24h"`
	LogLevel     string        `env:"METABOX_LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
