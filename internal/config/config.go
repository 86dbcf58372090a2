// Package config содержит логику чтения конфигурации сервиса VISE.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса VISE.
type Config struct {
	RunAddress   string `env:"RUN_ADDRESS"`
	DatabaseURI  string `env:"DATABASE_URI"`
	AuditAddress string `env:"AUDIT_ADDRESS"`
	AuditDataset string `env:"AUDIT_DATASET"`
	AuditToken   string `env:"AUDIT_TOKEN"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных
// окружения. Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envAuditAddress := cfg.AuditAddress
	envAuditDataset := cfg.AuditDataset
	envAuditToken := cfg.AuditToken

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI (in-memory store when empty)")
	flag.StringVar(&cfg.AuditAddress, "t", "", "audit ingest API address")
	flag.StringVar(&cfg.AuditDataset, "s", "vise_events", "audit dataset name")
	flag.StringVar(&cfg.AuditToken, "k", "", "audit ingest API token")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envAuditAddress != "" {
		cfg.AuditAddress = envAuditAddress
	}
	if envAuditDataset != "" {
		cfg.AuditDataset = envAuditDataset
	}
	if envAuditToken != "" {
		cfg.AuditToken = envAuditToken
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
