// Package config loads server and CLI settings.
//
// Settings come from an optional YAML file, then environment variables
// override individual values:
//
//	ROSTER_ADDR   listen address (default :8080)
//	DB_PATH       SQLite database file (default ./data/roster.db)
//	STATIC_PATH   front end directory served at / (default ./static)
//	LOG_LEVEL     debug, info, warn, error (default info)
//	METRICS_PATH  Prometheus endpoint (default /metrics)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration.
type Config struct {
	Addr        string `yaml:"addr"`
	DBPath      string `yaml:"db_path"`
	StaticDir   string `yaml:"static_dir"`
	LogLevel    string `yaml:"log_level"`
	MetricsPath string `yaml:"metrics_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:        ":8080",
		DBPath:      "./data/roster.db",
		StaticDir:   "./static",
		LogLevel:    "info",
		MetricsPath: "/metrics",
	}
}

// Load reads path (if non-empty and present) over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.Addr = getEnv("ROSTER_ADDR", cfg.Addr)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.StaticDir = getEnv("STATIC_PATH", cfg.StaticDir)
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.MetricsPath = getEnv("METRICS_PATH", cfg.MetricsPath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if c.DBPath == "" {
		return errors.New("config: db_path is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	if c.MetricsPath != "" && !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("config: metrics_path %q must start with /", c.MetricsPath)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
