// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the settings for the remote service client and the export
// path.
type Config struct {
	ServiceURL string // remote environment root, e.g. https://org.crm.dynamics.com
	APIVersion string // data API version segment (default "v9.2")
	Token      string // bearer token for the remote service

	LogLevel string // debug, info, warn, error (default "info")

	// Client-side request rate bound against the remote service.
	RateLimitRPS   float64 // sustained requests per second (default 25)
	RateLimitBurst int     // burst capacity (default 5)

	ExportDir string // directory CSV artifacts are saved into (default ".")

	// ExportConcurrency bounds concurrent per-principal detail fetches
	// during an export. 1 (the default) means strictly sequential.
	ExportConcurrency int

	// Warnings collects non-fatal warnings generated during loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks that the configuration can drive a remote fetch.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("SECVIEW_SERVICE_URL is required")
	}
	if c.ExportConcurrency < 1 {
		return fmt.Errorf("SECVIEW_EXPORT_CONCURRENCY must be at least 1")
	}
	return nil
}

// LoadFromEnv loads configuration from SECVIEW_* environment variables,
// applying defaults and collecting warnings for malformed optional values.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ServiceURL:        os.Getenv("SECVIEW_SERVICE_URL"),
		APIVersion:        os.Getenv("SECVIEW_API_VERSION"),
		Token:             os.Getenv("SECVIEW_TOKEN"),
		LogLevel:          os.Getenv("SECVIEW_LOG_LEVEL"),
		ExportDir:         os.Getenv("SECVIEW_EXPORT_DIR"),
		RateLimitRPS:      25,
		RateLimitBurst:    5,
		ExportConcurrency: 1,
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = "v9.2"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}

	if v := os.Getenv("SECVIEW_RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("ignoring invalid SECVIEW_RATE_LIMIT_RPS %q", v))
		} else {
			cfg.RateLimitRPS = rps
		}
	}
	if v := os.Getenv("SECVIEW_RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("ignoring invalid SECVIEW_RATE_LIMIT_BURST %q", v))
		} else {
			cfg.RateLimitBurst = burst
		}
	}
	if v := os.Getenv("SECVIEW_EXPORT_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("ignoring invalid SECVIEW_EXPORT_CONCURRENCY %q", v))
		} else {
			cfg.ExportConcurrency = n
		}
	}

	return cfg, nil
}
