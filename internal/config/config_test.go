package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	t.Setenv("SECVIEW_SERVICE_URL", "https://org.example.com")
	t.Setenv("SECVIEW_API_VERSION", "v9.0")
	t.Setenv("SECVIEW_TOKEN", "tok")
	t.Setenv("SECVIEW_LOG_LEVEL", "debug")
	t.Setenv("SECVIEW_RATE_LIMIT_RPS", "10")
	t.Setenv("SECVIEW_RATE_LIMIT_BURST", "3")
	t.Setenv("SECVIEW_EXPORT_DIR", "/tmp/exports")
	t.Setenv("SECVIEW_EXPORT_CONCURRENCY", "4")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://org.example.com", cfg.ServiceURL)
	assert.Equal(t, "v9.0", cfg.APIVersion)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
	assert.Equal(t, 4, cfg.ExportConcurrency)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("SECVIEW_SERVICE_URL", "https://org.example.com")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "v9.2", cfg.APIVersion)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 25.0, cfg.RateLimitRPS)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, 1, cfg.ExportConcurrency)
}

func TestLoadFromEnv_InvalidOptionalValuesWarn(t *testing.T) {
	t.Setenv("SECVIEW_SERVICE_URL", "https://org.example.com")
	t.Setenv("SECVIEW_RATE_LIMIT_RPS", "fast")
	t.Setenv("SECVIEW_EXPORT_CONCURRENCY", "0")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 25.0, cfg.RateLimitRPS)
	assert.Equal(t, 1, cfg.ExportConcurrency)
	assert.Len(t, cfg.Warnings, 2)
}

func TestValidate(t *testing.T) {
	cfg := &Config{ServiceURL: "https://org.example.com", ExportConcurrency: 1}
	require.NoError(t, cfg.Validate())

	missing := &Config{ExportConcurrency: 1}
	assert.Error(t, missing.Validate())

	badConc := &Config{ServiceURL: "https://org.example.com"}
	assert.Error(t, badConc.Validate())
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", in)
	}
}
