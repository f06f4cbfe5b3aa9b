package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "ENVIRONMENT", "LOG_LEVEL", "DATABASE_URL", "STORAGE_PATH", "WORKER_COUNT",
	"AUTO_SETTLE_CHARGES", "SETTLE_INTERVAL", "AUTO_PUBLISH_SNAPSHOT", "ALLOWED_ORIGINS",
	"SENTRY_DSN", "CATALOG_PATH", "MARKET_REFERENCE_PRICE", "BASE_CURRENCY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_CURRENCY", "nzd")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sqlite://data/gym_roi.db", cfg.DatabaseURL)
	assert.Equal(t, "./public-static/data", cfg.StoragePath)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.True(t, cfg.AutoSettleCharges)
	assert.Equal(t, time.Hour, cfg.SettleInterval)
	assert.False(t, cfg.AutoPublishSnapshot)
	assert.Equal(t, 50.0, cfg.MarketReferencePrice)
	assert.Equal(t, "NZD", cfg.BaseCurrency)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://gym@localhost/gym")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("AUTO_SETTLE_CHARGES", "false")
	t.Setenv("SETTLE_INTERVAL", "15m")
	t.Setenv("MARKET_REFERENCE_PRICE", "65.5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.False(t, cfg.AutoSettleCharges)
	assert.Equal(t, 15*time.Minute, cfg.SettleInterval)
	assert.Equal(t, 65.5, cfg.MarketReferencePrice)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"worker count not a number", "WORKER_COUNT", "many"},
		{"worker count zero", "WORKER_COUNT", "0"},
		{"bad bool", "AUTO_SETTLE_CHARGES", "sometimes"},
		{"bad duration", "SETTLE_INTERVAL", "hourly"},
		{"negative price", "MARKET_REFERENCE_PRICE", "-1"},
		{"price not a number", "MARKET_REFERENCE_PRICE", "fifty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
