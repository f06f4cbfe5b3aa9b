package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL string

	// Storage
	StoragePath string

	// Background Workers
	WorkerCount         int
	AutoSettleCharges   bool
	SettleInterval      time.Duration
	AutoPublishSnapshot bool

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Catalog
	CatalogPath          string
	MarketReferencePrice float64
	BaseCurrency         string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DatabaseURL:          getEnv("DATABASE_URL", "sqlite://data/gym_roi.db"),
		StoragePath:          getEnv("STORAGE_PATH", "./public-static/data"),
		WorkerCount:          getEnvAsInt("WORKER_COUNT", 2, &errs),
		AutoSettleCharges:    getEnvAsBool("AUTO_SETTLE_CHARGES", true, &errs),
		SettleInterval:       getEnvAsDuration("SETTLE_INTERVAL", time.Hour, &errs),
		AutoPublishSnapshot:  getEnvAsBool("AUTO_PUBLISH_SNAPSHOT", false, &errs),
		AllowedOrigins:       getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		SentryDSN:            getEnv("SENTRY_DSN", ""),
		CatalogPath:          getEnv("CATALOG_PATH", ""),
		MarketReferencePrice: getEnvAsFloat("MARKET_REFERENCE_PRICE", 50, &errs),
		BaseCurrency:         strings.ToUpper(getEnv("BASE_CURRENCY", "NZD")),
	}

	// Validate ranges
	if cfg.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be at least 1"))
	}
	if cfg.SettleInterval <= 0 {
		errs = append(errs, fmt.Errorf("SETTLE_INTERVAL must be positive"))
	}
	if cfg.MarketReferencePrice <= 0 {
		errs = append(errs, fmt.Errorf("MARKET_REFERENCE_PRICE must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value. An empty
// value counts as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, valueStr))
		return defaultValue
	}
	return value
}

// getEnvAsFloat reads an environment variable as float
func getEnvAsFloat(key string, defaultValue float64, errs *[]error) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a number", key, valueStr))
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool, errs *[]error) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a boolean", key, valueStr))
		return defaultValue
	}
	return value
}

// getEnvAsDuration reads an environment variable as duration
func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, valueStr))
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
