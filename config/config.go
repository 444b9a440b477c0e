// Package config loads process configuration from environment variables,
// following dafibh-fortuna-backend's internal/config/config.go shape:
// a .env file loaded via joho/godotenv for local development, a flat
// struct of typed fields, and a validate() pass that fails fast on
// missing required values.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the full set of process-wide settings the server and any
// batch entry point need. Platform catalogs and threshold tables are not
// configuration (spec §5) and never appear here.
type Config struct {
	Port              string
	DatabaseURL       string
	S3Bucket          string
	S3Region          string
	ShareTokenRateRPS float64
	LogLevel          string
}

// Load reads a .env file if present (ignored if missing — production
// deployments set real environment variables instead) and then populates
// Config from the environment, applying defaults and validating required
// fields.
func Load() (*Config, error) {
	_ = godotenv.Load()

	rps, err := strconv.ParseFloat(getEnv("SHARE_TOKEN_RATE_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("config: SHARE_TOKEN_RATE_RPS: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		ShareTokenRateRPS: rps,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.S3Bucket == "" {
		return fmt.Errorf("config: S3_BUCKET is required")
	}
	if c.ShareTokenRateRPS <= 0 {
		return fmt.Errorf("config: SHARE_TOKEN_RATE_RPS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
