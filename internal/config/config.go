// Package config reads server settings from the environment. A .env file
// in the working directory is loaded first when present.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBPath    string
	UploadDir string
	LogLevel  slog.Level
	Limiter   Limiter
}

// Limiter configures the per-client rate limit on the server.
type Limiter struct {
	RPS     float64
	Burst   int
	Enabled bool
}

// Load reads .env (if any) and the environment, applying defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "err", err)
	}

	cfg := Config{
		Port:      getenv("PORT", "8080"),
		DBPath:    getenv("DB_PATH", "intake.db"),
		UploadDir: getenv("UPLOAD_DIR", "uploads"),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "INFO"))); err != nil {
		return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	var err error
	if cfg.Limiter.RPS, err = strconv.ParseFloat(getenv("LIMITER_RPS", "2"), 64); err != nil {
		return cfg, fmt.Errorf("LIMITER_RPS: %w", err)
	}
	if cfg.Limiter.Burst, err = strconv.Atoi(getenv("LIMITER_BURST", "4")); err != nil {
		return cfg, fmt.Errorf("LIMITER_BURST: %w", err)
	}
	if cfg.Limiter.Enabled, err = strconv.ParseBool(getenv("LIMITER_ENABLED", "true")); err != nil {
		return cfg, fmt.Errorf("LIMITER_ENABLED: %w", err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
