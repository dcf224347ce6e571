package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "REDDOT_"

// parseEnv overlays cfg with REDDOT_* variables. A .env file in the working
// directory is loaded first when present; real environment variables win
// over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envPrefix + "API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envPrefix + "DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(envPrefix + "REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(envPrefix + "CHART_DIR"); v != "" {
		cfg.ChartDir = v
	}
	if v := os.Getenv(envPrefix + "ENV"); v != "" {
		cfg.Environment = v
	}
}
