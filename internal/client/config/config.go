package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the RedDot CLI.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	ToastTTL       time.Duration
	ChartDir       string
	Environment    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DatabasePath = "reddot.db"
	c.RequestTimeout = 10 * time.Second
	c.ToastTTL = 3 * time.Second
	c.ChartDir = "charts"
	c.Environment = "development"
}

// LoadConfig constructs a Config from defaults, then JSON, environment and
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
