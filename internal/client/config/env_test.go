package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("REDDOT_API_BASE_URL", "http://env:1234")
	t.Setenv("REDDOT_REQUEST_TIMEOUT", "7s")
	t.Setenv("REDDOT_ENV", "production")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://env:1234", cfg.APIBaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "reddot.db", cfg.DatabasePath)
}

func Test_parseEnv_BadDurationIgnored(t *testing.T) {
	t.Setenv("REDDOT_REQUEST_TIMEOUT", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}
