package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":    "https://api.reddot.example",
		"request_timeout": "15s",
		"chart_dir":       "/tmp/charts",
	})

	t.Run("overlays present fields only", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "https://api.reddot.example", cfg.APIBaseURL)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "/tmp/charts", cfg.ChartDir)
		assert.Equal(t, "reddot.db", cfg.DatabasePath)
		assert.Equal(t, 3*time.Second, cfg.ToastTTL)
	})

	t.Run("no flag leaves config untouched", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "keep"}
		parseJson(cfg, nil)
		assert.Equal(t, "keep", cfg.APIBaseURL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", "/does/not/exist.json"}) })
	})
}
