package config

import (
	"encoding/json"
	"os"

	"github.com/reddot/reddot-client/internal/flagx"
	"github.com/reddot/reddot-client/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Empty fields leave the
// current value untouched.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	ToastTTL       timex.Duration `json:"toast_ttl"`
	ChartDir       string         `json:"chart_dir"`
	Environment    string         `json:"environment"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// It panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ToastTTL.Duration > 0 {
		cfg.ToastTTL = jc.ToastTTL.Duration
	}
	if jc.ChartDir != "" {
		cfg.ChartDir = jc.ChartDir
	}
	if jc.Environment != "" {
		cfg.Environment = jc.Environment
	}
}
