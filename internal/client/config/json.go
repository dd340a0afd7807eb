package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vibecart/internal/flagx"
	"github.com/dmitrijs2005/vibecart/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Empty fields leave
// the current value untouched.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	BackendURL          string          `json:"backend_url"`
	LegacyImageHost     string          `json:"legacy_image_host"`
	PlaceholderImageURL string          `json:"placeholder_image_url"`
	DataDir             string          `json:"data_dir"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIfNotEmpty(&cfg.APIBaseURL, jc.APIBaseURL)
	setIfNotEmpty(&cfg.BackendURL, jc.BackendURL)
	setIfNotEmpty(&cfg.LegacyImageHost, jc.LegacyImageHost)
	setIfNotEmpty(&cfg.PlaceholderImageURL, jc.PlaceholderImageURL)
	setIfNotEmpty(&cfg.DataDir, jc.DataDir)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	setIfNotEmpty(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
