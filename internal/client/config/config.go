package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the vibecart CLI.
type Config struct {
	APIBaseURL          string
	BackendURL          string
	LegacyImageHost     string
	PlaceholderImageURL string
	DataDir             string
	RequestTimeout      time.Duration
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with the values the storefront ships with.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.BackendURL = "https://vibecart-backend.onrender.com"
	c.LegacyImageHost = "http://localhost:5000"
	c.PlaceholderImageURL = "https://via.placeholder.com/300"
	c.DataDir = ".vibecart"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// StoragePath is the SQLite file holding persisted client state.
func (c *Config) StoragePath() string {
	return filepath.Join(c.DataDir, "storage.db")
}

// LoadConfig builds a Config from defaults, the optional JSON file, and the
// process flags, in that order.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
