package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000", c.APIBaseURL)
	assert.Equal(t, "https://vibecart-backend.onrender.com", c.BackendURL)
	assert.Equal(t, "http://localhost:5000", c.LegacyImageHost)
	assert.Equal(t, "https://via.placeholder.com/300", c.PlaceholderImageURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_NoArgsUsesDefaults(t *testing.T) {
	cfg, err := load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestStoragePath(t *testing.T) {
	c := Config{DataDir: "/tmp/vc"}
	assert.Equal(t, filepath.Join("/tmp/vc", "storage.db"), c.StoragePath())
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url": "http://from-json:5000",
		"data_dir":     "/json/dir",
	})

	cfg, err := load([]string{"-c", path, "-a", "http://from-flag:1"})
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag:1", cfg.APIBaseURL)
	assert.Equal(t, "/json/dir", cfg.DataDir)
}
