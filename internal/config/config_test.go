package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "./captures", cfg.ImageDir)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1600, cfg.MaxDimension)
	assert.Equal(t, ":8080", cfg.AgentAddr)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workupdate.yaml")
	content := `
assetBaseUrl: http://assets.local:9000
apiBaseUrl: http://api.local:4000
imageDir: /data/captures
maxDimension: 1200
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://assets.local:9000", cfg.AssetBaseURL)
	assert.Equal(t, "http://api.local:4000", cfg.APIBaseURL)
	assert.Equal(t, "/data/captures", cfg.ImageDir)
	assert.Equal(t, 1200, cfg.MaxDimension)
	// Untouched keys keep their defaults
	assert.Equal(t, ":8080", cfg.AgentAddr)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "./captures", cfg.ImageDir)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workupdate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assetBaseUrl: http://from-file\n"), 0644))

	t.Setenv("WORKUPDATE_ASSET_URL", "http://from-env")
	t.Setenv("WORKUPDATE_HTTP_TIMEOUT", "5s")
	t.Setenv("WORKUPDATE_MAX_DIMENSION", "640")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env", cfg.AssetBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 640, cfg.MaxDimension)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate())

	cfg.AssetBaseURL = "http://assets"
	require.Error(t, cfg.Validate())

	cfg.APIBaseURL = "http://api"
	require.NoError(t, cfg.Validate())
}
