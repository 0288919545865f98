package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"store_url: https://intranet.example.com/sites/capex\ntimeout_ms: 3000\n"), 0o644))

	t.Setenv("CAPEX_CONFIG", path)
	t.Setenv("CAPEX_TIMEOUT_MS", "7000")
	t.Setenv("CAPEX_LOG_CALLS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://intranet.example.com/sites/capex", cfg.StoreURL)
	assert.Equal(t, 7000, cfg.TimeoutMs, "env wins over file")
	assert.True(t, cfg.LogCalls)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CAPEX_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("CAPEX_STORE_URL", "")
	t.Setenv("CAPEX_TIMEOUT_MS", "")
	t.Setenv("CAPEX_LOG_CALLS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().TimeoutMs, cfg.TimeoutMs)
	assert.Empty(t, cfg.StoreURL)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store_url: [unclosed"), 0o644))
	t.Setenv("CAPEX_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestAuthToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("secret-token\n"), 0o600))

	token, err := Config{AuthTokenFile: path}.AuthToken()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)

	token, err = Config{}.AuthToken()
	require.NoError(t, err)
	assert.Empty(t, token)
}
