package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Log.Mode)
	assert.Equal(t, "data/sora", cfg.Store.Path)
	assert.False(t, cfg.Store.InMemory)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soractl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
log:
  mode: prod
store:
  in_memory: true
cache:
  max_entries: 64
`), 0o644))

	t.Setenv("SORA_SERVER_PORT", "9191")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port, "env overrides file")
	assert.Equal(t, "prod", cfg.Log.Mode)
	assert.True(t, cfg.Store.InMemory)
	assert.Equal(t, 64, cfg.Cache.MaxEntries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SORA_LOG_MODE", "verbose")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.mode (oneof=verbose)")
}

func TestValidateReportsConfigKeys(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Port: 0},
		Log:    LogConfig{Mode: "dev"},
		Store:  StoreConfig{InMemory: true},
		Cache:  CacheConfig{MaxEntries: 0},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port (min=0)")
	assert.Contains(t, err.Error(), "cache.max_entries (min=0)")
	assert.NotContains(t, err.Error(), "Config.")
}
