package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.Connection.KeepaliveInterval())
	assert.Equal(t, 5, cfg.Connection.ReconnectMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Connection.ReconnectBaseDelay())
	assert.False(t, cfg.Debug)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zobbo.yaml")
	data := `
server_url: https://zobbo.example
player_name: ada
connection:
  keepalive_seconds: 30
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://zobbo.example", cfg.ServerURL)
	assert.Equal(t, "ada", cfg.PlayerName)
	assert.Equal(t, 30*time.Second, cfg.Connection.KeepaliveInterval())
	// Unset fields still get defaults.
	assert.Equal(t, 5, cfg.Connection.ReconnectMaxAttempts)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ZOBBO_SERVER_URL", "https://env.example")
	t.Setenv("ZOBBO_PLAYER_NAME", "grace")
	t.Setenv("ZOBBO_DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.ServerURL)
	assert.Equal(t, "grace", cfg.PlayerName)
	assert.True(t, cfg.Debug)
}

func TestLoad_BadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zobbo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
