package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 7*24*time.Hour, cfg.Invites.TTL)
	require.Equal(t, 15*time.Minute, cfg.Auth.JWT.TTL)
	require.False(t, cfg.Email.SMTP.Enabled)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`
server:
  port: 9100
  log_level: debug
database:
  driver: sqlite
  path: /tmp/tutor-test.sqlite
invites:
  ttl: 24h
auth:
  jwt:
    secret: test-secret
    access_token_ttl: 30m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), contents, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "/tmp/tutor-test.sqlite", cfg.Database.Path)
	require.Equal(t, 24*time.Hour, cfg.Invites.TTL)
	require.Equal(t, "test-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, 30*time.Minute, cfg.Auth.JWT.TTL)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("AITUTOR_SERVER_PORT", "9200")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 9200, cfg.Server.Port)
}
