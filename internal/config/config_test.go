package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9090"
tree: /etc/medtriage/tree.yaml
session_ttl: 15m
redis:
  addr: localhost:6379
  db: 2
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "/etc/medtriage/tree.yaml", cfg.TreePath)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	// Untouched keys keep their defaults.
	assert.Equal(t, "data/intents.json", cfg.CorpusPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEDTRIAGE_LISTEN", ":7070")
	t.Setenv("MEDTRIAGE_REDIS_ADDR", "redis:6379")
	t.Setenv("MEDTRIAGE_SESSION_TTL", "5m")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
