package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
env: prod
storage_path: data/roster.db
backend: sqlite
generator:
  command: python3
  args: ["scripts/insight.py"]
  timeout: 5s
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "prod", cfg.Env)
		assert.Equal(t, "data/roster.db", cfg.StoragePath)
		assert.Equal(t, BackendSQLite, cfg.Backend)
		assert.Equal(t, "python3", cfg.Generator.Command)
		assert.Equal(t, []string{"scripts/insight.py"}, cfg.Generator.Args)
		assert.Equal(t, 5*time.Second, cfg.Generator.Timeout)
	})

	t.Run("defaults", func(t *testing.T) {
		path := writeConfig(t, "storage_path: data/students.txt\n")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "dev", cfg.Env)
		assert.Equal(t, BackendFile, cfg.Backend)
		assert.Empty(t, cfg.Generator.Command)
		assert.Equal(t, 30*time.Second, cfg.Generator.Timeout)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "storage_path: data/students.txt\n")
		t.Setenv("STORAGE_PATH", "/tmp/other.txt")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/other.txt", cfg.StoragePath)
	})

	t.Run("missing storage path", func(t *testing.T) {
		path := writeConfig(t, "env: dev\n")

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		path := writeConfig(t, "storage_path: x\nbackend: redis\n")

		_, err := Load(path)
		assert.ErrorContains(t, err, "unknown backend")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "does not exist")
	})
}
