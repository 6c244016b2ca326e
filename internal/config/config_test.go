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
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Analysis.URL)
	assert.Equal(t, 30*time.Second, cfg.Analysis.Timeout)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, filepath.Join(cfg.DataDir, "lifestore.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(cfg.DataDir, "memes"), cfg.AssetsDir)
	assert.Equal(t, 32, cfg.MemoSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lifestore.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
data_dir: /tmp/ls
analysis:
  url: http://fortune.local
  timeout: 5s
browser:
  headless: false
log:
  level: debug
`), 0644))

	t.Setenv("LIFESTORE_ANALYSIS_URL", "http://override.local")
	t.Setenv("LIFESTORE_MEMO_SIZE", "8")

	cfg, err := Load(New(), file)
	require.NoError(t, err)

	assert.Equal(t, "http://override.local", cfg.Analysis.URL)
	assert.Equal(t, 5*time.Second, cfg.Analysis.Timeout)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.MemoSize)
	assert.Equal(t, "/tmp/ls/lifestore.db", cfg.DBPath)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
