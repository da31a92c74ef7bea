package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./output/vizmo.db", cfg.DatabasePath)
	assert.True(t, cfg.Export.MetadataName)
	assert.False(t, cfg.Organize.Copy)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vizmo.yaml")
	content := `
output_dir: /data/out
export:
  metadata_name: false
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.False(t, cfg.Export.MetadataName)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset keys keep their defaults.
	assert.Equal(t, "./output/vizmo.db", cfg.DatabasePath)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vizmo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VIZMO_OUTPUT_DIR", "/env/out")
	t.Setenv("VIZMO_DB_PATH", "/env/db.sqlite")
	t.Setenv("VIZMO_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/env/out", cfg.OutputDir)
	assert.Equal(t, "/env/db.sqlite", cfg.DatabasePath)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vizmo.yaml")

	want := DefaultConfig()
	want.OutputDir = "/data/out"
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "invalid log level")

	cfg = DefaultConfig()
	cfg.OutputDir = ""
	assert.ErrorContains(t, cfg.Validate(), "output_dir")
}
