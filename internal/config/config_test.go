package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.Data.Dir)
	assert.Equal(t, filepath.Join(dataDir, "formsmith.db"), cfg.Data.DBPath)
	assert.Equal(t, filepath.Join(dataDir, "formsmith.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFileAndEnv(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "formsmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  dir: /srv/forms
log:
  level: DEBUG
  format: console
`), 0644))

	t.Setenv("FORMSMITH_LOG_LEVEL", "warn")

	cfg, err := Load(path, "/unused")
	require.NoError(t, err)
	assert.Equal(t, "/srv/forms", cfg.Data.Dir)
	assert.Equal(t, filepath.Join("/srv/forms", "formsmith.db"), cfg.Data.DBPath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: [unterminated"), 0644))

	_, err := Load(path, t.TempDir())
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()
	cfg, err := Load("", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "out.yaml")
	require.NoError(t, cfg.Save(path))

	again, err := Load(path, "/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24)
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
