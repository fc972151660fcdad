package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestBlobRoundTrip(t *testing.T) {
	database := openTestDB(t)

	_, ok, err := database.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, database.Set("k", "one"))
	require.NoError(t, database.Set("k", "two"))

	value, ok, err := database.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", value)

	keys, err := database.BlobKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)

	require.NoError(t, database.Remove("k"))
	_, ok, err = database.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, database.Remove("k"), "removing twice is fine")
}

func TestSettings(t *testing.T) {
	database := openTestDB(t)

	value, err := database.GetSetting("last_group_id")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, database.SetSetting("last_group_id", "g1"))
	require.NoError(t, database.SetSetting("last_group_id", "g2"))

	value, err = database.GetSetting("last_group_id")
	require.NoError(t, err)
	assert.Equal(t, "g2", value)
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "formsmith.db")
	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.Set("k", "v"))
	value, ok, err := database.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
