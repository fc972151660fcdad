package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/formsmith/internal/db"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/store"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return store.New(database, nil)
}

func TestExportThenImport(t *testing.T) {
	src := newStore(t)
	src.Create(models.FieldGroup{
		Name:     "Contact",
		Elements: []models.FormElement{{ID: "e1", Type: models.TypeEmail, Name: "Email", Required: true}},
	})

	path := filepath.Join(t.TempDir(), "groups.json")
	require.NoError(t, runExport(src, []string{path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Contact"`)

	dst := newStore(t)
	require.NoError(t, runImport(dst, []string{path}, zap.NewNop()))
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestImportRejectsBadFile(t *testing.T) {
	s := newStore(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))

	err := runImport(s, []string{path}, zap.NewNop())
	assert.ErrorIs(t, err, store.ErrFormat)
	assert.Error(t, runImport(s, nil, zap.NewNop()))
}

func TestVersionFlag(t *testing.T) {
	assert.NoError(t, run([]string{"--version"}))
}
