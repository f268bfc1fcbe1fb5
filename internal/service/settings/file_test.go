package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "config.json"), zap.NewNop())

	values, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestFileStoreSetPreservesUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","window":{"w":800,"h":600},"csv_path":"old.csv"}`), 0o600))

	store := NewFileStore(path, nil)
	require.NoError(t, store.Set(context.Background(), "csv_path", "/data/ratings.csv"))
	require.NoError(t, store.Set(context.Background(), "api_key", "abc123"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "dark", doc["theme"])
	assert.Equal(t, map[string]any{"w": float64(800), "h": float64(600)}, doc["window"])
	assert.Equal(t, "/data/ratings.csv", doc["csv_path"])
	assert.Equal(t, "abc123", doc["api_key"])

	values, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"theme":    "dark",
		"csv_path": "/data/ratings.csv",
		"api_key":  "abc123",
	}, values)
}

func TestFileStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
	store := NewFileStore(path, nil)

	require.NoError(t, store.Set(context.Background(), "api_key", "k"))

	_, err := os.Stat(path)
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	store := NewFileStore(path, nil)

	_, err := store.Load(context.Background())
	require.Error(t, err)

	err = store.Set(context.Background(), "api_key", "k")
	require.Error(t, err)

	raw, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, `{not json`, string(raw), "a document that cannot be parsed is not overwritten")
}
