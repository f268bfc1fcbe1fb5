package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/kapu/movie-picker-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	values map[string]string
}

func (s *failingStore) Load(context.Context) (map[string]string, error) {
	return s.values, nil
}

func (s *failingStore) Set(_ context.Context, key, _ string) error {
	return errors.NewSettingsError("write failed", "set", key, fmt.Errorf("disk full"))
}

func (s *failingStore) Close() error { return nil }

func TestSessionConfigWritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	ctx := context.Background()

	cfg := NewSessionConfig(NewFileStore(path, nil))
	require.NoError(t, cfg.Load(ctx))
	assert.Empty(t, cfg.CatalogPath())
	assert.Empty(t, cfg.ServiceKey())

	require.NoError(t, cfg.SetCatalogPath(ctx, "/data/list.csv"))
	require.NoError(t, cfg.SetServiceKey(ctx, "  abc123\n"))
	assert.Equal(t, "abc123", cfg.ServiceKey())

	reloaded := NewSessionConfig(NewFileStore(path, nil))
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, "/data/list.csv", reloaded.CatalogPath())
	assert.Equal(t, "abc123", reloaded.ServiceKey())
}

func TestSessionConfigKeepsValueWhenWriteFails(t *testing.T) {
	cfg := NewSessionConfig(&failingStore{values: map[string]string{"api_key": "old"}})
	require.NoError(t, cfg.Load(context.Background()))
	assert.Equal(t, "old", cfg.ServiceKey())

	err := cfg.SetServiceKey(context.Background(), "new")
	require.Error(t, err)

	var settingsErr *errors.SettingsError
	assert.ErrorAs(t, err, &settingsErr)
	assert.Equal(t, "new", cfg.ServiceKey(), "memory is updated before the write")
}
