package settings

import (
	"context"
	"strings"
	"sync"

	"github.com/kapu/movie-picker-go/internal/constants"
)

// SessionConfig is the in-memory view of the persisted settings. Every setter
// updates memory first and then writes through to the store immediately.
type SessionConfig struct {
	mu          sync.RWMutex
	store       Store
	catalogPath string
	serviceKey  string
}

func NewSessionConfig(store Store) *SessionConfig {
	return &SessionConfig{store: store}
}

// Load reads both recognized keys from the store. Missing keys become "".
func (c *SessionConfig) Load(ctx context.Context) error {
	values, err := c.store.Load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalogPath = values[constants.SettingsKeys.CatalogPath]
	c.serviceKey = strings.TrimSpace(values[constants.SettingsKeys.ServiceKey])
	return nil
}

func (c *SessionConfig) CatalogPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalogPath
}

func (c *SessionConfig) ServiceKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serviceKey
}

func (c *SessionConfig) SetCatalogPath(ctx context.Context, path string) error {
	c.mu.Lock()
	c.catalogPath = path
	c.mu.Unlock()

	return c.store.Set(ctx, constants.SettingsKeys.CatalogPath, path)
}

// SetServiceKey stores the key with surrounding whitespace removed.
func (c *SessionConfig) SetServiceKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)

	c.mu.Lock()
	c.serviceKey = key
	c.mu.Unlock()

	return c.store.Set(ctx, constants.SettingsKeys.ServiceKey, key)
}
