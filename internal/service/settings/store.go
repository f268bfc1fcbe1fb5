// Package settings persists the session's catalog path and service key in a
// flat key/value document.
package settings

import "context"

// Store is a flat string key/value persistence backend. Keys it does not know
// about are left untouched by Set.
type Store interface {
	Load(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
