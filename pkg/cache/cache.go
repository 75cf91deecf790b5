// Package cache stores rendered frames so identical structure states are not
// drawn twice.
//
// Rendering is a pure function of a structure's snapshot, its highlight set
// and the theme, so a frame can be keyed by a hash of those inputs and reused
// across sessions and processes.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: JSON entries under a local directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// # Keys
//
// A [Keyer] builds keys from frame inputs. [ScopedKeyer] prefixes every key,
// which lets several servers share one Redis without colliding.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default lifetimes of cached entries.
const (
	// TTLFrame is how long a rendered frame is kept.
	TTLFrame = 24 * time.Hour

	// TTLExport is how long a graphviz export is kept.
	TTLExport = 7 * 24 * time.Hour
)
