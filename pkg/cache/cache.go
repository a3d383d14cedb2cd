// Package cache stores rendered figure artifacts.
//
// Four backends implement [Cache]: [FileCache] for the CLI, [SQLiteCache] when
// a single database file is preferred over a directory tree, [RedisCache] for
// the HTTP service when several instances share results, and [NullCache] to
// disable caching. Keys are built by a [Keyer] from the content hash of the
// input dataset and every render parameter that changes the output, so a
// cached artifact is never served for different settings.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default TTLs.
const (
	// TTLArtifact applies to rendered SVG, PNG, PDF and JSON outputs.
	TTLArtifact = 7 * 24 * time.Hour
	// TTLDataset applies to normalised dataset documents.
	TTLDataset = 24 * time.Hour
)

// Backend names accepted by [New].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendNone   = "none"
)
