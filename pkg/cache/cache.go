// Package cache provides the storage layer for computed layouts and rendered
// artifacts.
//
// A full layout pass spends its whole tick budget on every call, so the
// pipeline stores serialized layouts keyed by a hash of the dataset and the
// options that shaped them. Rendered artifacts are keyed by the hash of the
// layout they were drawn from.
//
// # Implementations
//
//   - [FileCache]: JSON entries sharded by key hash under a directory (CLI)
//   - [NullCache]: never stores anything (tests, --no-cache)
//
// # Keys
//
// A [Keyer] derives cache keys; [ScopedKeyer] prefixes them so several
// datasets or users can share one directory.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value and whether it was found. Expired entries are
	// misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
