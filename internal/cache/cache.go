// Package cache stores serialized question sets keyed by normalized URL.
package cache

import "context"

// Cache is the question-set cache. Values are opaque serialized blobs with
// no expiry; the cache is authoritative for a URL until flushed.
type Cache interface {
	// Get returns the cached blob for key, with ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set writes the blob for key with no TTL.
	Set(ctx context.Context, key string, value []byte) error
	// Flush clears every entry. Called once at process start.
	Flush(ctx context.Context) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
