// Package cache provides pluggable byte caches for rendered cards.
//
// Rendering a card is deterministic, so a finished PNG can be cached under
// a key derived from everything that influenced it: the sign, the
// language, the user's request text, and the layout revision. Three
// backends cover the deployment shapes: FileCache for the CLI, RedisCache
// for the server, and NullCache when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte blobs with optional expiry. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves the value for key. The second return is false on a
	// miss; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
