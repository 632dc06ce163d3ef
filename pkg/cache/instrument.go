package cache

import (
	"context"
	"time"

	"github.com/lingqianapp/lingqian/pkg/observability"
)

// InstrumentedCache wraps a Cache and reports hits, misses, and writes to
// the registered observability hooks. keyType labels the traffic class
// (for example "card") so hook consumers can split their counters.
type InstrumentedCache struct {
	inner   Cache
	keyType string
}

// Instrument wraps inner with hook reporting.
func Instrument(inner Cache, keyType string) Cache {
	return &InstrumentedCache{inner: inner, keyType: keyType}
}

// Get retrieves a value and reports the hit or miss.
func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(c.keyType)
		} else {
			observability.Cache().OnCacheMiss(c.keyType)
		}
	}
	return data, hit, err
}

// Set stores a value and reports the write with its size.
func (c *InstrumentedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(c.keyType, len(data))
	}
	return err
}

// Delete removes a value.
func (c *InstrumentedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the wrapped cache.
func (c *InstrumentedCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*InstrumentedCache)(nil)
