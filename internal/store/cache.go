package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type cachedEntry struct {
	raw     []byte
	version int64
}

// Cached wraps a Store with an expirable LRU read cache. Entries are stored
// as encoded JSON so callers get independent copies, and every Put refreshes
// the entry so a read after a successful write sees the written value.
// The TTL bounds staleness when another process instance writes the same key;
// the version CAS still protects such writes from being lost.
type Cached struct {
	inner Store
	lru   *expirable.LRU[string, cachedEntry]
}

// NewCached creates a read-through cache in front of inner.
// size: maximum number of cached records
// ttl: time-to-live for cached entries
func NewCached(inner Store, size int, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		lru:   expirable.NewLRU[string, cachedEntry](size, nil, ttl),
	}
}

// Get serves from cache when possible, falling through to the inner store
func (c *Cached) Get(ctx context.Context, key string, dest any) (Meta, error) {
	if entry, ok := c.lru.Get(key); ok {
		if err := json.Unmarshal(entry.raw, dest); err != nil {
			c.lru.Remove(key)
			return Meta{}, fmt.Errorf("failed to decode cached entity %q: %w", key, err)
		}
		return Meta{Found: true, Version: entry.version}, nil
	}

	meta, err := c.inner.Get(ctx, key, dest)
	if err != nil || !meta.Found {
		return meta, err
	}

	raw, err := json.Marshal(dest)
	if err == nil {
		c.lru.Add(key, cachedEntry{raw: raw, version: meta.Version})
	}
	return meta, nil
}

// Put writes through to the inner store and refreshes the cache entry.
// A conflicting or failed write drops the entry instead, so the stale value
// cannot be served afterwards.
func (c *Cached) Put(ctx context.Context, key string, value any, expect int64) (int64, error) {
	version, err := c.inner.Put(ctx, key, value, expect)
	if err != nil {
		c.lru.Remove(key)
		return 0, err
	}

	raw, marshalErr := json.Marshal(value)
	if marshalErr != nil {
		c.lru.Remove(key)
		return version, nil
	}
	c.lru.Add(key, cachedEntry{raw: raw, version: version})
	return version, nil
}
