package topology

import (
	"context"
	"time"

	"github.com/bluele/gcache"
)

// CachedProvider keeps recent lookups, including "not modeled" answers, in an
// LRU with expiry. Errors are never cached.
type CachedProvider struct {
	inner Provider
	cache gcache.Cache
}

// NewCachedProvider wraps inner with an LRU of the given size. A ttl of zero
// keeps entries until evicted.
func NewCachedProvider(inner Provider, size int, ttl time.Duration) *CachedProvider {
	if size <= 0 {
		size = 128
	}
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &CachedProvider{inner: inner, cache: b.Build()}
}

func (c *CachedProvider) StationGraph(ctx context.Context, stationID string) (*Graph, error) {
	if v, err := c.cache.Get(stationID); err == nil {
		g, _ := v.(*Graph)
		return g, nil
	}
	g, err := c.inner.StationGraph(ctx, stationID)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(stationID, g)
	return g, nil
}

// Purge drops every cached entry
func (c *CachedProvider) Purge() { c.cache.Purge() }
