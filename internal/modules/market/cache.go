package market

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is the key-value side-cache injected into the market service.
// Expiry is handled by the cache itself; a missing or expired entry simply
// reports ok=false. Kept behind an interface so tests can substitute it and
// so cache state never leaks into the accounting engine.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Clear()
}

// TTLCache implements Cache over go-cache with a fixed TTL
type TTLCache struct {
	cache *gocache.Cache
}

// NewTTLCache creates a cache whose entries expire after ttl
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns a cached value if present and fresh
func (c *TTLCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// Set stores a value under the default TTL
func (c *TTLCache) Set(key string, value interface{}) {
	c.cache.Set(key, value, gocache.DefaultExpiration)
}

// Clear drops all entries
func (c *TTLCache) Clear() {
	c.cache.Flush()
}
