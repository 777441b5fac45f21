package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-memory caching of entry lists.
// Lists never expire; they live until Delete or Clear.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a list from the cache
func (c *MemoryCache) Get(key string) ([]string, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]string), true
	}
	return nil, false
}

// Set stores a list in the cache, replacing any previous value
func (c *MemoryCache) Set(key string, entries []string) {
	c.cache.Set(key, entries, gocache.NoExpiration)
}

// Delete removes a list from the cache
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all lists from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}

// Len returns the number of cached lists
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
