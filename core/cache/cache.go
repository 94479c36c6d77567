package cache

import (
	"sync"
	"time"
)

// Cache is a read-through TTL cache for single-entity lookups.
// It is injected into services rather than accessed through a global,
// so tests can supply their own instance (or none).
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
}

type item struct {
	value     any
	expiresAt time.Time
}

func (i item) expired() bool {
	return !i.expiresAt.IsZero() && time.Now().After(i.expiresAt)
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{items: make(map[string]item)}
}

// Get retrieves a value for a key. Returns (value, true) if found and not
// expired, (nil, false) otherwise. Expired entries are evicted on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if it.expired() {
		c.mu.Lock()
		// Re-check under the write lock; a Put may have raced the eviction.
		if cur, still := c.items[key]; still && cur.expired() {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return it.value, true
}

// Put stores a value under key for the given TTL. A zero TTL means the entry
// does not expire.
func (c *Cache) Put(key string, value any, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = item{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Invalidate removes a key. Used when a transaction mutates the row a cached
// lookup would return.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}
