package mealdb

import (
	"sync"
	"time"
)

// maxCacheEntries bounds the cache before expired entries are swept.
const maxCacheEntries = 1024

type cacheEntry struct {
	meals   []RawMeal
	expires time.Time
}

// revalidateCache keeps successful upstream responses for a fixed window.
// A zero ttl disables caching.
type revalidateCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func newRevalidateCache(ttl time.Duration) *revalidateCache {
	return &revalidateCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *revalidateCache) get(key string) ([]RawMeal, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.meals, true
}

func (c *revalidateCache) set(key string, meals []RawMeal) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) >= maxCacheEntries {
		for k, e := range c.entries {
			if now.After(e.expires) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = cacheEntry{meals: meals, expires: now.Add(c.ttl)}
}
