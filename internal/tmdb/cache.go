package tmdb

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	show    *TVShow // nil records a search with no results
	expires time.Time
}

type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (c *cache) get(query string) (*TVShow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(query)]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.show, true
}

func (c *cache) set(query string, show *TVShow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(query)] = cacheEntry{
		show:    show,
		expires: time.Now().Add(c.ttl),
	}
}
