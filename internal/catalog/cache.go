package catalog

import (
	"sync"
	"time"

	"shopfront/internal/model"
)

// Cache is a TTL cache of catalogue responses keyed by request path.
// Expired entries are kept around so a failed refresh can fall back to them.
type Cache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	products  []model.Product
	expiresAt time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
	}
}

// Get returns a fresh entry for the key, if one exists.
func (c *Cache) Get(key string) ([]model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.products, true
}

// GetStale returns an entry for the key regardless of expiry.
func (c *Cache) GetStale(key string) ([]model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok {
		return nil, false
	}
	return entry.products, true
}

// Set stores an entry for the key with a fresh expiry.
func (c *Cache) Set(key string, products []model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry{
		products:  products,
		expiresAt: time.Now().Add(c.ttl),
	}
}
