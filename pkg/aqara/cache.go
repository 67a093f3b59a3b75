package aqara

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache TTLs by operation. History and control/execute results are never
// cached.
const (
	deviceListTTL = 5 * time.Minute
	statusTTL     = 30 * time.Second
	sceneListTTL  = 10 * time.Minute
)

// Cache is a keyed, per-entry-TTL store of prior vendor responses. An
// expired entry is never returned as a hit; beyond that, expiry mechanics
// are internal.
type Cache struct {
	store *gocache.Cache
}

// NewCache creates an empty cache. Expired entries are swept periodically
// in the background in addition to being rejected on read.
func NewCache() *Cache {
	return &Cache{
		store: gocache.New(gocache.NoExpiration, time.Minute),
	}
}

// Get returns the stored value for key, or false on a miss or an expired
// entry.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores value under key for the given lifetime, overwriting any
// previous entry.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes a single entry. Deleting an absent key is a no-op.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all entries unconditionally. Safe to call when empty.
func (c *Cache) Clear() {
	c.store.Flush()
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Cache keys are deterministic functions of the operation and its
// pagination or identity parameters.

func pagedKey(intent string, page, size int) string {
	return fmt.Sprintf("%s:%d:%d", intent, page, size)
}

func statusKey(did string) string {
	return IntentResourceValue + ":" + did
}
