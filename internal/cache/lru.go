// Package cache contains the in-memory caches used to avoid reading
// and decoding the same objects over and over
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
)

// LRU represents a LRU cache of decoded objects, indexed by their
// digest
type LRU struct {
	cache *lru.Cache
	mu    sync.Mutex
}

// NewLRU creates a new LRU Cache that holds at most maxEntries
// objects
func NewLRU(maxEntries int) (*LRU, error) {
	cache, err := lru.New(maxEntries)
	if err != nil {
		return nil, err
	}
	return &LRU{
		cache: cache,
	}, nil
}

// Get looks up an object from the cache.
func (c *LRU) Get(oid ginternals.Oid) (o *object.Object, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache.Get(oid)
	if !ok {
		return nil, false
	}
	o, ok = v.(*object.Object)
	return o, ok
}

// Add adds an object to the cache.
func (c *LRU) Add(o *object.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(o.ID(), o)
}

// Remove removes an object from the cache, if present
func (c *LRU) Remove(oid ginternals.Oid) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(oid)
}

// Clear purges all stored items from the cache.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

// Len returns the number of items in the cache.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cache.Len()
}
