package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a thread-safe, size-bounded store that evicts the least recently used entry.
// Reads count as use.
type LRU[K comparable, V any] struct {
	cache     *lru.Cache[K, V]
	capacity  int
	evictions atomic.Uint64
}

// NewLRU creates a store holding at most capacity entries.
// If capacity is 0 or negative, DefaultCapacity is used.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &LRU[K, V]{capacity: capacity}
	// NewWithEvict only fails for non-positive sizes.
	c.cache, _ = lru.NewWithEvict[K, V](capacity, func(K, V) {
		c.evictions.Add(1)
	})
	return c
}

// Get retrieves a value and marks it as most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

// Peek retrieves a value without updating its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	return c.cache.Peek(key)
}

// Set stores a value, evicting the least recently used entry if the store is full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.cache.Add(key, value)
}

// Contains reports whether key is present without updating its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.cache.Contains(key)
}

// Len returns the number of entries in the store.
func (c *LRU[K, V]) Len() int {
	return c.cache.Len()
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns the keys from least to most recently used.
func (c *LRU[K, V]) Keys() []K {
	return c.cache.Keys()
}

// Evictions returns how many entries were dropped for capacity.
func (c *LRU[K, V]) Evictions() uint64 {
	return c.evictions.Load()
}
