package artran

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/ZaguanLabs/artran/cache"
)

// TextProvider is the interface for translation backends.
type TextProvider interface {
	TranslateText(ctx context.Context, req TextRequest) (string, error)
}

// TextRequest contains the parameters for a single text translation.
type TextRequest struct {
	Text       string
	SourceLang string
	TargetLang string
	Model      string // Provider model selector (e.g., "nmt")
}

// TranslationCache memoizes provider translations per TranslationKey.
//
// Missing keys are loaded on demand with at most one provider call in flight
// per key; concurrent callers for the same key wait for that call and share
// its result. Failed loads are not stored. Once full, the least recently used
// entry is evicted.
type TranslationCache struct {
	provider TextProvider
	entries  *cache.LRU[TranslationKey, string]
	group    singleflight.Group
	model    string

	hits       atomic.Uint64
	misses     atomic.Uint64
	loads      atomic.Uint64
	loadErrors atomic.Uint64
	shared     atomic.Uint64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits       uint64 // Lookups served from memory
	Misses     uint64 // Lookups that had to wait for a load
	Loads      uint64 // Provider calls issued
	LoadErrors uint64 // Provider calls that failed
	Shared     uint64 // Misses that joined another caller's in-flight load
	Evictions  uint64 // Entries dropped for capacity
	Len        int    // Current number of entries
}

type cacheOptions struct {
	capacity int
	model    string
}

// CacheOption is a functional option for configuring the TranslationCache.
type CacheOption func(*cacheOptions)

// WithCapacity sets the maximum number of cached translations (default: 500).
func WithCapacity(n int) CacheOption {
	return func(o *cacheOptions) {
		o.capacity = n
	}
}

// WithModel sets the model selector passed to the provider (default: "nmt").
func WithModel(model string) CacheOption {
	return func(o *cacheOptions) {
		o.model = model
	}
}

// NewTranslationCache creates a cache in front of the given provider.
func NewTranslationCache(provider TextProvider, opts ...CacheOption) *TranslationCache {
	o := cacheOptions{
		capacity: DefaultCapacity,
		model:    ModelNMT,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		o.capacity = DefaultCapacity
	}

	return &TranslationCache{
		provider: provider,
		entries:  cache.NewLRU[TranslationKey, string](o.capacity),
		model:    o.model,
	}
}

// Get returns the translation for key, calling the provider on a miss.
// Provider failures are returned as *ProviderError and are not cached.
func (c *TranslationCache) Get(ctx context.Context, key TranslationKey) (string, error) {
	if val, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return val, nil
	}
	c.misses.Add(1)

	val, err, shared := c.group.Do(key.Hash(), func() (interface{}, error) {
		return c.load(ctx, key)
	})
	if shared {
		c.shared.Add(1)
	}
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

// load runs once per in-flight key.
func (c *TranslationCache) load(ctx context.Context, key TranslationKey) (string, error) {
	// A load for this key may have completed between the lookup and Do.
	if val, ok := c.entries.Peek(key); ok {
		return val, nil
	}

	c.loads.Add(1)

	// The call is shared by every waiter, so one caller's cancellation must not abort it.
	val, err := c.provider.TranslateText(context.WithoutCancel(ctx), TextRequest{
		Text:       key.Text,
		SourceLang: key.From,
		TargetLang: key.To,
		Model:      c.model,
	})
	if err != nil {
		c.loadErrors.Add(1)
		return "", asProviderError(err)
	}

	c.entries.Set(key, val)
	return val, nil
}

// Contains reports whether key is cached, without counting as use.
func (c *TranslationCache) Contains(key TranslationKey) bool {
	return c.entries.Contains(key)
}

// Len returns the number of cached translations.
func (c *TranslationCache) Len() int {
	return c.entries.Len()
}

// Capacity returns the maximum number of cached translations.
func (c *TranslationCache) Capacity() int {
	return c.entries.Capacity()
}

// Model returns the model selector passed to the provider.
func (c *TranslationCache) Model() string {
	return c.model
}

// Stats returns a snapshot of the cache counters.
func (c *TranslationCache) Stats() CacheStats {
	return CacheStats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Loads:      c.loads.Load(),
		LoadErrors: c.loadErrors.Load(),
		Shared:     c.shared.Load(),
		Evictions:  c.entries.Evictions(),
		Len:        c.entries.Len(),
	}
}
