// Package cache provides the bounded in-process store and shared stores used by artran.
package cache

import "context"

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 500

// Store is a shared key/value store consulted before calling a translation provider.
type Store interface {
	// Get retrieves a stored translation. Returns empty string and false if not found.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a translation.
	Set(ctx context.Context, key string, value string) error
}
