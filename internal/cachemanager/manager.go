// Package cachemanager holds the generic caches used by mrdiff, such as the
// per-language grammar cache of the highlight engine.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed key/value store with optional expiry.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
	Len() int
}
