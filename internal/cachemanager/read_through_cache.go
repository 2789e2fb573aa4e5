package cachemanager

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// ReadThroughCache loads missing values through fn and stores them.
// Concurrent misses for the same key share a single call to fn.
// Errors returned by fn are not cached.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, input I) (V, error)
	shouldSkipCache bool
	group           singleflight.Group
}

func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	result, err, _ := r.group.Do(string(key), func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if value, ok := r.cache.Get(ctx, key); ok {
			return value, nil
		}

		value, err := r.fn(ctx, input)
		if err != nil {
			return value, err
		}

		r.cache.Set(ctx, key, value, ttl)
		return value, nil
	})

	value, _ := result.(V)
	return value, err
}
