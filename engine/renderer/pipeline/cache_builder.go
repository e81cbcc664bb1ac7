package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// CacheBuilderOption is a functional option applied to a Cache during construction via NewCache.
type CacheBuilderOption func(*Cache)

// WithCacheSize sets how many pipelines the cache keeps before evicting the least recently used.
//
// Parameters:
//   - n: the cache size
//
// Returns:
//   - CacheBuilderOption: a function that sets the size of a cache
func WithCacheSize(n int) CacheBuilderOption {
	return func(c *Cache) {
		c.size = n
	}
}

// WithReleaseFunc replaces the function called on evicted pipelines.
//
// Parameters:
//   - fn: the release function
//
// Returns:
//   - CacheBuilderOption: a function that sets the release function of a cache
func WithReleaseFunc(fn func(*wgpu.RenderPipeline)) CacheBuilderOption {
	return func(c *Cache) {
		c.release = fn
	}
}
