package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Key identifies a specialised render pipeline.
type Key struct {
	Pipeline string
	Format   wgpu.TextureFormat
}

// Factory builds the GPU pipeline for a descriptor and target format.
type Factory func(p Pipeline, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error)

// DeviceFactory returns a Factory that calls Pipeline.Build on device.
//
// Parameters:
//   - device: the device pipelines are created on
//
// Returns:
//   - Factory: the factory
func DeviceFactory(device *wgpu.Device) Factory {
	return func(p Pipeline, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
		return p.Build(device, format)
	}
}

// Cache keeps the most recently used render pipelines keyed by pipeline and target format,
// so a drawable can ask for its pipeline every frame and only pay for a build when the
// surface format changes. Evicted pipelines are released.
type Cache struct {
	factory Factory
	size    int
	release func(*wgpu.RenderPipeline)
	cache   *lru.Cache[Key, *wgpu.RenderPipeline]
	builds  int
}

// NewCache creates a Cache that builds missing pipelines with factory.
//
// Parameters:
//   - factory: the pipeline factory, usually DeviceFactory(renderer.Device())
//   - options: variadic list of CacheBuilderOption functions
//
// Returns:
//   - *Cache: the empty cache
//   - error: an error if the configured size is not positive
func NewCache(factory Factory, options ...CacheBuilderOption) (*Cache, error) {
	c := &Cache{
		factory: factory,
		size:    16,
		release: (*wgpu.RenderPipeline).Release,
	}
	for _, opt := range options {
		opt(c)
	}

	cache, err := lru.NewWithEvict[Key, *wgpu.RenderPipeline](c.size, c.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create pipeline cache: %w", err)
	}
	c.cache = cache
	return c, nil
}

// Get returns the pipeline for p and format, building it on a miss.
//
// Parameters:
//   - p: the pipeline descriptor
//   - format: the color target format
//
// Returns:
//   - *wgpu.RenderPipeline: the cached pipeline, owned by the cache
//   - error: the factory error on a failed build; failures are not cached
func (c *Cache) Get(p Pipeline, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	key := Key{Pipeline: p.PipelineKey(), Format: format}
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	created, err := c.factory(p, format)
	if err != nil {
		return nil, err
	}
	c.builds++
	c.cache.Add(key, created)
	return created, nil
}

// Len returns the number of cached pipelines.
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Builds returns how many pipelines the factory has built.
func (c *Cache) Builds() int {
	return c.builds
}

// Purge releases every cached pipeline.
func (c *Cache) Purge() {
	c.cache.Purge()
}

func (c *Cache) onEvict(key Key, p *wgpu.RenderPipeline) {
	slog.Debug("Release RenderPipeline", slog.String("key", key.Pipeline), slog.Any("format", key.Format))
	if p != nil {
		c.release(p)
	}
}
