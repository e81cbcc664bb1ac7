package renderer

import "github.com/Carmen-Shannon/fever/common"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color the main render pass is cleared to. Defaults to green.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c.Clamped()
	}
}

// WithGPULogLevel sets the native wgpu log level: off, error, warn, info, debug or trace.
// An empty string leaves the library default.
//
// Parameters:
//   - level: the log level name
//
// Returns:
//   - RendererBuilderOption: a function that applies the log level option to a renderer
func WithGPULogLevel(level string) RendererBuilderOption {
	return func(r *renderer) {
		r.gpuLogLevel = level
	}
}

// WithDrawable appends a drawable to the registry. Drawables are drawn in the order they are added.
//
// Parameters:
//   - d: the drawable to register
//
// Returns:
//   - RendererBuilderOption: a function that registers the drawable on a renderer
func WithDrawable(d Drawable) RendererBuilderOption {
	return func(r *renderer) {
		r.registry.Add(d)
	}
}

// WithBackend uses b instead of creating a GPU backend. Intended for headless runs and tests.
//
// Parameters:
//   - b: the backend to use
//
// Returns:
//   - RendererBuilderOption: a function that sets the backend on a renderer
func WithBackend(b RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = b
	}
}
