package renderer

import "github.com/cogentcore/webgpu/wgpu"

// SurfaceTarget is anything a presentable surface can be bound to, typically a window.
type SurfaceTarget interface {
	// SurfaceDescriptor returns the platform-specific descriptor for creating a wgpu surface.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the current client area width in pixels.
	Width() int

	// Height returns the current client area height in pixels.
	Height() int
}

// SurfaceConfig is the configuration applied to the platform surface.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      wgpu.TextureFormat
	PresentMode wgpu.PresentMode
	AlphaMode   wgpu.CompositeAlphaMode
}

// Surface is a presentable surface bound to a window.
// It is created by Renderer.CreateSurface and reconfigured through Renderer.ConfigureSize.
// The window is shared with the platform layer, which controls its lifetime.
type Surface struct {
	target SurfaceTarget
	handle any
	config SurfaceConfig

	// occluded is set while the window has a zero-area client rect.
	// The platform surface keeps its last valid configuration and no frames are drawn.
	occluded bool
}

// Target returns the window the surface is bound to.
func (s *Surface) Target() SurfaceTarget {
	return s.target
}

// Config returns a copy of the current surface configuration.
func (s *Surface) Config() SurfaceConfig {
	return s.config
}

// Width returns the configured width in pixels.
func (s *Surface) Width() uint32 {
	return s.config.Width
}

// Height returns the configured height in pixels.
func (s *Surface) Height() uint32 {
	return s.config.Height
}

// Format returns the configured color format.
func (s *Surface) Format() wgpu.TextureFormat {
	return s.config.Format
}

// Occluded reports whether drawing is suspended because the window has no area.
func (s *Surface) Occluded() bool {
	return s.occluded
}

// Handle returns the backend-owned surface object (*wgpu.Surface for the wgpu backend).
// Callers are responsible for type asserting the returned value.
func (s *Surface) Handle() any {
	return s.handle
}
