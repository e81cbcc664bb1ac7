package renderer

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. Always supported.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency. Falls back to VSync when
	// the surface does not support it.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "unknown"
	}
}

// ParsePresentMode parses "vsync" or "uncapped", case-insensitively.
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - PresentMode: the parsed mode, VSync on error
//   - error: an error for unknown names
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vsync", "fifo":
		return PresentModeVSync, nil
	case "uncapped", "immediate":
		return PresentModeUncapped, nil
	default:
		return PresentModeVSync, fmt.Errorf("unknown present mode %q", s)
	}
}

// RendererBackend is the seam between the Renderer and a GPU API.
// All calls happen on the thread that owns the Renderer.
type RendererBackend interface {
	// Device returns the logical device, or nil for backends without one.
	Device() *wgpu.Device

	// CreateSurface binds a platform surface to target and derives a default configuration
	// from the adapter's capabilities. The surface is not configured yet; Width and Height
	// of the returned config are left to the caller.
	//
	// Parameters:
	//   - target: the window to bind to
	//   - mode: the requested present mode
	//
	// Returns:
	//   - any: the backend surface handle
	//   - SurfaceConfig: the default configuration
	//   - error: ErrSurfaceCreation or ErrNoSurfaceConfig on failure
	CreateSurface(target SurfaceTarget, mode PresentMode) (any, SurfaceConfig, error)

	// ConfigureSurface applies config to the platform surface.
	//
	// Parameters:
	//   - handle: the backend surface handle from CreateSurface
	//   - config: the configuration to apply
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	ConfigureSurface(handle any, config SurfaceConfig) error

	// ReleaseSurface destroys the platform surface.
	//
	// Parameters:
	//   - handle: the backend surface handle from CreateSurface
	ReleaseSurface(handle any)

	// BeginFrame acquires the next image of the surface, creates a command encoder and opens
	// the frame's single render pass with a clear load op and a store op.
	//
	// Parameters:
	//   - handle: the backend surface handle
	//   - clear: the clear color of the pass
	//
	// Returns:
	//   - RenderPass: the open pass
	//   - error: ErrSurfaceOutdated if the image could not be acquired, ErrFrameInProgress
	//     if the previous frame was not presented, or another error
	BeginFrame(handle any, clear wgpu.Color) (RenderPass, error)

	// EndFrame ends the open pass, finishes the encoder and submits the command buffer.
	//
	// Returns:
	//   - error: an error if the commands could not be finished; the frame is dropped
	EndFrame() error

	// Present presents the acquired image and releases the frame's resources.
	//
	// Parameters:
	//   - handle: the backend surface handle
	Present(handle any)

	// AbortFrame drops the frame in progress without presenting it.
	AbortFrame()

	// Release releases the device, queue, adapter and instance.
	Release()
}
