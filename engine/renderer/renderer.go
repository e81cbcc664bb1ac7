// Package renderer owns the GPU device context, the presentable surface and the drawable registry,
// and composes one frame: acquire, record, submit, present.
package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/fever/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backendType RendererBackendType
	backend     RendererBackend
	registry    *Registry

	presentMode PresentMode
	clearColor  common.Color
	frames      uint64

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	gpuLogLevel          string
}

// Renderer is the render device context. It is created once at startup, outlives every surface
// and is released at process exit.
//
// Not safe for concurrent use: the frame driver calls it from the event thread only.
type Renderer interface {
	// CreateSurface binds a presentable surface to target and configures it at the target's
	// current size.
	//
	// Parameters:
	//   - target: the window to present to
	//
	// Returns:
	//   - *Surface: the configured surface
	//   - error: ErrSurfaceCreation or ErrNoSurfaceConfig (fatal)
	CreateSurface(target SurfaceTarget) (*Surface, error)

	// ConfigureSize resizes the surface. A width or height <= 0 does not touch the platform
	// surface; instead drawing is suspended until the next non-degenerate size.
	//
	// Parameters:
	//   - surface: the surface to resize
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the platform surface could not be reconfigured
	ConfigureSize(surface *Surface, width, height int) error

	// Draw renders and presents one frame to surface: it acquires the next image, opens one
	// render pass, lets the registry prepare and record every drawable, submits and presents.
	// An outdated surface is reconfigured and acquisition retried once.
	//
	// Parameters:
	//   - surface: the surface to draw to; nil or occluded surfaces are skipped
	//
	// Returns:
	//   - error: non-nil only for unrecoverable failures (wrapping ErrDeviceLost)
	Draw(surface *Surface) error

	// DestroySurface releases the platform surface. The surface must not be used afterwards.
	//
	// Parameters:
	//   - surface: the surface to destroy
	DestroySurface(surface *Surface)

	// Registry returns the ordered drawable registry.
	//
	// Returns:
	//   - *Registry: the registry drawn every frame
	Registry() *Registry

	// Device returns the logical GPU device for creating drawable resources.
	//
	// Returns:
	//   - *wgpu.Device: the device, or nil for backends without one
	Device() *wgpu.Device

	// SetPresentMode sets the present mode used for surfaces created afterwards.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the render pass is cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// Frames returns the number of frames begun so far.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Release releases the drawables and the GPU device context.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the render device context: it selects an adapter and opens a device and queue.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the device context
//   - error: ErrNoAdapter or ErrDeviceCreation (wrapped) if the GPU could not be initialized
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		backendType: backendType,
		registry:    NewRegistry(),
		presentMode: PresentModeVSync,
		clearColor:  common.ColorGreen,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			b, err := newWGPURendererBackend(r.forceFallbackAdapter, r.gpuLogLevel)
			if err != nil {
				return nil, err
			}
			r.backend = b
		}
	}

	return r, nil
}

func (r *renderer) CreateSurface(target SurfaceTarget) (*Surface, error) {
	handle, config, err := r.backend.CreateSurface(target, r.presentMode)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		target: target,
		handle: handle,
		config: config,
	}

	if err := r.ConfigureSize(s, target.Width(), target.Height()); err != nil {
		r.backend.ReleaseSurface(handle)
		return nil, fmt.Errorf("%w: %w", ErrNoSurfaceConfig, err)
	}

	slog.Info("Surface created",
		slog.Int("width", int(s.config.Width)),
		slog.Int("height", int(s.config.Height)),
		slog.Any("format", s.config.Format),
		slog.Any("presentMode", s.config.PresentMode),
	)
	return s, nil
}

func (r *renderer) ConfigureSize(s *Surface, width, height int) error {
	if s == nil {
		return nil
	}

	if width <= 0 || height <= 0 {
		if !s.occluded {
			slog.Debug("Surface occluded, suspending frames",
				slog.Int("width", width),
				slog.Int("height", height),
			)
		}
		s.occluded = true
		return nil
	}

	s.config.Width = uint32(width)
	s.config.Height = uint32(height)
	if err := r.backend.ConfigureSurface(s.handle, s.config); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, err)
	}
	s.occluded = false

	slog.Debug("Surface configured", slog.Int("width", width), slog.Int("height", height))
	return nil
}

func (r *renderer) Draw(s *Surface) error {
	if s == nil || s.handle == nil || s.occluded {
		return nil
	}

	pass, err := r.backend.BeginFrame(s.handle, r.clearColor.WGPU())
	if errors.Is(err, ErrSurfaceOutdated) {
		slog.Warn("Surface outdated, reconfiguring",
			slog.Int("width", int(s.config.Width)),
			slog.Int("height", int(s.config.Height)),
			slog.String("error", err.Error()),
		)
		if cerr := r.backend.ConfigureSurface(s.handle, s.config); cerr != nil {
			return fmt.Errorf("%w: reconfigure surface: %w", ErrDeviceLost, cerr)
		}
		pass, err = r.backend.BeginFrame(s.handle, r.clearColor.WGPU())
		if err != nil {
			return fmt.Errorf("%w: acquire after reconfigure: %w", ErrDeviceLost, err)
		}
	}
	if err != nil {
		if errors.Is(err, ErrDeviceLost) {
			return err
		}
		slog.Warn("Dropping frame", slog.String("error", err.Error()))
		return nil
	}

	r.frames++
	r.registry.Record(FrameInfo{
		Width:  s.config.Width,
		Height: s.config.Height,
		Format: s.config.Format,
		Frame:  r.frames,
	}, pass)

	if err := r.backend.EndFrame(); err != nil {
		r.backend.AbortFrame()
		slog.Warn("Dropping frame",
			slog.Uint64("frame", r.frames),
			slog.String("error", err.Error()),
		)
		return nil
	}

	r.backend.Present(s.handle)
	return nil
}

func (r *renderer) DestroySurface(s *Surface) {
	if s == nil || s.handle == nil {
		return
	}
	r.backend.ReleaseSurface(s.handle)
	s.handle = nil
}

func (r *renderer) Registry() *Registry {
	return r.registry
}

func (r *renderer) Device() *wgpu.Device {
	return r.backend.Device()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.presentMode = mode
}

func (r *renderer) SetClearColor(c common.Color) {
	r.clearColor = c.Clamped()
}

func (r *renderer) Frames() uint64 {
	return r.frames
}

func (r *renderer) Release() {
	r.registry.Release()
	r.backend.Release()
}
