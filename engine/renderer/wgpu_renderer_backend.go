package renderer

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var (
	_ RendererBackend = &wgpuRendererBackendImpl{}
	_ RenderPass      = (*wgpu.RenderPassEncoder)(nil)
)

// newWGPURendererBackend creates the wgpu instance and blocks until an adapter and a device are available.
// The adapter is requested without a compatible surface since the device outlives every window.
func newWGPURendererBackend(forceFallbackAdapter bool, logLevel string) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	setGPULogLevel(logLevel)

	b := &wgpuRendererBackendImpl{
		instance: wgpu.CreateInstance(nil),
	}

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: %w", ErrDeviceCreation, err)
	}
	b.device = d
	b.queue = d.GetQueue()

	slog.Info("GPU device ready", slog.Bool("fallbackAdapter", forceFallbackAdapter))
	return b, nil
}

// setGPULogLevel maps a level name onto the native wgpu logger.
func setGPULogLevel(level string) {
	switch strings.ToUpper(level) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) CreateSurface(target SurfaceTarget, mode PresentMode) (any, SurfaceConfig, error) {
	descriptor := target.SurfaceDescriptor()
	if descriptor == nil {
		return nil, SurfaceConfig{}, fmt.Errorf("%w: window has no surface descriptor", ErrSurfaceCreation)
	}

	surface := b.instance.CreateSurface(descriptor)
	if surface == nil {
		return nil, SurfaceConfig{}, ErrSurfaceCreation
	}

	capabilities := surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		surface.Release()
		return nil, SurfaceConfig{}, ErrNoSurfaceConfig
	}

	// FIFO is the only present mode every surface must support.
	presentMode := wgpu.PresentModeFifo
	if mode == PresentModeUncapped && slices.Contains(capabilities.PresentModes, wgpu.PresentModeImmediate) {
		presentMode = wgpu.PresentModeImmediate
	}

	return surface, SurfaceConfig{
		Format:      capabilities.Formats[0],
		PresentMode: presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	}, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(handle any, config SurfaceConfig) error {
	surface, ok := handle.(*wgpu.Surface)
	if !ok || surface == nil {
		return fmt.Errorf("unexpected surface handle %T", handle)
	}

	surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      config.Format,
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: config.PresentMode,
		AlphaMode:   config.AlphaMode,
	})
	return nil
}

func (b *wgpuRendererBackendImpl) ReleaseSurface(handle any) {
	if surface, ok := handle.(*wgpu.Surface); ok && surface != nil {
		surface.Release()
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame(handle any, clear wgpu.Color) (RenderPass, error) {
	// Frames never overlap: the previous image must be presented before the next is acquired.
	if b.frameSurface != nil {
		return nil, ErrFrameInProgress
	}

	surface, ok := handle.(*wgpu.Surface)
	if !ok || surface == nil {
		return nil, fmt.Errorf("unexpected surface handle %T", handle)
	}

	surfaceTexture, err := surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceOutdated, err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, err
	}

	encoder, err := b.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Frame Encoder",
	})
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return nil, err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return pass, nil
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	if b.framePass == nil {
		return fmt.Errorf("no render pass open")
	}

	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		return err
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

func (b *wgpuRendererBackendImpl) Present(handle any) {
	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	if surface, ok := handle.(*wgpu.Surface); ok && surface != nil {
		surface.Present()
	}

	b.releaseFrame()
}

func (b *wgpuRendererBackendImpl) AbortFrame() {
	if b.framePass != nil {
		b.framePass.End()
		b.framePass = nil
	}
	b.releaseFrame()
}

// releaseFrame releases the encoder, view and texture of the current frame.
func (b *wgpuRendererBackendImpl) releaseFrame() {
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.AbortFrame()

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
