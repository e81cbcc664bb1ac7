// Package renderertest provides a recording RendererBackend and RenderPass for tests
// that exercise the frame sequence without a GPU.
package renderertest

import (
	"fmt"

	"github.com/Carmen-Shannon/fever/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// Command is one call recorded by a Pass.
type Command struct {
	Op            string
	Pipeline      *wgpu.RenderPipeline
	VertexCount   uint32
	InstanceCount uint32
}

// Pass records the commands drawables issue.
type Pass struct {
	Commands []Command
}

var _ renderer.RenderPass = &Pass{}

func (p *Pass) SetPipeline(pipeline *wgpu.RenderPipeline) {
	p.Commands = append(p.Commands, Command{Op: "SetPipeline", Pipeline: pipeline})
}

func (p *Pass) SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32) {
	p.Commands = append(p.Commands, Command{Op: "SetBindGroup"})
}

func (p *Pass) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64) {
	p.Commands = append(p.Commands, Command{Op: "SetVertexBuffer"})
}

func (p *Pass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.Commands = append(p.Commands, Command{Op: "Draw", VertexCount: vertexCount, InstanceCount: instanceCount})
}

// Draws returns the recorded draw commands.
func (p *Pass) Draws() []Command {
	var draws []Command
	for _, c := range p.Commands {
		if c.Op == "Draw" {
			draws = append(draws, c)
		}
	}
	return draws
}

// Frame is one frame seen by the Backend.
type Frame struct {
	// Config is the surface configuration in effect when the frame was begun.
	Config    renderer.SurfaceConfig
	Clear     wgpu.Color
	Pass      *Pass
	Submitted bool
	Presented bool
	Aborted   bool
}

// Surface is the handle the Backend hands out.
type Surface struct {
	Config   renderer.SurfaceConfig
	Released bool
}

// Backend is a RendererBackend that records every call.
// Fields ending in Err are returned by the matching call when set.
type Backend struct {
	// Default is the configuration CreateSurface reports.
	Default renderer.SurfaceConfig

	CreateErr    error
	ConfigureErr error
	EndErr       error

	// AcquireErrs are returned by successive BeginFrame calls before frames succeed again.
	AcquireErrs []error

	// Calls lists backend operations in order, e.g. "CreateSurface", "Configure 800x600", "BeginFrame".
	Calls []string

	// Configured lists every configuration applied, in order.
	Configured []renderer.SurfaceConfig

	Frames   []*Frame
	Released bool

	current *Frame
}

var _ renderer.RendererBackend = &Backend{}

// NewBackend creates a Backend reporting a BGRA8, FIFO surface.
func NewBackend() *Backend {
	return &Backend{
		Default: renderer.SurfaceConfig{
			Format:      wgpu.TextureFormatBGRA8Unorm,
			PresentMode: wgpu.PresentModeFifo,
		},
	}
}

func (b *Backend) Device() *wgpu.Device { return nil }

func (b *Backend) CreateSurface(target renderer.SurfaceTarget, mode renderer.PresentMode) (any, renderer.SurfaceConfig, error) {
	b.Calls = append(b.Calls, "CreateSurface")
	if b.CreateErr != nil {
		return nil, renderer.SurfaceConfig{}, b.CreateErr
	}
	return &Surface{}, b.Default, nil
}

func (b *Backend) ConfigureSurface(handle any, config renderer.SurfaceConfig) error {
	b.Calls = append(b.Calls, fmt.Sprintf("Configure %dx%d", config.Width, config.Height))
	if b.ConfigureErr != nil {
		return b.ConfigureErr
	}
	handle.(*Surface).Config = config
	b.Configured = append(b.Configured, config)
	return nil
}

func (b *Backend) ReleaseSurface(handle any) {
	b.Calls = append(b.Calls, "ReleaseSurface")
	handle.(*Surface).Released = true
}

func (b *Backend) BeginFrame(handle any, clear wgpu.Color) (renderer.RenderPass, error) {
	b.Calls = append(b.Calls, "BeginFrame")
	if b.current != nil {
		return nil, renderer.ErrFrameInProgress
	}
	if len(b.AcquireErrs) > 0 {
		err := b.AcquireErrs[0]
		b.AcquireErrs = b.AcquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	b.current = &Frame{
		Config: handle.(*Surface).Config,
		Clear:  clear,
		Pass:   &Pass{},
	}
	b.Frames = append(b.Frames, b.current)
	return b.current.Pass, nil
}

func (b *Backend) EndFrame() error {
	b.Calls = append(b.Calls, "EndFrame")
	if b.EndErr != nil {
		return b.EndErr
	}
	b.current.Submitted = true
	return nil
}

func (b *Backend) Present(handle any) {
	b.Calls = append(b.Calls, "Present")
	if b.current == nil {
		return
	}
	b.current.Presented = true
	b.current = nil
}

func (b *Backend) AbortFrame() {
	b.Calls = append(b.Calls, "AbortFrame")
	if b.current == nil {
		return
	}
	b.current.Aborted = true
	b.current = nil
}

func (b *Backend) Release() {
	b.Calls = append(b.Calls, "Release")
	b.Released = true
}

// LastFrame returns the most recent frame, or nil.
func (b *Backend) LastFrame() *Frame {
	if len(b.Frames) == 0 {
		return nil
	}
	return b.Frames[len(b.Frames)-1]
}

// Target is a SurfaceTarget with a settable size.
type Target struct {
	W, H int
}

func (t *Target) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return &wgpu.SurfaceDescriptor{} }

func (t *Target) Width() int { return t.W }

func (t *Target) Height() int { return t.H }
