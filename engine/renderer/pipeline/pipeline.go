package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/fever/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the render state needed to specialise a render pipeline for a target format.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// shader provides both the vertex and the fragment entry points
	shader shader.Shader

	// The following properties are toggled/set with the builder options.

	blendEnabled  bool
	cullMode      wgpu.CullMode
	topology      wgpu.PrimitiveTopology
	frontFace     wgpu.FrontFace
	writeMask     wgpu.ColorWriteMask
	blendState    *wgpu.BlendState
	sampleCount   uint32
	vertexBuffers []wgpu.VertexBufferLayout
}

// Pipeline describes a render pipeline independently of the surface it draws to.
// The concrete *wgpu.RenderPipeline is built per target format, see Build and Cache.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the shader providing the vertex and fragment stages.
	//
	// Returns:
	//   - shader.Shader: the pipeline's shader
	Shader() shader.Shader

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// SampleCount returns the multisample count of the color target.
	//
	// Returns:
	//   - uint32: the sample count, 1 when multisampling is off
	SampleCount() uint32

	// Descriptor builds the render pipeline descriptor for a color target format.
	//
	// Parameters:
	//   - format: the color target format, normally the surface format
	//   - module: the compiled shader module
	//   - layout: the pipeline layout, nil for an automatic layout
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor
	Descriptor(format wgpu.TextureFormat, module *wgpu.ShaderModule, layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor

	// Build compiles the shader and creates the render pipeline for format.
	//
	// Parameters:
	//   - device: the device to create the GPU objects on
	//   - format: the color target format
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the pipeline, owned by the caller
	//   - error: a shader module or pipeline creation error
	Build(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error)
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline. Defaults are a triangle list with
// counter-clockwise front faces, no culling, no blending and a single sample.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - s: the shader providing the vertex and fragment stages
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:  pipelineKey,
		shader:       s,
		blendEnabled: false,
		cullMode:     wgpu.CullModeNone,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		writeMask:    wgpu.ColorWriteMaskAll,
		sampleCount:  1,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) Descriptor(format wgpu.TextureFormat, module *wgpu.ShaderModule, layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor {
	target := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: p.writeMask,
	}
	if p.blendEnabled {
		target.Blend = p.blendState
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s Render Pipeline (%v)", p.pipelineKey, format),
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.shader.VertexEntryPoint(),
			Buffers:    p.vertexBuffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.shader.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: p.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
}

func (p *pipeline) Build(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	if device == nil {
		return nil, fmt.Errorf("build pipeline %s: no device", p.pipelineKey)
	}
	if p.shader == nil {
		return nil, fmt.Errorf("build pipeline %s: no shader", p.pipelineKey)
	}

	slog.Info("Create RenderPipeline",
		slog.String("key", p.pipelineKey),
		slog.String("shader", p.shader.Key()),
		slog.Any("format", format),
	)

	module, err := device.CreateShaderModule(p.shader.Module())
	if err != nil {
		return nil, fmt.Errorf("compile shader %s: %w", p.shader.Key(), err)
	}
	defer module.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: p.pipelineKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout %s: %w", p.pipelineKey, err)
	}
	defer layout.Release()

	created, err := device.CreateRenderPipeline(p.Descriptor(format, module, layout))
	if err != nil {
		return nil, fmt.Errorf("build pipeline %s: %w", p.pipelineKey, err)
	}
	return created, nil
}
