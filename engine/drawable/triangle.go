// Package drawable holds the drawables the engine ships with.
package drawable

import (
	"fmt"

	"github.com/Carmen-Shannon/fever/engine/renderer"
	"github.com/Carmen-Shannon/fever/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineSource resolves a pipeline descriptor to a GPU pipeline for a target format.
// *pipeline.Cache satisfies it.
type PipelineSource interface {
	Get(p pipeline.Pipeline, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error)
}

var _ PipelineSource = &pipeline.Cache{}

// Triangle draws a single triangle whose vertices come from the vertex index.
type Triangle struct {
	pipeline pipeline.Pipeline
	source   PipelineSource
	current  *wgpu.RenderPipeline
}

var _ renderer.Drawable = &Triangle{}

// NewTriangle creates a Triangle drawn with p.
//
// Parameters:
//   - p: the triangle pipeline descriptor
//   - source: resolves p for the surface format each frame
//
// Returns:
//   - *Triangle: the drawable
func NewTriangle(p pipeline.Pipeline, source PipelineSource) *Triangle {
	return &Triangle{
		pipeline: p,
		source:   source,
	}
}

// Prepare resolves the pipeline for the frame's target format.
func (t *Triangle) Prepare(info renderer.FrameInfo) error {
	rp, err := t.source.Get(t.pipeline, info.Format)
	if err != nil {
		t.current = nil
		return fmt.Errorf("triangle pipeline for %v: %w", info.Format, err)
	}
	t.current = rp
	return nil
}

// Render binds the pipeline and draws three vertices, one instance.
func (t *Triangle) Render(pass renderer.RenderPass) {
	if t.current == nil {
		return
	}
	pass.SetPipeline(t.current)
	pass.Draw(3, 1, 0, 0)
}
