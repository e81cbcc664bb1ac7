package drawable

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/fever/engine/renderer"
	"github.com/Carmen-Shannon/fever/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/fever/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/fever/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const source = "@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }\n" +
	"@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }"

func newCache(t *testing.T, formats *[]wgpu.TextureFormat, err error) *pipeline.Cache {
	t.Helper()
	c, cerr := pipeline.NewCache(func(p pipeline.Pipeline, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
		if err != nil {
			return nil, err
		}
		*formats = append(*formats, format)
		return new(wgpu.RenderPipeline), nil
	}, pipeline.WithReleaseFunc(func(*wgpu.RenderPipeline) {}))
	if cerr != nil {
		t.Fatalf("NewCache error: %v", cerr)
	}
	return c
}

func newTriangle(t *testing.T, c *pipeline.Cache) *Triangle {
	t.Helper()
	s, err := shader.NewShader("triangle", source, shader.WithoutValidation())
	if err != nil {
		t.Fatalf("NewShader error: %v", err)
	}
	return NewTriangle(pipeline.NewPipeline("triangle", s), c)
}

func TestTriangleRecordsOneDraw(t *testing.T) {
	var formats []wgpu.TextureFormat
	tri := newTriangle(t, newCache(t, &formats, nil))

	pass := &renderertest.Pass{}
	if err := tri.Prepare(renderer.FrameInfo{Width: 800, Height: 600, Format: wgpu.TextureFormatBGRA8Unorm, Frame: 1}); err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	tri.Render(pass)

	if len(pass.Commands) != 2 || pass.Commands[0].Op != "SetPipeline" || pass.Commands[0].Pipeline == nil {
		t.Fatalf("commands = %+v, want SetPipeline then Draw", pass.Commands)
	}
	draws := pass.Draws()
	if len(draws) != 1 || draws[0].VertexCount != 3 || draws[0].InstanceCount != 1 {
		t.Errorf("draws = %+v, want one draw of 3 vertices, 1 instance", draws)
	}
}

func TestTrianglePipelineFollowsFormat(t *testing.T) {
	var formats []wgpu.TextureFormat
	tri := newTriangle(t, newCache(t, &formats, nil))

	for _, f := range []wgpu.TextureFormat{
		wgpu.TextureFormatBGRA8Unorm,
		wgpu.TextureFormatBGRA8Unorm,
		wgpu.TextureFormatRGBA8Unorm,
		wgpu.TextureFormatBGRA8Unorm,
	} {
		if err := tri.Prepare(renderer.FrameInfo{Format: f}); err != nil {
			t.Fatalf("Prepare(%v) error: %v", f, err)
		}
	}
	if len(formats) != 2 || formats[0] != wgpu.TextureFormatBGRA8Unorm || formats[1] != wgpu.TextureFormatRGBA8Unorm {
		t.Errorf("built formats = %v, want one build per format", formats)
	}
}

func TestTriangleFailedPrepareDrawsNothing(t *testing.T) {
	var formats []wgpu.TextureFormat
	tri := newTriangle(t, newCache(t, &formats, errors.New("no device")))

	if err := tri.Prepare(renderer.FrameInfo{Format: wgpu.TextureFormatBGRA8Unorm}); err == nil {
		t.Fatal("expected a Prepare error")
	}
	pass := &renderertest.Pass{}
	tri.Render(pass)
	if len(pass.Commands) != 0 {
		t.Errorf("commands = %+v, want none", pass.Commands)
	}
}

func TestTriangleFrame(t *testing.T) {
	var formats []wgpu.TextureFormat
	b := renderertest.NewBackend()
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU,
		renderer.WithBackend(b),
		renderer.WithDrawable(newTriangle(t, newCache(t, &formats, nil))),
	)
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	s, err := r.CreateSurface(&renderertest.Target{W: 800, H: 600})
	if err != nil {
		t.Fatalf("CreateSurface error: %v", err)
	}

	if err := r.Draw(s); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	f := b.LastFrame()
	if f == nil || !f.Presented {
		t.Fatal("no frame presented")
	}
	if f.Config.Width != 800 || f.Config.Height != 600 {
		t.Errorf("frame at %dx%d, want 800x600", f.Config.Width, f.Config.Height)
	}
	draws := f.Pass.Draws()
	if len(draws) != 1 || draws[0].VertexCount != 3 || draws[0].InstanceCount != 1 {
		t.Errorf("draws = %+v, want one draw of 3 vertices, 1 instance", draws)
	}
	if len(formats) != 1 || formats[0] != b.Default.Format {
		t.Errorf("pipeline built for %v, want the surface format %v", formats, b.Default.Format)
	}
}
