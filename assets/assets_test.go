package assets

import (
	"testing"

	"github.com/Carmen-Shannon/fever/engine/renderer/shader"
)

func TestTriangleShaderLoads(t *testing.T) {
	l := shader.NewLibrary(Shaders)
	if err := l.Preload("shaders/*.wgsl"); err != nil {
		t.Fatalf("Preload error: %v", err)
	}

	s, err := l.Shader(shader.Key(TriangleShader))
	if err != nil {
		t.Fatalf("Shader error: %v", err)
	}
	if s.VertexEntryPoint() != "vs_main" || s.FragmentEntryPoint() != "fs_main" {
		t.Errorf("entry points = %q, %q, want vs_main, fs_main", s.VertexEntryPoint(), s.FragmentEntryPoint())
	}
}
