package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/fever/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

var (
	// ErrMissingEntryPoint is returned when a shader lacks a @vertex or @fragment function.
	ErrMissingEntryPoint = errors.New("shader: missing entry point")

	// ErrShaderNotFound is returned by Library lookups for keys that were never loaded.
	ErrShaderNotFound = errors.New("shader: not found")
)

// shader is the implementation of the Shader interface.
type shader struct {
	key            string
	source         string
	vertexEntry    string
	fragmentEntry  string
	module         *wgpu.ShaderModuleDescriptor
	skipValidation bool
}

// Shader is a validated WGSL render shader with one vertex and one fragment entry point.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// VertexEntryPoint returns the name of the first @vertex function.
	//
	// Returns:
	//   - string: the vertex entry point (e.g. "vs_main")
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the first @fragment function.
	//
	// Returns:
	//   - string: the fragment entry point (e.g. "fs_main")
	FragmentEntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor built from the source, labelled with the key.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader parses and validates WGSL source. The source is compiled with naga so that
// syntax and type errors surface at load time instead of at pipeline creation.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - source: the WGSL source code
//   - options: variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrMissingEntryPoint (wrapped) or a naga compile error wrapped with the key
func NewShader(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key:    key,
		source: source,
	}
	for _, opt := range options {
		opt(s)
	}

	s.vertexEntry = common.Coalesce(s.vertexEntry, parseEntryPoint(source, stageVertex))
	s.fragmentEntry = common.Coalesce(s.fragmentEntry, parseEntryPoint(source, stageFragment))
	if s.vertexEntry == "" {
		return nil, fmt.Errorf("%w: %s has no @vertex function", ErrMissingEntryPoint, key)
	}
	if s.fragmentEntry == "" {
		return nil, fmt.Errorf("%w: %s has no @fragment function", ErrMissingEntryPoint, key)
	}

	if !s.skipValidation {
		if _, err := naga.Compile(source); err != nil {
			return nil, fmt.Errorf("shader %s: %w", key, err)
		}
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
