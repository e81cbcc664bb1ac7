package shader

// ShaderBuilderOption is a functional option applied to a shader during construction via NewShader.
type ShaderBuilderOption func(*shader)

// WithEntryPoints overrides the parsed entry points. Both names must still exist in the source
// for the pipeline to build.
//
// Parameters:
//   - vertex: the vertex entry point name
//   - fragment: the fragment entry point name
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry points to a shader
func WithEntryPoints(vertex, fragment string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntry = vertex
		s.fragmentEntry = fragment
	}
}

// WithoutValidation skips the naga compile step. Entry points are still required.
//
// Returns:
//   - ShaderBuilderOption: a function that disables validation on a shader
func WithoutValidation() ShaderBuilderOption {
	return func(s *shader) {
		s.skipValidation = true
	}
}
