package shader

// LibraryBuilderOption is a functional option applied to a Library during construction via NewLibrary.
type LibraryBuilderOption func(*Library)

// WithWorkers sets how many goroutines Preload uses.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - LibraryBuilderOption: a function that applies the worker count to a library
func WithWorkers(n int) LibraryBuilderOption {
	return func(l *Library) {
		l.workers = max(n, 1)
	}
}

// WithShaderOptions applies options to every shader the library loads.
//
// Parameters:
//   - options: the shader options
//
// Returns:
//   - LibraryBuilderOption: a function that stores the shader options on a library
func WithShaderOptions(options ...ShaderBuilderOption) LibraryBuilderOption {
	return func(l *Library) {
		l.options = append(l.options, options...)
	}
}
