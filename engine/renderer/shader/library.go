package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Library loads WGSL shaders from a file system and keeps them by key.
// The key of a shader is its file name without the .wgsl extension.
// Loading is safe for concurrent use; lookups after Preload are read-only.
type Library struct {
	fsys    fs.FS
	workers int
	options []ShaderBuilderOption

	mu      sync.RWMutex
	shaders map[string]Shader
}

// NewLibrary creates a Library reading from fsys.
//
// Parameters:
//   - fsys: the file system holding the .wgsl files, e.g. an embed.FS or os.DirFS
//   - options: variadic list of LibraryBuilderOption functions
//
// Returns:
//   - *Library: the empty library
func NewLibrary(fsys fs.FS, options ...LibraryBuilderOption) *Library {
	l := &Library{
		fsys:    fsys,
		workers: 4,
		shaders: make(map[string]Shader),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Key derives the library key from a file name.
//
// Parameters:
//   - name: the slash separated file name, e.g. "shaders/triangle.wgsl"
//
// Returns:
//   - string: the key, e.g. "triangle"
func Key(name string) string {
	return strings.TrimSuffix(path.Base(name), ".wgsl")
}

// Load reads, parses and validates a single file and stores the shader under its key.
// Loading a key twice replaces the earlier shader.
//
// Parameters:
//   - name: the file name within the library's file system
//
// Returns:
//   - Shader: the loaded shader
//   - error: a read, parse or validation error
func (l *Library) Load(name string) (Shader, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read shader %s: %w", name, err)
	}

	s, err := NewShader(Key(name), string(data), l.options...)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.shaders[s.Key()] = s
	l.mu.Unlock()

	slog.Debug("Shader loaded",
		slog.String("key", s.Key()),
		slog.String("vertex", s.VertexEntryPoint()),
		slog.String("fragment", s.FragmentEntryPoint()),
	)
	return s, nil
}

// Preload loads every file matching pattern on a bounded worker pool and waits for all of them.
//
// Parameters:
//   - pattern: an fs.Glob pattern, e.g. "shaders/*.wgsl"
//
// Returns:
//   - error: every load error joined, or an error if nothing matched
func (l *Library) Preload(pattern string) error {
	names, err := fs.Glob(l.fsys, pattern)
	if err != nil {
		return fmt.Errorf("preload %q: %w", pattern, err)
	}
	if len(names) == 0 {
		return fmt.Errorf("preload %q: %w", pattern, fs.ErrNotExist)
	}

	start := time.Now()
	pool := worker.NewDynamicWorkerPool(min(l.workers, len(names)), 256, 1*time.Second)

	// A WaitGroup is the barrier; the pool's own idle shutdown is not.
	var wg sync.WaitGroup
	errs := make([]error, len(names))
	for i, name := range names {
		wg.Add(1)
		id := i
		file := name
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				_, err := l.Load(file)
				errs[id] = err
				return nil, err
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	slog.Info("Shaders preloaded",
		slog.Int("count", len(names)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Shader looks up a loaded shader.
//
// Parameters:
//   - key: the shader key
//
// Returns:
//   - Shader: the shader
//   - error: ErrShaderNotFound (wrapped) if the key was never loaded
func (l *Library) Shader(key string) (Shader, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.shaders[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrShaderNotFound, key)
	}
	return s, nil
}

// Keys returns the loaded keys in sorted order.
func (l *Library) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.shaders))
	for k := range l.shaders {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
