package renderer

import (
	"iter"
	"log/slog"
	"reflect"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// RenderPass is the recording surface handed to drawables.
// It only records commands; submission and presentation stay with the Renderer.
// *wgpu.RenderPassEncoder satisfies it.
type RenderPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
}

// FrameInfo describes the target of the frame being recorded.
type FrameInfo struct {
	Width  uint32
	Height uint32
	Format wgpu.TextureFormat

	// Frame is the 1-based index of the frame.
	Frame uint64
}

// Drawable is a component that can prepare per-frame resources and record draw commands.
type Drawable interface {
	// Prepare is called once per frame before Render. It must be safe to call every frame
	// without accumulating GPU resources.
	//
	// Parameters:
	//   - info: the size and format of the frame's target
	//
	// Returns:
	//   - error: an error if the drawable cannot render this frame
	Prepare(info FrameInfo) error

	// Render records draw and bind commands into pass.
	//
	// Parameters:
	//   - pass: the open render pass of the current frame
	Render(pass RenderPass)
}

// Releaser is implemented by drawables that own GPU resources.
type Releaser interface {
	Release()
}

// Registry is an ordered collection of drawables. Insertion order is draw order.
type Registry struct {
	items []Drawable
}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - *Registry: the empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends d to the end of the draw order.
//
// Parameters:
//   - d: the drawable to add; nil is ignored
func (r *Registry) Add(d Drawable) {
	if d == nil {
		return
	}
	r.items = append(r.items, d)
}

// Remove removes the first occurrence of d, keeping the order of the rest.
// Drawables are matched by ==; values of an uncomparable type never match, so
// register those by pointer if they need to be removed.
//
// Parameters:
//   - d: the drawable to remove
//
// Returns:
//   - bool: true if d was found
func (r *Registry) Remove(d Drawable) bool {
	i := slices.IndexFunc(r.items, func(item Drawable) bool {
		return sameDrawable(item, d)
	})
	if i < 0 {
		return false
	}
	r.items = slices.Delete(r.items, i, i+1)
	return true
}

// Len returns the number of registered drawables.
func (r *Registry) Len() int {
	return len(r.items)
}

// All iterates the drawables in draw order.
func (r *Registry) All() iter.Seq2[int, Drawable] {
	return func(yield func(int, Drawable) bool) {
		for i, d := range r.items {
			if !yield(i, d) {
				return
			}
		}
	}
}

// Record calls Prepare then Render on every drawable in order.
// A drawable whose Prepare fails is skipped for this frame only.
//
// Parameters:
//   - info: the target of the current frame
//   - pass: the open render pass
//
// Returns:
//   - int: the number of drawables that recorded into the pass
func (r *Registry) Record(info FrameInfo, pass RenderPass) int {
	rendered := 0
	for i, d := range r.items {
		if err := d.Prepare(info); err != nil {
			slog.Warn("Skipping drawable for this frame",
				slog.Int("index", i),
				slog.Uint64("frame", info.Frame),
				slog.String("error", err.Error()),
			)
			continue
		}
		d.Render(pass)
		rendered++
	}
	return rendered
}

// Release releases every drawable implementing Releaser in reverse order and empties the registry.
func (r *Registry) Release() {
	for i := len(r.items) - 1; i >= 0; i-- {
		if rel, ok := r.items[i].(Releaser); ok {
			rel.Release()
		}
	}
	r.items = nil
}

func sameDrawable(a, b Drawable) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
