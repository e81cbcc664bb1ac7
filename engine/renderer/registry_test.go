package renderer

import "testing"

type namedDrawable struct {
	name string
}

func (d *namedDrawable) Prepare(FrameInfo) error { return nil }
func (d *namedDrawable) Render(RenderPass)       {}

type meshDrawable struct {
	vertices []uint32
}

func (d meshDrawable) Prepare(FrameInfo) error { return nil }
func (d meshDrawable) Render(RenderPass)       {}

type wrappedDrawable struct {
	inner any
}

func (d wrappedDrawable) Prepare(FrameInfo) error { return nil }
func (d wrappedDrawable) Render(RenderPass)       {}

func names(r *Registry) []string {
	var out []string
	for _, d := range r.All() {
		out = append(out, d.(*namedDrawable).name)
	}
	return out
}

func TestRegistryPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}

	a, b, c := &namedDrawable{"a"}, &namedDrawable{"b"}, &namedDrawable{"c"}
	r.Add(a)
	r.Add(b)
	r.Add(nil)
	r.Add(c)

	if got := names(r); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order = %v, want [a b c]", got)
	}

	if !r.Remove(b) {
		t.Fatal("Remove(b) = false")
	}
	if r.Remove(b) {
		t.Error("second Remove(b) = true")
	}
	if got := names(r); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("order after remove = %v, want [a c]", got)
	}
}

func TestRegistryAllStopsEarly(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"a", "b", "c"} {
		r.Add(&namedDrawable{n})
	}

	visited := 0
	for i := range r.All() {
		visited++
		if i == 1 {
			break
		}
	}
	if visited != 2 {
		t.Errorf("visited = %d, want 2", visited)
	}
}

func TestRecordEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	if got := r.Record(FrameInfo{Frame: 1}, nil); got != 0 {
		t.Errorf("Record() = %d, want 0", got)
	}
}

func TestRegistryRemoveUncomparableDrawable(t *testing.T) {
	r := NewRegistry()
	a := &namedDrawable{"a"}
	r.Add(meshDrawable{vertices: []uint32{1, 2, 3}})
	r.Add(wrappedDrawable{inner: []uint32{1}})
	r.Add(a)

	if r.Remove(meshDrawable{}) {
		t.Error("Remove(meshDrawable{}) = true, want false")
	}
	if r.Remove(wrappedDrawable{inner: []uint32{1}}) {
		t.Error("Remove(wrappedDrawable{}) = true, want false")
	}
	if r.Remove(&namedDrawable{"a"}) {
		t.Error("Remove of a different pointer = true, want false")
	}
	if !r.Remove(a) {
		t.Error("Remove(a) = false, want true")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistryRemoveComparableValue(t *testing.T) {
	r := NewRegistry()
	r.Add(wrappedDrawable{inner: "triangle"})
	if !r.Remove(wrappedDrawable{inner: "triangle"}) {
		t.Error("Remove(equal value) = false, want true")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
