package engine

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/Carmen-Shannon/fever/common"
	"github.com/Carmen-Shannon/fever/engine/clock"
	"github.com/Carmen-Shannon/fever/engine/input"
	"github.com/Carmen-Shannon/fever/engine/renderer"
	"github.com/Carmen-Shannon/fever/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/fever/engine/state"
	"github.com/Carmen-Shannon/fever/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeWindow is a window.Window whose message loop runs a scripted sequence of events.
type fakeWindow struct {
	width, height int
	script        func(w *fakeWindow)
	closed        bool
	closeRequests int

	onReady       func()
	onRedraw      func()
	onResize      func(width, height int)
	onKey         func(key common.Key, action common.Action)
	onMouseButton func(button common.MouseButton, action common.Action)
	onCursor      func(x, y float64)
	onClose       func()
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetReadyCallback(cb func())                        { w.onReady = cb }
func (w *fakeWindow) SetRedrawCallback(cb func())                       { w.onRedraw = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int))      { w.onResize = cb }
func (w *fakeWindow) SetKeyCallback(cb func(common.Key, common.Action)) { w.onKey = cb }
func (w *fakeWindow) SetMouseButtonCallback(cb func(common.MouseButton, common.Action)) {
	w.onMouseButton = cb
}
func (w *fakeWindow) SetCursorCallback(cb func(x, y float64))    { w.onCursor = cb }
func (w *fakeWindow) SetCloseCallback(cb func())                 { w.onClose = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return &wgpu.SurfaceDescriptor{} }
func (w *fakeWindow) IsRunning() bool                            { return !w.closed }
func (w *fakeWindow) Close() error                               { w.closed = true; return nil }
func (w *fakeWindow) Width() int                                 { return w.width }
func (w *fakeWindow) Height() int                                { return w.height }

func (w *fakeWindow) RequestClose() {
	w.closeRequests++
	w.closed = true
}

func (w *fakeWindow) ProcessMessages() {
	if w.onReady != nil {
		w.onReady()
	}
	if w.script != nil {
		w.script(w)
	}
	if w.onClose != nil {
		w.onClose()
	}
}

func (w *fakeWindow) redraw() {
	if !w.closed {
		w.onRedraw()
	}
}

func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height
	w.onResize(width, height)
}

// triangle is a drawable issuing a single three-vertex draw.
type triangle struct{}

func (triangle) Prepare(renderer.FrameInfo) error { return nil }
func (triangle) Render(pass renderer.RenderPass)  { pass.Draw(3, 1, 0, 0) }

func newTestEngine(t *testing.T, w *fakeWindow, options ...EngineBuilderOption) (Engine, *renderertest.Backend) {
	t.Helper()
	b := renderertest.NewBackend()
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, renderer.WithBackend(b), renderer.WithDrawable(triangle{}))
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	if w != nil {
		options = append(options, WithWindow(w))
	}
	return NewEngine(r, options...), b
}

func TestRedrawBeforeReadyDrawsNothing(t *testing.T) {
	updates := 0
	e, b := newTestEngine(t, &fakeWindow{width: 800, height: 600},
		WithUpdater(state.UpdaterFunc(func(clock.Tick, *input.InputState) { updates++ })))

	e.HandleRedraw()
	e.HandleResize(1024, 768)

	if e.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", e.State())
	}
	if len(b.Calls) != 0 {
		t.Errorf("backend calls = %v, want none", b.Calls)
	}
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}
	if e.Err() != nil {
		t.Errorf("Err() = %v", e.Err())
	}
}

func TestFirstFrameAt800x600(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	w.script = func(w *fakeWindow) { w.redraw() }
	e, b := newTestEngine(t, w)

	if err := e.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(b.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(b.Frames))
	}
	f := b.Frames[0]
	if !f.Presented || f.Config.Width != 800 || f.Config.Height != 600 {
		t.Errorf("frame = %+v, want presented at 800x600", f)
	}
	draws := f.Pass.Draws()
	if len(draws) != 1 || draws[0].VertexCount != 3 || draws[0].InstanceCount != 1 {
		t.Errorf("draws = %+v, want one draw of 3 vertices, 1 instance", draws)
	}
	if !slices.Contains(b.Calls, "ReleaseSurface") {
		t.Error("surface not released when Run returned")
	}
	if e.Surface() != nil {
		t.Error("Surface() != nil after Run")
	}
}

func TestResizeBeforeRedraw(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	w.script = func(w *fakeWindow) {
		w.resize(1024, 768)
		w.redraw()
	}
	e, b := newTestEngine(t, w)

	if err := e.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(b.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(b.Frames))
	}
	for _, f := range b.Frames {
		if f.Config.Width != 1024 || f.Config.Height != 768 {
			t.Errorf("frame drawn at %dx%d, want 1024x768", f.Config.Width, f.Config.Height)
		}
	}
}

func TestMinimizeSkipsFrames(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	w.script = func(w *fakeWindow) {
		w.resize(0, 0)
		w.redraw()
		w.redraw()
		w.resize(640, 480)
		w.redraw()
	}
	e, b := newTestEngine(t, w)

	if err := e.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(b.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(b.Frames))
	}
	if f := b.Frames[0]; f.Config.Width != 640 || f.Config.Height != 480 {
		t.Errorf("frame drawn at %dx%d, want 640x480", f.Config.Width, f.Config.Height)
	}
}

func TestInputEdgesResetEachRedraw(t *testing.T) {
	type seen struct{ down, up, held bool }
	var frames []seen
	updater := state.UpdaterFunc(func(tick clock.Tick, in *input.InputState) {
		frames = append(frames, seen{
			down: in.Keys.IsDown(common.KeyW),
			up:   in.Keys.IsUp(common.KeyW),
			held: in.Keys.IsHeld(common.KeyW),
		})
	})

	w := &fakeWindow{width: 800, height: 600}
	w.script = func(w *fakeWindow) {
		w.onKey(common.KeyW, common.ActionPress)
		w.onKey(common.KeyW, common.ActionPress)
		w.redraw()
		w.redraw()
		w.onKey(common.KeyW, common.ActionRelease)
		w.redraw()
		w.redraw()
	}
	e, _ := newTestEngine(t, w, WithUpdater(updater))

	if err := e.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []seen{
		{down: true, held: true},
		{held: true},
		{up: true},
		{},
	}
	if !slices.Equal(frames, want) {
		t.Errorf("frames = %+v, want %+v", frames, want)
	}
}

func TestMouseEventsReachInput(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	var pressed bool
	var x, y float32
	w.script = func(w *fakeWindow) {
		w.onCursor(10, 20)
		w.onMouseButton(common.MouseButtonLeft, common.ActionPress)
		w.redraw()
	}
	e, _ := newTestEngine(t, w, WithUpdater(state.UpdaterFunc(func(_ clock.Tick, in *input.InputState) {
		pressed = in.Mouse.IsDown(common.MouseButtonLeft)
		x, y = in.Mouse.Position()
	})))

	if err := e.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !pressed || x != 10 || y != 20 {
		t.Errorf("pressed = %v, position = (%v, %v)", pressed, x, y)
	}
}

func TestTicksAdvancePerRedraw(t *testing.T) {
	now := time.Unix(0, 0)
	c := clock.NewClock(clock.WithTimeSource(func() time.Time { return now }))
	sys := state.NewStateSystem()

	w := &fakeWindow{width: 800, height: 600}
	w.script = func(w *fakeWindow) {
		for range 3 {
			now = now.Add(16 * time.Millisecond)
			w.redraw()
		}
	}
	e, _ := newTestEngine(t, w, WithClock(c), WithUpdater(sys))

	if err := e.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if sys.Ticks() != 3 || sys.LastTick().Frame != 3 {
		t.Errorf("Ticks() = %d, last frame = %d, want 3, 3", sys.Ticks(), sys.LastTick().Frame)
	}
	if d := sys.LastTick().Delta; d < 0.0159 || d > 0.0161 {
		t.Errorf("last delta = %v, want 0.016", d)
	}
}

func TestReadyFailureIsFatal(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	w.script = func(w *fakeWindow) { w.redraw() }
	e, b := newTestEngine(t, w)
	b.CreateErr = renderer.ErrSurfaceCreation

	err := e.Run()
	if !errors.Is(err, renderer.ErrSurfaceCreation) {
		t.Fatalf("Run error = %v, want ErrSurfaceCreation", err)
	}
	if e.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", e.State())
	}
	if w.closeRequests != 1 {
		t.Errorf("close requests = %d, want 1", w.closeRequests)
	}
	if len(b.Frames) != 0 {
		t.Errorf("frames = %d, want 0", len(b.Frames))
	}
}

func TestDeviceLostIsFatal(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	var b *renderertest.Backend
	w.script = func(w *fakeWindow) {
		b.AcquireErrs = []error{renderer.ErrSurfaceOutdated, renderer.ErrSurfaceOutdated}
		w.redraw()
		w.redraw()
	}
	var e Engine
	e, b = newTestEngine(t, w)

	if err := e.Run(); !errors.Is(err, renderer.ErrDeviceLost) {
		t.Fatalf("Run error = %v, want ErrDeviceLost", err)
	}
	if n := len(b.Frames); n != 0 {
		t.Errorf("frames = %d after device loss, want 0", n)
	}
}

func TestRepeatedReadyIgnored(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	w.script = func(w *fakeWindow) {
		w.onReady()
		w.onReady()
	}
	e, b := newTestEngine(t, w)

	if err := e.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	n := 0
	for _, c := range b.Calls {
		if c == "CreateSurface" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("CreateSurface calls = %d, want 1", n)
	}
}

func TestCloseStopsFrames(t *testing.T) {
	w := &fakeWindow{width: 800, height: 600}
	e, b := newTestEngine(t, w)
	w.script = func(w *fakeWindow) {
		w.redraw()
		e.HandleClose()
		e.HandleRedraw()
		e.HandleResize(1024, 768)
	}

	if err := e.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(b.Frames) != 1 {
		t.Errorf("frames = %d, want 1", len(b.Frames))
	}
	if slices.Contains(b.Calls, "Configure 1024x768") {
		t.Error("surface reconfigured after close")
	}
	e.Quit()
	e.Quit()
	if w.closeRequests != 1 {
		t.Errorf("close requests = %d, want 1", w.closeRequests)
	}
}

func TestRunWithoutWindow(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	if err := e.Run(); !errors.Is(err, ErrNoWindow) {
		t.Errorf("Run error = %v, want ErrNoWindow", err)
	}
	e.HandleReady()
	if !errors.Is(e.Err(), ErrNoWindow) {
		t.Errorf("Err() = %v, want ErrNoWindow", e.Err())
	}
	e.Quit()
}

func TestStateString(t *testing.T) {
	if StateUninitialized.String() != "uninitialized" || StateActive.String() != "active" || State(9).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}
