package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/fever/common"
	"github.com/Carmen-Shannon/fever/engine/clock"
	"github.com/Carmen-Shannon/fever/engine/input"
	"github.com/Carmen-Shannon/fever/engine/profiler"
	"github.com/Carmen-Shannon/fever/engine/renderer"
	"github.com/Carmen-Shannon/fever/engine/state"
	"github.com/Carmen-Shannon/fever/engine/window"
)

// State is the lifecycle state of the frame driver.
type State int

const (
	// StateUninitialized means no surface is bound yet; redraws draw nothing.
	StateUninitialized State = iota

	// StateActive means the window and its surface are bound.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// ErrNoWindow is returned by Run when the engine has no window to drive it.
var ErrNoWindow = errors.New("engine: no window")

// engine implements the Engine interface.
// Every handler runs on the thread that owns the window and the renderer.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	surface  *renderer.Surface

	input   *input.InputSystem
	clock   *clock.Clock
	updater state.Updater

	profiler         *profiler.Profiler
	profilingEnabled bool

	state  State
	closed bool
	err    error

	quitOnce sync.Once
}

// Engine is the frame driver. It binds the renderer to the window once the window is ready,
// feeds platform input into the input snapshot and runs one frame per redraw:
// tick the clock, update the simulation, reset the input edges, draw.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil
	Window() window.Window

	// Renderer returns the device context frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Surface returns the bound surface, or nil while uninitialized.
	//
	// Returns:
	//   - *renderer.Surface: the surface
	Surface() *renderer.Surface

	// Input returns the input system fed by the handlers.
	//
	// Returns:
	//   - *input.InputSystem: the input system
	Input() *input.InputSystem

	// State returns the current lifecycle state.
	//
	// Returns:
	//   - State: StateUninitialized or StateActive
	State() State

	// EnableProfiler enables per-frame statistics logging.
	EnableProfiler()

	// DisableProfiler disables per-frame statistics logging.
	DisableProfiler()

	// HandleReady binds a surface to the window and moves the engine to StateActive.
	// A failure is fatal: the engine quits and Run returns the error. Ignored while active.
	HandleReady()

	// HandleKey forwards a key event to the input snapshot.
	//
	// Parameters:
	//   - key: the key
	//   - action: press, release or repeat
	HandleKey(key common.Key, action common.Action)

	// HandleMouseButton forwards a mouse button event to the input snapshot.
	//
	// Parameters:
	//   - button: the button
	//   - action: press or release
	HandleMouseButton(button common.MouseButton, action common.Action)

	// HandleCursor forwards a cursor movement to the input snapshot.
	//
	// Parameters:
	//   - x, y: the cursor position in window coordinates
	HandleCursor(x, y float64)

	// HandleResize reconfigures the surface to the new framebuffer size before the next frame.
	// No-op while uninitialized.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	HandleResize(width, height int)

	// HandleRedraw runs one frame. Drawing is skipped while uninitialized.
	HandleRedraw()

	// HandleClose stops frame processing and asks the window loop to end.
	HandleClose()

	// Run wires the window callbacks to the handlers and blocks in the window's message loop.
	// The surface is released before Run returns.
	//
	// Returns:
	//   - error: the first fatal error, or nil after a normal close
	Run() error

	// Quit asks the window loop to end. Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Err returns the first fatal error, or nil.
	//
	// Returns:
	//   - error: the error
	Err() error
}

var _ Engine = &engine{}

// NewEngine creates a new Engine drawing with r.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - r: the device context, owned by the caller
//   - options: functional options for engine configuration (window, updater, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(r renderer.Renderer, options ...EngineBuilderOption) Engine {
	e := &engine{
		renderer: r,
		input:    input.NewInputSystem(),
		clock:    clock.NewClock(),
		updater:  state.NewStateSystem(),
		state:    StateUninitialized,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Surface() *renderer.Surface {
	return e.surface
}

func (e *engine) Input() *input.InputSystem {
	return e.input
}

func (e *engine) State() State {
	return e.state
}

// EnableProfiler enables per-frame statistics logging.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables per-frame statistics logging.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) HandleReady() {
	if e.state == StateActive || e.closed {
		return
	}
	if e.window == nil {
		e.fail(ErrNoWindow)
		return
	}

	s, err := e.renderer.CreateSurface(e.window)
	if err != nil {
		e.fail(fmt.Errorf("bind surface: %w", err))
		return
	}
	e.surface = s
	e.state = StateActive
	slog.Info("Engine active", slog.Int("width", int(s.Width())), slog.Int("height", int(s.Height())))
}

func (e *engine) HandleKey(key common.Key, action common.Action) {
	e.input.UpdateKeyboard(key, action)
}

func (e *engine) HandleMouseButton(button common.MouseButton, action common.Action) {
	e.input.UpdateMouse(button, action)
}

func (e *engine) HandleCursor(x, y float64) {
	e.input.UpdateCursor(x, y)
}

func (e *engine) HandleResize(width, height int) {
	if e.state != StateActive || e.closed {
		return
	}
	if err := e.renderer.ConfigureSize(e.surface, width, height); err != nil {
		e.fail(fmt.Errorf("resize surface to %dx%d: %w", width, height, err))
	}
}

func (e *engine) HandleRedraw() {
	if e.closed {
		return
	}

	tick := e.clock.Tock()
	if e.updater != nil {
		e.updater.Update(tick, e.input.CurrentState())
	}
	e.input.Reset()

	if e.state != StateActive {
		return
	}
	if err := e.renderer.Draw(e.surface); err != nil {
		e.fail(fmt.Errorf("draw frame %d: %w", tick.Frame, err))
		return
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) HandleClose() {
	e.closed = true
	e.Quit()
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	e.window.SetReadyCallback(e.HandleReady)
	e.window.SetKeyCallback(e.HandleKey)
	e.window.SetMouseButtonCallback(e.HandleMouseButton)
	e.window.SetCursorCallback(e.HandleCursor)
	e.window.SetResizeCallback(e.HandleResize)
	e.window.SetRedrawCallback(e.HandleRedraw)
	e.window.SetCloseCallback(e.HandleClose)

	e.window.ProcessMessages()

	e.closed = true
	if e.surface != nil {
		e.renderer.DestroySurface(e.surface)
		e.surface = nil
	}
	return e.err
}

// Quit asks the window loop to end.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) Err() error {
	return e.err
}

// fail records the first fatal error, stops frame processing and quits.
func (e *engine) fail(err error) {
	if e.err == nil {
		e.err = err
		slog.Error("Fatal engine error", slog.String("error", err.Error()))
	}
	e.closed = true
	e.Quit()
}
