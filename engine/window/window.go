package window

import (
	"runtime"

	"github.com/Carmen-Shannon/fever/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the platform event source. It owns the OS window and drives the loop:
// ready once, then input and resize events as they arrive, then one redraw per loop
// iteration until the window is asked to close.
// A Window satisfies renderer.SurfaceTarget.
type Window interface {
	// SetReadyCallback sets the function called once when the loop starts, before the first redraw.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetReadyCallback(callback func())

	// SetRedrawCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetRedrawCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyCallback sets the callback for keyboard events.
	//
	// Parameters:
	//   - callback: function receiving the key and the press, release or repeat action
	SetKeyCallback(callback func(key common.Key, action common.Action))

	// SetMouseButtonCallback sets the callback for mouse button events.
	//
	// Parameters:
	//   - callback: function receiving the button and the press or release action
	SetMouseButtonCallback(callback func(button common.MouseButton, action common.Action))

	// SetCursorCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetCursorCallback(callback func(x, y float64))

	// SetCloseCallback sets the function called once when the loop ends.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetCloseCallback(callback func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the loop to stop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the ready callback first, the redraw
	// callback each iteration and the close callback on exit.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// maximized opens the window maximized.
	maximized bool

	// escapeCloses closes the window on an Escape press instead of reporting the key.
	escapeCloses bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onReady       func()
	onRedraw      func()
	onResize      func(width, height int)
	onKey         func(key common.Key, action common.Action)
	onMouseButton func(button common.MouseButton, action common.Action)
	onCursor      func(x, y float64)
	onClose       func()
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
// Must be called from the main goroutine; the calling OS thread is locked.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:        "Fever",
		minWidth:     1,
		minHeight:    1,
		width:        1280,
		height:       720,
		maximized:    true,
		escapeCloses: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetReadyCallback(callback func()) {
	w.onReady = callback
}

func (w *engineWindow) SetRedrawCallback(callback func()) {
	w.onRedraw = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyCallback(callback func(key common.Key, action common.Action)) {
	w.onKey = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button common.MouseButton, action common.Action)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetCursorCallback(callback func(x, y float64)) {
	w.onCursor = callback
}

func (w *engineWindow) SetCloseCallback(callback func()) {
	w.onClose = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	if w.onReady != nil {
		w.onReady()
	}

	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onRedraw != nil {
			w.onRedraw()
		}

		runtime.Gosched()
	}

	if w.onClose != nil {
		w.onClose()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// handleKey routes a key event, closing the window on Escape when enabled.
func (w *engineWindow) handleKey(key common.Key, action common.Action) {
	if w.escapeCloses && key == common.KeyEsc && action == common.ActionPress {
		w.RequestClose()
		return
	}
	if w.onKey != nil {
		w.onKey(key, action)
	}
}

// handleResize records the framebuffer size and reports it.
func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
