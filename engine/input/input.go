// Package input accumulates raw keyboard and mouse events into a per-frame snapshot.
//
// Edge-triggered sets (down, up) hold the transitions seen since the last Reset.
// The level-triggered held set carries forward across frames until the matching release.
package input

import (
	"log/slog"

	"github.com/Carmen-Shannon/fever/common"
)

type set[K comparable] map[K]struct{}

func (s set[K]) has(k K) bool {
	_, ok := s[k]
	return ok
}

func (s *set[K]) add(k K) {
	if *s == nil {
		*s = make(set[K])
	}
	(*s)[k] = struct{}{}
}

func (s set[K]) remove(k K) {
	delete(s, k)
}

// KeyboardState is the keyboard part of an InputState.
type KeyboardState struct {
	down set[common.Key]
	up   set[common.Key]
	held set[common.Key]
}

// IsDown reports whether key was pressed since the last Reset.
func (k *KeyboardState) IsDown(key common.Key) bool { return k.down.has(key) }

// IsUp reports whether key was released since the last Reset.
func (k *KeyboardState) IsUp(key common.Key) bool { return k.up.has(key) }

// IsHeld reports whether key is currently held down.
func (k *KeyboardState) IsHeld(key common.Key) bool { return k.held.has(key) }

// Held returns the number of keys currently held.
func (k *KeyboardState) Held() int { return len(k.held) }

func (k *KeyboardState) press(key common.Key) {
	k.down.add(key)
	k.held.add(key)
}

func (k *KeyboardState) release(key common.Key) {
	k.up.add(key)
	k.held.remove(key)
}

func (k *KeyboardState) reset() {
	clear(k.down)
	clear(k.up)
}

// MouseState is the mouse part of an InputState.
type MouseState struct {
	x, y           float32
	deltaX, deltaY float32
	hasPosition    bool

	down set[common.MouseButton]
	up   set[common.MouseButton]
	held set[common.MouseButton]
}

// IsDown reports whether button was pressed since the last Reset.
func (m *MouseState) IsDown(button common.MouseButton) bool { return m.down.has(button) }

// IsUp reports whether button was released since the last Reset.
func (m *MouseState) IsUp(button common.MouseButton) bool { return m.up.has(button) }

// IsHeld reports whether button is currently held down.
func (m *MouseState) IsHeld(button common.MouseButton) bool { return m.held.has(button) }

// Position returns the last known cursor position in window coordinates.
func (m *MouseState) Position() (x, y float32) { return m.x, m.y }

// Delta returns the cursor movement accumulated since the last Reset.
func (m *MouseState) Delta() (dx, dy float32) { return m.deltaX, m.deltaY }

func (m *MouseState) press(button common.MouseButton) {
	m.down.add(button)
	m.held.add(button)
}

func (m *MouseState) release(button common.MouseButton) {
	m.up.add(button)
	m.held.remove(button)
}

func (m *MouseState) move(x, y float32) {
	// The first cursor event only establishes a position.
	if m.hasPosition {
		m.deltaX += x - m.x
		m.deltaY += y - m.y
	}
	m.x, m.y = x, y
	m.hasPosition = true
}

func (m *MouseState) reset() {
	clear(m.down)
	clear(m.up)
	m.deltaX, m.deltaY = 0, 0
}

// InputState is the read-only view handed to the simulation update.
type InputState struct {
	Keys  KeyboardState
	Mouse MouseState
}

// InputSystem owns the InputState and applies raw platform events to it.
type InputSystem struct {
	state InputState
}

// NewInputSystem creates an InputSystem with an empty state.
//
// Returns:
//   - *InputSystem: the new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// CurrentState returns the snapshot accumulated since the last Reset.
// The returned pointer stays valid for the lifetime of the InputSystem.
//
// Returns:
//   - *InputState: the current input snapshot
func (s *InputSystem) CurrentState() *InputState {
	return &s.state
}

// UpdateKeyboard applies a key event.
// Repeats are ignored since the key is already held.
//
// Parameters:
//   - key: the physical key code
//   - action: press, release or repeat
func (s *InputSystem) UpdateKeyboard(key common.Key, action common.Action) {
	if key == common.KeyUnknown {
		slog.Debug("Ignoring unknown key", slog.String("action", action.String()))
		return
	}

	switch action {
	case common.ActionPress:
		s.state.Keys.press(key)
	case common.ActionRelease:
		s.state.Keys.release(key)
	}
}

// UpdateMouse applies a mouse button event.
//
// Parameters:
//   - button: the mouse button
//   - action: press or release
func (s *InputSystem) UpdateMouse(button common.MouseButton, action common.Action) {
	switch action {
	case common.ActionPress:
		s.state.Mouse.press(button)
	case common.ActionRelease:
		s.state.Mouse.release(button)
	}
}

// UpdateCursor applies a cursor movement event.
//
// Parameters:
//   - x, y: the new cursor position in window coordinates
func (s *InputSystem) UpdateCursor(x, y float64) {
	s.state.Mouse.move(float32(x), float32(y))
}

// Reset clears the edge-triggered sets and the mouse delta.
// Held keys, held buttons and the cursor position carry over to the next frame.
func (s *InputSystem) Reset() {
	s.state.Keys.reset()
	s.state.Mouse.reset()
}
