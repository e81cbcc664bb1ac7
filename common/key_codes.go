package common

// Key is a physical key code.
// Values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int32

const (
	KeyUnknown Key = -1

	KeySpace      Key = 32 // Spacebar (ASCII)
	KeyApostrophe Key = 39 // ' (ASCII)
	KeyComma      Key = 44 // , (ASCII)
	KeyMinus      Key = 45 // - (ASCII)
	KeyPeriod     Key = 46 // . (ASCII)
	KeySlash      Key = 47 // / (ASCII)
	Key0          Key = 48 // 0 key (ASCII)
	Key1          Key = 49 // 1 key (ASCII)
	Key2          Key = 50 // 2 key (ASCII)
	Key3          Key = 51 // 3 key (ASCII)
	Key4          Key = 52 // 4 key (ASCII)
	Key5          Key = 53 // 5 key (ASCII)
	Key6          Key = 54 // 6 key (ASCII)
	Key7          Key = 55 // 7 key (ASCII)
	Key8          Key = 56 // 8 key (ASCII)
	Key9          Key = 57 // 9 key (ASCII)
	KeyA          Key = 65 // A key (ASCII)
	KeyB          Key = 66 // B key (ASCII)
	KeyC          Key = 67 // C key (ASCII)
	KeyD          Key = 68 // D key (ASCII)
	KeyE          Key = 69 // E key (ASCII)
	KeyF          Key = 70 // F key (ASCII)
	KeyG          Key = 71 // G key (ASCII)
	KeyL          Key = 76 // L key (ASCII)
	KeyM          Key = 77 // M key (ASCII)
	KeyQ          Key = 81 // Q key (ASCII)
	KeyS          Key = 83 // S key (ASCII)
	KeyT          Key = 84 // T key (ASCII)
	KeyV          Key = 86 // V key (ASCII)
	KeyW          Key = 87 // W key (ASCII)
	KeyX          Key = 88 // X key (ASCII)

	KeyEsc       Key = 256 // Escape key (GLFW)
	KeyEnter     Key = 257 // Enter key (GLFW)
	KeyTab       Key = 258 // Tab key (GLFW)
	KeyBackspace Key = 259 // Backspace key (GLFW)
	KeyRight     Key = 262 // Right arrow (GLFW)
	KeyLeft      Key = 263 // Left arrow (GLFW)
	KeyDown      Key = 264 // Down arrow (GLFW)
	KeyUp        Key = 265 // Up arrow (GLFW)
	KeyF1        Key = 290 // F1 (GLFW)
	KeyF12       Key = 301 // F12 (GLFW)

	KeyLeftShift    Key = 340 // Left Shift (GLFW)
	KeyLeftControl  Key = 341 // Left Control (GLFW)
	KeyLeftAlt      Key = 342 // Left Alt (GLFW)
	KeyRightShift   Key = 344 // Right Shift (GLFW)
	KeyRightControl Key = 345 // Right Control (GLFW)
	KeyRightAlt     Key = 346 // Right Alt (GLFW)
)

// MouseButton identifies a mouse button. Values match GLFW button indices.
type MouseButton int32

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// Action is the transition reported with a key or mouse button event.
type Action int

const (
	// ActionRelease reports that a key or button went up.
	ActionRelease Action = iota

	// ActionPress reports that a key or button went down.
	ActionPress

	// ActionRepeat reports an OS key repeat while the key stays down.
	ActionRepeat
)

func (a Action) String() string {
	switch a {
	case ActionRelease:
		return "release"
	case ActionPress:
		return "press"
	case ActionRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}
