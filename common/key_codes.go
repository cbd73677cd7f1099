package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyE     = 69  // E key (ASCII)
	KeyG     = 71  // G key (ASCII)
	KeyH     = 72  // H key (ASCII)
	KeyL     = 76  // L key (ASCII)
	KeyZ     = 90  // Z key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// KeyModifier is a bitmask of modifier keys held during a key event.
// The bit values match glfw.ModifierKey.
type KeyModifier uint32

const (
	ModShift   KeyModifier = 0x0001
	ModControl KeyModifier = 0x0002
	ModAlt     KeyModifier = 0x0004
)

// KeyAction distinguishes presses from releases in a KeyEvent.
type KeyAction uint8

const (
	KeyPressed KeyAction = iota
	KeyReleased
)

// KeyEvent is a single keyboard transition delivered by the window.
type KeyEvent struct {
	// Key is the GLFW key code.
	Key uint32
	// Mods holds the modifier keys active when the event fired.
	Mods KeyModifier
	// Action reports whether the key went down or up.
	Action KeyAction
}

// Shift reports whether either shift key was held.
func (e KeyEvent) Shift() bool {
	return e.Mods&ModShift != 0
}
