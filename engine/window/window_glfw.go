package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNoWindow = errors.New("window is not initialized")

// glfwWindow is the GLFW handle behind an engineWindow.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow opens a GLFW window without a client API, since wgpu owns the surface,
// and wires its key and framebuffer callbacks into w. The calling goroutine is locked to its
// OS thread for the lifetime of the window.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("glfw create window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, glfw.DontCare, glfw.DontCare)

	gw := &glfwWindow{parent: w, window: win, running: true}
	win.SetKeyCallback(gw.handleKey)
	// Framebuffer size, not window size: the two differ on high-DPI displays and the
	// surface is configured in pixels.
	win.SetFramebufferSizeCallback(gw.handleFramebufferSize)

	w.width, w.height = win.GetFramebufferSize()
	w.internalWindow = gw
	return nil
}

// handleKey closes the window on Escape and forwards every other press or release.
func (gw *glfwWindow) handleKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if closeRequested(key, action) {
		gw.running = false
		gw.window.SetShouldClose(true)
		return
	}
	ev, ok := translateKey(key, action, mods)
	if ok && gw.parent.onKey != nil {
		gw.parent.onKey(ev)
	}
}

func (gw *glfwWindow) handleFramebufferSize(_ *glfw.Window, width, height int) {
	w := gw.parent
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// closeRequested reports whether a key event asks to quit.
func closeRequested(key glfw.Key, action glfw.Action) bool {
	return key == glfw.KeyEscape && action == glfw.Press
}

// translateKey converts a GLFW key callback into a KeyEvent.
//
// Parameters:
//   - key: the GLFW key
//   - action: press, release or repeat
//   - mods: the held modifiers
//
// Returns:
//   - common.KeyEvent: the event
//   - bool: false for auto-repeat and unknown keys, which are dropped
func translateKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) (common.KeyEvent, bool) {
	if key == glfw.KeyUnknown {
		return common.KeyEvent{}, false
	}
	var kind common.KeyAction
	switch action {
	case glfw.Press:
		kind = common.KeyPressed
	case glfw.Release:
		kind = common.KeyReleased
	default:
		return common.KeyEvent{}, false
	}
	return common.KeyEvent{Key: uint32(key), Action: kind, Mods: common.KeyModifier(mods)}, true
}

// platform returns the GLFW handle of w, or nil before the window is opened.
func platform(w *engineWindow) *glfwWindow {
	gw, _ := w.internalWindow.(*glfwWindow)
	return gw
}

// platformGetSurfaceDescriptor builds the wgpu surface descriptor for the current OS
// through the wgpuglfw bridge.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw := platform(w)
	if gw == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformSetTitle must run on the main thread.
func platformSetTitle(w *engineWindow, title string) {
	if gw := platform(w); gw != nil {
		gw.window.SetTitle(title)
	}
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw := platform(w)
	return gw != nil && gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the window and terminates GLFW. The window cannot be
// reopened afterwards.
//
// Returns:
//   - error: if the window was never opened or is already closed
func platformCloseWindow(w *engineWindow) error {
	gw := platform(w)
	if gw == nil {
		return errNoWindow
	}
	gw.running = false
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls pending events without blocking and reports whether the
// window is still open.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
