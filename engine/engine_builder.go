package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-orrery/engine/scene"
	"github.com/Carmen-Shannon/oxy-orrery/engine/window"
)

// defaultTickRate is the simulation rate used when none or an invalid one is given.
const defaultTickRate = 60.0

// frameInterval converts a rate in frames per second to the time between frames. Rates <= 0
// use fallback instead, and a fallback <= 0 yields 0 (uncapped).
func frameInterval(fps, fallback float64) time.Duration {
	if fps <= 0 {
		fps = fallback
	}
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling logs frame rate and memory statistics from the render loop once per second.
//
// Parameters:
//   - enabled: whether the profiler runs
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets how often scenes are updated, in ticks per second. The orbits, the scene
// clock and the camera teleporter all advance on this loop. Values <= 0 select 60.
//
// Parameters:
//   - fps: ticks per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = frameInterval(fps, defaultTickRate)
	}
}

// WithWindow attaches the platform window. Without one, Run only drives the loops until Quit.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers s under key. Scenes are updated and drawn in ascending key order.
//
// Parameters:
//   - key: the draw order of the scene
//   - s: the scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit caps the render loop in frames per second. 0 leaves it uncapped.
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameInterval(fps, 0)
	}
}
