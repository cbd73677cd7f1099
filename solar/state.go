package solar

import (
	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
)

// Action is a discrete user command.
type Action int

const (
	ActionNone Action = iota
	ActionToggleLights
	ActionEnableCamera
	ActionDisableCamera
	ActionPreviousCamera
	ActionNextCamera
)

func (a Action) String() string {
	switch a {
	case ActionToggleLights:
		return "toggle lights"
	case ActionEnableCamera:
		return "enable camera"
	case ActionDisableCamera:
		return "disable camera"
	case ActionPreviousCamera:
		return "previous camera"
	case ActionNextCamera:
		return "next camera"
	default:
		return "none"
	}
}

// State is the interaction state threaded through the frames.
type State struct {
	LightsOn bool
	Camera   camera.Teleporter
}

// Apply returns the state after a.
//
// Parameters:
//   - a: the action
//   - candidateCount: the number of camera candidates of the most recent frame
//
// Returns:
//   - State: the new state
func (s State) Apply(a Action, candidateCount int) State {
	switch a {
	case ActionToggleLights:
		s.LightsOn = !s.LightsOn
	case ActionEnableCamera:
		s.Camera = s.Camera.Enable()
	case ActionDisableCamera:
		s.Camera = s.Camera.Disable()
	case ActionPreviousCamera:
		s.Camera = s.Camera.Previous()
	case ActionNextCamera:
		s.Camera = s.Camera.Next(candidateCount)
	}
	return s
}

// ActionForKey maps a key press to its action. l toggles the lights, e and Shift+E enable
// and disable the camera selector, g and h step through the candidates.
//
// Parameters:
//   - key: the key code
//   - shift: whether shift was held
//
// Returns:
//   - Action: the action, or ActionNone
func ActionForKey(key uint32, shift bool) Action {
	switch key {
	case common.KeyL:
		return ActionToggleLights
	case common.KeyE:
		if shift {
			return ActionDisableCamera
		}
		return ActionEnableCamera
	case common.KeyG:
		return ActionPreviousCamera
	case common.KeyH:
		return ActionNextCamera
	}
	return ActionNone
}
