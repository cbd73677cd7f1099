package camera

import (
	"github.com/Carmen-Shannon/oxy-orrery/common"
)

// TeleportRate is the per-millisecond blend factor used by Teleporter.Step.
const TeleportRate = 0.01

// Teleporter selects one of a frame's candidate views and eases the camera toward it.
//
// It is a plain value: every transition returns a new Teleporter. The selection is kept
// across frames while the candidate list itself is rebuilt by the caller every frame.
type Teleporter struct {
	// Enabled reports whether the teleporter is steering the camera.
	Enabled bool

	// Selection is the index of the targeted candidate.
	Selection int
}

// Enable returns t with steering switched on.
func (t Teleporter) Enable() Teleporter {
	t.Enabled = true
	return t
}

// Disable returns t with steering switched off. The selection is kept.
func (t Teleporter) Disable() Teleporter {
	t.Enabled = false
	return t
}

// Next advances the selection by one, clamped to the last of count candidates.
//
// Parameters:
//   - count: the number of candidates available
//
// Returns:
//   - Teleporter: the updated selector
func (t Teleporter) Next(count int) Teleporter {
	t.Selection = min(t.Selection+1, max(count-1, 0))
	return t
}

// Previous moves the selection back by one, clamped at zero.
func (t Teleporter) Previous() Teleporter {
	t.Selection = max(t.Selection-1, 0)
	return t
}

// Step eases view toward the selected candidate by blending component-wise with factor
// TeleportRate*dtMs, capped at 1. The factor is applied to the current view each frame, so
// repeated steps approach the target asymptotically and a long frame lands on it.
//
// Parameters:
//   - view: the current view matrix
//   - candidates: this frame's candidate views
//   - dtMs: milliseconds since the previous frame
//
// Returns:
//   - [16]float32: the new view, or view unchanged when disabled or the selection is out of range
//   - bool: true if the view was steered
func (t Teleporter) Step(view [16]float32, candidates [][16]float32, dtMs float32) ([16]float32, bool) {
	if !t.Enabled || t.Selection < 0 || t.Selection >= len(candidates) {
		return view, false
	}
	return common.Mix4(view, candidates[t.Selection], min(TeleportRate*dtMs, 1)), true
}
