package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMat4InDelta(t *testing.T, want, got [16]float32, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(WithAspect(1.5))
	assert.Equal(t, Lens{Fov: math32.Pi / 4, Near: 1, Far: 200}, c.Lens())
	assert.Equal(t, InitialView(), c.ViewMatrix())
	assert.NotNil(t, c.BindGroupProvider())

	var want [16]float32
	common.Perspective(want[:], float32(math32.Pi/4), 1.5, 1, 200)
	assert.Equal(t, want, c.ProjectionMatrix())

	pos := c.Position()
	assert.InDelta(t, 0, pos[0], 1e-4)
	assert.InDelta(t, 10, pos[1], 1e-4)
	assert.InDelta(t, 20, pos[2], 1e-4)
}

func TestSetViewMatrixUpdatesDerived(t *testing.T) {
	c := NewCamera()
	view := common.Translation(-3, 0, 0)
	c.SetViewMatrix(view)

	assert.Equal(t, view, c.ViewMatrix())
	assert.Equal(t, common.Chain(c.ProjectionMatrix(), view), c.ViewProjectionMatrix())
	assert.InDelta(t, 3, c.Position()[0], 1e-5)

	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())
	assert.Equal(t, view, c.ViewMatrix())
}

func TestCameraUniform(t *testing.T) {
	c := NewCamera()
	u := c.Uniform()
	require.Equal(t, 144, u.Size())
	buf := u.Marshal()
	require.Len(t, buf, 144)

	assert.Equal(t, u.View[0], math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, u.Projection[5], math.Float32frombits(binary.LittleEndian.Uint32(buf[64+20:])))
	assert.InDelta(t, 10, math.Float32frombits(binary.LittleEndian.Uint32(buf[132:])), 1e-4)
	assert.Contains(t, GPUCameraUniformSource, "struct CameraUniform")
}

func TestTeleporterSelection(t *testing.T) {
	var tp Teleporter
	assert.False(t, tp.Enabled)

	tp = tp.Enable()
	assert.True(t, tp.Enabled)

	tp = tp.Previous()
	assert.Equal(t, 0, tp.Selection)

	for range 20 {
		tp = tp.Next(8)
	}
	assert.Equal(t, 7, tp.Selection)

	tp = tp.Previous()
	assert.Equal(t, 6, tp.Selection)

	// An empty candidate list pins the selection at zero.
	assert.Equal(t, 0, Teleporter{}.Next(0).Selection)

	off := tp.Disable()
	assert.False(t, off.Enabled)
	assert.Equal(t, 6, off.Selection)
	assert.True(t, tp.Enabled, "transitions return copies")
}

func TestTeleporterStep(t *testing.T) {
	view := common.Translation(0, 0, 0)
	target := common.Translation(10, 0, 0)
	candidates := [][16]float32{InitialView(), target}

	tp := Teleporter{Enabled: true, Selection: 1}
	next, moved := tp.Step(view, candidates, 16)
	require.True(t, moved)
	assert.InDelta(t, 1.6, next[12], 1e-5)

	// Repeated steps approach without overshooting.
	for range 200 {
		next, _ = tp.Step(next, candidates, 16)
		assert.LessOrEqual(t, next[12], float32(10))
	}
	assertMat4InDelta(t, target, next, 1e-3)

	// A stalled frame lands on the target instead of passing it.
	for _, dtMs := range []float32{100, 150, 250} {
		stalled, _ := tp.Step(view, candidates, dtMs)
		assert.InDelta(t, 10, stalled[12], 1e-5, "dtMs %v", dtMs)
	}
	stalled, _ := tp.Step(view, candidates, 150)
	stalled, _ = tp.Step(stalled, candidates, 150)
	assert.LessOrEqual(t, stalled[12], float32(10))

	same, moved := Teleporter{Selection: 1}.Step(view, candidates, 16)
	assert.False(t, moved)
	assert.Equal(t, view, same)

	same, moved = Teleporter{Enabled: true, Selection: 5}.Step(view, candidates, 16)
	assert.False(t, moved)
	assert.Equal(t, view, same)
}

func TestMovement(t *testing.T) {
	m := NewMovement(WithSpeed(10))
	assert.False(t, m.Active())
	assert.False(t, m.HandleKey(common.KeyEvent{Key: common.KeyL}))

	require.True(t, m.HandleKey(common.KeyEvent{Key: common.KeyW, Action: common.KeyPressed}))
	assert.Equal(t, [3]float32{0, 0, -1}, m.Thrust())

	// Moving forward by 5 units brings the world 5 units closer along +Z in view space.
	view := m.Apply(common.IdentityMat4(), 0.5)
	assert.InDelta(t, 5, view[14], 1e-5)

	m.HandleKey(common.KeyEvent{Key: common.KeyS, Action: common.KeyPressed})
	assert.False(t, m.Active(), "opposing keys cancel")
	assert.Equal(t, common.IdentityMat4(), m.Apply(common.IdentityMat4(), 1))

	m.HandleKey(common.KeyEvent{Key: common.KeyW, Action: common.KeyReleased})
	m.HandleKey(common.KeyEvent{Key: common.KeySpace, Action: common.KeyPressed})
	assert.Equal(t, [3]float32{0, 1, 1}, m.Thrust())

	m.Reset()
	assert.False(t, m.Active())
	assert.Equal(t, float32(10), m.Speed())
}

func TestLensAndViewOptions(t *testing.T) {
	view := common.Translation(0, 0, -50)
	c := NewCamera(WithAspect(2), WithLens(Lens{Fov: 1, Near: 0.5, Far: 500}), WithView(view))
	assert.Equal(t, view, c.ViewMatrix())

	var want [16]float32
	common.Perspective(want[:], 1, 2, 0.5, 500)
	assert.Equal(t, want, c.ProjectionMatrix())

	c.SetLens(DefaultLens)
	common.Perspective(want[:], DefaultLens.Fov, 2, 1, 200)
	assert.Equal(t, want, c.ProjectionMatrix())
}
