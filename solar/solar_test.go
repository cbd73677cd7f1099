package solar

import (
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMat4InDelta(t *testing.T, want, got common.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "element %d", i)
	}
}

func TestSun(t *testing.T) {
	s := Sun(0)
	assert.InDelta(t, 0.5, s.Ratio, 1e-6)
	assert.InDelta(t, 2, s.Size, 1e-6)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, s.Color)

	peak := Sun(2.5)
	assert.InDelta(t, 1, peak.Ratio, 1e-5)
	assert.InDelta(t, 3, peak.Size, 1e-5)
	assertMat4InDelta(t, common.Scaling(3, 3, 3), peak.Transform)

	trough := Sun(7.5)
	assert.InDelta(t, 1, trough.Size, 1e-5)
	assert.InDelta(t, 1, trough.Color[2], 1e-5)

	trough = Sun(0.75 * SunPeriod)
	assert.InDelta(t, 0, trough.Ratio, 1e-5)
	assert.InDeltaSlice(t, []float32{0, 0, 1, 1}, trough.Color[:], 1e-5)

	// One full period later the sun is back where it started.
	for _, at := range []float32{0, 1.2, 6.1} {
		a, b := Sun(at), Sun(at+SunPeriod)
		assertMat4InDelta(t, a.Transform, b.Transform)
		assert.InDeltaSlice(t, a.Color[:], b.Color[:], 1e-5, "t=%v", at)
	}
}

func TestSunLight(t *testing.T) {
	l := Sun(2.5).Light()
	assert.Equal(t, [4]float32{0, 0, 0, 1}, l.Position())
	assert.InDelta(t, 1000, l.Size(), 0.5)
	assert.InDelta(t, 1, l.Color()[0], 1e-5)
}

func TestOrbit(t *testing.T) {
	m := Orbit(common.IdentityMat4(), 0, 0.5, 5)
	assertMat4InDelta(t, common.Translation(5, 0, 0), m)

	// Revolve and spin together turn the body by twice the angle.
	quarter := Orbit(common.IdentityMat4(), math32.Pi/4, 1, 5)
	pos := common.TransformPoint(quarter, [3]float32{})
	assert.InDelta(t, 0, pos[0], 1e-5)
	assert.InDelta(t, -5, pos[2], 1e-5)

	parent := common.Translation(10, 0, 0)
	child := Orbit(parent, 0, 1, 2)
	assert.InDeltaSlice(t, []float32{12, 0, 0}, toSlice(common.TransformPoint(child, [3]float32{})), 1e-5)
}

func toSlice(v [3]float32) []float32 {
	return v[:]
}

func TestComposeHierarchy(t *testing.T) {
	const tm = 3.7
	f := Compose(tm)
	require.Len(t, f.Placements, len(Bodies))

	silver, ok := f.Transform("silver")
	require.True(t, ok)
	moon, ok := f.Transform("moon_1")
	require.True(t, ok)
	assertMat4InDelta(t, Orbit(silver, tm, 0.2, 2), moon)

	rock, _ := f.Transform("rock")
	assertMat4InDelta(t, Orbit(common.IdentityMat4(), tm, 0.33, 5), rock)

	sun, ok := f.Transform(SunName)
	require.True(t, ok)
	assert.Equal(t, f.Sun.Transform, sun)

	_, ok = f.Transform("pluto")
	assert.False(t, ok)
}

func TestComposeIsPure(t *testing.T) {
	a := Compose(12.5)
	Compose(99)
	b := Compose(12.5)
	assert.Equal(t, a, b)
}

func TestBodiesDistance(t *testing.T) {
	f := Compose(5)
	for _, p := range f.Placements {
		if p.Body.Parent != "" {
			continue
		}
		pos := common.TransformPoint(p.Transform, [3]float32{})
		dist := math32.Sqrt(common.Dot3(pos, pos))
		assert.InDelta(t, p.Body.Radius, dist, 1e-4, p.Body.Name)
	}
}

func TestCameraCandidates(t *testing.T) {
	f := Compose(4)
	c := f.CameraCandidates()
	require.Len(t, c, 8)

	assert.Equal(t, OverviewCamera(), c[0])
	assertMat4InDelta(t, common.Inverse(f.Sun.Transform), c[1])

	earth, _ := f.Transform("earth")
	moon2, _ := f.Transform("moon_2")
	bricks5, _ := f.Transform("bricks_5")
	assertMat4InDelta(t, common.Inverse(earth), c[4])
	assertMat4InDelta(t, common.Inverse(moon2), c[5])
	assertMat4InDelta(t, common.Inverse(bricks5), c[7])
}

func TestNewStarField(t *testing.T) {
	stars := NewStarField(rand.New(rand.NewPCG(1, 2)), StarCount)
	require.Len(t, stars, StarCount)

	for _, s := range stars {
		pos := common.TransformPoint(s, [3]float32{})
		assert.InDelta(t, StarDistance, math32.Sqrt(common.Dot3(pos, pos)), 1e-2)
		assert.Less(t, pos[2], float32(0), "stars sit behind the system")
	}

	again := NewStarField(rand.New(rand.NewPCG(1, 2)), StarCount)
	assert.Equal(t, stars, again)
	assert.Empty(t, NewStarField(rand.New(rand.NewPCG(1, 2)), 0))
}

func TestPlan(t *testing.T) {
	materials := Materials()
	f := Compose(1)
	stars := NewStarField(rand.New(rand.NewPCG(3, 4)), 5)

	dark := Plan(f, State{}, stars, materials)
	require.Len(t, dark, 1+len(Bodies))
	assert.Equal(t, MeshBall6, dark[0].Mesh)
	assert.Equal(t, material.ProgramSun, dark[0].Material.Program())
	for _, cmd := range dark[1:] {
		assert.Zero(t, cmd.Material.Ambient(), cmd.Material.Name())
	}

	lit := Plan(f, State{LightsOn: true}, stars, materials)
	require.Len(t, lit, 1+len(Bodies)+5)
	assert.Equal(t, float32(1), lit[0].Material.Ambient(), "sun keeps its own ambient")
	for _, cmd := range lit[1 : 1+len(Bodies)] {
		assert.Equal(t, float32(LitAmbient), cmd.Material.Ambient(), cmd.Material.Name())
	}
	for _, cmd := range lit[1+len(Bodies):] {
		assert.Equal(t, MeshStar, cmd.Mesh)
		assert.Equal(t, float32(1), cmd.Material.Ambient())
	}

	// The base table is untouched by the override.
	assert.Zero(t, materials[MaterialEarth].Ambient())
}

func TestCatalogCoversBodies(t *testing.T) {
	meshes := MeshGenerators()
	materials := Materials()
	for _, b := range Bodies {
		assert.Contains(t, meshes, b.Mesh, b.Name)
		assert.Contains(t, materials, b.Material, b.Name)
	}
	assert.Contains(t, meshes, MeshBall6)
	assert.Contains(t, meshes, MeshStar)

	assert.Equal(t, common.FilterNearest, materials[MaterialBricks4].Filter())
	assert.Equal(t, common.FilterLinear, materials[MaterialBricks5].Filter())
	assert.Equal(t, material.ProgramRipple, materials[MaterialMoon1].Program())
	assert.Equal(t, material.ProgramGouraud, materials[MaterialMoon2].Program())
	for name, m := range materials {
		assert.Equal(t, m.Textured(), m.Bumped(), name)
	}
}

func TestState(t *testing.T) {
	s := State{}
	s = s.Apply(ActionToggleLights, 8)
	assert.True(t, s.LightsOn)
	s = s.Apply(ActionToggleLights, 8)
	assert.False(t, s.LightsOn)

	s = s.Apply(ActionEnableCamera, 8)
	assert.True(t, s.Camera.Enabled)

	for range 10 {
		s = s.Apply(ActionNextCamera, 8)
	}
	assert.Equal(t, 7, s.Camera.Selection)

	s = s.Apply(ActionPreviousCamera, 8)
	assert.Equal(t, 6, s.Camera.Selection)

	s = s.Apply(ActionDisableCamera, 8)
	assert.False(t, s.Camera.Enabled)
	assert.Equal(t, 6, s.Camera.Selection)

	assert.Equal(t, 0, State{}.Apply(ActionNextCamera, 0).Camera.Selection)
	assert.Equal(t, s, s.Apply(ActionNone, 8))
}

func TestActionForKey(t *testing.T) {
	assert.Equal(t, ActionToggleLights, ActionForKey(common.KeyL, false))
	assert.Equal(t, ActionEnableCamera, ActionForKey(common.KeyE, false))
	assert.Equal(t, ActionDisableCamera, ActionForKey(common.KeyE, true))
	assert.Equal(t, ActionPreviousCamera, ActionForKey(common.KeyG, false))
	assert.Equal(t, ActionNextCamera, ActionForKey(common.KeyH, false))
	assert.Equal(t, ActionNone, ActionForKey(common.KeyW, false))
	assert.Equal(t, "toggle lights", ActionToggleLights.String())
}
