// Package solar composes the animated solar system: the pulsing sun, the orbiting bodies,
// the background star field and the camera candidates, all as pure functions of time.
//
// Nothing here touches the GPU. Compose rebuilds every world transform from scratch for a
// given time and Plan turns a frame into the ordered draw list the scene submits.
package solar

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/light"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
	"github.com/chewxy/math32"
)

const (
	// SunPeriod is the length in seconds of one sun pulse.
	SunPeriod = 10

	// LitAmbient is the ambient level applied to the bodies while the lights are on.
	LitAmbient = 0.3

	// StarCount is the default number of background stars.
	StarCount = 30

	// StarDistance is how far behind the system the stars are placed.
	StarDistance = 150

	// SunName is the name Frame.Transform accepts for the sun.
	SunName = "sun"
)

// SunState is the sun at one instant.
type SunState struct {
	// Ratio cycles smoothly through [0, 1] once per SunPeriod.
	Ratio float32
	// Size is the uniform scale of the sun, in [1, 3].
	Size float32
	// Color is the light color, from blue at Ratio 0 to yellow at Ratio 1.
	Color [4]float32
	// Transform is the sun's model matrix.
	Transform common.Mat4
}

// Sun evaluates the sun at time t.
//
// Parameters:
//   - t: the elapsed time in seconds
//
// Returns:
//   - SunState: the sun state
func Sun(t float32) SunState {
	ratio := 0.5 + 0.5*math32.Sin(2*math32.Pi*t/SunPeriod)
	size := 1 + 2*ratio
	return SunState{
		Ratio:     ratio,
		Size:      size,
		Color:     [4]float32{ratio, ratio, 1 - ratio, 1},
		Transform: common.Scaling(size, size, size),
	}
}

// Light returns the point light the sun casts. Its size is 10^Size.
//
// Returns:
//   - light.Light: the sun light at the origin
func (s SunState) Light() light.Light {
	return light.NewPoint([4]float32{0, 0, 0, 1}, s.Color, math32.Pow(10, s.Size))
}

// Orbit places a body rotating about its parent's Y axis. The rotation is applied twice,
// once to revolve and once to spin, before translating out to radius.
//
// Parameters:
//   - parent: the parent's world transform
//   - t: the elapsed time in seconds
//   - rate: the angular rate in radians per second
//   - radius: the orbit radius
//
// Returns:
//   - common.Mat4: the body's world transform
func Orbit(parent common.Mat4, t, rate, radius float32) common.Mat4 {
	spin := common.RotationY(t * rate)
	return common.Chain(parent, spin, spin, common.Translation(radius, 0, 0))
}

// Body is one orbiting object of the system.
type Body struct {
	Name     string
	Rate     float32
	Radius   float32
	Mesh     string
	Material string
	// Parent names the body this one orbits, or "" for the system origin.
	Parent string
	// Camera reports whether the body is offered as a camera candidate.
	Camera bool
}

// Bodies is the system in draw order. A parent always precedes its satellites.
var Bodies = []Body{
	{Name: "rock", Rate: 0.33, Radius: 5, Mesh: MeshBall3Flat, Material: MaterialJaggedRock, Camera: true},
	{Name: "silver", Rate: 0.30, Radius: 8, Mesh: MeshBall2, Material: MaterialSilver, Camera: true},
	{Name: "moon_1", Rate: 0.20, Radius: 2, Mesh: MeshBall4, Material: MaterialMoon1, Parent: "silver"},
	{Name: "earth", Rate: 0.15, Radius: 11, Mesh: MeshBall4, Material: MaterialEarth, Camera: true},
	{Name: "moon_2", Rate: 0.18, Radius: 2, Mesh: MeshBall1, Material: MaterialMoon2, Parent: "earth", Camera: true},
	{Name: "bricks_4", Rate: 0.25, Radius: 14, Mesh: MeshBall5x5, Material: MaterialBricks4, Camera: true},
	{Name: "bricks_5", Rate: 0.22, Radius: 17, Mesh: MeshBall5x5, Material: MaterialBricks5, Camera: true},
}

// Placement is a body with its world transform for one frame.
type Placement struct {
	Body      Body
	Transform common.Mat4
}

// Frame is the whole system at one instant.
type Frame struct {
	Time       float32
	Sun        SunState
	Placements []Placement
}

// Compose evaluates every body at time t. Bodies without a parent orbit the origin,
// not the scaled sun.
//
// Parameters:
//   - t: the elapsed time in seconds
//
// Returns:
//   - Frame: the composed frame
func Compose(t float32) Frame {
	f := Frame{
		Time:       t,
		Sun:        Sun(t),
		Placements: make([]Placement, 0, len(Bodies)),
	}
	world := make(map[string]common.Mat4, len(Bodies))
	for _, b := range Bodies {
		parent := common.IdentityMat4()
		if b.Parent != "" {
			parent = world[b.Parent]
		}
		m := Orbit(parent, t, b.Rate, b.Radius)
		world[b.Name] = m
		f.Placements = append(f.Placements, Placement{Body: b, Transform: m})
	}
	return f
}

// Transform returns the world transform of the named body.
//
// Parameters:
//   - name: the body name, or SunName
//
// Returns:
//   - common.Mat4: the transform
//   - bool: whether the body exists
func (f Frame) Transform(name string) (common.Mat4, bool) {
	if name == SunName {
		return f.Sun.Transform, true
	}
	for _, p := range f.Placements {
		if p.Body.Name == name {
			return p.Transform, true
		}
	}
	return common.Mat4{}, false
}

// Lights returns the lights of the frame.
//
// Returns:
//   - []light.Light: the sun light
func (f Frame) Lights() []light.Light {
	return []light.Light{f.Sun.Light()}
}

// OverviewCamera is the initial view, looking at the origin from above and behind.
//
// Returns:
//   - common.Mat4: the overview view matrix
func OverviewCamera() common.Mat4 {
	return common.LookAtMat4([3]float32{0, 10, 20}, [3]float32{}, [3]float32{0, 1, 0})
}

// CameraCandidates lists the views the camera selector can ease toward: the overview,
// then the sun, then each camera body by inverting its world transform.
//
// Returns:
//   - []common.Mat4: the candidate view matrices
func (f Frame) CameraCandidates() []common.Mat4 {
	out := []common.Mat4{OverviewCamera(), common.Inverse(f.Sun.Transform)}
	for _, p := range f.Placements {
		if p.Body.Camera {
			out = append(out, common.Inverse(p.Transform))
		}
	}
	return out
}

// NewStarField scatters n stars on a sphere cap behind the system, each turned up to 45
// degrees about Y and X.
//
// Parameters:
//   - rng: the random source
//   - n: the number of stars
//
// Returns:
//   - []common.Mat4: the star model matrices
func NewStarField(rng *rand.Rand, n int) []common.Mat4 {
	out := make([]common.Mat4, 0, max(n, 0))
	for range n {
		yaw := math32.Pi / 2 * (rng.Float32() - 0.5)
		pitch := math32.Pi / 2 * (rng.Float32() - 0.5)
		out = append(out, common.Chain(
			common.RotationY(yaw),
			common.RotationX(pitch),
			common.Translation(0, 0, -StarDistance),
		))
	}
	return out
}

// DrawCommand is one draw of the frame.
type DrawCommand struct {
	Mesh     string
	Material material.Material
	Model    common.Mat4
}

// Plan builds the ordered draw list for time t: the sun, every body with the ambient
// override applied, then the stars while the lights are on. materials must hold every
// key the system references.
//
// Parameters:
//   - f: the composed frame
//   - state: the interaction state
//   - stars: the star model matrices
//   - materials: the base material table
//
// Returns:
//   - []DrawCommand: the draws in submission order
func Plan(f Frame, state State, stars []common.Mat4, materials map[string]material.Material) []DrawCommand {
	ambient := float32(0)
	if state.LightsOn {
		ambient = LitAmbient
	}

	cmds := make([]DrawCommand, 0, 1+len(f.Placements)+len(stars))
	cmds = append(cmds, DrawCommand{Mesh: MeshBall6, Material: materials[MaterialSun], Model: f.Sun.Transform})
	for _, p := range f.Placements {
		cmds = append(cmds, DrawCommand{
			Mesh:     p.Body.Mesh,
			Material: materials[p.Body.Material].Override(material.WithAmbient(ambient)),
			Model:    p.Transform,
		})
	}
	if state.LightsOn {
		for _, s := range stars {
			cmds = append(cmds, DrawCommand{Mesh: MeshStar, Material: materials[MaterialStars], Model: s})
		}
	}
	return cmds
}
