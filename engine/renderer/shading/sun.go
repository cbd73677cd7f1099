package shading

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orrery/noise"
	"github.com/chewxy/math32"
)

//go:embed assets/sun_vertex.wgsl
var sunVertexSource string

//go:embed assets/sun_fragment.wgsl
var sunFragmentSource string

const (
	sunTurbulenceDetail = 0.63
	sunPulsePeriod      = 100
	sunSwell            = 1.26
)

// sun is the noise-displaced fireball. The tint cycles with the frame clock on the GPU.
type sun struct{}

func (sun) Key() string            { return material.ProgramSun }
func (sun) VertexSource() string   { return sunVertexSource }
func (sun) FragmentSource() string { return sunFragmentSource }

func (sun) Setup(frame FrameInputs, modelMatrix [16]float32, _ material.Material) DrawInputs {
	return DrawInputs{Transform: transformFor(frame, modelMatrix)}
}

// SunDisplacement is the scalar displacement of the fireball surface at p.
//
// Parameters:
//   - p: the object-space position
//   - t: the elapsed time in seconds
//
// Returns:
//   - float32: the displacement
func SunDisplacement(p [3]float32, t float32) float32 {
	time := t / 10
	n := -0.8 * noise.Turbulence([3]float32{
		sunTurbulenceDetail*p[0] + time,
		sunTurbulenceDetail*p[1] + time,
		sunTurbulenceDetail*p[2] + time,
	})
	b := 5 * noise.Periodic(
		[3]float32{0.05*p[0] + 2*time, 0.05*p[1] + 2*time, 0.05*p[2] + 2*time},
		[3]float32{sunPulsePeriod, sunPulsePeriod, sunPulsePeriod},
	)
	return -10*n + b
}

// SunDisplace returns the displaced vertex position at p.
//
// Parameters:
//   - p: the object-space position
//   - t: the elapsed time in seconds
//
// Returns:
//   - [3]float32: the displaced position
func SunDisplace(p [3]float32, t float32) [3]float32 {
	d := SunDisplacement(p, t) * 0.1
	return [3]float32{
		sunSwell * (p[0] + p[0]*d),
		sunSwell * (p[1] + p[1]*d),
		sunSwell * (p[2] + p[2]*d),
	}
}

// SunTint is the color the fireball is multiplied by, cycling from yellow to blue
// with a ten second period.
//
// Parameters:
//   - t: the elapsed time in seconds
//
// Returns:
//   - [4]float32: the tint
func SunTint(t float32) [4]float32 {
	r := 0.5 + 0.5*math32.Sin(0.62832*t)
	return [4]float32{r, r, 1 - r, 1}
}

// SunColor is the tinted fireball fragment color for a displacement.
//
// Parameters:
//   - disp: the interpolated displacement
//   - t: the elapsed time in seconds
//
// Returns:
//   - [4]float32: the fragment color
func SunColor(disp, t float32) [4]float32 {
	tint := SunTint(t)
	return [4]float32{
		(1 - disp) * tint[0],
		((0.1 - disp*0.2) + 0.1) * tint[1],
		((0.1 - disp*0.1) + 0.1*math32.Abs(math32.Sin(disp))) * tint[2],
		tint[3],
	}
}
