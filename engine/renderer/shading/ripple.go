package shading

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
	"github.com/chewxy/math32"
)

//go:embed assets/ripple_vertex.wgsl
var rippleVertexSource string

//go:embed assets/ripple_fragment.wgsl
var rippleFragmentSource string

// ripple pulses the surface with a sine wave travelling along v. It only reads the
// composed transform and the frame clock, so Setup leaves the material params empty.
type ripple struct{}

func (ripple) Key() string            { return material.ProgramRipple }
func (ripple) VertexSource() string   { return rippleVertexSource }
func (ripple) FragmentSource() string { return rippleFragmentSource }

func (ripple) Setup(frame FrameInputs, modelMatrix [16]float32, _ material.Material) DrawInputs {
	return DrawInputs{Transform: transformFor(frame, modelMatrix)}
}

// RippleDisplace moves an object-space vertex along its position vector by the ripple wave.
//
// Parameters:
//   - p: the object-space position
//   - v: the vertex texture coordinate v
//   - t: the elapsed time in seconds
//
// Returns:
//   - [3]float32: the displaced position
func RippleDisplace(p [3]float32, v, t float32) [3]float32 {
	phase := 29*v - 9*t
	wave := math32.Sin(phase - 2*math32.Pi*math32.Floor(phase/(2*math32.Pi)))
	return [3]float32{p[0] + 0.1*p[0]*wave, p[1] + 0.1*p[1]*wave, p[2] + 0.1*p[2]*wave}
}

// RippleColor is the ripple fragment color. Red is not clamped here.
//
// Parameters:
//   - v: the interpolated texture coordinate v
//   - t: the elapsed time in seconds
//
// Returns:
//   - [4]float32: the fragment color
func RippleColor(v, t float32) [4]float32 {
	return [4]float32{1.1*v*math32.Sin(50*v) + 1.1*math32.Sin(50*t), 0, 0, 1}
}
