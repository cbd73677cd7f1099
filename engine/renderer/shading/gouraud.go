package shading

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
)

//go:embed assets/gouraud_vertex.wgsl
var gouraudVertexSource string

//go:embed assets/gouraud_fragment.wgsl
var gouraudFragmentSource string

// gouraud lights each vertex and lets the rasterizer interpolate the color.
type gouraud struct{}

func (gouraud) Key() string            { return material.ProgramGouraud }
func (gouraud) VertexSource() string   { return gouraudVertexSource }
func (gouraud) FragmentSource() string { return gouraudFragmentSource }

func (gouraud) Setup(frame FrameInputs, modelMatrix [16]float32, m material.Material) DrawInputs {
	return DrawInputs{
		Transform: transformFor(frame, modelMatrix),
		Params:    m.Params(),
	}
}

// GouraudVertexColor evaluates the gouraud vertex stage for one vertex.
//
// Parameters:
//   - frame: the frame inputs, for the eye position and lights
//   - modelMatrix: the object to world transform
//   - m: the material
//   - position: the object-space vertex position
//   - normal: the object-space vertex normal
//
// Returns:
//   - [4]float32: the lit vertex color
func GouraudVertexColor(frame FrameInputs, modelMatrix [16]float32, m material.Material, position, normal [3]float32) [4]float32 {
	params := m.Params()
	s := common.ColumnSquaredLengths(modelMatrix)
	n := common.TransformDirection(modelMatrix, normal)
	n = common.Normalize3([3]float32{n[0] / s[0], n[1] / s[1], n[2] / s[2]})
	world := common.TransformPoint(modelMatrix, position)

	lit := PhongModelLights(n, world, frame.CameraPosition, params.Color, params, frame.LightsUniform())
	return [4]float32{
		params.Color[0]*params.Ambient + lit[0],
		params.Color[1]*params.Ambient + lit[1],
		params.Color[2]*params.Ambient + lit[2],
		params.Color[3],
	}
}
