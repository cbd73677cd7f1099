package shading

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/light"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
)

//go:embed assets/phong_vertex.wgsl
var phongVertexSource string

//go:embed assets/phong_fragment.wgsl
var phongFragmentSource string

// BumpDiscardAlpha is the texel alpha below which a textured phong fragment is discarded.
const BumpDiscardAlpha = 0.01

// phong is per-pixel Blinn-Phong with an optional diffuse texture and fake bump mapping.
type phong struct{}

func (phong) Key() string            { return material.ProgramPhong }
func (phong) VertexSource() string   { return phongVertexSource }
func (phong) FragmentSource() string { return phongFragmentSource }

func (phong) Setup(frame FrameInputs, modelMatrix [16]float32, m material.Material) DrawInputs {
	return DrawInputs{
		Transform: transformFor(frame, modelMatrix),
		Params:    m.Params(),
	}
}

// PhongColor evaluates the phong fragment stage for one surface point.
// tex is ignored unless params.Textured is set. The fragment is discarded when a textured
// material samples a texel with alpha below BumpDiscardAlpha.
//
// Parameters:
//   - normal: the interpolated world-space normal
//   - position: the world-space surface point
//   - eye: the world-space camera position
//   - tex: the sampled texel
//   - params: the material parameters
//   - lights: the packed light block
//
// Returns:
//   - [4]float32: the fragment color
//   - bool: false when the fragment is discarded
func PhongColor(normal, position, eye [3]float32, tex [4]float32, params material.GPUMaterialParams, lights light.GPULightsUniform) ([4]float32, bool) {
	n := common.Normalize3(normal)
	base := [3]float32{params.Color[0], params.Color[1], params.Color[2]}
	alpha := params.Color[3]
	if params.Textured == 1 {
		if tex[3] < BumpDiscardAlpha {
			return [4]float32{}, false
		}
		if params.Bumped == 1 {
			n = common.Normalize3(common.Add3(n, [3]float32{tex[0] - 0.5, tex[1] - 0.5, tex[2] - 0.5}))
		}
		base = common.Add3(base, [3]float32{tex[0], tex[1], tex[2]})
		alpha *= tex[3]
	}
	lit := PhongModelLights(n, position, eye, params.Color, params, lights)
	return [4]float32{
		base[0]*params.Ambient + lit[0],
		base[1]*params.Ambient + lit[1],
		base[2]*params.Ambient + lit[2],
		alpha,
	}, true
}
