// Package shading defines the shading programs the solar-system scene is drawn with.
//
// A Program couples a vertex and a fragment WGSL source with the CPU-side Setup that turns
// frame-wide and per-draw inputs into the uniform payloads its shaders declare. Every program
// follows the same bind group convention so the scene can share providers between them:
//
//	@group(0) camera      CameraUniform, shared by every pipeline
//	@group(1) frame       LightsUniform and/or FrameGlobals, one provider per pipeline
//	@group(2) draw        ModelTransform and/or MaterialParams, one slot per draw
//	@group(3) material    diffuse texture and sampler (phong only)
//
// Each program also ships CPU reference functions that mirror the math of its shaders.
package shading

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/light"
	"github.com/Carmen-Shannon/oxy-orrery/engine/model"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shader"
	"github.com/chewxy/math32"
)

// Bind group indices shared by every program.
const (
	GroupCamera   = 0
	GroupFrame    = 1
	GroupDraw     = 2
	GroupMaterial = 3
)

// FrameInputs holds the values that are constant across every draw of a frame.
type FrameInputs struct {
	Projection     [16]float32
	View           [16]float32
	CameraPosition [3]float32

	// Time is the elapsed scene time in seconds and Delta the time since the last frame.
	Time  float32
	Delta float32

	Lights []light.Light
}

// CameraUniform packs the view, projection and eye position.
//
// Returns:
//   - camera.GPUCameraUniform: the uniform for @group(0)
func (f FrameInputs) CameraUniform() camera.GPUCameraUniform {
	return camera.GPUCameraUniform{
		View:       f.View,
		Projection: f.Projection,
		Position:   f.CameraPosition,
	}
}

// LightsUniform packs the enabled lights of the frame.
//
// Returns:
//   - light.GPULightsUniform: the light block
func (f FrameInputs) LightsUniform() light.GPULightsUniform {
	return light.PackLights(f.Lights)
}

// Globals packs the frame clock.
//
// Returns:
//   - GPUFrameGlobals: the clock uniform
func (f FrameInputs) Globals() GPUFrameGlobals {
	return GPUFrameGlobals{Time: f.Time, Delta: f.Delta}
}

// DrawInputs is the per-draw uniform payload produced by Program.Setup.
type DrawInputs struct {
	Transform model.GPUModelTransform
	Params    material.GPUMaterialParams
}

// Program is a shading program: its WGSL sources and how a draw feeds them.
type Program interface {
	// Key returns the program key, matching material.Program*. It is also the pipeline key.
	Key() string

	// VertexSource returns the raw vertex stage WGSL, before pre-processing.
	VertexSource() string

	// FragmentSource returns the raw fragment stage WGSL, before pre-processing.
	FragmentSource() string

	// Setup builds the per-draw uniforms for one draw.
	//
	// Parameters:
	//   - frame: the frame-wide inputs
	//   - modelMatrix: the object to world transform of the draw
	//   - m: the material of the draw, already overridden for the frame
	//
	// Returns:
	//   - DrawInputs: the per-draw uniform payload
	Setup(frame FrameInputs, modelMatrix [16]float32, m material.Material) DrawInputs
}

var programs = map[string]Program{
	material.ProgramPhong:   phong{},
	material.ProgramGouraud: gouraud{},
	material.ProgramRipple:  ripple{},
	material.ProgramSun:     sun{},
}

// Lookup returns the program registered under key.
//
// Parameters:
//   - key: the program key
//
// Returns:
//   - Program: the program, or nil
//   - bool: whether the key is known
func Lookup(key string) (Program, bool) {
	p, ok := programs[key]
	return p, ok
}

// Programs returns every program ordered by key.
//
// Returns:
//   - []Program: the programs
func Programs() []Program {
	keys := make([]string, 0, len(programs))
	for k := range programs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Program, 0, len(keys))
	for _, k := range keys {
		out = append(out, programs[k])
	}
	return out
}

// NewPipeline pre-processes both stages of p and wraps them in a Pipeline keyed by p.Key().
// It panics if either stage fails to parse, like shader.NewShader.
//
// Parameters:
//   - p: the program
//   - opts: extra pipeline options
//
// Returns:
//   - pipeline.Pipeline: the unregistered pipeline
func NewPipeline(p Program, opts ...pipeline.PipelineBuilderOption) pipeline.Pipeline {
	vs := shader.NewShader(p.Key()+"_vs", shader.ShaderTypeVertex, p.VertexSource())
	fs := shader.NewShader(p.Key()+"_fs", shader.ShaderTypeFragment, p.FragmentSource())
	return pipeline.NewPipeline(p.Key(), append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}, opts...)...)
}

// transformFor builds the ModelTransform every program receives.
func transformFor(frame FrameInputs, modelMatrix [16]float32) model.GPUModelTransform {
	s := common.ColumnSquaredLengths(modelMatrix)
	return model.GPUModelTransform{
		Model:        modelMatrix,
		PVM:          common.Chain(frame.Projection, frame.View, modelMatrix),
		SquaredScale: [4]float32{s[0], s[1], s[2], 1},
	}
}

// PhongModelLights sums the attenuated Blinn-Phong diffuse and specular terms of every light.
// It mirrors phong_model_lights in the lighting include. Ambient is left to the caller.
//
// Parameters:
//   - normal: the unit surface normal in world space
//   - position: the world-space surface point
//   - eye: the world-space camera position
//   - shape: the surface color
//   - params: the material parameters
//   - lights: the packed light block
//
// Returns:
//   - [3]float32: the summed light contribution
func PhongModelLights(normal, position, eye [3]float32, shape [4]float32, params material.GPUMaterialParams, lights light.GPULightsUniform) [3]float32 {
	e := common.Normalize3(common.Sub3(eye, position))
	var result [3]float32
	for i := 0; i < int(min(lights.Count, light.MaxLights)); i++ {
		l := lights.Lights[i]
		toLight := common.Sub3([3]float32{l.Position[0], l.Position[1], l.Position[2]}, common.Scale3(position, l.Position[3]))
		ld := common.Normalize3(toLight)
		h := common.Normalize3(common.Add3(ld, e))
		diffuse := max(common.Dot3(normal, ld), 0)
		specular := math32.Pow(max(common.Dot3(normal, h), 0), params.Smoothness)
		attenuation := 1 / (1 + l.Attenuation*common.Dot3(toLight, toLight))
		for c := 0; c < 3; c++ {
			contribution := shape[c]*l.Color[c]*params.Diffusivity*diffuse + l.Color[c]*params.Specularity*specular
			result[c] += attenuation * contribution
		}
	}
	return result
}

// ProgramFor returns the program that draws m.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - Program: the program
//   - error: if the material names an unknown program
func ProgramFor(m material.Material) (Program, error) {
	p, ok := Lookup(m.Program())
	if !ok {
		return nil, fmt.Errorf("material %q uses unknown program %q", m.Name(), m.Program())
	}
	return p, nil
}
