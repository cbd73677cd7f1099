// Package material holds the surface descriptions the shading programs consume.
//
// A Material is an immutable value. Per-frame adjustments such as the lights-on ambient
// level go through Override, which returns a patched copy and leaves the base untouched,
// so one Material can be shared by every frame and every draw that uses it.
package material

import (
	"github.com/Carmen-Shannon/oxy-orrery/common"
)

// Shading program keys a Material can reference.
const (
	// ProgramPhong is per-pixel Blinn-Phong, optionally textured and bump-perturbed.
	ProgramPhong = "phong"
	// ProgramGouraud is per-vertex Phong lighting interpolated across each triangle.
	ProgramGouraud = "gouraud"
	// ProgramRipple is the sine-wave "black hole" displacement program.
	ProgramRipple = "ripple"
	// ProgramSun is the noise-driven fireball displacement program.
	ProgramSun = "sun"
)

// Material is a named set of surface parameters bound to one shading program.
// The zero value is not useful; construct with NewMaterial.
type Material struct {
	name        string
	program     string
	color       [4]float32
	ambient     float32
	diffusivity float32
	specularity float32
	smoothness  float32
	texture     string
	filter      common.TextureFilter
	bumped      bool
}

// NewMaterial creates a Material for the given shading program.
// Unset parameters default to an opaque black color, ambient 0, diffusivity 1,
// specularity 1 and smoothness 40.
//
// Parameters:
//   - name: the identifier for the material
//   - program: the shading program key (ProgramPhong, ProgramGouraud, ...)
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: the configured material
func NewMaterial(name, program string, options ...MaterialBuilderOption) Material {
	m := Material{
		name:        name,
		program:     program,
		color:       [4]float32{0, 0, 0, 1},
		diffusivity: 1,
		specularity: 1,
		smoothness:  40,
	}
	for _, opt := range options {
		opt(&m)
	}
	return m
}

// Override returns a copy of m with the given options applied. m itself is unchanged.
//
// Parameters:
//   - options: the parameters to replace
//
// Returns:
//   - Material: the derived material
func (m Material) Override(options ...MaterialBuilderOption) Material {
	for _, opt := range options {
		opt(&m)
	}
	return m
}

func (m Material) Name() string {
	return m.name
}

func (m Material) Program() string {
	return m.program
}

func (m Material) Color() [4]float32 {
	return m.color
}

func (m Material) Ambient() float32 {
	return m.ambient
}

func (m Material) Diffusivity() float32 {
	return m.diffusivity
}

func (m Material) Specularity() float32 {
	return m.specularity
}

func (m Material) Smoothness() float32 {
	return m.smoothness
}

// Texture returns the texture file name, or "" when the material is untextured.
func (m Material) Texture() string {
	return m.texture
}

// Filter returns the sampling filter used for the texture.
func (m Material) Filter() common.TextureFilter {
	return m.filter
}

// Textured reports whether the material samples a texture.
func (m Material) Textured() bool {
	return m.texture != ""
}

// Bumped reports whether the texture also perturbs the shading normal.
func (m Material) Bumped() bool {
	return m.bumped && m.Textured()
}

// Params packs the material into its uniform representation.
//
// Returns:
//   - GPUMaterialParams: the uniform payload for this material
func (m Material) Params() GPUMaterialParams {
	p := GPUMaterialParams{
		Color:       m.color,
		Ambient:     m.ambient,
		Diffusivity: m.diffusivity,
		Specularity: m.specularity,
		Smoothness:  m.smoothness,
	}
	if m.Textured() {
		p.Textured = 1
	}
	if m.Bumped() {
		p.Bumped = 1
	}
	return p
}
