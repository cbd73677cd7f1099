package material

import (
	"github.com/Carmen-Shannon/oxy-orrery/common"
)

// MaterialBuilderOption is a function that configures a material during construction or Override.
type MaterialBuilderOption func(*Material)

// WithColor is an option builder that sets the base RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color [4]float32) MaterialBuilderOption {
	return func(m *Material) {
		m.color = color
	}
}

// WithAmbient is an option builder that sets the ambient coefficient.
//
// Parameters:
//   - ambient: the fraction of the base color emitted regardless of lighting
//
// Returns:
//   - MaterialBuilderOption: a function that applies the ambient option to a material
func WithAmbient(ambient float32) MaterialBuilderOption {
	return func(m *Material) {
		m.ambient = ambient
	}
}

// WithDiffusivity is an option builder that sets the diffuse coefficient.
//
// Parameters:
//   - diffusivity: the diffuse reflection weight
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffusivity option to a material
func WithDiffusivity(diffusivity float32) MaterialBuilderOption {
	return func(m *Material) {
		m.diffusivity = diffusivity
	}
}

// WithSpecularity is an option builder that sets the specular coefficient.
//
// Parameters:
//   - specularity: the specular reflection weight
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specularity option to a material
func WithSpecularity(specularity float32) MaterialBuilderOption {
	return func(m *Material) {
		m.specularity = specularity
	}
}

// WithSmoothness is an option builder that sets the specular exponent.
//
// Parameters:
//   - smoothness: the Blinn-Phong shininess exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the smoothness option to a material
func WithSmoothness(smoothness float32) MaterialBuilderOption {
	return func(m *Material) {
		m.smoothness = smoothness
	}
}

// WithTexture is an option builder that attaches a texture file to the material.
//
// Parameters:
//   - file: the texture file name, resolved against the configured texture directory
//   - filter: how the texture is sampled
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(file string, filter common.TextureFilter) MaterialBuilderOption {
	return func(m *Material) {
		m.texture = file
		m.filter = filter
	}
}

// WithBumpMapping is an option builder that lets the texture perturb the shading normal.
// It has no effect on untextured materials.
//
// Parameters:
//   - enabled: whether the texture bends the normal
//
// Returns:
//   - MaterialBuilderOption: a function that applies the bump option to a material
func WithBumpMapping(enabled bool) MaterialBuilderOption {
	return func(m *Material) {
		m.bumped = enabled
	}
}
