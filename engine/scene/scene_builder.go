package scene

import (
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/model"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera sets the camera the scene draws from. Defaults to camera.NewCamera().
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithMovement sets the free-fly controls. Defaults to camera.NewMovement().
//
// Parameters:
//   - mov: the controls
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMovement(mov camera.Movement) SceneBuilderOption {
	return func(s *scene) {
		s.mov = mov
	}
}

// WithStars sets the number of background stars and the seed they are scattered with.
//
// Parameters:
//   - count: the number of stars (negative values are treated as 0)
//   - seed: the random seed
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithStars(count int, seed uint64) SceneBuilderOption {
	return func(s *scene) {
		s.starCount = max(count, 0)
		s.starSeed = seed
	}
}

// WithTextureDir sets the directory texture files are loaded from.
//
// Parameters:
//   - dir: the texture directory
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTextureDir(dir string) SceneBuilderOption {
	return func(s *scene) {
		s.textureDir = dir
	}
}

// WithMaxTextureSize caps the larger side of every decoded texture. 0 keeps source sizes.
//
// Parameters:
//   - size: the maximum side in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaxTextureSize(size int) SceneBuilderOption {
	return func(s *scene) {
		s.maxTextureSize = size
	}
}

// WithTimeScale multiplies the scene clock. Values <= 0 are ignored.
//
// Parameters:
//   - scale: the clock multiplier
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTimeScale(scale float32) SceneBuilderOption {
	return func(s *scene) {
		if scale > 0 {
			s.timeScale = scale
		}
	}
}

// WithLoadWorkers sets the number of goroutines that generate meshes and decode textures
// during Init. Defaults to runtime.NumCPU().
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLoadWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.workers = max(n, 1)
	}
}

// WithTitleCallback registers the function called with a new title whenever the camera
// selection changes.
//
// Parameters:
//   - callback: the title sink, e.g. window.SetTitle
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTitleCallback(callback func(title string)) SceneBuilderOption {
	return func(s *scene) {
		s.onTitle = callback
	}
}

// withCatalog replaces the mesh generators and materials. Tests use it to keep Init cheap.
func withCatalog(generators map[string]func() model.Mesh, materials map[string]material.Material) SceneBuilderOption {
	return func(s *scene) {
		s.generate = generators
		s.materials = materials
	}
}
