package camera

// CameraBuilderOption is a functional option for configuring a Camera via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithAspect sets the initial aspect ratio (width / height). The engine keeps it in step
// with the window afterwards.
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithLens replaces DefaultLens.
//
// Parameters:
//   - lens: the field of view and clipping planes
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithLens(lens Lens) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lens = lens
	}
}

// WithView replaces the initial overview view matrix.
func WithView(view [16]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewMatrix = view
	}
}
