package light

// LightBuilderOption configures a Light in NewLight.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the homogeneous position: w = 1 for a point light, w = 0 for a direction.
func WithPosition(position [4]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithColor sets the RGBA color.
func WithColor(color [4]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithSize sets the reach parameter. Attenuation is 1 / size.
func WithSize(size float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.size = size
	}
}

// WithEnabled builds a light that PackLights skips when false.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
