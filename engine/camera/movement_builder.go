package camera

// MovementOption is a functional option for configuring Movement.
type MovementOption func(*movementImpl)

// WithSpeed sets the travel speed in world units per second.
//
// Parameters:
//   - speed: the speed
//
// Returns:
//   - MovementOption: functional option to set the speed
func WithSpeed(speed float32) MovementOption {
	return func(m *movementImpl) {
		m.speed = speed
	}
}
