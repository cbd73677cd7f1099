package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional is a light at infinity; its position is a direction (w = 0).
	LightTypeDirectional LightType = iota

	// LightTypePoint emits in all directions from its position (w = 1).
	LightTypePoint
)

type lightImpl struct {
	position [4]float32
	color    [4]float32
	size     float32
	enabled  bool
}

// Light is an immutable light source. The scene builds a fresh set every frame, so there are
// no setters.
//
// The position is homogeneous: w = 1 places a point light at xyz, w = 0 makes xyz a
// direction toward a light at infinity. Brightness falls off as 1 / (1 + d^2 / size),
// so a larger size lights a wider neighbourhood.
type Light interface {
	// Type derives the kind of light from the w component of the position.
	//
	// Returns:
	//   - LightType: LightTypePoint when w != 0, LightTypeDirectional otherwise
	Type() LightType

	// Position returns the homogeneous position or direction.
	Position() [4]float32

	// Color returns the RGBA color.
	Color() [4]float32

	// Size returns the reach parameter.
	Size() float32

	// Attenuation returns 1 / size, or 0 (no falloff) for a non-positive size.
	//
	// Returns:
	//   - float32: the attenuation factor
	Attenuation() float32

	// Enabled reports whether PackLights includes the light.
	Enabled() bool
}

var _ Light = &lightImpl{}

// NewLight creates a Light. Defaults to an enabled white point light at the origin with size 1.
//
// Parameters:
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		position: [4]float32{0, 0, 0, 1},
		color:    [4]float32{1, 1, 1, 1},
		size:     1,
		enabled:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewPoint is NewLight with a position, color and size.
//
// Parameters:
//   - position: homogeneous position (w = 1 for a point light)
//   - color: RGBA color
//   - size: reach parameter
//
// Returns:
//   - Light: the configured light
func NewPoint(position, color [4]float32, size float32) Light {
	return NewLight(WithPosition(position), WithColor(color), WithSize(size))
}

func (l *lightImpl) Type() LightType {
	if l.position[3] == 0 {
		return LightTypeDirectional
	}
	return LightTypePoint
}

func (l *lightImpl) Position() [4]float32 { return l.position }
func (l *lightImpl) Color() [4]float32    { return l.color }
func (l *lightImpl) Size() float32        { return l.size }
func (l *lightImpl) Enabled() bool        { return l.enabled }

func (l *lightImpl) Attenuation() float32 {
	if l.size <= 0 {
		return 0
	}
	return 1 / l.size
}
