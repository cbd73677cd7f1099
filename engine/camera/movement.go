package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orrery/common"
)

// movementImpl is the single implementation of Movement.
type movementImpl struct {
	mu *sync.Mutex

	// held tracks which thrust keys are currently down.
	held map[uint32]bool

	speed float32
}

// Movement defines free-fly camera controls.
//
// W/S thrust forward and back, A/D strafe, Space rises and Z sinks. Thrust is expressed
// in camera space, so "forward" is always the direction the camera faces.
type Movement interface {
	// HandleKey records a key press or release.
	//
	// Parameters:
	//   - ev: the key event
	//
	// Returns:
	//   - bool: true if the key is a movement key
	HandleKey(ev common.KeyEvent) bool

	// Thrust returns the unit-per-axis camera-space movement direction of the held keys.
	// Opposing keys cancel.
	//
	// Returns:
	//   - [3]float32: the thrust vector
	Thrust() [3]float32

	// Active reports whether any movement key is held.
	//
	// Returns:
	//   - bool: true if the camera would move
	Active() bool

	// Speed returns the travel speed in world units per second.
	//
	// Returns:
	//   - float32: the speed
	Speed() float32

	// SetSpeed sets the travel speed in world units per second.
	//
	// Parameters:
	//   - speed: the speed
	SetSpeed(speed float32)

	// Apply moves the camera by the current thrust.
	//
	// Parameters:
	//   - view: the current view matrix
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - [16]float32: translate(-thrust*speed*dt) * view
	Apply(view [16]float32, dt float32) [16]float32

	// Reset releases every held key.
	Reset()
}

// thrustKeys maps each movement key to its camera-space direction.
var thrustKeys = map[uint32][3]float32{
	common.KeyW:     {0, 0, -1},
	common.KeyS:     {0, 0, 1},
	common.KeyA:     {-1, 0, 0},
	common.KeyD:     {1, 0, 0},
	common.KeySpace: {0, 1, 0},
	common.KeyZ:     {0, -1, 0},
}

// Compile-time interface compliance check
var _ Movement = &movementImpl{}

// NewMovement creates free-fly controls with no keys held.
//
// Parameters:
//   - options: functional options to configure the controls
//
// Returns:
//   - Movement: the newly created controls
func NewMovement(options ...MovementOption) Movement {
	m := &movementImpl{
		mu:    &sync.Mutex{},
		held:  make(map[uint32]bool),
		speed: 20,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *movementImpl) HandleKey(ev common.KeyEvent) bool {
	if _, ok := thrustKeys[ev.Key]; !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ev.Action {
	case common.KeyPressed:
		m.held[ev.Key] = true
	case common.KeyReleased:
		delete(m.held, ev.Key)
	}
	return true
}

func (m *movementImpl) Thrust() [3]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.thrust()
}

func (m *movementImpl) Active() bool {
	t := m.Thrust()
	return t != [3]float32{}
}

func (m *movementImpl) Speed() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

func (m *movementImpl) SetSpeed(speed float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = speed
}

func (m *movementImpl) Apply(view [16]float32, dt float32) [16]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.thrust()
	if t == [3]float32{} {
		return view
	}
	step := common.Scale3(t, -m.speed*dt)
	return common.Chain(common.Translation(step[0], step[1], step[2]), view)
}

func (m *movementImpl) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.held)
}

// thrust sums the directions of the held keys.
// Caller must hold the mutex.
func (m *movementImpl) thrust() [3]float32 {
	var t [3]float32
	for key := range m.held {
		t = common.Add3(t, thrustKeys[key])
	}
	return t
}
