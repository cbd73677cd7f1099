package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/bind_group_provider"
	"github.com/chewxy/math32"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

// Lens is the perspective part of the projection; the aspect ratio follows the window.
type Lens struct {
	// Fov is the vertical field of view in radians.
	Fov  float32
	Near float32
	Far  float32
}

// DefaultLens is perspective(pi/4, aspect, 1, 200).
var DefaultLens = Lens{Fov: math32.Pi / 4, Near: 1, Far: 200}

// Default placement.
var (
	DefaultEye    = [3]float32{0, 10, 20}
	DefaultTarget = [3]float32{0, 0, 0}
	DefaultUp     = [3]float32{0, 1, 0}
)

// InitialView returns the overview camera: looking from (0, 10, 20) at the origin with +Y up.
//
// Returns:
//   - [16]float32: the view matrix
func InitialView() [16]float32 {
	return common.LookAtMat4(DefaultEye, DefaultTarget, DefaultUp)
}

type cameraImpl struct {
	mu *sync.Mutex

	lens   Lens
	aspect float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
	position             [3]float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for the camera system.
// The camera holds the active view matrix, which callers steer directly (teleporting,
// free-fly movement), and a perspective projection derived from its lens settings.
type Camera interface {
	// Lens returns the field of view and clipping planes.
	//
	// Returns:
	//   - Lens: the lens
	Lens() Lens

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Position returns the world-space eye position, recovered from the inverse view matrix.
	//
	// Returns:
	//   - [3]float32: the eye position
	Position() [3]float32

	// Uniform returns the camera state packed for the GPU.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform payload
	Uniform() GPUCameraUniform

	// BindGroupProvider returns the provider owning the camera uniform buffer. Each camera
	// gets its own provider on construction.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetViewMatrix replaces the view matrix and recomputes the derived matrices.
	//
	// Parameters:
	//   - view: the new world to camera matrix
	SetViewMatrix(view [16]float32)

	// SetLens replaces the field of view and clipping planes and recomputes matrices.
	//
	// Parameters:
	//   - lens: the new lens
	SetLens(lens Lens)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera placed at the overview view with a
// perspective(pi/4, aspect, 1, 200) projection.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		lens:       DefaultLens,
		aspect:     1.0,
		viewMatrix: InitialView(),
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Lens() Lens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lens
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		View:       c.viewMatrix,
		Projection: c.projectionMatrix,
		Position:   c.position,
	}
}

func (c *cameraImpl) SetViewMatrix(view [16]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMatrix = view
	c.updateMatrices()
}

func (c *cameraImpl) SetLens(lens Lens) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lens = lens
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

// updateMatrices recalculates the projection, view-projection and eye position.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.Perspective(c.projectionMatrix[:], c.lens.Fov, c.aspect, c.lens.Near, c.lens.Far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])

	inv := common.Inverse(c.viewMatrix)
	c.position = [3]float32{inv[12], inv[13], inv[14]}
}
