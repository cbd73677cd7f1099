package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxLights is the number of lights the shading programs evaluate.
// It matches MAX_LIGHTS and the array length in GPULightsSource.
const MaxLights = 2

// GPULightsSource is the canonical WGSL definition of the PointLight and LightsUniform structs.
// Matches GPULight (48 bytes) and GPULightsUniform (112 bytes) exactly.
//
//go:embed assets/lights.wgsl
var GPULightsSource string

// GPULightingSource is the WGSL phong_model_lights function shared by the lit programs.
// It needs the MaterialParams and LightsUniform structs in scope.
//
//go:embed assets/lighting.wgsl
var GPULightingSource string

// GPULight is the GPU-aligned representation of a single light source.
// Matches the WGSL PointLight struct layout exactly (see GPULightsSource).
// Size: 48 bytes (WGSL uniform aligned).
type GPULight struct {
	Position    [4]float32 // offset  0: homogeneous position or direction
	Color       [4]float32 // offset 16: RGBA color
	Attenuation float32    // offset 32: distance falloff factor
	_           [3]float32 // offset 36: padding to 16-byte alignment
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 48)
	g.put(buf)
	return buf
}

func (g *GPULight) put(buf []byte) {
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Attenuation))
}

// GPULightsUniform is the per-frame light block: a count followed by a fixed array of lights.
// Matches the WGSL LightsUniform struct layout exactly (see GPULightsSource).
// Size: 112 bytes.
type GPULightsUniform struct {
	Count  uint32              // offset  0: number of valid entries in Lights
	_      [3]uint32           // offset  4: padding
	Lights [MaxLights]GPULight // offset 16: the lights
}

// Size returns the size of the GPULightsUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (u *GPULightsUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPULightsUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload
func (u *GPULightsUniform) Marshal() []byte {
	buf := make([]byte, u.Size())
	binary.LittleEndian.PutUint32(buf[0:4], u.Count)
	stride := (&GPULight{}).Size()
	for i := range u.Lights {
		u.Lights[i].put(buf[16+i*stride:])
	}
	return buf
}

// ToGPULight converts a Light interface value into the GPU-aligned GPULight struct.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	return GPULight{
		Position:    l.Position(),
		Color:       l.Color(),
		Attenuation: l.Attenuation(),
	}
}

// PackLights builds the light block from the enabled lights, keeping at most MaxLights.
// Lights beyond the budget are dropped in order.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - GPULightsUniform: the packed uniform
func PackLights(lights []Light) GPULightsUniform {
	var u GPULightsUniform
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		if u.Count == MaxLights {
			break
		}
		u.Lights[u.Count] = ToGPULight(l)
		u.Count++
	}
	return u
}
