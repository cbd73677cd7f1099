package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParamsSource is the canonical WGSL definition of the MaterialParams struct.
// Matches GPUMaterialParams layout exactly (48 bytes).
//
//go:embed assets/material_params.wgsl
var GPUMaterialParamsSource string

// GPUMaterialParams is the GPU-aligned per-draw material uniform.
// Matches the WGSL MaterialParams struct layout exactly (see GPUMaterialParamsSource).
// Size: 48 bytes (WGSL uniform aligned).
type GPUMaterialParams struct {
	Color       [4]float32 // offset  0: base RGBA color (16 bytes)
	Ambient     float32    // offset 16: ambient coefficient
	Diffusivity float32    // offset 20: diffuse coefficient
	Specularity float32    // offset 24: specular coefficient
	Smoothness  float32    // offset 28: specular exponent
	Textured    uint32     // offset 32: 1 when the texture binding holds a real texture
	Bumped      uint32     // offset 36: 1 when the texture perturbs the normal
	_           [2]uint32  // offset 40: padding to 16-byte alignment
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 48)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Ambient))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Diffusivity))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Specularity))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Smoothness))
	binary.LittleEndian.PutUint32(buf[32:36], g.Textured)
	binary.LittleEndian.PutUint32(buf[36:40], g.Bumped)
	return buf
}
