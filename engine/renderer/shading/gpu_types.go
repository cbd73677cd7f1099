package shading

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shader"
)

// GPUFrameGlobalsSource is the canonical WGSL definition of the FrameGlobals struct.
// Matches GPUFrameGlobals layout exactly (16 bytes).
//
//go:embed assets/globals.wgsl
var GPUFrameGlobalsSource string

// IncludeGlobals is the pre-processor include argument for FrameGlobals.
const IncludeGlobals shader.AnnotationArg = "globals"

func init() {
	if err := shader.RegisterInclude(IncludeGlobals, GPUFrameGlobalsSource, "FrameGlobals"); err != nil {
		panic(fmt.Sprintf("shading: %v", err))
	}
}

// GPUFrameGlobals carries the per-frame clock values consumed by the animated programs.
// Size: 16 bytes (WGSL uniform aligned).
type GPUFrameGlobals struct {
	Time  float32    // offset 0: elapsed seconds since the scene started
	Delta float32    // offset 4: seconds since the previous frame
	_     [2]float32 // offset 8: padding
}

// Size returns the size of the GPUFrameGlobals struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUFrameGlobals) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameGlobals struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUFrameGlobals) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Delta))
	return buf
}
