package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// typeLayout is the byte size and alignment of a host-shareable WGSL type.
type typeLayout struct {
	size  uint64
	align uint64
}

// scalarLayouts maps the 32-bit scalars and their vector and matrix forms to their layouts.
// Both spellings of a vector are present, e.g. "vec3<f32>" and "vec3f".
var scalarLayouts = func() map[string]typeLayout {
	m := map[string]typeLayout{
		"mat3x3<f32>": {48, 16},
		"mat3x3f":     {48, 16},
		"mat4x4<f32>": {64, 16},
		"mat4x4f":     {64, 16},
	}
	vectors := [...]typeLayout{2: {8, 8}, 3: {12, 16}, 4: {16, 16}}
	for _, scalar := range []string{"f32", "i32", "u32"} {
		m[scalar] = typeLayout{4, 4}
		for n := 2; n <= 4; n++ {
			m[fmt.Sprintf("vec%d<%s>", n, scalar)] = vectors[n]
			m[fmt.Sprintf("vec%d%c", n, scalar[0])] = vectors[n]
		}
	}
	return m
}()

// vertexFormats maps the WGSL types a vertex input member may have to their vertex format.
var vertexFormats = map[string]wgpu.VertexFormat{
	"f32":       wgpu.VertexFormatFloat32,
	"vec2<f32>": wgpu.VertexFormatFloat32x2,
	"vec2f":     wgpu.VertexFormatFloat32x2,
	"vec3<f32>": wgpu.VertexFormatFloat32x3,
	"vec3f":     wgpu.VertexFormatFloat32x3,
	"vec4<f32>": wgpu.VertexFormatFloat32x4,
	"vec4f":     wgpu.VertexFormatFloat32x4,
	"u32":       wgpu.VertexFormatUint32,
	"i32":       wgpu.VertexFormatSint32,
}

// alignUp rounds v up to a multiple of the power of two a.
func alignUp(v, a uint64) uint64 {
	return (v + a - 1) &^ (a - 1)
}

// layoutResolver computes uniform-buffer layouts of the structs of one source, memoizing
// every struct it has resolved.
type layoutResolver struct {
	structs  map[string]wgslStruct
	resolved map[string]typeLayout
	visiting map[string]bool
}

func newLayoutResolver(structs []wgslStruct) *layoutResolver {
	r := &layoutResolver{
		structs:  make(map[string]wgslStruct, len(structs)),
		resolved: make(map[string]typeLayout),
		visiting: make(map[string]bool),
	}
	for _, s := range structs {
		r.structs[s.name] = s
	}
	return r
}

// layout resolves the size and alignment of typ.
//
// Parameters:
//   - typ: a scalar, vector, matrix, fixed-size array or struct type name
//
// Returns:
//   - typeLayout: the layout
//   - error: if typ, or a type it contains, is unknown, recursive or runtime-sized
func (r *layoutResolver) layout(typ string) (typeLayout, error) {
	if l, ok := scalarLayouts[typ]; ok {
		return l, nil
	}
	if l, ok := r.resolved[typ]; ok {
		return l, nil
	}
	if inner, ok := strings.CutPrefix(typ, "array<"); ok {
		return r.arrayLayout(strings.TrimSuffix(inner, ">"))
	}

	s, ok := r.structs[typ]
	if !ok {
		return typeLayout{}, fmt.Errorf("unknown type %q", typ)
	}
	if r.visiting[typ] {
		return typeLayout{}, fmt.Errorf("struct %s contains itself", typ)
	}
	r.visiting[typ] = true
	defer delete(r.visiting, typ)

	var offset, align uint64 = 0, 1
	for _, m := range s.members {
		ml, err := r.layout(m.typ)
		if err != nil {
			return typeLayout{}, fmt.Errorf("%s.%s: %w", typ, m.name, err)
		}
		offset = alignUp(offset, ml.align) + ml.size
		align = max(align, ml.align)
	}
	l := typeLayout{size: alignUp(offset, align), align: align}
	r.resolved[typ] = l
	return l, nil
}

// arrayLayout resolves "T, N". The element stride is the element size rounded up to its
// alignment.
func (r *layoutResolver) arrayLayout(params string) (typeLayout, error) {
	elem, count, ok := strings.Cut(params, ",")
	if !ok {
		return typeLayout{}, fmt.Errorf("runtime-sized array<%s> cannot be a uniform", params)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
	if err != nil {
		return typeLayout{}, fmt.Errorf("array<%s>: bad element count", params)
	}
	el, err := r.layout(strings.TrimSpace(elem))
	if err != nil {
		return typeLayout{}, err
	}
	return typeLayout{size: n * alignUp(el.size, el.align), align: el.align}, nil
}

// vertexBufferLayout packs the members of a vertex input struct tightly in declaration order.
func vertexBufferLayout(s wgslStruct) (wgpu.VertexBufferLayout, error) {
	vl := wgpu.VertexBufferLayout{
		StepMode:   wgpu.VertexStepModeVertex,
		Attributes: make([]wgpu.VertexAttribute, 0, len(s.members)),
	}
	for _, m := range s.members {
		format, ok := vertexFormats[m.typ]
		if !ok {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("vertex input %s.%s: unsupported type %q", s.name, m.name, m.typ)
		}
		vl.Attributes = append(vl.Attributes, wgpu.VertexAttribute{
			Format:         format,
			Offset:         vl.ArrayStride,
			ShaderLocation: uint32(m.location),
		})
		vl.ArrayStride += scalarLayouts[m.typ].size
	}
	return vl, nil
}
