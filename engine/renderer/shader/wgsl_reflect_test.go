package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutOfSharedStructs(t *testing.T) {
	structs := parseStructs(stripLineComments(`
struct PointLight {
    position: vec4<f32>,
    color: vec4<f32>,
    attenuation: f32, // falloff
    _pad0: f32,
    _pad1: f32,
    _pad2: f32,
};

struct LightsUniform {
    count: u32,
    _pad0: u32,
    _pad1: u32,
    _pad2: u32,
    lights: array<PointLight, 2>,
};

struct Odd {
    a: f32,
    b: vec3f,
    c: mat3x3<f32>,
};
`))
	require.Len(t, structs, 3)
	assert.Equal(t, "array<PointLight, 2>", structs[1].members[4].typ)

	r := newLayoutResolver(structs)
	for typ, want := range map[string]typeLayout{
		"PointLight":    {48, 16},
		"LightsUniform": {112, 16},
		"Odd":           {80, 16},
		"vec3<u32>":     {12, 16},
		"array<f32, 3>": {12, 4},
	} {
		got, err := r.layout(typ)
		require.NoError(t, err, typ)
		assert.Equal(t, want, got, typ)
	}
}

func TestLayoutErrors(t *testing.T) {
	r := newLayoutResolver(parseStructs(`
struct Loop { next: Loop, };
struct Holder { inner: Missing, };
`))
	_, err := r.layout("Loop")
	assert.ErrorContains(t, err, "contains itself")

	_, err = r.layout("Holder")
	assert.ErrorContains(t, err, `Holder.inner: unknown type "Missing"`)

	_, err = r.layout("array<f32>")
	assert.ErrorContains(t, err, "runtime-sized")
}

func TestReflectRejectsUnsupportedResources(t *testing.T) {
	storage := `
struct Particles { count: u32, };
@group(0) @binding(0) var<storage, read_write> particles: Particles;
@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
`
	_, err := reflectWGSL(storage, ShaderTypeFragment)
	assert.ErrorContains(t, err, `@group(0) @binding(0) particles: unsupported address space "storage, read_write"`)

	depth := `
@group(1) @binding(0) var shadow: texture_depth_2d;
@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
`
	_, err = reflectWGSL(depth, ShaderTypeFragment)
	assert.ErrorContains(t, err, "texture_depth_2d")
}

func TestReflectEntryPointPerStage(t *testing.T) {
	src := `
// @vertex fn commented_out() {}
@vertex
fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0); }
@fragment
fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
`
	r, err := reflectWGSL(src, ShaderTypeVertex)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", r.entryPoint)
	assert.Empty(t, r.vertexLayouts)

	r, err = reflectWGSL(src, ShaderTypeFragment)
	require.NoError(t, err)
	assert.Equal(t, "fs_main", r.entryPoint)
}

func TestVertexBufferLayoutRejectsUnknownTypes(t *testing.T) {
	_, err := vertexBufferLayout(wgslStruct{
		name:    "Skinned",
		members: []wgslMember{{name: "joints", typ: "vec4<u32>", location: 0}},
	})
	assert.ErrorContains(t, err, "Skinned.joints")

	vl, err := vertexBufferLayout(wgslStruct{
		name: "Colored",
		members: []wgslMember{
			{name: "position", typ: "vec3f", location: 0},
			{name: "color", typ: "vec4<f32>", location: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(28), vl.ArrayStride)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, vl.Attributes[1].Format)
	assert.Equal(t, uint64(12), vl.Attributes[1].Offset)
	assert.Equal(t, uint32(3), vl.Attributes[1].ShaderLocation)
}

func TestSplitMembers(t *testing.T) {
	assert.Equal(t, []string{"a: f32", "b: array<vec4<f32>, 4>"}, splitMembers("\n a: f32,\n b: array<vec4<f32>, 4>,\n"))
}
