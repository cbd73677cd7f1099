package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexSource = `//@oxy:include vertex
//@oxy:include camera
//@oxy:include model_transform

//@oxy:group 0 0 storage_uniform camera camera
//@oxy:group 1 0 storage_uniform draw model_transform

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = draw.pvm * vec4<f32>(in.position, 1.0);
    out.uv = in.uv;
    return out;
}
`

const testFragmentSource = `//@oxy:include lights
//@oxy:include material_params

//@oxy:group 0 1 storage_uniform lights lights
//@oxy:group 1 1 storage_uniform params material_params

//@oxy:provider 2 0 material diffuse_texture
@group(2) @binding(0) var diffuse_texture: texture_2d<f32>;
//@oxy:provider 2 1 material diffuse_sampler
@group(2) @binding(1) var diffuse_sampler: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return params.color * textureSample(diffuse_texture, diffuse_sampler, uv);
}
`

func TestNewShaderVertex(t *testing.T) {
	s := NewShader("test_vs", ShaderTypeVertex, testVertexSource)

	assert.Equal(t, "test_vs", s.Key())
	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	require.NotNil(t, s.Module())
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	vl := layouts[0][0]
	assert.Equal(t, uint64(32), vl.ArrayStride)
	require.Len(t, vl.Attributes, 3)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, vl.Attributes[0].Format)
	assert.Equal(t, uint64(12), vl.Attributes[1].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, vl.Attributes[2].Format)
	assert.Equal(t, uint32(2), vl.Attributes[2].ShaderLocation)

	camera := s.BindGroupLayoutDescriptor(0)
	require.Len(t, camera.Entries, 1)
	assert.Equal(t, uint64(144), camera.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, camera.Entries[0].Visibility)
	assert.Equal(t, uint64(144), s.BindGroupLayoutDescriptor(1).Entries[0].Buffer.MinBindingSize)

	assert.Equal(t, "draw", s.BindGroupVarName(1, 0))
	assert.Equal(t, "", s.BindGroupVarName(5, 0))
	assert.Len(t, s.Declarations(), 2)
}

func TestNewShaderFragment(t *testing.T) {
	s := NewShader("test_fs", ShaderTypeFragment, testFragmentSource)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())

	assert.Equal(t, uint64(112), s.BindGroupLayoutDescriptor(0).Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(48), s.BindGroupLayoutDescriptor(1).Entries[0].Buffer.MinBindingSize)

	material := s.BindGroupLayoutDescriptor(2)
	require.Len(t, material.Entries, 2)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, material.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, material.Entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, material.Entries[1].Sampler.Type)
	assert.Equal(t, wgpu.ShaderStageFragment, material.Entries[1].Visibility)

	decls := s.Declarations()
	require.Len(t, decls, 4)
	assert.Equal(t, AnnotationTypeProvider, decls[2].Type)
	assert.Equal(t, AnnotationArgDiffuseTexture, decls[2].Args[1])
}

func TestNewShaderPanics(t *testing.T) {
	assert.Panics(t, func() { NewShader("empty", ShaderTypeVertex, "") })
	assert.Panics(t, func() { NewShader("bad", ShaderTypeVertex, "//@oxy:include missing\n@vertex fn vs_main() {}") })
	assert.Panics(t, func() { NewShader("no_entry", ShaderTypeFragment, testVertexSource) })
}

func TestShaderTypeVisibility(t *testing.T) {
	assert.Equal(t, wgpu.ShaderStageVertex, ShaderTypeVertex.Visibility())
	assert.Equal(t, wgpu.ShaderStageFragment, ShaderTypeFragment.Visibility())
}
