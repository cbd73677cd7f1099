package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `//@oxy:include vertex
//@oxy:include camera
//@oxy:include model_transform
//@oxy:group 0 0 storage_uniform camera camera
//@oxy:group 1 0 storage_uniform draw model_transform

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return draw.pvm * vec4<f32>(in.position, 1.0);
}
`

const fragmentSource = `//@oxy:include camera
//@oxy:include material_params
//@oxy:group 0 0 storage_uniform camera camera
//@oxy:group 1 1 storage_uniform params material_params

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return params.color + vec4<f32>(camera.position, 0.0);
}
`

func testPipeline(opts ...PipelineBuilderOption) Pipeline {
	vs := shader.NewShader("test_vs", shader.ShaderTypeVertex, vertexSource)
	fs := shader.NewShader("test_fs", shader.ShaderTypeFragment, fragmentSource)
	return NewPipeline("test", append([]PipelineBuilderOption{WithVertexShader(vs), WithFragmentShader(fs)}, opts...)...)
}

func TestNewPipelineDefaults(t *testing.T) {
	p := testPipeline()

	assert.Equal(t, "test", p.PipelineKey())
	assert.Equal(t, DefaultRenderState(), p.RenderState())
	assert.Nil(t, p.RenderState().Blend)
	assert.Equal(t, wgpu.CompareFunctionLess, p.RenderState().DepthCompare())
	assert.Nil(t, p.RenderPipeline())
	assert.Equal(t, "test_vs", p.Shader(shader.ShaderTypeVertex).Key())
	assert.Equal(t, "test_fs", p.Shader(shader.ShaderTypeFragment).Key())
}

func TestNewPipelineOptions(t *testing.T) {
	p := testPipeline(WithCullMode(wgpu.CullModeBack), WithAlphaBlend(), WithDepthWrite(false))

	rs := p.RenderState()
	assert.Equal(t, wgpu.CullModeBack, rs.CullMode)
	assert.False(t, rs.DepthWrite)
	require.NotNil(t, rs.Blend)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, rs.Blend.Color.SrcFactor)
}

func TestWithRenderStateThenOverride(t *testing.T) {
	base := DefaultRenderState()
	base.DepthTest = false
	base.Topology = wgpu.PrimitiveTopologyLineList

	rs := testPipeline(WithRenderState(base), WithCullMode(wgpu.CullModeFront)).RenderState()
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, rs.Topology)
	assert.Equal(t, wgpu.CullModeFront, rs.CullMode)
	assert.Equal(t, wgpu.CompareFunctionAlways, rs.DepthCompare())
}

func TestNewPipelineRequiresShaders(t *testing.T) {
	assert.Panics(t, func() { NewPipeline("empty") })
}

func TestMergedLayouts(t *testing.T) {
	p := testPipeline()

	frame := p.BindGroupLayoutDescriptor(0)
	require.Len(t, frame.Entries, 1)
	assert.Equal(t, RenderVisibility, frame.Entries[0].Visibility)

	draw := p.BindGroupLayoutDescriptor(1)
	require.Len(t, draw.Entries, 2)
	assert.Equal(t, uint32(0), draw.Entries[0].Binding)
	assert.Equal(t, RenderVisibility, draw.Entries[0].Visibility)
	assert.Equal(t, uint32(1), draw.Entries[1].Binding)
	assert.Equal(t, RenderVisibility, draw.Entries[1].Visibility)
	assert.Equal(t, uint64(48), draw.Entries[1].Buffer.MinBindingSize)

	assert.Len(t, p.BindGroupLayoutDescriptors(), 2)
	assert.Empty(t, p.BindGroupLayoutDescriptor(4).Entries)
}

func TestDeclarationsOrder(t *testing.T) {
	decls := testPipeline().Declarations()
	require.Len(t, decls, 4)
	assert.Equal(t, shader.AnnotationArgCamera, decls[0].Args[2])
	assert.Equal(t, shader.AnnotationArgModelTransform, decls[1].Args[2])
	assert.Equal(t, shader.AnnotationArgMaterialParams, decls[3].Args[2])
}

func TestMergeBindGroupLayoutsDisjoint(t *testing.T) {
	merged := MergeBindGroupLayouts(
		map[int]wgpu.BindGroupLayoutDescriptor{0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 1, Visibility: wgpu.ShaderStageVertex}}}},
		map[int]wgpu.BindGroupLayoutDescriptor{2: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}}},
	)
	require.Len(t, merged, 2)
	assert.Equal(t, wgpu.ShaderStageVertex, merged[0].Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, merged[2].Entries[0].Visibility)
}
