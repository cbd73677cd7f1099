package pipeline

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderVisibility is the visibility of every binding in a pipeline layout. Using both stages
// everywhere keeps layouts of pipelines that declare the same resources identical, so one
// provider (such as the camera's) can be bound to all of them.
const RenderVisibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

// RenderState is the fixed-function state of a render pipeline.
type RenderState struct {
	DepthTest  bool
	DepthWrite bool
	CullMode   wgpu.CullMode
	Topology   wgpu.PrimitiveTopology
	FrontFace  wgpu.FrontFace
	WriteMask  wgpu.ColorWriteMask
	// Blend is nil for opaque color targets.
	Blend *wgpu.BlendState
}

// DefaultRenderState is an opaque, depth tested and depth written triangle list with
// counter-clockwise front faces and no culling.
//
// Returns:
//   - RenderState: the default state
func DefaultRenderState() RenderState {
	return RenderState{
		DepthTest:  true,
		DepthWrite: true,
		CullMode:   wgpu.CullModeNone,
		Topology:   wgpu.PrimitiveTopologyTriangleList,
		FrontFace:  wgpu.FrontFaceCCW,
		WriteMask:  wgpu.ColorWriteMaskAll,
	}
}

// DepthCompare returns the depth comparison for the state. Without a depth test every
// fragment passes.
func (rs RenderState) DepthCompare() wgpu.CompareFunction {
	if rs.DepthTest {
		return wgpu.CompareFunctionLess
	}
	return wgpu.CompareFunctionAlways
}

// AlphaBlend composites straight-alpha colors over the target.
func AlphaBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline and the state used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// the shaders are required to be set before the pipeline is registered with the Renderer.

	vertexShader, fragmentShader shader.Shader

	// layouts holds the bind group layouts of both stages merged by group index
	layouts map[int]wgpu.BindGroupLayoutDescriptor

	// renderPipeline is nil until the Renderer registers this pipeline
	renderPipeline *wgpu.RenderPipeline

	state RenderState
}

// Pipeline defines the interface for a GPU render pipeline built from a vertex and a fragment
// shader. It holds the RenderState the pipeline is created with and the bind group layouts
// shared by both stages.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified stage if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the stage of shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// BindGroupLayoutDescriptor returns the layout of a bind group as seen by both stages.
	// Every entry is visible to RenderVisibility.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the merged descriptor, empty if no stage uses the group
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns the merged layout of every bind group used by the pipeline.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// Declarations returns the group and provider annotations of the vertex shader followed by
	// those of the fragment shader.
	//
	// Returns:
	//   - []shader.Annotation: the combined declarations
	Declarations() []shader.Annotation

	// RenderPipeline returns the underlying WebGPU render pipeline.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the pipeline, or nil if it has not been registered
	RenderPipeline() *wgpu.RenderPipeline

	// RenderState returns the fixed-function state the pipeline is created with.
	//
	// Returns:
	//   - RenderState: the state
	RenderState() RenderState

	// SetRenderPipeline sets the render pipeline. Called by the Renderer on registration.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline. Both a vertex and a fragment shader
// must be supplied through the options, otherwise NewPipeline panics.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		state:       DefaultRenderState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.vertexShader == nil || p.fragmentShader == nil {
		panic(fmt.Sprintf("pipeline: %s requires both a vertex and a fragment shader", pipelineKey))
	}
	p.layouts = MergeBindGroupLayouts(p.vertexShader.BindGroupLayoutDescriptors(), p.fragmentShader.BindGroupLayoutDescriptors())
	for _, desc := range p.layouts {
		for i := range desc.Entries {
			desc.Entries[i].Visibility = RenderVisibility
		}
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return p.layouts[group]
}

func (p *pipeline) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return p.layouts
}

func (p *pipeline) Declarations() []shader.Annotation {
	decls := make([]shader.Annotation, 0, len(p.vertexShader.Declarations())+len(p.fragmentShader.Declarations()))
	decls = append(decls, p.vertexShader.Declarations()...)
	return append(decls, p.fragmentShader.Declarations()...)
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) RenderState() RenderState {
	return p.state
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

// MergeBindGroupLayouts combines the bind group layout descriptors of a vertex and a fragment
// shader into one set suitable for a render pipeline layout.
//
// For each group index present in either shader:
//   - Entries with the same binding number have their Visibility flags ORed together
//   - Entries unique to one shader are included with their original visibility
//
// Parameters:
//   - vertexLayouts: bind group layout descriptors from the vertex shader
//   - fragmentLayouts: bind group layout descriptors from the fragment shader
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
func MergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)

	groups := make(map[int]bool)
	for g := range vertexLayouts {
		groups[g] = true
	}
	for g := range fragmentLayouts {
		groups[g] = true
	}

	for g := range groups {
		entryMap := make(map[uint32]wgpu.BindGroupLayoutEntry)
		for _, e := range vertexLayouts[g].Entries {
			entryMap[e.Binding] = e
		}
		for _, e := range fragmentLayouts[g].Entries {
			if existing, ok := entryMap[e.Binding]; ok {
				existing.Visibility |= e.Visibility
				entryMap[e.Binding] = existing
			} else {
				entryMap[e.Binding] = e
			}
		}

		entries := make([]wgpu.BindGroupLayoutEntry, 0, len(entryMap))
		for _, e := range entryMap {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		merged[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}

	return merged
}
