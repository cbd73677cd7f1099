package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// MeshBuffers are the GPU buffers of one indexed mesh.
type MeshBuffers struct {
	Vertex     *wgpu.Buffer
	Index      *wgpu.Buffer
	IndexCount int
}

// Ready reports whether both buffers exist and there is something to draw.
func (m MeshBuffers) Ready() bool {
	return m.Vertex != nil && m.Index != nil && m.IndexCount > 0
}

// binding is the resource bound at one @binding slot. Exactly one field is set.
type binding struct {
	buffer  *wgpu.Buffer
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

func (b binding) release() {
	switch {
	case b.buffer != nil:
		b.buffer.Release()
	case b.view != nil:
		b.view.Release()
	case b.sampler != nil:
		b.sampler.Release()
	}
}

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	label string
	group int

	// Everything below is created by the Renderer and released by Release.
	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	bindings        map[int]binding
	mesh            MeshBuffers
}

// BindGroupProvider owns the GPU resources behind one @group of a pipeline, or the vertex
// and index buffers of one mesh.
//
// The camera, each model, the scene's frame uniforms, every per-draw slot and every
// material hold one. The provider only stores what the Renderer creates:
//  1. textures and samplers through Renderer.InitTextureView and Renderer.InitSampler;
//  2. uniform buffers and the bind group through Renderer.InitBindGroup;
//  3. mesh buffers through Renderer.InitMeshBuffers.
//
// Uniforms are then updated with Renderer.WriteBuffers and the provider is handed to
// Renderer.DrawCall.
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider. It may be called again.
	Release()

	// Label returns the debug label used for the provider's GPU objects.
	Label() string

	// Group returns the @group index this provider binds to.
	Group() int

	// Initialized reports whether the Renderer has created a bind group for this provider.
	Initialized() bool

	BindGroup() *wgpu.BindGroup
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer, TextureView and Sampler return the resource at a binding, or nil.
	Buffer(binding int) *wgpu.Buffer
	TextureView(binding int) *wgpu.TextureView
	Sampler(binding int) *wgpu.Sampler

	// Mesh returns the mesh buffers, zero for a provider that is not a mesh.
	Mesh() MeshBuffers

	// SetBindGroup and SetBindGroupLayout are called by Renderer.InitBindGroup.
	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer, SetTextureView and SetSampler store the resource at a binding, replacing
	// whatever was bound there before. A nil resource clears the binding.
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetTextureView(binding int, tv *wgpu.TextureView)
	SetSampler(binding int, s *wgpu.Sampler)

	// SetMesh stores the buffers created by Renderer.InitMeshBuffers.
	//
	// Parameters:
	//   - mesh: the vertex buffer, index buffer and index count
	SetMesh(mesh MeshBuffers)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: a debug label used for the GPU objects created for this provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a provider with no GPU resources yet
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:    label,
		bindings: make(map[int]binding),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Group() int {
	return p.group
}

func (p *bindGroupProvider) Initialized() bool {
	return p.bindGroup != nil
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.bindings[binding].buffer
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.bindings[binding].view
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.bindings[binding].sampler
}

func (p *bindGroupProvider) Mesh() MeshBuffers {
	return p.mesh
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(slot int, buf *wgpu.Buffer) {
	p.bind(slot, binding{buffer: buf})
}

func (p *bindGroupProvider) SetTextureView(slot int, tv *wgpu.TextureView) {
	p.bind(slot, binding{view: tv})
}

func (p *bindGroupProvider) SetSampler(slot int, s *wgpu.Sampler) {
	p.bind(slot, binding{sampler: s})
}

// bind replaces the resource at slot. A nil resource clears the slot.
func (p *bindGroupProvider) bind(slot int, b binding) {
	if b == (binding{}) {
		delete(p.bindings, slot)
		return
	}
	p.bindings[slot] = b
}

func (p *bindGroupProvider) SetMesh(mesh MeshBuffers) {
	p.mesh = mesh
}

func (p *bindGroupProvider) Release() {
	for slot, b := range p.bindings {
		b.release()
		delete(p.bindings, slot)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.mesh.Vertex != nil {
		p.mesh.Vertex.Release()
	}
	if p.mesh.Index != nil {
		p.mesh.Index.Release()
	}
	p.mesh = MeshBuffers{}
}
