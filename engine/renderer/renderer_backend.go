package renderer

import (
	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// Valid reports whether the sample count is one the backend can create targets for.
//
// Returns:
//   - bool: true for MSAAOff and MSAA4x
func (c MSAASampleCount) Valid() bool {
	return c == MSAAOff || c == MSAA4x
}

// RendererBackend owns the GPU device and the surface. The Renderer validates arguments and
// resolves pipeline keys, then delegates here. All methods must be called from the goroutine
// that created the backend.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swap chain and the MSAA and depth targets for a size.
	ConfigureSurface(width, height int)

	// SetPresentMode switches between vsync and uncapped presentation on the next configure.
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader modules and layouts of p and stores the
	// resulting render pipeline on it.
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and uint32 index data into buffers owned by provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the uniform buffers the provider is missing and its bind group.
	// Texture and sampler bindings must already be set on the provider.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads RGBA pixels and stores the texture view at bindingKey.
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler and stores it at bindingKey.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues uniform writes. They land before the next submitted frame.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the surface texture and opens the frame's render pass.
	BeginFrame() error

	// DrawCall records one indexed draw of meshProvider with bindGroups at @group(0..n).
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame closes the render pass and submits it.
	EndFrame()

	// Present shows the frame and releases the surface texture.
	Present()
}
