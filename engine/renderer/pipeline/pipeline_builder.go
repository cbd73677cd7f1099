package pipeline

import (
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the vertex stage. Required.
//
// Parameters:
//   - s: the vertex shader
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets the fragment stage. Required.
//
// Parameters:
//   - s: the fragment shader
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithRenderState replaces the whole fixed-function state. Options applied after it still
// adjust individual fields.
//
// Parameters:
//   - rs: the state
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithRenderState(rs RenderState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state = rs
	}
}

// WithCullMode sets which faces are culled.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.CullMode = mode
	}
}

// WithDepthWrite sets whether fragments write depth. Depth testing is unaffected.
func WithDepthWrite(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.DepthWrite = enabled
	}
}

// WithAlphaBlend blends the color target with AlphaBlend.
func WithAlphaBlend() PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.Blend = AlphaBlend()
	}
}
