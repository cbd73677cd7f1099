package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("camera", WithGroup(2))

	assert.Equal(t, "camera", p.Label())
	assert.Equal(t, 2, p.Group())
	assert.False(t, p.Initialized())
	assert.False(t, p.Mesh().Ready())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(0))
	assert.Nil(t, p.Sampler(1))
}

func TestBindingsReplaceEachOther(t *testing.T) {
	p := NewBindGroupProvider("material")
	buf := &wgpu.Buffer{}
	sampler := &wgpu.Sampler{}

	p.SetBuffer(0, buf)
	p.SetSampler(1, sampler)
	assert.Same(t, buf, p.Buffer(0))
	assert.Same(t, sampler, p.Sampler(1))
	assert.Nil(t, p.TextureView(0))

	// A binding holds one resource: a sampler at slot 0 replaces the buffer.
	p.SetSampler(0, sampler)
	assert.Nil(t, p.Buffer(0))
	assert.Same(t, sampler, p.Sampler(0))

	p.SetSampler(0, nil)
	assert.Nil(t, p.Sampler(0))
}

func TestMeshBuffersReady(t *testing.T) {
	buf := &wgpu.Buffer{}
	assert.True(t, MeshBuffers{Vertex: buf, Index: buf, IndexCount: 3}.Ready())
	assert.False(t, MeshBuffers{Vertex: buf, Index: buf}.Ready())
	assert.False(t, MeshBuffers{Vertex: buf, IndexCount: 3}.Ready())
	assert.False(t, MeshBuffers{}.Ready())
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("empty")
	p.SetMesh(MeshBuffers{IndexCount: 3})
	p.SetBuffer(0, nil)
	p.SetTextureView(1, nil)

	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.Mesh())
	assert.NotPanics(t, p.Release)
}

func TestSlotPoolAcquire(t *testing.T) {
	pool := NewSlotPool(1)

	a, fresh := pool.Acquire("phong")
	require.True(t, fresh)
	assert.Equal(t, 1, a.Group())
	b, fresh := pool.Acquire("phong")
	require.True(t, fresh)
	assert.NotSame(t, a, b)

	c, fresh := pool.Acquire("sun")
	assert.True(t, fresh)
	assert.NotSame(t, a, c)

	pool.Reset()
	again, fresh := pool.Acquire("phong")
	assert.False(t, fresh)
	assert.Same(t, a, again)
	assert.Equal(t, 2, pool.Len("phong"))
	assert.Equal(t, 1, pool.Len("sun"))
}

func TestSlotPoolDiscard(t *testing.T) {
	pool := NewSlotPool(1)
	_, _ = pool.Acquire("phong")
	pool.Discard("phong")
	assert.Equal(t, 0, pool.Len("phong"))

	_, fresh := pool.Acquire("phong")
	assert.True(t, fresh)
	assert.NotPanics(t, func() { pool.Discard("unknown") })
}

func TestSlotPoolRelease(t *testing.T) {
	pool := NewSlotPool(0)
	_, _ = pool.Acquire("a")
	pool.Release()
	assert.Equal(t, 0, pool.Len("a"))
}
