package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanarStar(t *testing.T) {
	star := NewPlanarStar()
	require.Len(t, star.Vertices, 12)
	require.Equal(t, 10, star.TriangleCount())

	assert.Equal(t, [3]float32{0, 0, 0}, star.Vertices[0].Position)
	assert.InDelta(t, 0, star.Vertices[1].Position[0], 1e-5)
	assert.InDelta(t, 7, star.Vertices[1].Position[1], 1e-5)

	for i := 1; i < len(star.Vertices); i++ {
		p := star.Vertices[i].Position
		r := math32.Sqrt(p[0]*p[0] + p[1]*p[1])
		want := float32(StarOuterRadius)
		if (i-1)%2 == 1 {
			want = StarInnerRadius
		}
		assert.InDelta(t, want, r, 1e-4, "rim vertex %d", i)
		assert.Equal(t, float32(0), p[2])
	}

	// The fan closes on itself.
	first, last := star.Vertices[1].Position, star.Vertices[11].Position
	assert.InDelta(t, first[0], last[0], 1e-4)
	assert.InDelta(t, first[1], last[1], 1e-4)

	for i := 1; i <= 10; i++ {
		assert.Equal(t, []uint32{0, uint32(i), uint32(i + 1)}, star.Indices[(i-1)*3:i*3])
	}

	for _, v := range star.Vertices {
		assert.Equal(t, [3]float32{0, 0, -1}, v.Normal)
		assert.InDelta(t, (v.Position[0]+7)/14, v.TexCoord[0], 1e-6)
		assert.InDelta(t, (v.Position[1]+7)/14, v.TexCoord[1], 1e-6)
		assert.GreaterOrEqual(t, v.TexCoord[0], float32(0))
		assert.LessOrEqual(t, v.TexCoord[0], float32(1))
	}
}

func TestPlanarStarTurnsClockwiseFromFront(t *testing.T) {
	// Rotating about -Z sends the first tip from +Y toward +X.
	star := NewPlanarStar()
	assert.Greater(t, star.Vertices[3].Position[0], float32(0))
}

func TestNewSubdivisionSphere(t *testing.T) {
	for n := 0; n <= 4; n++ {
		sphere := NewSubdivisionSphere(n)
		expected := 1 << (2 * (n + 1))
		assert.Len(t, sphere.Vertices, expected, "vertices at %d", n)
		assert.Equal(t, expected, sphere.TriangleCount(), "triangles at %d", n)

		for _, v := range sphere.Vertices {
			assert.InDelta(t, 1, math32.Sqrt(common.Dot3(v.Position, v.Position)), 1e-3)
			assert.Equal(t, v.Position, v.Normal)
			assert.GreaterOrEqual(t, v.TexCoord[1], float32(0))
			assert.LessOrEqual(t, v.TexCoord[1], float32(1))
		}
		for _, idx := range sphere.Indices {
			assert.Less(t, int(idx), len(sphere.Vertices))
		}
	}
}

func TestSphereTexCoordMapping(t *testing.T) {
	sphere := NewSubdivisionSphere(0)
	top := sphere.Vertices[1]
	assert.InDelta(t, 0.5+math32.Asin(top.Position[1])/math32.Pi, top.TexCoord[1], 1e-6)

	bottom := sphere.Vertices[0]
	assert.InDelta(t, 0.5, bottom.TexCoord[1], 1e-6)
}

func TestFlatShaded(t *testing.T) {
	sphere := NewSubdivisionSphere(2)
	flat := FlatShaded(sphere)

	require.Len(t, flat.Vertices, len(sphere.Indices))
	require.Len(t, flat.Indices, len(sphere.Indices))
	assert.NotEqual(t, sphere.Vertices[0].Normal, flat.Vertices[0].Normal)

	for tri := 0; tri < flat.TriangleCount(); tri++ {
		a, b, c := flat.Vertices[tri*3], flat.Vertices[tri*3+1], flat.Vertices[tri*3+2]
		assert.Equal(t, a.Normal, b.Normal)
		assert.Equal(t, a.Normal, c.Normal)
		assert.InDelta(t, 1, math32.Sqrt(common.Dot3(a.Normal, a.Normal)), 1e-4)

		centroid := common.Scale3(common.Add3(common.Add3(a.Position, b.Position), c.Position), 1.0/3)
		assert.Greater(t, common.Dot3(a.Normal, centroid), float32(0), "triangle %d faces inward", tri)
	}

	// The source keeps its shared, smooth vertices.
	assert.Equal(t, sphere.Vertices[0].Position, sphere.Vertices[0].Normal)
}

func TestScaleTexCoords(t *testing.T) {
	sphere := NewSubdivisionSphere(1)
	before := sphere.Vertices[5].TexCoord

	scaled := ScaleTexCoords(sphere, 5)
	assert.Equal(t, before, sphere.Vertices[5].TexCoord, "input mesh modified")
	assert.InDelta(t, before[0]*5, scaled.Vertices[5].TexCoord[0], 1e-6)
	assert.InDelta(t, before[1]*5, scaled.Vertices[5].TexCoord[1], 1e-6)
	assert.Equal(t, sphere.Indices, scaled.Indices)
}

func TestMeshData(t *testing.T) {
	star := NewPlanarStar()
	vd := star.VertexData()
	require.Len(t, vd, 32*len(star.Vertices))

	// Second vertex, position y.
	y := math.Float32frombits(binary.LittleEndian.Uint32(vd[32+4:]))
	assert.InDelta(t, 7, y, 1e-5)

	id := star.IndexData()
	require.Len(t, id, 4*star.IndexCount())
	assert.Equal(t, uint32(11), binary.LittleEndian.Uint32(id[len(id)-4:]))

	assert.Nil(t, Mesh{}.VertexData())
}

func TestGPUModelTransformMarshal(t *testing.T) {
	tr := GPUModelTransform{
		Model:        common.Translation(1, 2, 3),
		PVM:          common.Scaling(2, 2, 2),
		SquaredScale: [4]float32{4, 4, 4, 0},
	}
	buf := tr.Marshal()
	require.Len(t, buf, 144)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[48:])))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])))
	assert.Equal(t, float32(4), math.Float32frombits(binary.LittleEndian.Uint32(buf[128:])))
	assert.Contains(t, GPUModelTransformSource, "squared_scale")
	assert.Contains(t, GPUVertexSource, "@location(2) uv")
}

func TestNewModel(t *testing.T) {
	m := NewModel(WithName("star"), WithMesh(NewPlanarStar()))
	assert.Equal(t, "star", m.Name())
	assert.Equal(t, 30, m.IndexCount())
	assert.Nil(t, m.MeshProvider())
	assert.Equal(t, m.Mesh().VertexData(), m.VertexData())
}
