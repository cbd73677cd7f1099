package model

import (
	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/chewxy/math32"
)

// tetrahedron is the seed solid refined by NewSubdivisionSphere.
var tetrahedron = [4][3]float32{
	{0, 0, -1},
	{0, .9428, .3333},
	{-.8165, -.4714, .3333},
	{.8165, -.4714, .3333},
}

// NewSubdivisionSphere approximates a unit sphere by recursively splitting each face of a
// tetrahedron into four and pushing the new midpoints out onto the sphere.
// Normals equal positions, and texture coordinates are a longitude/latitude mapping
// (u = 0.5 - atan2(z, x)/2pi, v = 0.5 + asin(y)/pi).
//
// Midpoints are not shared between neighbouring triangles, so a sphere with n
// subdivisions has 4^(n+1) vertices and 4^(n+1) triangles.
//
// Parameters:
//   - subdivisions: number of refinement passes (0 yields the tetrahedron)
//
// Returns:
//   - Mesh: the sphere mesh
func NewSubdivisionSphere(subdivisions int) Mesh {
	b := &sphereBuilder{positions: append([][3]float32(nil), tetrahedron[:]...)}
	b.subdivide(0, 1, 2, subdivisions)
	b.subdivide(3, 2, 1, subdivisions)
	b.subdivide(1, 0, 3, subdivisions)
	b.subdivide(0, 2, 3, subdivisions)

	vertices := make([]GPUVertex, len(b.positions))
	for i, p := range b.positions {
		vertices[i] = GPUVertex{
			Position: p,
			Normal:   p,
			TexCoord: [2]float32{
				0.5 - math32.Atan2(p[2], p[0])/(2*math32.Pi),
				0.5 + math32.Asin(math32.Max(-1, math32.Min(1, p[1])))/math32.Pi,
			},
		}
	}
	return Mesh{Vertices: vertices, Indices: b.indices}
}

type sphereBuilder struct {
	positions [][3]float32
	indices   []uint32
}

func (b *sphereBuilder) midpoint(i, j uint32) uint32 {
	p := common.Normalize3(common.Scale3(common.Add3(b.positions[i], b.positions[j]), 0.5))
	b.positions = append(b.positions, p)
	return uint32(len(b.positions) - 1)
}

func (b *sphereBuilder) subdivide(a, bb, c uint32, count int) {
	if count <= 0 {
		b.indices = append(b.indices, a, bb, c)
		return
	}
	ab := b.midpoint(a, bb)
	ac := b.midpoint(a, c)
	bc := b.midpoint(bb, c)
	b.subdivide(a, ab, ac, count-1)
	b.subdivide(ab, bb, bc, count-1)
	b.subdivide(ac, bc, c, count-1)
	b.subdivide(ab, bc, ac, count-1)
}

// FlatShaded returns a copy of m in which no vertex is shared between triangles and every
// vertex normal is its triangle's outward-facing face normal, giving a faceted look.
//
// Parameters:
//   - m: the source mesh, left untouched
//
// Returns:
//   - Mesh: the flat-shaded copy with one vertex per index
func FlatShaded(m Mesh) Mesh {
	out := Mesh{
		Vertices: make([]GPUVertex, len(m.Indices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	for i, idx := range m.Indices {
		out.Vertices[i] = m.Vertices[idx]
		out.Indices[i] = uint32(i)
	}

	for t := 0; t+2 < len(out.Vertices); t += 3 {
		p1 := out.Vertices[t].Position
		p2 := out.Vertices[t+1].Position
		p3 := out.Vertices[t+2].Position
		n := common.Normalize3(common.Cross3(common.Sub3(p1, p2), common.Sub3(p3, p1)))

		// Flip normals that point toward the origin.
		probe := common.Add3(p1, common.Scale3(n, 0.1))
		if common.Dot3(probe, probe) < common.Dot3(p1, p1) {
			n = common.Scale3(n, -1)
		}
		out.Vertices[t].Normal = n
		out.Vertices[t+1].Normal = n
		out.Vertices[t+2].Normal = n
	}
	return out
}
