package model

import (
	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/chewxy/math32"
)

const (
	// StarOuterRadius is the distance from the star's centre to each of its five tips.
	StarOuterRadius = 7
	// StarInnerRadius is the distance from the star's centre to each notch between tips.
	StarInnerRadius = 4
	// starRimPoints is the number of rim vertices; the last repeats the first to close the fan.
	starRimPoints = 11
)

// NewPlanarStar builds a flat five-pointed star in the z = 0 plane, centred at the origin
// and facing -Z. It fits inside a 14x14 square.
//
// Vertex 0 is the centre. Rim vertex i (i = 0..10) is (0, r, 0) rotated by i*36 degrees
// about -Z, where r alternates between the outer and inner radius starting with the outer.
// Triangles fan from the centre over consecutive rim vertices. Texture coordinates map the
// bounding square onto [0, 1]^2.
//
// Returns:
//   - Mesh: 12 vertices and 10 triangles
func NewPlanarStar() Mesh {
	positions := make([][3]float32, 0, starRimPoints+1)
	positions = append(positions, [3]float32{0, 0, 0})

	indices := make([]uint32, 0, (starRimPoints-1)*3)
	for i := 0; i < starRimPoints; i++ {
		spin := common.RotationAxis(float32(i)*2*math32.Pi/10, [3]float32{0, 0, -1})
		radius := float32(StarOuterRadius)
		if i%2 == 1 {
			radius = StarInnerRadius
		}
		positions = append(positions, common.TransformPoint(spin, [3]float32{0, radius, 0}))
		if i > 0 {
			indices = append(indices, 0, uint32(i), uint32(i+1))
		}
	}

	vertices := make([]GPUVertex, len(positions))
	for i, p := range positions {
		vertices[i] = GPUVertex{
			Position: p,
			Normal:   [3]float32{0, 0, -1},
			TexCoord: [2]float32{
				(p[0] + StarOuterRadius) / (2 * StarOuterRadius),
				(p[1] + StarOuterRadius) / (2 * StarOuterRadius),
			},
		}
	}
	return Mesh{Vertices: vertices, Indices: indices}
}
