package model

import "encoding/binary"

// Mesh is CPU-side indexed triangle geometry: one GPUVertex per vertex and three indices per triangle.
// Meshes are plain values. The transforming helpers in this package return new meshes and never
// modify their input.
type Mesh struct {
	// Vertices holds the vertex attributes.
	Vertices []GPUVertex

	// Indices lists triangle corners as offsets into Vertices, three per triangle.
	Indices []uint32
}

// VertexData packs the vertices for upload into a vertex buffer.
//
// Returns:
//   - []byte: little-endian vertex data, 32 bytes per vertex
func (m Mesh) VertexData() []byte {
	if len(m.Vertices) == 0 {
		return nil
	}
	stride := m.Vertices[0].Size()
	buf := make([]byte, stride*len(m.Vertices))
	for i := range m.Vertices {
		m.Vertices[i].put(buf[i*stride:])
	}
	return buf
}

// IndexData packs the indices as little-endian uint32 values for upload into an index buffer.
//
// Returns:
//   - []byte: the index data
func (m Mesh) IndexData() []byte {
	buf := make([]byte, 4*len(m.Indices))
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// IndexCount returns the number of indices in the mesh.
func (m Mesh) IndexCount() int {
	return len(m.Indices)
}

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone returns a deep copy of the mesh.
func (m Mesh) Clone() Mesh {
	out := Mesh{
		Vertices: make([]GPUVertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Indices, m.Indices)
	return out
}

// ScaleTexCoords returns a copy of m with every texture coordinate multiplied by s,
// which makes a repeat-addressed texture tile s times across the surface.
//
// Parameters:
//   - m: the source mesh, left untouched
//   - s: the scale factor
//
// Returns:
//   - Mesh: the rescaled copy
func ScaleTexCoords(m Mesh, s float32) Mesh {
	out := m.Clone()
	for i := range out.Vertices {
		out.Vertices[i].TexCoord[0] *= s
		out.Vertices[i].TexCoord[1] *= s
	}
	return out
}
