package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Buffers is a mesh flattened for a renderer.
// Vertices has 3 floats per vertex (x,y,z), Normals has 3 floats per vertex
// and Indices has 3 uint32s per triangle.
type Buffers struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which shape this came from
}

// NewBuffers flattens a mesh whose indices are triangle-triples. Each vertex
// normal is the area-weighted average of the normals of the triangles that
// share it.
func NewBuffers(m *Mesh[v3.Vec], name string) *Buffers {
	normals := make([]v3.Vec, m.VertexCount())
	for k := 0; k+2 < len(m.indices); k += 3 {
		i0, i1, i2 := m.indices[k], m.indices[k+1], m.indices[k+2]
		a, b, c := m.vertices[i0], m.vertices[i1], m.vertices[i2]
		// Cross product length is twice the area, which weights the sum.
		n := b.Sub(a).Cross(c.Sub(a))
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}

	buf := &Buffers{
		Vertices: make([]float32, 0, m.VertexCount()*3),
		Normals:  make([]float32, 0, m.VertexCount()*3),
		Indices:  make([]uint32, 0, m.IndexCount()),
		PartName: name,
	}
	for i, v := range m.vertices {
		n := normals[i]
		if n.Length2() > 0 {
			n = n.Normalize()
		}
		buf.Vertices = append(buf.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		buf.Normals = append(buf.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	buf.Indices = append(buf.Indices, m.indices...)
	return buf
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (b *Buffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// IsEmpty returns true if the buffers hold no geometry.
func (b *Buffers) IsEmpty() bool {
	return len(b.Vertices) == 0
}
