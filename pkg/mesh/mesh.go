// Package mesh assembles deduplicated indexed triangle meshes.
//
// A Mesh is the handoff to renderers and exporters: when vertices are pushed
// in triangle-triples, indices[3k], indices[3k+1] and indices[3k+2] form
// triangle k. Mesh does not enforce that convention; meshing code does.
//
// A Mesh is not safe for concurrent use. To mesh in parallel, build one Mesh
// per worker.
package mesh

import (
	"iter"
	"math"

	"github.com/deadsy/sdfx/sdf"
)

// Index refers to a vertex in a mesh.
type Index = uint32

// Color is an RGBA color.
type Color = [4]uint8

// Mesh is a triangle mesh over vertices of type V. Equal vertices are stored
// once and referenced by index.
type Mesh[V comparable] struct {
	vertices []V
	indices  []Index

	indicesByVertex map[V]Index
}

// New returns an empty mesh.
func New[V comparable]() *Mesh[V] {
	return &Mesh[V]{indicesByVertex: make(map[V]Index)}
}

// Push adds a vertex occurrence. A vertex equal to one pushed earlier reuses
// that vertex's index. Push panics if a new vertex would need an index beyond
// the range of Index.
func (m *Mesh[V]) Push(vertex V) {
	if m.indicesByVertex == nil {
		m.indicesByVertex = make(map[V]Index)
	}

	index, ok := m.indicesByVertex[vertex]
	if !ok {
		if uint64(len(m.vertices)) > math.MaxUint32 {
			panic("mesh: vertex index overflow")
		}
		index = Index(len(m.vertices))
		m.vertices = append(m.vertices, vertex)
		m.indicesByVertex[vertex] = index
	}

	m.indices = append(m.indices, index)
}

// Vertices returns the distinct vertices in the order they were first pushed.
func (m *Mesh[V]) Vertices() iter.Seq[V] {
	vertices := m.vertices[:len(m.vertices):len(m.vertices)]
	return func(yield func(V) bool) {
		for _, v := range vertices {
			if !yield(v) {
				return
			}
		}
	}
}

// Indices returns one index per pushed vertex occurrence.
func (m *Mesh[V]) Indices() iter.Seq[Index] {
	indices := m.indices[:len(m.indices):len(m.indices)]
	return func(yield func(Index) bool) {
		for _, i := range indices {
			if !yield(i) {
				return
			}
		}
	}
}

// Vertex returns the vertex with the given index.
func (m *Mesh[V]) Vertex(i Index) V {
	return m.vertices[i]
}

// VertexCount returns the number of distinct vertices.
func (m *Mesh[V]) VertexCount() int {
	return len(m.vertices)
}

// IndexCount returns the number of pushed vertex occurrences.
func (m *Mesh[V]) IndexCount() int {
	return len(m.indices)
}

// Triangle is a 3D triangle with a color, the unit emitted by meshing.
type Triangle struct {
	Inner sdf.Triangle3 `json:"inner"`
	Color Color         `json:"color"`
}

// NewTriangle creates a colored triangle from its corner points.
func NewTriangle(inner sdf.Triangle3, color Color) Triangle {
	return Triangle{Inner: inner, Color: color}
}
