package objects

import (
	"github.com/chazu/facet/pkg/mesh"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultColor is the color of faces built without WithColor.
var DefaultColor = mesh.Color{255, 0, 0, 255}

// Builder constructs a Face through a fluent API.
type Builder struct {
	surface   Surface
	exteriors []CycleRef
	interiors []CycleRef
	color     mesh.Color
}

// NewBuilder starts a face on the given surface.
func NewBuilder(surface Surface) *Builder {
	return &Builder{surface: surface, color: DefaultColor}
}

// WithExteriorPolygon adds an exterior cycle through points given in surface
// coordinates.
func (b *Builder) WithExteriorPolygon(points []v2.Vec) *Builder {
	b.exteriors = append(b.exteriors, NewCycleRef(b.surface, NewParametricCycle(points...)))
	return b
}

// WithInteriorPolygon adds a hole through points given in surface
// coordinates.
func (b *Builder) WithInteriorPolygon(points []v2.Vec) *Builder {
	b.interiors = append(b.interiors, NewCycleRef(b.surface, NewParametricCycle(points...)))
	return b
}

// WithColor sets the face color.
func (b *Builder) WithColor(color mesh.Color) *Builder {
	b.color = color
	return b
}

// Build returns the face.
func (b *Builder) Build() Face {
	return New(b.surface, b.exteriors, b.interiors, b.color)
}
