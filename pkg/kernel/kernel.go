// Package kernel defines the solid modeling interface used to produce
// triangle-set faces for shapes that have no boundary representation yet.
// Implementations sample an implicit solid and emit its surface as a
// flat set of colored triangles.
package kernel

import (
	"github.com/chazu/facet/pkg/aabb"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/objects"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingVolume returns the axis-aligned box around the solid.
	BoundingVolume() aabb.Aabb3
}

// Kernel builds and transforms solids and converts them into faces.
type Kernel interface {
	// Primitives
	Box(bounds aabb.Aabb3) Solid
	Cylinder(height, radius float64) Solid
	Extrude(profile []v2.Vec, height float64) (Solid, error)

	// Transforms
	Translate(s Solid, offset v3.Vec) Solid
	Rotate(s Solid, degrees v3.Vec) Solid // Euler angles applied X, then Y, then Z

	// ToFace samples the solid's surface into a triangle-set face with the
	// given color.
	ToFace(s Solid, color mesh.Color) (objects.Face, error)
}
