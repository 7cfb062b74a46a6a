// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/facet/pkg/aabb"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/objects"
	"github.com/chazu/facet/pkg/polygon"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// DefaultCells controls marching cubes resolution along the longest axis.
const DefaultCells = 200

// ErrEmptySurface is returned when sampling a solid yields no triangles.
var ErrEmptySurface = errors.New("sdfx: solid produced no triangles")

type solid struct {
	s sdf.SDF3
}

func (s *solid) BoundingVolume() aabb.Aabb3 {
	return aabb.FromBox3(s.s.BoundingBox())
}

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct {
	// Cells is the marching cubes resolution used by ToFace.
	Cells int
}

// New returns a kernel sampling at DefaultCells.
func New() *Kernel {
	return &Kernel{Cells: DefaultCells}
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*solid).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &solid{s: s}
}

// Box creates a box filling the given bounds. sdf.Box3D centers the box on
// the origin, so it is moved to the center of the bounds.
func (k *Kernel) Box(bounds aabb.Aabb3) kernel.Solid {
	s, err := sdf.Box3D(bounds.Size(), 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(sdf.Transform3D(s, sdf.Translate3d(bounds.Center())))
}

// Cylinder creates a cylinder along the z axis, centered on the origin.
func (k *Kernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Extrude lifts a closed XY profile into a prism of the given height,
// centered on z = 0.
func (k *Kernel) Extrude(profile []v2.Vec, height float64) (kernel.Solid, error) {
	if !(height > 0) {
		return nil, fmt.Errorf("sdfx: extrude height must be positive, got %g", height)
	}
	s, err := sdf.Polygon2D(profile)
	if err != nil {
		return nil, fmt.Errorf("sdfx: extrude profile: %w", err)
	}
	return wrap(sdf.Extrude3D(s, height)), nil
}

// Translate moves a solid by offset.
func (k *Kernel) Translate(s kernel.Solid, offset v3.Vec) kernel.Solid {
	return wrap(sdf.Transform3D(unwrap(s), sdf.Translate3d(offset)))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *Kernel) Rotate(s kernel.Solid, degrees v3.Vec) kernel.Solid {
	r := degrees.MulScalar(math.Pi / 180)
	m := sdf.RotateZ(r.Z).Mul(sdf.RotateY(r.Y)).Mul(sdf.RotateX(r.X))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToFace samples the solid with marching cubes. Degenerate triangles are
// dropped so the face passes validation.
func (k *Kernel) ToFace(s kernel.Solid, color mesh.Color) (objects.Face, error) {
	cells := k.Cells
	if cells <= 0 {
		cells = DefaultCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	sampled := render.ToTriangles(unwrap(s), renderer)

	triangles := make([]mesh.Triangle, 0, len(sampled))
	for _, tri := range sampled {
		inner := sdf.Triangle3{tri[0], tri[1], tri[2]}
		if _, err := polygon.New(inner[0], inner[1], inner[2]); err != nil {
			continue
		}
		triangles = append(triangles, mesh.NewTriangle(inner, color))
	}

	logging.Logger().Debug("sampled solid", "cells", cells, "triangles", len(triangles), "dropped", len(sampled)-len(triangles))
	if len(triangles) == 0 {
		return objects.Face{}, ErrEmptySurface
	}
	return objects.FromTriangles(triangles), nil
}
