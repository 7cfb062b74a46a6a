// Package objects implements the boundary representation of shapes: faces
// bounded by cycles that lie in a surface.
package objects

import (
	"github.com/chazu/facet/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Surface is a plane parametrized by an origin and two direction vectors.
// Surface coordinates (u, v) map to Origin + u*U + v*V.
type Surface struct {
	Origin v3.Vec `json:"origin"`
	U      v3.Vec `json:"u"`
	V      v3.Vec `json:"v"`
}

// XYPlane returns the plane z = 0 with surface coordinates equal to world x
// and y.
func XYPlane() Surface {
	return Surface{
		Origin: v3.Vec{},
		U:      v3.Vec{X: 1},
		V:      v3.Vec{Y: 1},
	}
}

// NewPlane creates a plane surface.
func NewPlane(origin, u, v v3.Vec) Surface {
	return Surface{Origin: origin, U: u, V: v}
}

// PointFromSurfaceCoords converts surface coordinates into a 3D point.
func (s Surface) PointFromSurfaceCoords(p v2.Vec) v3.Vec {
	return s.Origin.Add(s.U.MulScalar(p.X)).Add(s.V.MulScalar(p.Y))
}

// PointToSurfaceCoords projects a 3D point onto the plane and returns its
// surface coordinates.
func (s Surface) PointToSurfaceCoords(p v3.Vec) v2.Vec {
	d := p.Sub(s.Origin)
	uu, uv, vv := s.U.Dot(s.U), s.U.Dot(s.V), s.V.Dot(s.V)
	du, dv := d.Dot(s.U), d.Dot(s.V)
	det := uu*vv - uv*uv
	return v2.Vec{
		X: (du*vv - dv*uv) / det,
		Y: (dv*uu - du*uv) / det,
	}
}

// Normal returns the unit normal U x V.
func (s Surface) Normal() v3.Vec {
	return s.U.Cross(s.V).Normalize()
}

// Transform applies a rigid transform to the surface.
func (s Surface) Transform(m sdf.M44) Surface {
	origin := m.MulPosition(s.Origin)
	return Surface{
		Origin: origin,
		U:      m.MulPosition(s.Origin.Add(s.U)).Sub(origin),
		V:      m.MulPosition(s.Origin.Add(s.V)).Sub(origin),
	}
}

// LiftCycle converts a cycle in surface coordinates into its 3D form.
func (s Surface) LiftCycle(c ParametricCycle) SpatialCycle {
	points := make([]v3.Vec, len(c.points))
	for i, p := range c.points {
		points[i] = s.PointFromSurfaceCoords(p)
	}
	return SpatialCycle{points: points}
}

// Equal reports whether two surfaces are identical.
func (s Surface) Equal(o Surface) bool {
	return s == o
}

// Compare orders surfaces by origin, then U, then V.
func (s Surface) Compare(o Surface) int {
	if c := geom.Compare3(s.Origin, o.Origin); c != 0 {
		return c
	}
	if c := geom.Compare3(s.U, o.U); c != 0 {
		return c
	}
	return geom.Compare3(s.V, o.V)
}
