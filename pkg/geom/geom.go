// Package geom provides ordering and planar predicates over the sdfx vector
// types used throughout facet.
package geom

import (
	"cmp"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compare2 orders 2D points lexicographically by X, then Y. NaN sorts before
// every other value, so the order is total.
func Compare2(a, b v2.Vec) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// Compare3 orders 3D points lexicographically by X, Y, then Z.
func Compare3(a, b v3.Vec) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

// ComparePoints2 orders point sequences element-wise, shorter first on a
// shared prefix.
func ComparePoints2(a, b []v2.Vec) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare2(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// ComparePoints3 is ComparePoints2 for 3D points.
func ComparePoints3(a, b []v3.Vec) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare3(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Finite2 reports whether every coordinate of p is finite.
func Finite2(p v2.Vec) bool {
	return finite(p.X) && finite(p.Y)
}

// Finite3 reports whether every coordinate of p is finite.
func Finite3(p v3.Vec) bool {
	return finite(p.X) && finite(p.Y) && finite(p.Z)
}

// Orient returns twice the signed area of triangle abc: positive when abc
// turns counter-clockwise, negative when clockwise, zero when collinear.
func Orient(a, b, c v2.Vec) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// SignedArea returns the signed area of the closed polygon through points.
// Counter-clockwise polygons have positive area.
func SignedArea(points []v2.Vec) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

// onSegment reports whether p, known to be collinear with ab, lies within
// the bounding box of ab.
func onSegment(a, b, p v2.Vec) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// SegmentsIntersect reports whether the closed segments ab and cd share at
// least one point, touching endpoints included.
func SegmentsIntersect(a, b, c, d v2.Vec) bool {
	o1 := sign(Orient(a, b, c))
	o2 := sign(Orient(a, b, d))
	o3 := sign(Orient(c, d, a))
	o4 := sign(Orient(c, d, b))

	if o1 != o2 && o3 != o4 {
		return true
	}

	switch {
	case o1 == 0 && onSegment(a, b, c):
		return true
	case o2 == 0 && onSegment(a, b, d):
		return true
	case o3 == 0 && onSegment(c, d, a):
		return true
	case o4 == 0 && onSegment(c, d, b):
		return true
	}
	return false
}

// PointInPolygon reports whether p lies strictly inside the closed polygon
// using the even-odd crossing rule. Points on the boundary may report
// either result.
func PointInPolygon(p v2.Vec, polygon []v2.Vec) bool {
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
