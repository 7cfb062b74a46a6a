// Package polygon provides validated construction of triangles in 2D and 3D.
package polygon

import (
	"errors"
	"fmt"

	"github.com/chazu/facet/pkg/geom"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var (
	// ErrIdenticalPoints reports that at least two points are identical.
	ErrIdenticalPoints = errors.New("polygon: identical points")

	// ErrPointsOnLine reports that the points lie on a line.
	ErrPointsOnLine = errors.New("polygon: points on a line")
)

// Point is satisfied by the sdfx vector types v2.Vec and v3.Vec.
type Point[P any] interface {
	comparable
	Sub(P) P
	Normalize() P
}

// Triangle is a polygon with three points. Its points are normalized so that
// the lexicographically smallest point comes first while the winding is kept,
// making triangles that differ only in their starting point equal.
type Triangle[P Point[P]] struct {
	points [3]P
}

// New validates three points and returns the normalized triangle.
func New[P Point[P]](a, b, c P) (Triangle[P], error) {
	points := [3]P{a, b, c}

	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i] == points[j] {
				return Triangle[P]{}, ErrIdenticalPoints
			}
		}
	}

	// Only the directions along the traversal order are compared.
	if b.Sub(a).Normalize() == c.Sub(b).Normalize() {
		return Triangle[P]{}, ErrPointsOnLine
	}

	first := 0
	for i := 1; i < len(points); i++ {
		if compare(points[i], points[first]) < 0 {
			first = i
		}
	}

	return Triangle[P]{points: [3]P{
		points[first],
		points[(first+1)%3],
		points[(first+2)%3],
	}}, nil
}

// MustNew is like New but panics if the points do not form a triangle.
func MustNew[P Point[P]](a, b, c P) Triangle[P] {
	t, err := New(a, b, c)
	if err != nil {
		panic(fmt.Sprintf("polygon: %v, %v, %v: %v", a, b, c, err))
	}
	return t
}

// Points returns the normalized points of the triangle.
func (t Triangle[P]) Points() [3]P {
	return t.points
}

// Equal reports whether two triangles have the same points in the same
// winding.
func (t Triangle[P]) Equal(o Triangle[P]) bool {
	return t.points == o.points
}

// Compare orders triangles lexicographically by their normalized points.
func (t Triangle[P]) Compare(o Triangle[P]) int {
	for i := range t.points {
		if c := compare(t.points[i], o.points[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compare[P Point[P]](a, b P) int {
	switch a := any(a).(type) {
	case v2.Vec:
		return geom.Compare2(a, any(b).(v2.Vec))
	case v3.Vec:
		return geom.Compare3(a, any(b).(v3.Vec))
	}
	panic(fmt.Sprintf("polygon: unsupported point type %T", a))
}
