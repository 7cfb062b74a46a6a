// Package sketch converts 2D sketches into validated faces.
//
// A Sketch is a closed poly-chain in the XY plane with a color. Circles and
// squares are approximated as sketches through the Shape2D interface.
package sketch

import (
	"fmt"
	"math"

	"github.com/chazu/facet/pkg/aabb"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/objects"
	"github.com/chazu/facet/pkg/validation"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// Sketch is a closed poly-chain in the XY plane. The last point connects
// back to the first.
type Sketch struct {
	Points []v2.Vec   `json:"points"`
	Color  mesh.Color `json:"color"`
	Name   string     `json:"name,omitempty"`
}

// New creates a sketch with the default face color.
func New(points ...v2.Vec) Sketch {
	return Sketch{Points: points, Color: objects.DefaultColor}
}

// Face builds the face described by the sketch without validating it.
func (s Sketch) Face() objects.Face {
	return objects.NewBuilder(objects.XYPlane()).
		WithExteriorPolygon(s.Points).
		WithColor(s.Color).
		Build()
}

// ToShape builds the sketch's face and validates it.
func (s Sketch) ToShape(cfg validation.Config) (validation.Validated[[]objects.Face], error) {
	shape, err := validation.Validate([]objects.Face{s.Face()}, cfg)
	if err != nil {
		return shape, fmt.Errorf("sketch %q: %w", s.Name, err)
	}
	return shape, nil
}

// BoundingVolume returns the box around the sketch's points, which is flat
// in z. It panics if the sketch has no points.
func (s Sketch) BoundingVolume() aabb.Aabb3 {
	return aabb.FromPoints3(lo.Map(s.Points, func(p v2.Vec, _ int) v3.Vec {
		return v3.Vec{X: p.X, Y: p.Y}
	}))
}

// Shape2D is a 2D shape that can be approximated by a sketch.
type Shape2D interface {
	// ToSketch approximates the shape. Curved shapes use the given number
	// of segments; others ignore it.
	ToSketch(segments int) (Sketch, error)
}

// Circle is a circle centered on the origin.
type Circle struct {
	Radius float64 `json:"radius"`
}

// ToSketch approximates the circle by a regular polygon.
func (c Circle) ToSketch(segments int) (Sketch, error) {
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return Sketch{}, fmt.Errorf("sketch: circle radius must be positive and finite, got %g", c.Radius)
	}
	if segments < 3 {
		return Sketch{}, fmt.Errorf("sketch: circle needs at least 3 segments, got %d", segments)
	}
	points := make([]v2.Vec, segments)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		points[i] = v2.Vec{X: c.Radius * math.Cos(angle), Y: c.Radius * math.Sin(angle)}
	}
	return New(points...), nil
}

// Square is an axis-aligned square centered on the origin.
type Square struct {
	Size float64 `json:"size"`
}

// ToSketch returns the square's four corners, counter-clockwise.
func (s Square) ToSketch(int) (Sketch, error) {
	if !(s.Size > 0) || math.IsInf(s.Size, 0) {
		return Sketch{}, fmt.Errorf("sketch: square size must be positive and finite, got %g", s.Size)
	}
	h := s.Size / 2
	return New(
		v2.Vec{X: -h, Y: -h},
		v2.Vec{X: h, Y: -h},
		v2.Vec{X: h, Y: h},
		v2.Vec{X: -h, Y: h},
	), nil
}
