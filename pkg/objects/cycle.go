package objects

import (
	"iter"
	"slices"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/local"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// ParametricCycle is a closed loop of straight edges in surface coordinates.
// Edge i runs from point i to point i+1; the last edge closes the loop.
type ParametricCycle struct {
	points []v2.Vec
}

// NewParametricCycle creates a cycle through the given points.
func NewParametricCycle(points ...v2.Vec) ParametricCycle {
	return ParametricCycle{points: slices.Clone(points)}
}

// Points returns a copy of the cycle's points.
func (c ParametricCycle) Points() []v2.Vec {
	return slices.Clone(c.points)
}

// Len returns the number of points, which equals the number of edges.
func (c ParametricCycle) Len() int {
	return len(c.points)
}

// Edges returns the edges of the cycle, closing edge included.
func (c ParametricCycle) Edges() [][2]v2.Vec {
	edges := make([][2]v2.Vec, len(c.points))
	for i, p := range c.points {
		edges[i] = [2]v2.Vec{p, c.points[(i+1)%len(c.points)]}
	}
	return edges
}

// Clone returns a copy that shares no storage with c.
func (c ParametricCycle) Clone() ParametricCycle {
	return ParametricCycle{points: slices.Clone(c.points)}
}

// Equal reports whether both cycles have the same points in the same order.
func (c ParametricCycle) Equal(o ParametricCycle) bool {
	return c.Compare(o) == 0
}

// Compare orders cycles point by point.
func (c ParametricCycle) Compare(o ParametricCycle) int {
	return geom.ComparePoints2(c.points, o.points)
}

// SpatialCycle is a closed loop of straight edges in 3D.
type SpatialCycle struct {
	points []v3.Vec
}

// NewSpatialCycle creates a cycle through the given points.
func NewSpatialCycle(points ...v3.Vec) SpatialCycle {
	return SpatialCycle{points: slices.Clone(points)}
}

// Points returns a copy of the cycle's points.
func (c SpatialCycle) Points() []v3.Vec {
	return slices.Clone(c.points)
}

// Len returns the number of points, which equals the number of edges.
func (c SpatialCycle) Len() int {
	return len(c.points)
}

// Edges returns the edges of the cycle, closing edge included.
func (c SpatialCycle) Edges() [][2]v3.Vec {
	edges := make([][2]v3.Vec, len(c.points))
	for i, p := range c.points {
		edges[i] = [2]v3.Vec{p, c.points[(i+1)%len(c.points)]}
	}
	return edges
}

// Clone returns a copy that shares no storage with c.
func (c SpatialCycle) Clone() SpatialCycle {
	return SpatialCycle{points: slices.Clone(c.points)}
}

// Equal reports whether both cycles have the same points in the same order.
func (c SpatialCycle) Equal(o SpatialCycle) bool {
	return c.Compare(o) == 0
}

// Compare orders cycles point by point.
func (c SpatialCycle) Compare(o SpatialCycle) int {
	return geom.ComparePoints3(c.points, o.points)
}

// CycleRef references a cycle in a face by its surface-local form, paired
// with its canonical 3D form.
type CycleRef = local.Form[ParametricCycle, SpatialCycle]

// NewCycleRef pairs a cycle with its form lifted onto the surface.
func NewCycleRef(surface Surface, cycle ParametricCycle) CycleRef {
	return local.Derive(cycle, surface.LiftCycle)
}

func compareRefs(a, b CycleRef) int {
	if c := a.Local().Compare(b.Local()); c != 0 {
		return c
	}
	return a.Canonical().Compare(b.Canonical())
}

// CyclesInFace is the ordered list of cycle references stored in a face.
// Duplicates are kept.
type CyclesInFace struct {
	refs []CycleRef
}

// NewCyclesInFace collects cycle references, keeping their order.
func NewCyclesInFace(refs ...CycleRef) CyclesInFace {
	return CyclesInFace{refs: slices.Clone(refs)}
}

// Len returns the number of cycles.
func (c CyclesInFace) Len() int {
	return len(c.refs)
}

// At returns the i-th cycle reference.
func (c CyclesInFace) At(i int) CycleRef {
	return c.refs[i]
}

// Refs returns a copy of the cycle references.
func (c CyclesInFace) Refs() []CycleRef {
	return slices.Clone(c.refs)
}

// All yields every cycle reference in order.
func (c CyclesInFace) All() iter.Seq[CycleRef] {
	return slices.Values(c.refs)
}

// Canonical yields the canonical 3D form of every cycle.
func (c CyclesInFace) Canonical() iter.Seq[SpatialCycle] {
	return func(yield func(SpatialCycle) bool) {
		for _, ref := range c.refs {
			if !yield(ref.Canonical().Clone()) {
				return
			}
		}
	}
}

// Local yields the surface-local form of every cycle.
func (c CyclesInFace) Local() iter.Seq[ParametricCycle] {
	return func(yield func(ParametricCycle) bool) {
		for _, ref := range c.refs {
			if !yield(ref.Local().Clone()) {
				return
			}
		}
	}
}

// Clone deep-copies every cycle reference.
func (c CyclesInFace) Clone() CyclesInFace {
	return CyclesInFace{refs: lo.Map(c.refs, func(ref CycleRef, _ int) CycleRef {
		return ref.Clone()
	})}
}

// Equal reports whether both sets hold equal references in the same order.
func (c CyclesInFace) Equal(o CyclesInFace) bool {
	return c.Compare(o) == 0
}

// Compare orders sets reference by reference, local form first.
func (c CyclesInFace) Compare(o CyclesInFace) int {
	return slices.CompareFunc(c.refs, o.refs, compareRefs)
}
