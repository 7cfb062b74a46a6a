package objects

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/mesh"
)

// FaceKind distinguishes the representations a Face can hold.
type FaceKind int

const (
	KindBRep      FaceKind = iota // surface bounded by cycles
	KindTriangles                 // flat triangle set (transitional)
)

func (k FaceKind) String() string {
	switch k {
	case KindBRep:
		return "brep"
	case KindTriangles:
		return "triangles"
	default:
		return fmt.Sprintf("FaceKind(%d)", int(k))
	}
}

// BRep is the boundary representation of a face: a region of a surface
// bounded by exterior cycles, with interior cycles cutting holes.
//
// Every cycle must lie in the surface. Cycles built with NewCycleRef do so by
// construction; the validation gateway checks the rest. Interior cycles must
// not overlap the exteriors or each other, which is also left to validation.
type BRep struct {
	surface   Surface
	exteriors CyclesInFace
	interiors CyclesInFace
	color     mesh.Color
}

// Surface returns the surface the face lies in.
func (b BRep) Surface() Surface {
	return b.surface
}

// Exteriors yields the canonical form of the cycles bounding the face on
// the outside.
func (b BRep) Exteriors() iter.Seq[SpatialCycle] {
	return b.exteriors.Canonical()
}

// Interiors yields the canonical form of the cycles bounding holes.
func (b BRep) Interiors() iter.Seq[SpatialCycle] {
	return b.interiors.Canonical()
}

// AllCycles yields the exteriors followed by the interiors.
func (b BRep) AllCycles() iter.Seq[SpatialCycle] {
	return func(yield func(SpatialCycle) bool) {
		for c := range b.Exteriors() {
			if !yield(c) {
				return
			}
		}
		for c := range b.Interiors() {
			if !yield(c) {
				return
			}
		}
	}
}

// ExteriorRefs returns the exterior cycles with both of their forms.
func (b BRep) ExteriorRefs() CyclesInFace {
	return b.exteriors
}

// InteriorRefs returns the interior cycles with both of their forms.
func (b BRep) InteriorRefs() CyclesInFace {
	return b.interiors
}

// Color returns the color of the face.
func (b BRep) Color() mesh.Color {
	return b.color
}

func (b BRep) clone() BRep {
	return BRep{
		surface:   b.surface,
		exteriors: b.exteriors.Clone(),
		interiors: b.interiors.Clone(),
		color:     b.color,
	}
}

func (b BRep) compare(o BRep) int {
	if c := b.surface.Compare(o.surface); c != 0 {
		return c
	}
	if c := b.exteriors.Compare(o.exteriors); c != 0 {
		return c
	}
	if c := b.interiors.Compare(o.interiors); c != 0 {
		return c
	}
	return slices.Compare(b.color[:], o.color[:])
}

// Face is a face of a shape. It holds either a boundary representation or,
// while the triangle representation is being phased out, a flat set of
// colored triangles.
//
// Boundary accessors (BRep, Surface, Exteriors, Interiors, AllCycles) panic
// on a triangle set: code that produces triangle sets never asks for boundary
// data. Use AsBRep to branch on the representation instead.
type Face struct {
	kind      FaceKind
	brep      BRep
	triangles []mesh.Triangle
}

// New creates a face from a surface, its exterior and interior cycles, and a
// color. Cycle order is kept.
func New(surface Surface, exteriors, interiors []CycleRef, color mesh.Color) Face {
	return Face{
		kind: KindBRep,
		brep: BRep{
			surface:   surface,
			exteriors: NewCyclesInFace(exteriors...),
			interiors: NewCyclesInFace(interiors...),
			color:     color,
		},
	}
}

// FromTriangles creates a face represented as a flat triangle set.
func FromTriangles(triangles []mesh.Triangle) Face {
	return Face{kind: KindTriangles, triangles: slices.Clone(triangles)}
}

// Kind reports which representation the face holds.
func (f Face) Kind() FaceKind {
	return f.kind
}

// AsBRep returns the boundary representation, if the face has one.
func (f Face) AsBRep() (BRep, bool) {
	if f.kind != KindBRep {
		return BRep{}, false
	}
	return f.brep, true
}

// AsTriangles returns the triangles of a triangle-set face.
func (f Face) AsTriangles() ([]mesh.Triangle, bool) {
	if f.kind != KindTriangles {
		return nil, false
	}
	return slices.Clone(f.triangles), true
}

// BRep returns the boundary representation. It panics on a triangle set.
func (f Face) BRep() BRep {
	b, ok := f.AsBRep()
	if !ok {
		panic(fmt.Sprintf("objects: boundary data requested from %s face", f.kind))
	}
	return b
}

// Surface returns the surface of the face. It panics on a triangle set.
func (f Face) Surface() Surface {
	return f.BRep().Surface()
}

// Exteriors yields the exterior cycles. It panics on a triangle set.
func (f Face) Exteriors() iter.Seq[SpatialCycle] {
	return f.BRep().Exteriors()
}

// Interiors yields the interior cycles. It panics on a triangle set.
func (f Face) Interiors() iter.Seq[SpatialCycle] {
	return f.BRep().Interiors()
}

// AllCycles yields the exterior cycles followed by the interior cycles. It
// panics on a triangle set.
func (f Face) AllCycles() iter.Seq[SpatialCycle] {
	return f.BRep().AllCycles()
}

// Color returns the color of the face. A triangle set has a face color only
// when all of its triangles share one; otherwise ok is false and callers use
// the per-triangle colors.
func (f Face) Color() (color mesh.Color, ok bool) {
	if f.kind == KindBRep {
		return f.brep.color, true
	}
	if len(f.triangles) == 0 {
		return mesh.Color{}, false
	}
	color = f.triangles[0].Color
	for _, t := range f.triangles[1:] {
		if t.Color != color {
			return mesh.Color{}, false
		}
	}
	return color, true
}

// Clone returns a deep copy of the face.
func (f Face) Clone() Face {
	return Face{
		kind:      f.kind,
		brep:      f.brep.clone(),
		triangles: slices.Clone(f.triangles),
	}
}

// Equal reports whether f and o compare equal.
func (f Face) Equal(o Face) bool {
	return f.Compare(o) == 0
}

// Compare orders faces by kind, then by their fields. Coordinates compare
// lexicographically with NaN first.
func (f Face) Compare(o Face) int {
	if c := cmp.Compare(f.kind, o.kind); c != 0 {
		return c
	}
	if f.kind == KindBRep {
		return f.brep.compare(o.brep)
	}
	return slices.CompareFunc(f.triangles, o.triangles, compareTriangles)
}

func compareTriangles(a, b mesh.Triangle) int {
	if c := geom.ComparePoints3(a.Inner[:], b.Inner[:]); c != 0 {
		return c
	}
	return slices.Compare(a.Color[:], b.Color[:])
}
