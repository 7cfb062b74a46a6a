package objects

import (
	"math"
	"slices"
	"testing"

	"github.com/chazu/facet/pkg/local"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func p2(x, y float64) v2.Vec    { return v2.Vec{X: x, Y: y} }
func p3(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func square(x, y, size float64) []v2.Vec {
	return []v2.Vec{p2(x, y), p2(x+size, y), p2(x+size, y+size), p2(x, y+size)}
}

func near(a, b v3.Vec) bool {
	return a.Sub(b).Length() < 1e-9
}

func TestSurfaceCoords(t *testing.T) {
	s := NewPlane(p3(1, 2, 3), p3(0, 1, 0), p3(0, 0, 2))

	got := s.PointFromSurfaceCoords(p2(2, 1))
	if want := p3(1, 4, 5); got != want {
		t.Errorf("PointFromSurfaceCoords = %v, want %v", got, want)
	}

	back := s.PointToSurfaceCoords(got)
	if math.Abs(back.X-2) > 1e-12 || math.Abs(back.Y-1) > 1e-12 {
		t.Errorf("PointToSurfaceCoords = %v, want (2,1)", back)
	}

	if n := s.Normal(); !near(n, p3(1, 0, 0)) {
		t.Errorf("Normal() = %v, want (1,0,0)", n)
	}
}

func TestSurfaceTransform(t *testing.T) {
	s := XYPlane().Transform(sdf.Translate3d(p3(0, 0, 5)))
	if !near(s.Origin, p3(0, 0, 5)) {
		t.Errorf("Origin = %v, want (0,0,5)", s.Origin)
	}
	if !near(s.U, p3(1, 0, 0)) || !near(s.V, p3(0, 1, 0)) {
		t.Errorf("translation changed directions: U=%v V=%v", s.U, s.V)
	}

	r := XYPlane().Transform(sdf.RotateX(math.Pi / 2))
	if !near(r.Normal(), p3(0, -1, 0)) {
		t.Errorf("rotated normal = %v, want (0,-1,0)", r.Normal())
	}
}

func TestSurfaceCompare(t *testing.T) {
	a := XYPlane()
	b := XYPlane().Transform(sdf.Translate3d(p3(0, 0, 1)))
	if !a.Equal(XYPlane()) || a.Equal(b) {
		t.Error("Surface.Equal broken")
	}
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 {
		t.Error("Surface.Compare should order by origin")
	}
}

func TestCycleEdges(t *testing.T) {
	c := NewParametricCycle(p2(0, 0), p2(1, 0), p2(0, 1))
	want := [][2]v2.Vec{
		{p2(0, 0), p2(1, 0)},
		{p2(1, 0), p2(0, 1)},
		{p2(0, 1), p2(0, 0)},
	}
	if got := c.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCycleCopiesPoints(t *testing.T) {
	points := []v2.Vec{p2(0, 0), p2(1, 0), p2(0, 1)}
	c := NewParametricCycle(points...)
	points[0] = p2(9, 9)
	if c.Points()[0] != p2(0, 0) {
		t.Error("cycle shares storage with constructor argument")
	}
	c.Points()[1] = p2(9, 9)
	if c.Points()[1] != p2(1, 0) {
		t.Error("Points() exposes internal storage")
	}
}

func TestLiftCycle(t *testing.T) {
	s := NewPlane(p3(0, 0, 1), p3(1, 0, 0), p3(0, 1, 0))
	lifted := s.LiftCycle(NewParametricCycle(p2(0, 0), p2(1, 0), p2(0, 1)))
	want := NewSpatialCycle(p3(0, 0, 1), p3(1, 0, 1), p3(0, 1, 1))
	if !lifted.Equal(want) {
		t.Errorf("LiftCycle = %v, want %v", lifted.Points(), want.Points())
	}
	if len(lifted.Edges()) != 3 {
		t.Errorf("lifted cycle has %d edges, want 3", len(lifted.Edges()))
	}
}

func TestCycleRefDerived(t *testing.T) {
	s := XYPlane().Transform(sdf.Translate3d(p3(0, 0, 2)))
	ref := NewCycleRef(s, NewParametricCycle(square(0, 0, 1)...))

	if !ref.Canonical().Equal(s.LiftCycle(ref.Local())) {
		t.Error("canonical form does not match lifted local form")
	}
}

func TestCyclesInFace(t *testing.T) {
	s := XYPlane()
	a := NewCycleRef(s, NewParametricCycle(square(0, 0, 1)...))
	b := NewCycleRef(s, NewParametricCycle(square(5, 5, 1)...))

	c := NewCyclesInFace(a, b, a)
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (duplicates kept)", c.Len())
	}

	var locals []ParametricCycle
	for l := range c.Local() {
		locals = append(locals, l)
	}
	if !locals[0].Equal(a.Local()) || !locals[1].Equal(b.Local()) || !locals[2].Equal(a.Local()) {
		t.Error("Local() does not keep insertion order")
	}

	clone := c.Clone()
	if !clone.Equal(c) {
		t.Error("Clone() not equal to original")
	}

	reordered := NewCyclesInFace(b, a, a)
	if reordered.Equal(c) {
		t.Error("different order should not be equal")
	}
}

func TestFaceAllCycles(t *testing.T) {
	s := XYPlane()
	ext1 := NewCycleRef(s, NewParametricCycle(square(0, 0, 10)...))
	ext2 := NewCycleRef(s, NewParametricCycle(square(20, 0, 10)...))
	int1 := NewCycleRef(s, NewParametricCycle(square(2, 2, 2)...))
	int2 := NewCycleRef(s, NewParametricCycle(square(22, 2, 2)...))

	f := New(s, []CycleRef{ext1, ext2}, []CycleRef{int1, int2}, mesh.Color{1, 2, 3, 4})

	want := []SpatialCycle{ext1.Canonical(), ext2.Canonical(), int1.Canonical(), int2.Canonical()}

	var got []SpatialCycle
	for c := range f.AllCycles() {
		got = append(got, c)
	}
	if !slices.EqualFunc(got, want, SpatialCycle.Equal) {
		t.Errorf("AllCycles() yielded %d cycles, not the exteriors followed by interiors", len(got))
	}

	// The sequence can be consumed again.
	n := 0
	for range f.AllCycles() {
		n++
	}
	if n != 4 {
		t.Errorf("second AllCycles() pass yielded %d cycles, want 4", n)
	}

	var exteriors []SpatialCycle
	for c := range f.Exteriors() {
		exteriors = append(exteriors, c)
	}
	if !slices.EqualFunc(exteriors, want[:2], SpatialCycle.Equal) {
		t.Error("Exteriors() mismatch")
	}

	if f.Surface() != s {
		t.Errorf("Surface() = %v, want %v", f.Surface(), s)
	}
	if color, ok := f.Color(); !ok || color != (mesh.Color{1, 2, 3, 4}) {
		t.Errorf("Color() = %v, %v", color, ok)
	}
}

func TestFaceCanonicalOnlyCycles(t *testing.T) {
	cycle := NewParametricCycle(square(0, 0, 1)...)
	ref := local.CanonicalOnly(cycle)
	if !ref.Local().Equal(ref.Canonical()) {
		t.Error("canonical-only form should have equal local and canonical forms")
	}
}

func triangleFace(colors ...mesh.Color) Face {
	var tris []mesh.Triangle
	for i, c := range colors {
		x := float64(i)
		tris = append(tris, mesh.NewTriangle(sdf.Triangle3{p3(x, 0, 0), p3(x+1, 0, 0), p3(x, 1, 0)}, c))
	}
	return FromTriangles(tris)
}

func TestTriangleFace(t *testing.T) {
	red := mesh.Color{255, 0, 0, 255}
	blue := mesh.Color{0, 0, 255, 255}

	t.Run("uniform color", func(t *testing.T) {
		f := triangleFace(red, red)
		if f.Kind() != KindTriangles {
			t.Fatalf("Kind() = %v, want %v", f.Kind(), KindTriangles)
		}
		if c, ok := f.Color(); !ok || c != red {
			t.Errorf("Color() = %v, %v, want %v, true", c, ok, red)
		}
		tris, ok := f.AsTriangles()
		if !ok || len(tris) != 2 {
			t.Errorf("AsTriangles() = %d triangles, %v", len(tris), ok)
		}
		if _, ok := f.AsBRep(); ok {
			t.Error("AsBRep() on triangle set should report false")
		}
	})

	t.Run("mixed colors", func(t *testing.T) {
		f := triangleFace(red, blue)
		if _, ok := f.Color(); ok {
			t.Error("Color() should report false for mixed colors")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, ok := FromTriangles(nil).Color(); ok {
			t.Error("Color() should report false for empty triangle set")
		}
	})
}

func TestTriangleFaceBoundaryAccessPanics(t *testing.T) {
	f := triangleFace(mesh.Color{1, 1, 1, 1})

	accessors := map[string]func(){
		"BRep":      func() { f.BRep() },
		"Surface":   func() { f.Surface() },
		"Exteriors": func() { f.Exteriors() },
		"Interiors": func() { f.Interiors() },
		"AllCycles": func() { f.AllCycles() },
	}
	for name, fn := range accessors {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s on triangle set did not panic", name)
				}
			}()
			fn()
		})
	}
}

func TestFaceCompare(t *testing.T) {
	s := XYPlane()
	a := NewBuilder(s).WithExteriorPolygon(square(0, 0, 1)).Build()
	b := NewBuilder(s).WithExteriorPolygon(square(0, 0, 2)).Build()
	tri := triangleFace(mesh.Color{1, 1, 1, 1})

	if !a.Equal(a.Clone()) {
		t.Error("face not equal to its clone")
	}
	if a.Equal(b) {
		t.Error("different faces compare equal")
	}
	if a.Compare(b) != -b.Compare(a) {
		t.Error("Compare is not antisymmetric")
	}
	if a.Compare(tri) >= 0 {
		t.Error("brep faces should sort before triangle sets")
	}
	if !tri.Equal(tri.Clone()) {
		t.Error("triangle face not equal to its clone")
	}
}

func TestBuilder(t *testing.T) {
	s := XYPlane()
	f := NewBuilder(s).
		WithExteriorPolygon(square(0, 0, 4)).
		WithInteriorPolygon(square(1, 1, 1)).
		WithColor(mesh.Color{0, 255, 0, 255}).
		Build()

	b, ok := f.AsBRep()
	if !ok {
		t.Fatal("builder produced a triangle set")
	}
	if b.ExteriorRefs().Len() != 1 || b.InteriorRefs().Len() != 1 {
		t.Errorf("got %d exteriors, %d interiors, want 1, 1", b.ExteriorRefs().Len(), b.InteriorRefs().Len())
	}
	if b.Color() != (mesh.Color{0, 255, 0, 255}) {
		t.Errorf("Color() = %v", b.Color())
	}

	d := NewBuilder(s).WithExteriorPolygon(square(0, 0, 1)).Build()
	if c, _ := d.Color(); c != DefaultColor {
		t.Errorf("default color = %v, want %v", c, DefaultColor)
	}
}
