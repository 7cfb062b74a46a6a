package aabb

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func TestCenter(t *testing.T) {
	a := Aabb2{Min: v2.Vec{X: 1, Y: 2}, Max: v2.Vec{X: 3, Y: 4}}
	if got, want := a.Center(), (v2.Vec{X: 2, Y: 3}); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}

	b := Aabb3{Min: vec(-1, -1, -1), Max: vec(1, 3, 5)}
	if got, want := b.Center(), vec(0, 1, 2); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}
	if got, want := b.Size(), vec(2, 4, 6); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
}

func TestFromMinAndSize(t *testing.T) {
	b := FromMinAndSize3(vec(1, 2, 3), vec(1, 1, 0))
	if b.Max != vec(2, 3, 3) {
		t.Errorf("Max = %v, want (2,3,3)", b.Max)
	}

	a := FromMinAndSize2(v2.Vec{X: 0, Y: 0}, v2.Vec{X: 2, Y: 1})
	if a.Max != (v2.Vec{X: 2, Y: 1}) {
		t.Errorf("Max = %v, want (2,1)", a.Max)
	}
}

func TestFromMinAndSizePanics(t *testing.T) {
	tests := []struct {
		name string
		size v3.Vec
	}{
		{"zero", vec(0, 0, 0)},
		{"negative x", vec(-1, 1, 1)},
		{"negative z", vec(1, 1, -0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("FromMinAndSize3(%v) did not panic", tt.size)
				}
			}()
			FromMinAndSize3(vec(0, 0, 0), tt.size)
		})
	}

	t.Run("2d zero", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("FromMinAndSize2 with zero size did not panic")
			}
		}()
		FromMinAndSize2(v2.Vec{}, v2.Vec{})
	})
}

func TestFromPoints(t *testing.T) {
	b := FromPoints3([]v3.Vec{vec(1, 5, -2), vec(-3, 0, 4), vec(2, 2, 2)})
	if b.Min != vec(-3, 0, -2) || b.Max != vec(2, 5, 4) {
		t.Errorf("FromPoints3 = %v, want min (-3,0,-2) max (2,5,4)", b)
	}

	a := FromPoints2([]v2.Vec{{X: 1, Y: 1}, {X: 0, Y: 3}})
	if a.Min != (v2.Vec{X: 0, Y: 1}) || a.Max != (v2.Vec{X: 1, Y: 3}) {
		t.Errorf("FromPoints2 = %v", a)
	}

	defer func() {
		if recover() == nil {
			t.Error("FromPoints3(nil) did not panic")
		}
	}()
	FromPoints3(nil)
}

func TestExtend(t *testing.T) {
	a := Aabb2{Min: v2.Vec{X: 0, Y: 1}, Max: v2.Vec{X: 2, Y: 3}}
	b := a.Extend(-1, 1)
	if b.Min != vec(0, 1, -1) || b.Max != vec(2, 3, 1) {
		t.Errorf("Extend = %v", b)
	}
}

func TestVertices(t *testing.T) {
	b := Aabb3{Min: vec(0, 0, 0), Max: vec(1, 1, 1)}
	want := [8]v3.Vec{
		vec(0, 0, 0), vec(0, 0, 1), vec(0, 1, 0), vec(0, 1, 1),
		vec(1, 0, 0), vec(1, 0, 1), vec(1, 1, 0), vec(1, 1, 1),
	}
	if got := b.Vertices(); got != want {
		t.Errorf("Vertices() = %v, want %v", got, want)
	}
}

func TestEdges(t *testing.T) {
	b := Aabb3{Min: vec(0, 0, 0), Max: vec(1, 1, 1)}
	want := [12][2]v3.Vec{
		{vec(0, 0, 0), vec(0, 0, 1)},
		{vec(0, 0, 0), vec(0, 1, 0)},
		{vec(0, 0, 0), vec(1, 0, 0)},
		{vec(0, 0, 1), vec(0, 1, 1)},
		{vec(0, 0, 1), vec(1, 0, 1)},
		{vec(0, 1, 0), vec(0, 1, 1)},
		{vec(0, 1, 0), vec(1, 1, 0)},
		{vec(0, 1, 1), vec(1, 1, 1)},
		{vec(1, 0, 0), vec(1, 0, 1)},
		{vec(1, 0, 0), vec(1, 1, 0)},
		{vec(1, 0, 1), vec(1, 1, 1)},
		{vec(1, 1, 0), vec(1, 1, 1)},
	}
	if got := b.Edges(); got != want {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestEdgesCubeAdjacency(t *testing.T) {
	b := Aabb3{Min: vec(-2, 0, 1), Max: vec(3, 4, 9)}
	vertices := b.Vertices()
	degree := make(map[v3.Vec]int)
	for _, v := range vertices {
		degree[v] = 0
	}
	for _, e := range b.Edges() {
		for _, p := range e {
			if _, ok := degree[p]; !ok {
				t.Fatalf("edge endpoint %v is not a vertex", p)
			}
			degree[p]++
		}
		// Adjacent corners differ in exactly one coordinate.
		d := e[1].Sub(e[0])
		axes := 0
		for _, c := range []float64{d.X, d.Y, d.Z} {
			if c != 0 {
				axes++
			}
		}
		if axes != 1 {
			t.Errorf("edge %v is not axis-aligned", e)
		}
	}
	for v, n := range degree {
		if n != 3 {
			t.Errorf("vertex %v has degree %d, want 3", v, n)
		}
	}
}

func TestPartition(t *testing.T) {
	b := Aabb3{Min: vec(0, 0, 0), Max: vec(2, 2, 2)}
	want := [8]Aabb3{
		{Min: vec(0, 0, 0), Max: vec(1, 1, 1)},
		{Min: vec(0, 0, 1), Max: vec(1, 1, 2)},
		{Min: vec(0, 1, 0), Max: vec(1, 2, 1)},
		{Min: vec(0, 1, 1), Max: vec(1, 2, 2)},
		{Min: vec(1, 0, 0), Max: vec(2, 1, 1)},
		{Min: vec(1, 0, 1), Max: vec(2, 1, 2)},
		{Min: vec(1, 1, 0), Max: vec(2, 2, 1)},
		{Min: vec(1, 1, 1), Max: vec(2, 2, 2)},
	}
	if got := b.Partition(); got != want {
		t.Errorf("Partition() = %v, want %v", got, want)
	}
}

func TestPartitionTiling(t *testing.T) {
	b := Aabb3{Min: vec(-4, 2, 0.5), Max: vec(4, 6, 8.5)}
	parts := b.Partition()

	half := b.Size().DivScalar(2)
	union := parts[0]
	for i, p := range parts {
		if p.Size() != half {
			t.Errorf("part %d size = %v, want %v", i, p.Size(), half)
		}
		union.Min = union.Min.Min(p.Min)
		union.Max = union.Max.Max(p.Max)

		for j := i + 1; j < len(parts); j++ {
			q := parts[j]
			overlap := p.Min.X < q.Max.X && q.Min.X < p.Max.X &&
				p.Min.Y < q.Max.Y && q.Min.Y < p.Max.Y &&
				p.Min.Z < q.Max.Z && q.Min.Z < p.Max.Z
			if overlap {
				t.Errorf("parts %d and %d overlap: %v %v", i, j, p, q)
			}
		}
	}
	if union != b {
		t.Errorf("union of parts = %v, want %v", union, b)
	}
}

func TestContainsAndBox3(t *testing.T) {
	b := Aabb3{Min: vec(0, 0, 0), Max: vec(1, 2, 3)}
	if !b.Contains(vec(1, 2, 3)) || b.Contains(vec(1.5, 0, 0)) {
		t.Error("Contains boundary handling broken")
	}
	if got := FromBox3(b.Box3()); got != b {
		t.Errorf("FromBox3(Box3()) = %v, want %v", got, b)
	}
}
