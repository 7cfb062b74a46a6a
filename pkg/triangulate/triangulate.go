// Package triangulate turns validated faces into colored triangles and
// assembles them into an indexed mesh.
//
// Boundary faces are triangulated in the 2D coordinates of their surface and
// emitted with the canonical 3D points of their cycles. Triangles are wound
// counter-clockwise around the surface normal.
package triangulate

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/objects"
	"github.com/chazu/facet/pkg/validation"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// vertex carries both forms of a cycle point through triangulation.
type vertex struct {
	local     v2.Vec
	canonical v3.Vec
}

type ring []vertex

func newRing(ref objects.CycleRef) ring {
	local, canonical := ref.Local().Points(), ref.Canonical().Points()
	r := make(ring, len(local))
	for i := range local {
		r[i] = vertex{local: local[i], canonical: canonical[i]}
	}
	return r
}

func (r ring) points() []v2.Vec {
	points := make([]v2.Vec, len(r))
	for i, v := range r {
		points[i] = v.local
	}
	return points
}

func (r ring) area() float64 {
	return geom.SignedArea(r.points())
}

// oriented returns the ring wound counter-clockwise if ccw is true,
// clockwise otherwise.
func (r ring) oriented(ccw bool) ring {
	out := slices.Clone(r)
	if (out.area() > 0) != ccw {
		slices.Reverse(out)
	}
	return out
}

// Faces triangulates every face of a validated shape.
func Faces(shape validation.Validated[[]objects.Face]) ([]mesh.Triangle, error) {
	var triangles []mesh.Triangle
	for i, face := range shape.Value() {
		tris, err := Face(face)
		if err != nil {
			return nil, fmt.Errorf("triangulate: face %d: %w", i, err)
		}
		logging.Logger().Debug("triangulated face", "face", i, "kind", face.Kind(), "triangles", len(tris))
		triangles = append(triangles, tris...)
	}
	return triangles, nil
}

// Face triangulates a single face. Triangle-set faces are returned as they
// are.
func Face(face objects.Face) ([]mesh.Triangle, error) {
	b, ok := face.AsBRep()
	if !ok {
		tris, _ := face.AsTriangles()
		return tris, nil
	}

	exteriors := make([]ring, 0, b.ExteriorRefs().Len())
	for ref := range b.ExteriorRefs().All() {
		exteriors = append(exteriors, newRing(ref).oriented(true))
	}
	holes := make([][]ring, len(exteriors))
	n := 0
	for ref := range b.InteriorRefs().All() {
		hole := newRing(ref).oriented(false)
		e := containing(exteriors, hole)
		if e < 0 {
			return nil, fmt.Errorf("interior cycle %d lies outside every exterior cycle", n)
		}
		holes[e] = append(holes[e], hole)
		n++
	}

	var triangles []mesh.Triangle
	for e, exterior := range exteriors {
		polygon, err := bridge(exterior, holes[e])
		if err != nil {
			return nil, fmt.Errorf("exterior cycle %d: %w", e, err)
		}
		tris, err := clipEars(polygon, b.Color())
		if err != nil {
			return nil, fmt.Errorf("exterior cycle %d: %w", e, err)
		}
		triangles = append(triangles, tris...)
	}
	return triangles, nil
}

// ToMesh pushes the triangles into a mesh, three vertices per triangle, so
// that indices 3k, 3k+1 and 3k+2 describe triangle k.
func ToMesh(triangles []mesh.Triangle) *mesh.Mesh[v3.Vec] {
	m := mesh.New[v3.Vec]()
	for _, t := range triangles {
		for _, p := range t.Inner {
			m.Push(p)
		}
	}
	return m
}

func containing(exteriors []ring, hole ring) int {
	for e, exterior := range exteriors {
		if geom.PointInPolygon(hole[0].local, exterior.points()) {
			return e
		}
	}
	return -1
}

// bridge joins the holes into the exterior through zero-width cuts, giving
// a single ring that can be ear clipped. Holes are joined rightmost first.
func bridge(exterior ring, holes []ring) (ring, error) {
	holes = slices.Clone(holes)
	slices.SortFunc(holes, func(a, b ring) int {
		return -cmp.Compare(a[rightmost(a)].local.X, b[rightmost(b)].local.X)
	})

	polygon := slices.Clone(exterior)
	for h, hole := range holes {
		m := rightmost(hole)
		p, ok := visibleVertex(polygon, holes[h:], hole[m].local)
		if !ok {
			return nil, fmt.Errorf("no bridge to hole with %d points", len(hole))
		}

		joined := make(ring, 0, len(polygon)+len(hole)+2)
		joined = append(joined, polygon[:p+1]...)
		joined = append(joined, hole[m:]...)
		joined = append(joined, hole[:m+1]...)
		joined = append(joined, polygon[p:]...)
		polygon = joined
	}
	return polygon, nil
}

// rightmost returns the index of the vertex with the largest x, breaking
// ties by the smallest y.
func rightmost(r ring) int {
	best := 0
	for i, v := range r {
		b := r[best].local
		if v.local.X > b.X || (v.local.X == b.X && v.local.Y < b.Y) {
			best = i
		}
	}
	return best
}

// visibleVertex finds the polygon vertex closest to m that can be joined to
// it without crossing any edge of the polygon or of the remaining holes.
// Earlier bridges leave their end points in the ring twice; only the copy
// whose corner opens towards m is a valid choice.
func visibleVertex(polygon ring, holes []ring, m v2.Vec) (int, bool) {
	order := make([]int, len(polygon))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(polygon[a].local.Sub(m).Length2(), polygon[b].local.Sub(m).Length2())
	})

	for _, i := range order {
		p := polygon[i].local
		if locallyInside(polygon, i, m) && visible(m, p, polygon) && !slices.ContainsFunc(holes, func(h ring) bool { return !visible(m, p, h) }) {
			return i, true
		}
	}
	return 0, false
}

// locallyInside reports whether m lies strictly inside the interior angle
// of the counter-clockwise polygon at vertex i.
func locallyInside(polygon ring, i int, m v2.Vec) bool {
	n := len(polygon)
	a, p, c := polygon[(i+n-1)%n].local, polygon[i].local, polygon[(i+1)%n].local
	if geom.Orient(a, p, c) > 0 {
		return geom.Orient(p, c, m) > 0 && geom.Orient(p, m, a) > 0
	}
	return geom.Orient(p, c, m) > 0 || geom.Orient(p, m, a) > 0
}

// visible reports whether segment mp crosses no edge of r, ignoring edges
// that end at m or p.
func visible(m, p v2.Vec, r ring) bool {
	for i, v := range r {
		a, b := v.local, r[(i+1)%len(r)].local
		if a == m || a == p || b == m || b == p {
			continue
		}
		if geom.SegmentsIntersect(m, p, a, b) {
			return false
		}
	}
	return true
}

// clipEars triangulates a counter-clockwise ring by repeatedly cutting off
// convex corners that contain no other vertex.
func clipEars(polygon ring, color mesh.Color) ([]mesh.Triangle, error) {
	polygon = slices.Clone(polygon)
	var triangles []mesh.Triangle
	emit := func(a, b, c vertex) {
		triangles = append(triangles, mesh.NewTriangle(sdf.Triangle3{a.canonical, b.canonical, c.canonical}, color))
	}

	for len(polygon) > 3 {
		n := len(polygon)
		clipped := false
		for i := range polygon {
			prev, cur, next := polygon[(i+n-1)%n], polygon[i], polygon[(i+1)%n]
			if geom.Orient(prev.local, cur.local, next.local) > 0 && isEar(polygon, prev, cur, next) {
				emit(prev, cur, next)
				polygon = slices.Delete(polygon, i, i+1)
				clipped = true
				break
			}
		}
		if clipped {
			continue
		}

		// Straight-through vertices enclose no area and can go.
		for i := range polygon {
			prev, cur, next := polygon[(i+n-1)%n], polygon[i], polygon[(i+1)%n]
			if geom.Orient(prev.local, cur.local, next.local) == 0 {
				polygon = slices.Delete(polygon, i, i+1)
				clipped = true
				break
			}
		}
		if !clipped {
			return nil, fmt.Errorf("no ear found in %d-vertex polygon", n)
		}
	}

	if len(polygon) == 3 && geom.Orient(polygon[0].local, polygon[1].local, polygon[2].local) > 0 {
		emit(polygon[0], polygon[1], polygon[2])
	}
	return triangles, nil
}

// isEar reports whether no other vertex of the polygon lies inside or on
// the counter-clockwise triangle abc.
func isEar(polygon ring, a, b, c vertex) bool {
	for _, v := range polygon {
		p := v.local
		if p == a.local || p == b.local || p == c.local {
			continue
		}
		if geom.Orient(a.local, b.local, p) >= 0 &&
			geom.Orient(b.local, c.local, p) >= 0 &&
			geom.Orient(c.local, a.local, p) >= 0 {
			return false
		}
	}
	return true
}
