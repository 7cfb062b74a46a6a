package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/objects"
	"github.com/chazu/facet/pkg/polygon"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func faceError(face int, format string, args ...any) Finding {
	return Finding{Face: face, Cycle: -1, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func cycleError(face, cycle int, format string, args ...any) Finding {
	return Finding{Face: face, Cycle: cycle, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

// allRefs returns exteriors followed by interiors, matching the cycle
// numbering used in findings.
func allRefs(b objects.BRep) []objects.CycleRef {
	return append(b.ExteriorRefs().Refs(), b.InteriorRefs().Refs()...)
}

// --- Tier 1: structure ---

func checkStructure(i int, face objects.Face, cfg Config) []Finding {
	b, ok := face.AsBRep()
	if !ok {
		return checkTriangleStructure(i, face)
	}

	var errs []Finding
	s := b.Surface()
	if !geom.Finite3(s.Origin) || !geom.Finite3(s.U) || !geom.Finite3(s.V) {
		errs = append(errs, faceError(i, "surface has non-finite coordinates"))
	} else if s.U.Cross(s.V).Length() == 0 {
		errs = append(errs, faceError(i, "surface directions are parallel"))
	}
	if b.ExteriorRefs().Len() == 0 {
		errs = append(errs, faceError(i, "face has no exterior cycle"))
	}

	for j, ref := range allRefs(b) {
		errs = append(errs, checkCycleRef(i, j, s, ref, cfg)...)
	}
	return errs
}

func checkCycleRef(i, j int, s objects.Surface, ref objects.CycleRef, cfg Config) []Finding {
	local, canonical := ref.Local().Points(), ref.Canonical().Points()
	if len(local) < 3 {
		return []Finding{cycleError(i, j, "cycle has %d points, need at least 3", len(local))}
	}
	if len(local) != len(canonical) {
		return []Finding{cycleError(i, j, "local form has %d points, canonical form has %d", len(local), len(canonical))}
	}
	for k := range local {
		if !geom.Finite2(local[k]) || !geom.Finite3(canonical[k]) {
			return []Finding{cycleError(i, j, "point %d has non-finite coordinates", k)}
		}
	}
	for k, p := range local {
		lifted := s.PointFromSurfaceCoords(p)
		if d := lifted.Sub(canonical[k]).Length(); d > cfg.IdenticalMaxDistance {
			return []Finding{cycleError(i, j, "point %d: local and canonical forms differ by %g", k, d)}
		}
	}
	return nil
}

func checkTriangleStructure(i int, face objects.Face) []Finding {
	tris, _ := face.AsTriangles()
	var errs []Finding
	for k, t := range tris {
		for _, p := range t.Inner {
			if !geom.Finite3(p) {
				errs = append(errs, faceError(i, "triangle %d has non-finite coordinates", k))
				break
			}
		}
	}
	return errs
}

// --- Tier 2: geometry ---

func checkGeometry(i int, face objects.Face, cfg Config) []Finding {
	b, ok := face.AsBRep()
	if !ok {
		return checkTriangleGeometry(i, face)
	}

	var errs []Finding
	refs := allRefs(b)
	for j, ref := range refs {
		errs = append(errs, checkCycleGeometry(i, j, ref, cfg)...)
	}
	if len(errs) > 0 {
		return errs
	}

	nExt := b.ExteriorRefs().Len()
	exteriors := localPoints(refs[:nExt])
	interiors := localPoints(refs[nExt:])

	for a := range exteriors {
		for c := a + 1; c < len(exteriors); c++ {
			switch {
			case cyclesCross(exteriors[a], exteriors[c]):
				errs = append(errs, cycleError(i, c, "exterior cycle intersects exterior cycle %d", a))
			case geom.PointInPolygon(exteriors[c][0], exteriors[a]) ||
				geom.PointInPolygon(exteriors[a][0], exteriors[c]):
				errs = append(errs, cycleError(i, c, "exterior cycle overlaps exterior cycle %d", a))
			}
		}
	}

	for k, interior := range interiors {
		j := nExt + k
		if ext := containing(exteriors, interior); ext < 0 {
			errs = append(errs, cycleError(i, j, "interior cycle lies outside every exterior cycle"))
		}
		for e, exterior := range exteriors {
			if cyclesCross(interior, exterior) {
				errs = append(errs, cycleError(i, j, "interior cycle intersects exterior cycle %d", e))
			}
		}
		for o := k + 1; o < len(interiors); o++ {
			other := interiors[o]
			if cyclesCross(interior, other) ||
				geom.PointInPolygon(other[0], interior) ||
				geom.PointInPolygon(interior[0], other) {
				errs = append(errs, cycleError(i, nExt+o, "interior cycle overlaps interior cycle %d", j))
			}
		}
	}
	return errs
}

func localPoints(refs []objects.CycleRef) [][]v2.Vec {
	points := make([][]v2.Vec, len(refs))
	for k, ref := range refs {
		points[k] = ref.Local().Points()
	}
	return points
}

func checkCycleGeometry(i, j int, ref objects.CycleRef, cfg Config) []Finding {
	var errs []Finding
	points := ref.Canonical().Points()
	for k, p := range points {
		q := points[(k+1)%len(points)]
		if distance3(p, q) < cfg.DistinctMinDistance {
			errs = append(errs, cycleError(i, j, "points %d and %d are not distinct", k, (k+1)%len(points)))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	local := ref.Local().Points()
	if math.Abs(geom.SignedArea(local)) < cfg.DistinctMinDistance*cfg.DistinctMinDistance {
		return []Finding{cycleError(i, j, "cycle encloses no area")}
	}
	if a, c, ok := selfIntersection(local); ok {
		return []Finding{cycleError(i, j, "edges %d and %d intersect", a, c)}
	}
	return nil
}

func distance3(a, b v3.Vec) float64 {
	return a.Sub(b).Length()
}

// selfIntersection finds two non-adjacent edges of the cycle that touch.
func selfIntersection(points []v2.Vec) (int, int, bool) {
	n := len(points)
	for a := 0; a < n; a++ {
		for c := a + 2; c < n; c++ {
			if a == 0 && c == n-1 {
				continue // adjacent through the closing edge
			}
			if geom.SegmentsIntersect(points[a], points[(a+1)%n], points[c], points[(c+1)%n]) {
				return a, c, true
			}
		}
	}
	return 0, 0, false
}

// cyclesCross reports whether any edge of a touches any edge of b.
func cyclesCross(a, b []v2.Vec) bool {
	for i := range a {
		for j := range b {
			if geom.SegmentsIntersect(a[i], a[(i+1)%len(a)], b[j], b[(j+1)%len(b)]) {
				return true
			}
		}
	}
	return false
}

// containing returns the index of the exterior that contains every point of
// the cycle, or -1.
func containing(exteriors [][]v2.Vec, cycle []v2.Vec) int {
	for e, exterior := range exteriors {
		inside := true
		for _, p := range cycle {
			if !geom.PointInPolygon(p, exterior) {
				inside = false
				break
			}
		}
		if inside {
			return e
		}
	}
	return -1
}

func checkTriangleGeometry(i int, face objects.Face) []Finding {
	tris, _ := face.AsTriangles()
	var errs []Finding
	for k, t := range tris {
		_, err := polygon.New(t.Inner[0], t.Inner[1], t.Inner[2])
		switch {
		case errors.Is(err, polygon.ErrIdenticalPoints):
			errs = append(errs, faceError(i, "triangle %d has identical points", k))
		case errors.Is(err, polygon.ErrPointsOnLine):
			errs = append(errs, faceError(i, "triangle %d is degenerate", k))
		}
	}
	return errs
}

// --- Tier 3: advisory ---

func checkAdvisory(i int, face objects.Face) []Finding {
	b, ok := face.AsBRep()
	if !ok {
		return nil
	}

	var warnings []Finding
	refs := allRefs(b)
	nExt := b.ExteriorRefs().Len()
	exteriors := localPoints(refs[:nExt])
	for k, interior := range localPoints(refs[nExt:]) {
		e := containing(exteriors, interior)
		if e < 0 {
			continue
		}
		if (geom.SignedArea(interior) > 0) == (geom.SignedArea(exteriors[e]) > 0) {
			warnings = append(warnings, Finding{
				Face:     i,
				Cycle:    nExt + k,
				Message:  fmt.Sprintf("interior cycle has the same winding as exterior cycle %d", e),
				Severity: SeverityWarning,
			})
		}
	}
	return warnings
}
