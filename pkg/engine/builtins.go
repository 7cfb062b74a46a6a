package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/sketch"
	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpVec2 struct {
	vec v2.Vec
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

type sexpColor struct {
	color mesh.Color
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rgba %d %d %d %d)", c.color[0], c.color[1], c.color[2], c.color[3])
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// sexpSketch is returned by every sketch-producing builtin.
type sexpSketch struct {
	sketch sketch.Sketch
}

func (s *sexpSketch) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(sketch %q :points %d)", s.sketch.Name, len(s.sketch.Points))
}
func (s *sexpSketch) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string // keyword names as they appear in the call
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if _, seen := result.kw[name]; !seen {
			result.order = append(result.order, name)
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// unknown returns an error naming the first keyword, in call order, that is
// not in allowed.
func (a kwArgs) unknown(allowed ...string) error {
	for _, name := range a.order {
		if !lo.Contains(allowed, name) {
			return fmt.Errorf("unknown keyword :%s", name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number in [min, max].
func toInt(s zygo.Sexp, min, max int) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < float64(min) || f > float64(max) {
		return 0, fmt.Errorf("expected whole number in [%d, %d], got %g", min, max, f)
	}
	return int(f), nil
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toVec2(s zygo.Sexp) (v2.Vec, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return v2.Vec{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

func toColor(s zygo.Sexp) (mesh.Color, error) {
	if c, ok := s.(*sexpColor); ok {
		return c.color, nil
	}
	return mesh.Color{}, fmt.Errorf("expected color, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// recorder collects the sketches built during one evaluation, in order.
type recorder struct {
	sketches []sketch.Sketch
	segments int
}

// add names the sketch if it has no name, records it and wraps it for
// zygomys.
func (r *recorder) add(kind string, s sketch.Sketch, args kwArgs) (zygo.Sexp, error) {
	if v, ok := args.kw["color"]; ok {
		c, err := toColor(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: color: %w", kind, err)
		}
		s.Color = c
	}
	if v, ok := args.kw["name"]; ok {
		name, err := toString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: name: %w", kind, err)
		}
		s.Name = name
	}
	if s.Name == "" {
		s.Name = fmt.Sprintf("%s-%d", kind, len(r.sketches)+1)
	}
	r.sketches = append(r.sketches, s)
	return &sexpSketch{sketch: s}, nil
}

// registerBuiltins installs the sketch builtins into a zygomys environment.
// Source must go through preprocessSource first so that keywords are
// recognizable.
func registerBuiltins(env *zygo.Zlisp, r *recorder) {
	// (vec2 1 2)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{vec: v2.Vec{X: x, Y: y}}, nil
	})

	// (rgba 255 0 0 255)
	env.AddFunction("rgba", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("rgba requires exactly 4 arguments, got %d", len(args))
		}
		var c mesh.Color
		for i, arg := range args {
			v, err := toInt(arg, 0, 255)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rgba: component %d: %w", i, err)
			}
			c[i] = uint8(v)
		}
		return &sexpColor{color: c}, nil
	})

	// (sketch :points [(vec2 0 0) (vec2 1 0) (vec2 0 1)] :color (rgba 0 0 255 255) :name "tri")
	env.AddFunction("sketch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a := parseArgs(args)
		if err := a.unknown("points", "color", "name"); err != nil {
			return zygo.SexpNull, fmt.Errorf("sketch: %w", err)
		}
		v, ok := a.kw["points"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("sketch requires :points")
		}
		items, err := sexpListToSlice(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sketch: points: %w", err)
		}
		points := make([]v2.Vec, len(items))
		for i, item := range items {
			p, err := toVec2(item)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sketch: point %d: %w", i, err)
			}
			points[i] = p
		}
		return r.add("sketch", sketch.New(points...), a)
	})

	// (circle :radius 5 :segments 64)
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a := parseArgs(args)
		if err := a.unknown("radius", "segments", "color", "name"); err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		v, ok := a.kw["radius"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("circle requires :radius")
		}
		radius, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
		}
		segments := r.segments
		if v, ok := a.kw["segments"]; ok {
			if segments, err = toInt(v, 3, math.MaxInt32); err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: segments: %w", err)
			}
		}
		s, err := sketch.Circle{Radius: radius}.ToSketch(segments)
		if err != nil {
			return zygo.SexpNull, err
		}
		return r.add("circle", s, a)
	})

	// (square :size 10)
	env.AddFunction("square", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a := parseArgs(args)
		if err := a.unknown("size", "color", "name"); err != nil {
			return zygo.SexpNull, fmt.Errorf("square: %w", err)
		}
		v, ok := a.kw["size"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("square requires :size")
		}
		size, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("square: size: %w", err)
		}
		s, err := sketch.Square{Size: size}.ToSketch(0)
		if err != nil {
			return zygo.SexpNull, err
		}
		return r.add("square", s, a)
	})
}
