// Package local pairs an object's local form with its canonical form.
//
// Topological objects reference other objects through a Form so that they can
// work in whichever coordinate space suits the task: a cycle bounding a face
// is most useful in the face surface's 2D coordinates, while meshing and
// validation need its 3D canonical form.
package local

// Form holds the local and canonical forms of the same object. It is
// immutable after construction.
type Form[L, C any] struct {
	local     L
	canonical C
}

// New pairs a local and a canonical form.
//
// The caller must make sure both arguments describe the same object; New does
// not check this. Prefer Derive when the canonical form can be computed from
// the local one.
func New[L, C any](local L, canonical C) Form[L, C] {
	return Form[L, C]{local: local, canonical: canonical}
}

// Derive builds the canonical form by lifting the local form, so the pair
// matches by construction.
func Derive[L, C any](local L, lift func(L) C) Form[L, C] {
	return Form[L, C]{local: local, canonical: lift(local)}
}

// CanonicalOnly builds a Form for an object whose local and canonical forms
// are the same. If T has a Clone method the local form is a clone, so the two
// forms never share storage.
func CanonicalOnly[T any](canonical T) Form[T, T] {
	return Form[T, T]{local: clone(canonical), canonical: canonical}
}

// Local returns the local form.
func (f Form[L, C]) Local() L {
	return f.local
}

// Canonical returns the canonical form.
func (f Form[L, C]) Canonical() C {
	return f.canonical
}

// Clone duplicates both forms independently.
func (f Form[L, C]) Clone() Form[L, C] {
	return Form[L, C]{local: clone(f.local), canonical: clone(f.canonical)}
}

func clone[T any](v T) T {
	if c, ok := any(v).(interface{ Clone() T }); ok {
		return c.Clone()
	}
	return v
}
