// Package aabb implements axis-aligned bounding boxes in two and three
// dimensions. All operations are pure; boxes are plain values.
package aabb

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Aabb2 is a 2D axis-aligned bounding box.
type Aabb2 struct {
	Min v2.Vec `json:"min"`
	Max v2.Vec `json:"max"`
}

// Aabb3 is a 3D axis-aligned bounding box.
type Aabb3 struct {
	Min v3.Vec `json:"min"`
	Max v3.Vec `json:"max"`
}

// FromMinAndSize2 creates a box from its minimum corner and its size.
// It panics if any size component is negative or the size is zero; callers
// must validate sizes before constructing a box.
func FromMinAndSize2(min, size v2.Vec) Aabb2 {
	if size.X < 0 || size.Y < 0 {
		panic(fmt.Sprintf("aabb: negative size %v", size))
	}
	if size.Length2() == 0 {
		panic("aabb: zero size")
	}
	return Aabb2{Min: min, Max: min.Add(size)}
}

// FromMinAndSize3 creates a box from its minimum corner and its size.
// It panics if any size component is negative or the size is zero.
func FromMinAndSize3(min, size v3.Vec) Aabb3 {
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		panic(fmt.Sprintf("aabb: negative size %v", size))
	}
	if size.Length2() == 0 {
		panic("aabb: zero size")
	}
	return Aabb3{Min: min, Max: min.Add(size)}
}

// FromPoints2 returns the smallest box containing every point.
// It panics if points is empty.
func FromPoints2(points []v2.Vec) Aabb2 {
	if len(points) == 0 {
		panic("aabb: no points")
	}
	b := Aabb2{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// FromPoints3 returns the smallest box containing every point.
// It panics if points is empty.
func FromPoints3(points []v3.Vec) Aabb3 {
	if len(points) == 0 {
		panic("aabb: no points")
	}
	b := Aabb3{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// FromBox3 converts an sdfx bounding box.
func FromBox3(b sdf.Box3) Aabb3 {
	return Aabb3{Min: b.Min, Max: b.Max}
}

// Size returns the extent of the box along each axis.
func (a Aabb2) Size() v2.Vec {
	return a.Max.Sub(a.Min)
}

// Center returns the center point of the box.
func (a Aabb2) Center() v2.Vec {
	return a.Min.Add(a.Size().DivScalar(2))
}

// Contains reports whether p lies inside the box, boundary included.
func (a Aabb2) Contains(p v2.Vec) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Extend lifts the box into 3D using the given z range.
func (a Aabb2) Extend(minZ, maxZ float64) Aabb3 {
	return Aabb3{
		Min: v3.Vec{X: a.Min.X, Y: a.Min.Y, Z: minZ},
		Max: v3.Vec{X: a.Max.X, Y: a.Max.Y, Z: maxZ},
	}
}

// Size returns the extent of the box along each axis.
func (a Aabb3) Size() v3.Vec {
	return a.Max.Sub(a.Min)
}

// Center returns the center point of the box.
func (a Aabb3) Center() v3.Vec {
	return a.Min.Add(a.Size().DivScalar(2))
}

// Contains reports whether p lies inside the box, boundary included.
func (a Aabb3) Contains(p v3.Vec) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Box3 converts the box to its sdfx equivalent.
func (a Aabb3) Box3() sdf.Box3 {
	return sdf.Box3{Min: a.Min, Max: a.Max}
}

// Vertices returns the 8 corners. Corner i takes Max on the x axis when bit
// 2 of i is set, on y for bit 1 and on z for bit 0.
func (a Aabb3) Vertices() [8]v3.Vec {
	lo, hi := a.Min, a.Max
	return [8]v3.Vec{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
	}
}

// Edges returns the 12 edges of the box as pairs of corners from Vertices.
func (a Aabb3) Edges() [12][2]v3.Vec {
	v := a.Vertices()
	return [12][2]v3.Vec{
		{v[0], v[1]},
		{v[0], v[2]},
		{v[0], v[4]},
		{v[1], v[3]},
		{v[1], v[5]},
		{v[2], v[3]},
		{v[2], v[6]},
		{v[3], v[7]},
		{v[4], v[5]},
		{v[4], v[6]},
		{v[5], v[7]},
		{v[6], v[7]},
	}
}

// Partition splits the box into 8 equally sized octants, ordered like the
// corners returned by Vertices.
func (a Aabb3) Partition() [8]Aabb3 {
	half := a.Size().DivScalar(2)
	var parts [8]Aabb3
	for i := range parts {
		var offset v3.Vec
		if i&4 != 0 {
			offset.X = half.X
		}
		if i&2 != 0 {
			offset.Y = half.Y
		}
		if i&1 != 0 {
			offset.Z = half.Z
		}
		parts[i] = FromMinAndSize3(a.Min.Add(offset), half)
	}
	return parts
}
