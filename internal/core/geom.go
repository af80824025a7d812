// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import "math"

// Vec3 is a point or extent in world space.
// X is lateral, Y is up, Z is the travel axis (positive Z is toward the camera).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v scaled by s on every axis.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Box is an axis-aligned bounding box used for collision detection.
type Box struct {
	Min, Max Vec3
}

// NewBox creates a box from its center and half-extents.
func NewBox(center, half Vec3) Box {
	return Box{
		Min: Vec3{X: center.X - half.X, Y: center.Y - half.Y, Z: center.Z - half.Z},
		Max: Vec3{X: center.X + half.X, Y: center.Y + half.Y, Z: center.Z + half.Z},
	}
}

// Size returns the full extent of the box on each axis.
func (b Box) Size() Vec3 {
	return Vec3{X: b.Max.X - b.Min.X, Y: b.Max.Y - b.Min.Y, Z: b.Max.Z - b.Min.Z}
}

// Center returns the center point of the box.
func (b Box) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Expand grows the box by d on each side of each axis.
// Negative components shrink it; an axis never inverts past its center.
func (b Box) Expand(d Vec3) Box {
	c := b.Center()
	out := Box{
		Min: Vec3{X: b.Min.X - d.X, Y: b.Min.Y - d.Y, Z: b.Min.Z - d.Z},
		Max: Vec3{X: b.Max.X + d.X, Y: b.Max.Y + d.Y, Z: b.Max.Z + d.Z},
	}
	if out.Min.X > out.Max.X {
		out.Min.X, out.Max.X = c.X, c.X
	}
	if out.Min.Y > out.Max.Y {
		out.Min.Y, out.Max.Y = c.Y, c.Y
	}
	if out.Min.Z > out.Max.Z {
		out.Min.Z, out.Max.Z = c.Z, c.Z
	}
	return out
}

// Intersects returns true if this box overlaps another.
// Touching faces count as overlap, matching closed-interval AABB tests.
func (b Box) Intersects(o Box) bool {
	if b.Max.X < o.Min.X || o.Max.X < b.Min.X {
		return false
	}
	if b.Max.Y < o.Min.Y || o.Max.Y < b.Min.Y {
		return false
	}
	if b.Max.Z < o.Min.Z || o.Max.Z < b.Min.Z {
		return false
	}
	return true
}

// Contains returns true if the point lies inside the box (inclusive).
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// RotatedHalfY returns the half-extents of the axis-aligned box enclosing a box
// with half-extents h rotated by angle radians about the Y axis.
func RotatedHalfY(h Vec3, angle float64) Vec3 {
	c := math.Abs(math.Cos(angle))
	s := math.Abs(math.Sin(angle))
	return Vec3{
		X: c*h.X + s*h.Z,
		Y: h.Y,
		Z: s*h.X + c*h.Z,
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp moves a toward b by fraction t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
