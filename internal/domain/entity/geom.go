package entity

import "math"

// Vec2 is a 2D vector in pixel units.
// Y grows downward, matching screen coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the vector length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns v scaled to unit length, or the zero vector
// if v is (near) zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// AABB is an axis-aligned bounding box described by its top-left
// corner and size.
type AABB struct {
	X, Y, W, H float64
}

// NewAABB builds a box from a top-left position and a size vector.
func NewAABB(pos, size Vec2) AABB {
	return AABB{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}
}

// Right returns the maximum X edge.
func (b AABB) Right() float64 { return b.X + b.W }

// Bottom returns the maximum Y edge.
func (b AABB) Bottom() float64 { return b.Y + b.H }

// Center returns the box midpoint.
func (b AABB) Center() Vec2 {
	return Vec2{b.X + b.W/2, b.Y + b.H/2}
}

// Overlaps reports whether b and o intersect with positive area.
// Boxes that merely touch along an edge do not overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.X < o.Right() && o.X < b.Right() &&
		b.Y < o.Bottom() && o.Y < b.Bottom()
}

// OverlapExtent returns the per-axis penetration of b into o.
// Both values are positive when the boxes overlap; either is zero or
// negative when they are separated along that axis.
func (b AABB) OverlapExtent(o AABB) (dx, dy float64) {
	dx = math.Min(b.Right(), o.Right()) - math.Max(b.X, o.X)
	dy = math.Min(b.Bottom(), o.Bottom()) - math.Max(b.Y, o.Y)
	return dx, dy
}

// OverlapCenter returns the midpoint of the overlap region of b and o.
// Only meaningful when the boxes overlap.
func (b AABB) OverlapCenter(o AABB) Vec2 {
	left := math.Max(b.X, o.X)
	right := math.Min(b.Right(), o.Right())
	top := math.Max(b.Y, o.Y)
	bottom := math.Min(b.Bottom(), o.Bottom())
	return Vec2{(left + right) / 2, (top + bottom) / 2}
}
