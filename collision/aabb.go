// Package collision builds closed-polygon outlines from tracked
// silhouette points and answers containment and distance queries against
// them. It provides queries only; reacting to them belongs to callers.
package collision

import "github.com/lumafield/motes/physics"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max physics.Vec2
}

// Contains reports whether the point lies inside or on the box.
func (b AABB) Contains(p physics.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersects reports whether the boxes overlap.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// Center returns the midpoint of the box.
func (b AABB) Center() physics.Vec2 {
	return b.Min.Add(b.Max).Scale(0.5)
}
