// Package physics provides the 2D vector math and force field model
// driving the particle simulation.
package physics

import "math"

// Vec2 is a 2D vector of float32 components.
// Kept at exactly two packed float32s: sim.Particle embeds Vec2 fields
// inside its GPU-shared layout.
type Vec2 struct {
	X, Y float32
}

// Zero is the zero vector.
var Zero = Vec2{}

// V is shorthand for constructing a Vec2.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// LengthSq returns the squared length of v.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the length of v.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSq())))
}

// Normalize returns v scaled to unit length. A zero-length input yields
// the zero vector, never NaN (normalize-or-zero).
func (v Vec2) Normalize() Vec2 {
	lenSq := v.LengthSq()
	if lenSq == 0 {
		return Vec2{}
	}
	inv := 1.0 / float32(math.Sqrt(float64(lenSq)))
	return Vec2{v.X * inv, v.Y * inv}
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float32 {
	return v.Sub(o).Length()
}

// Min returns the component-wise minimum of v and o.
func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{min(v.X, o.X), min(v.Y, o.Y)}
}

// Max returns the component-wise maximum of v and o.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{max(v.X, o.X), max(v.Y, o.Y)}
}

// Reflect returns v reflected off a surface with the given unit normal.
func Reflect(v, normal Vec2) Vec2 {
	return v.Sub(normal.Scale(2 * v.Dot(normal)))
}

// ClampLength limits v to at most maxLength.
func ClampLength(v Vec2, maxLength float32) Vec2 {
	lenSq := v.LengthSq()
	if lenSq > maxLength*maxLength {
		return v.Normalize().Scale(maxLength)
	}
	return v
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b Vec2, t float32) Vec2 {
	return a.Add(b.Sub(a).Scale(t))
}
