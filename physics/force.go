package physics

import "math"

// ForceKind discriminates the closed set of force field variants.
type ForceKind uint8

const (
	ForceGravity ForceKind = iota
	ForceWind
	ForceAttractor
	ForceRepulsor
)

// Force is a stateless field evaluated at a position each frame.
// The variant set is closed; At is the single dispatch site to extend
// when adding a new kind.
type Force struct {
	Kind ForceKind

	// Gravity: constant acceleration vector.
	// Wind: base direction before normalization.
	Vector Vec2

	// Attractor/Repulsor anchor.
	Position Vec2

	Strength   float32
	Turbulence float32
	Radius     float32
}

// Gravity returns a constant force.
func Gravity(x, y float32) Force {
	return Force{Kind: ForceGravity, Vector: Vec2{x, y}}
}

// Wind returns a directional force with optional pseudo-turbulence.
func Wind(direction Vec2, strength, turbulence float32) Force {
	return Force{Kind: ForceWind, Vector: direction, Strength: strength, Turbulence: turbulence}
}

// Attractor returns a point force pulling toward position within radius.
func Attractor(position Vec2, strength, radius float32) Force {
	return Force{Kind: ForceAttractor, Position: position, Strength: strength, Radius: radius}
}

// Repulsor returns a point force pushing away from position within radius.
func Repulsor(position Vec2, strength, radius float32) Force {
	return Force{Kind: ForceRepulsor, Position: position, Strength: strength, Radius: radius}
}

// At evaluates the force at a position. Evaluation never mutates the
// force; all degenerate inputs (zero directions, anchor overlap) fall
// back to the zero vector.
func (f Force) At(position Vec2) Vec2 {
	switch f.Kind {
	case ForceGravity:
		return f.Vector

	case ForceWind:
		// Cheap deterministic turbulence, smooth across space.
		offset := Vec2{
			X: float32(math.Sin(float64(position.X*0.1))) * f.Turbulence,
			Y: float32(math.Cos(float64(position.Y*0.1))) * f.Turbulence,
		}
		return f.Vector.Normalize().Scale(f.Strength).Add(offset)

	case ForceAttractor:
		return pointForce(f.Position.Sub(position), f.Strength, f.Radius)

	case ForceRepulsor:
		return pointForce(position.Sub(f.Position), f.Strength, f.Radius)
	}
	return Vec2{}
}

// pointForce computes the inverse-square falloff along diff, zero outside
// radius and at zero distance. The +1 term keeps the magnitude finite at
// the anchor.
func pointForce(diff Vec2, strength, radius float32) Vec2 {
	distSq := diff.LengthSq()
	if distSq >= radius*radius || distSq == 0 {
		return Vec2{}
	}
	magnitude := strength / (distSq + 1)
	return diff.Normalize().Scale(magnitude)
}
