// Package sim implements the particle population: the particle record,
// rate-based emitters, and the per-frame simulation tick.
package sim

import (
	"unsafe"

	"github.com/lumafield/motes/physics"
)

// Particle is a plain fixed-layout record. Field order, sizes and the
// total byte size are a binding contract with the rendering collaborator,
// which reads the particle slice as a raw instance buffer (see
// System.Buffer). Do not reorder or resize fields.
type Particle struct {
	Pos   physics.Vec2
	Vel   physics.Vec2
	Life  float32 // seconds remaining; alive while > 0
	Size  float32
	Color [4]float32
	Mass  float32

	// Explicit filler; part of the buffer contract.
	_ [2]float32
}

// ParticleStride is the byte size of one Particle in the shared buffer.
const ParticleStride = 52

// Compile-time layout guard: fails to build if the struct ever deviates
// from the declared stride.
var _ = [1]byte{}[unsafe.Sizeof(Particle{})-ParticleStride]

// dragFactor is the fixed multiplicative drag applied each step. The
// configurable Config.DragCoefficient is intentionally not consumed here;
// the upstream behavior hardcodes this constant.
const dragFactor = 0.99

// NewParticle creates a particle with unit mass.
func NewParticle(pos, vel physics.Vec2, life, size float32, color [4]float32) Particle {
	return Particle{
		Pos:   pos,
		Vel:   vel,
		Life:  life,
		Size:  size,
		Color: color,
		Mass:  1.0,
	}
}

// Update advances the particle by one step of semi-implicit Euler:
// velocity is integrated first and the updated velocity moves the
// position, then drag and lifetime are applied.
func (p *Particle) Update(dt float32, forces []physics.Force) {
	var accel physics.Vec2
	for _, f := range forces {
		accel = accel.Add(f.At(p.Pos).Scale(1.0 / p.Mass))
	}

	p.Vel = p.Vel.Add(accel.Scale(dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Vel = p.Vel.Scale(dragFactor)

	p.Life -= dt
}

// Alive reports whether the particle still has lifetime remaining.
func (p *Particle) Alive() bool {
	return p.Life > 0
}
