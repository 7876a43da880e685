package sim

import (
	"math"
	"math/rand"

	"github.com/lumafield/motes/physics"
)

// Emitter converts a continuous spawn rate into discrete particle
// creation events. The fractional accumulator carries the remainder
// across frames so non-integer rates are honored exactly over time.
//
// The random source is injected so emission sequences are reproducible
// under a fixed seed.
type Emitter struct {
	Position        physics.Vec2
	Rate            float32 // particles per second
	Spread          float32 // half-angle in radians
	InitialVelocity float32
	ParticleLife    float32
	ParticleSize    float32
	Enabled         bool

	accumulator float32
	rng         *rand.Rand
}

// NewEmitter creates an enabled emitter at the given position with
// default tuning.
func NewEmitter(position physics.Vec2, rng *rand.Rand) *Emitter {
	return &Emitter{
		Position:        position,
		Rate:            100,
		Spread:          math.Pi / 4,
		InitialVelocity: 50,
		ParticleLife:    5,
		ParticleSize:    3,
		Enabled:         true,
		rng:             rng,
	}
}

// Emit spawns this frame's particles. Disabled emitters spawn nothing
// but also do not accumulate.
func (e *Emitter) Emit(dt float32) []Particle {
	if !e.Enabled {
		return nil
	}

	e.accumulator += dt * e.Rate
	count := int(e.accumulator)
	e.accumulator -= float32(count)

	if count == 0 {
		return nil
	}

	particles := make([]Particle, 0, count)
	for i := 0; i < count; i++ {
		angle := (e.rng.Float32()*2 - 1) * e.Spread
		vel := physics.Vec2{
			X: float32(math.Cos(float64(angle))) * e.InitialVelocity,
			Y: float32(math.Sin(float64(angle))) * e.InitialVelocity,
		}

		// Pastel, blue-leaning palette.
		color := [4]float32{
			0.5 + e.rng.Float32()*0.5,
			0.5 + e.rng.Float32()*0.5,
			0.8 + e.rng.Float32()*0.2,
			1.0,
		}

		particles = append(particles, NewParticle(e.Position, vel, e.ParticleLife, e.ParticleSize, color))
	}

	return particles
}
