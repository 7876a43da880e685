package sim

import (
	"unsafe"

	"github.com/lumafield/motes/physics"
)

// Config holds the particle system tuning. Immutable during a frame.
type Config struct {
	MaxParticles     int
	SpawnRate        float32
	ParticleLifetime float32
	ParticleSize     float32
	Gravity          physics.Vec2

	// DragCoefficient is carried in the config but not consumed by the
	// integration step, which applies a fixed factor (see Particle.Update).
	// Kept for compatibility with the upstream tuning surface.
	DragCoefficient float32

	// Workers enables partitioned integration when > 1. Pruning and
	// emission always remain sequential. Zero keeps the single-threaded
	// tick.
	Workers int
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MaxParticles:     10000,
		SpawnRate:        500,
		ParticleLifetime: 5,
		ParticleSize:     3,
		Gravity:          physics.Vec2{X: 0, Y: 100},
		DragCoefficient:  0.99,
	}
}

// TickStats summarizes population churn in the most recent tick.
type TickStats struct {
	Spawned int
	Culled  int
	Dropped int // spawns discarded at capacity
}

// System owns the particle population and its emitters and advances them
// one tick at a time. The particle slice is exposed read-only to the
// rendering collaborator; System is the sole writer.
type System struct {
	particles []Particle
	emitters  []*Emitter
	config    Config
	lastTick  TickStats
}

// NewSystem creates a particle system with the given configuration.
func NewSystem(config Config) *System {
	return &System{
		particles: make([]Particle, 0, config.MaxParticles),
		config:    config,
	}
}

// Update runs one simulation tick in strict order: integrate every
// existing particle, prune the dead, then emit. Particles spawned this
// tick are not integrated until the next one, and spawns past
// MaxParticles are silently dropped.
func (s *System) Update(dt float32, forces []physics.Force) {
	s.integrate(dt, forces)

	// Prune in place, preserving order.
	alive := 0
	for i := range s.particles {
		if s.particles[i].Alive() {
			s.particles[alive] = s.particles[i]
			alive++
		}
	}
	s.lastTick = TickStats{Culled: len(s.particles) - alive}
	s.particles = s.particles[:alive]

	for _, e := range s.emitters {
		for _, p := range e.Emit(dt) {
			if len(s.particles) >= s.config.MaxParticles {
				s.lastTick.Dropped++
				continue
			}
			s.particles = append(s.particles, p)
			s.lastTick.Spawned++
		}
	}
}

// integrate advances every live particle, partitioning across workers
// when configured and worthwhile. Each particle reads only the shared
// force list and its own state, so the partitioned phase needs no
// synchronization beyond the join.
func (s *System) integrate(dt float32, forces []physics.Force) {
	if s.config.Workers > 1 && len(s.particles) >= parallelThreshold {
		s.integrateParallel(dt, forces)
		return
	}
	for i := range s.particles {
		s.particles[i].Update(dt, forces)
	}
}

// Add appends a caller-constructed particle, honoring the capacity cap.
// Reports whether the particle was accepted.
func (s *System) Add(p Particle) bool {
	if len(s.particles) >= s.config.MaxParticles {
		return false
	}
	s.particles = append(s.particles, p)
	return true
}

// AddEmitter registers an emitter with the system.
func (s *System) AddEmitter(e *Emitter) {
	s.emitters = append(s.emitters, e)
}

// LastTick returns the churn counters from the most recent Update.
func (s *System) LastTick() TickStats {
	return s.lastTick
}

// Count returns the current particle count.
func (s *System) Count() int {
	return len(s.particles)
}

// Particles returns the live particle collection. Callers must treat it
// as read-only; it is reallocated and compacted across ticks.
func (s *System) Particles() []Particle {
	return s.particles
}

// Emitters returns the registered emitters.
func (s *System) Emitters() []*Emitter {
	return s.emitters
}

// Config returns the system configuration.
func (s *System) Config() Config {
	return s.config
}

// SetSpawnRate adjusts the rate of every registered emitter. Used by the
// HUD and the bridge command surface.
func (s *System) SetSpawnRate(rate float32) {
	for _, e := range s.emitters {
		e.Rate = rate
	}
}

// Buffer returns the particle collection as raw bytes, laid out per the
// Particle field contract (ParticleStride bytes per instance). The view
// aliases the live slice and is invalidated by the next Update.
func (s *System) Buffer() []byte {
	if len(s.particles) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s.particles[0])), len(s.particles)*ParticleStride)
}
