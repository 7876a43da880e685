// Package renderer draws the simulation state with raylib. It is a pure
// sink: it reads the particle collection and never mutates it.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumafield/motes/sim"
)

// highlightTint is blended over particles inside the outline.
var highlightTint = rl.Color{R: 255, G: 120, B: 80, A: 255}

// ParticleRenderer renders the particle population.
type ParticleRenderer struct {
	maxLife float32
}

// NewParticleRenderer creates a renderer; maxLife scales the fade-out.
func NewParticleRenderer(maxLife float32) *ParticleRenderer {
	if maxLife <= 0 {
		maxLife = 1
	}
	return &ParticleRenderer{maxLife: maxLife}
}

// Draw renders all particles. highlighted reports whether the particle
// at index i is inside the current outline.
func (r *ParticleRenderer) Draw(particles []sim.Particle, highlighted func(int) bool) {
	for i := range particles {
		p := &particles[i]

		lifeRatio := p.Life / r.maxLife
		if lifeRatio > 1 {
			lifeRatio = 1
		}

		color := rl.Color{
			R: uint8(p.Color[0] * 255),
			G: uint8(p.Color[1] * 255),
			B: uint8(p.Color[2] * 255),
			A: uint8(p.Color[3] * lifeRatio * 255),
		}
		if highlighted != nil && highlighted(i) {
			color = highlightTint
		}

		size := p.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircleV(rl.Vector2{X: p.Pos.X, Y: p.Pos.Y}, size, color)
	}
}
