// Package ui renders the debug HUD: live tuning sliders and a stats
// readout over the simulation view.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumafield/motes/game"
	"github.com/lumafield/motes/physics"
)

const (
	panelX      = 10
	panelY      = 10
	panelWidth  = 240
	lineHeight  = 22
	sliderWidth = panelWidth - 20
)

// HUD holds the interactive control state.
type HUD struct {
	Visible bool

	spawnRate    float32
	windStrength float32
	gravityY     float32
}

// NewHUD creates a HUD seeded from the app's configuration.
func NewHUD(spawnRate, gravityY float32) *HUD {
	return &HUD{
		Visible:   true,
		spawnRate: spawnRate,
		gravityY:  gravityY,
	}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() {
	h.Visible = !h.Visible
}

// Draw renders the panel and pushes slider changes into the app. Must be
// called between rl.BeginDrawing and rl.EndDrawing on the loop thread.
func (h *HUD) Draw(a *game.App, fps int32) {
	if !h.Visible {
		return
	}

	y := float32(panelY)
	rl.DrawRectangle(panelX-4, panelY-4, panelWidth, 7*lineHeight+40, rl.Color{A: 160})

	rl.DrawText(fmt.Sprintf("FPS %d  particles %d  inside %d",
		fps, a.Count(), a.HighlightedCount()),
		panelX, int32(y), 10, rl.RayWhite)
	y += lineHeight

	rl.DrawText("spawn rate", panelX, int32(y), 10, rl.LightGray)
	y += 14
	newRate := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y, Width: sliderWidth, Height: 16},
		"0", "1000", h.spawnRate, 0, 1000,
	)
	if newRate != h.spawnRate {
		h.spawnRate = newRate
		a.System().SetSpawnRate(newRate)
	}
	y += lineHeight

	rl.DrawText("gravity", panelX, int32(y), 10, rl.LightGray)
	y += 14
	newGravity := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y, Width: sliderWidth, Height: 16},
		"-200", "200", h.gravityY, -200, 200,
	)
	y += lineHeight

	rl.DrawText("wind", panelX, int32(y), 10, rl.LightGray)
	y += 14
	newWind := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y, Width: sliderWidth, Height: 16},
		"0", "50", h.windStrength, 0, 50,
	)
	y += lineHeight

	if newGravity != h.gravityY || newWind != h.windStrength {
		h.gravityY = newGravity
		h.windStrength = newWind
		h.pushForces(a)
	}

	if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 110, Height: 20}, "Emitter @ center") {
		a.AddEmitterAt(640, 360)
	}
}

// pushForces rebuilds the frame force list from the slider state.
func (h *HUD) pushForces(a *game.App) {
	forces := []physics.Force{physics.Gravity(0, h.gravityY)}
	if h.windStrength > 0 {
		forces = append(forces, physics.Wind(physics.V(1, 0), h.windStrength, h.windStrength*0.4))
	}
	a.SetForces(forces)
}
