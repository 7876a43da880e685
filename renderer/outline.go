package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumafield/motes/collision"
)

var (
	outlineColor  = rl.Color{R: 80, G: 220, B: 140, A: 200}
	boundsColor   = rl.Color{R: 80, G: 220, B: 140, A: 60}
	centroidColor = rl.Color{R: 255, G: 255, B: 255, A: 220}
)

// OutlineRenderer draws the tracked silhouette.
type OutlineRenderer struct {
	ShowBounds bool
}

// NewOutlineRenderer creates an outline renderer.
func NewOutlineRenderer() *OutlineRenderer {
	return &OutlineRenderer{}
}

// Draw renders the outline edges, the optional bounding box, and the
// centroid marker. A nil or degenerate outline draws nothing.
func (r *OutlineRenderer) Draw(o *collision.Outline) {
	if o == nil || len(o.Segments) == 0 {
		return
	}

	for _, seg := range o.Segments {
		rl.DrawLineV(
			rl.Vector2{X: seg.Start.X, Y: seg.Start.Y},
			rl.Vector2{X: seg.End.X, Y: seg.End.Y},
			outlineColor,
		)
	}

	if r.ShowBounds {
		rl.DrawRectangleLines(
			int32(o.Bounds.Min.X), int32(o.Bounds.Min.Y),
			int32(o.Bounds.Max.X-o.Bounds.Min.X), int32(o.Bounds.Max.Y-o.Bounds.Min.Y),
			boundsColor,
		)
	}

	c := o.Centroid()
	rl.DrawCircleV(rl.Vector2{X: c.X, Y: c.Y}, 3, centroidColor)
}
