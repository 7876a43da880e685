// Package spatial provides a uniform hash grid for broad-phase particle
// proximity queries.
package spatial

import (
	"math"

	"github.com/lumafield/motes/physics"
)

// Cell is an integer grid cell coordinate.
type Cell struct {
	X, Y int32
}

// Grid maps cell coordinates to insertion-ordered buckets of particle
// indices. Indices refer into the caller's particle collection as it
// existed at insertion time; the grid owns no particle data and does not
// track lifetime. After any removal from the backing collection the grid
// must be cleared and rebuilt before the next query, or the stored
// indices go stale.
type Grid struct {
	cellSize float32
	cells    map[Cell][]int
	width    float32
	height   float32
}

// NewGrid creates a grid covering the given world size.
func NewGrid(width, height, cellSize float32) *Grid {
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[Cell][]int),
		width:    width,
		height:   height,
	}
}

// Clear empties every bucket while keeping their allocated capacity for
// the next rebuild.
func (g *Grid) Clear() {
	for c, bucket := range g.cells {
		g.cells[c] = bucket[:0]
	}
}

// Insert appends the index to the bucket of the cell containing pos,
// creating the bucket on first use.
func (g *Grid) Insert(index int, pos physics.Vec2) {
	c := g.cellAt(pos)
	g.cells[c] = append(g.cells[c], index)
}

// QueryNearby returns every index from every cell in the square
// neighborhood covering the search radius. This is a broad-phase query:
// the result is a superset of the indices actually within radius, and
// callers must apply an exact distance test.
func (g *Grid) QueryNearby(pos physics.Vec2, radius float32) []int {
	return g.QueryNearbyInto(nil, pos, radius)
}

// QueryNearbyInto appends broad-phase results to dst and returns the
// updated slice. Reuse dst across calls to avoid allocations.
func (g *Grid) QueryNearbyInto(dst []int, pos physics.Vec2, radius float32) []int {
	cellRadius := int32(math.Ceil(float64(radius / g.cellSize)))
	center := g.cellAt(pos)

	for dy := -cellRadius; dy <= cellRadius; dy++ {
		for dx := -cellRadius; dx <= cellRadius; dx++ {
			if bucket, ok := g.cells[Cell{center.X + dx, center.Y + dy}]; ok {
				dst = append(dst, bucket...)
			}
		}
	}

	return dst
}

// CellSize returns the grid resolution.
func (g *Grid) CellSize() float32 {
	return g.cellSize
}

// Bounds returns the world size the grid was created for.
func (g *Grid) Bounds() (width, height float32) {
	return g.width, g.height
}

// cellAt returns the cell containing a world position. Floor division
// keeps negative coordinates in distinct cells.
func (g *Grid) cellAt(pos physics.Vec2) Cell {
	return Cell{
		X: int32(math.Floor(float64(pos.X / g.cellSize))),
		Y: int32(math.Floor(float64(pos.Y / g.cellSize))),
	}
}
