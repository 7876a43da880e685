package spatial

import (
	"math/rand"
	"testing"

	"github.com/lumafield/motes/physics"
)

func contains(indices []int, want int) bool {
	for _, i := range indices {
		if i == want {
			return true
		}
	}
	return false
}

func TestInsertAndQuery(t *testing.T) {
	g := NewGrid(800, 600, 50)
	g.Insert(0, physics.V(25, 25))
	g.Insert(1, physics.V(75, 25))
	g.Insert(2, physics.V(700, 500))

	got := g.QueryNearby(physics.V(30, 30), 60)
	if !contains(got, 0) || !contains(got, 1) {
		t.Errorf("query = %v, want 0 and 1 included", got)
	}
	if contains(got, 2) {
		t.Errorf("query = %v, distant index 2 should not appear", got)
	}
}

func TestQueryRoundTripNoFalseNegatives(t *testing.T) {
	// Any index within radius of the query point must be returned, for
	// random positions and query parameters. False positives are fine.
	g := NewGrid(1000, 1000, 37)
	rng := rand.New(rand.NewSource(5))

	type entry struct {
		idx int
		pos physics.Vec2
	}
	entries := make([]entry, 500)
	for i := range entries {
		pos := physics.V(rng.Float32()*1000-200, rng.Float32()*1000-200)
		entries[i] = entry{i, pos}
		g.Insert(i, pos)
	}

	for q := 0; q < 50; q++ {
		queryPos := physics.V(rng.Float32()*1000-200, rng.Float32()*1000-200)
		radius := 10 + rng.Float32()*150
		got := g.QueryNearby(queryPos, radius)

		for _, e := range entries {
			if e.pos.Distance(queryPos) <= radius && !contains(got, e.idx) {
				t.Fatalf("false negative: index %d at %v within %v of %v missing",
					e.idx, e.pos, radius, queryPos)
			}
		}
	}
}

func TestNegativeCoordinates(t *testing.T) {
	// Floor division must not fold negative positions into cell 0.
	g := NewGrid(100, 100, 10)
	g.Insert(0, physics.V(-5, -5))
	g.Insert(1, physics.V(5, 5))

	got := g.QueryNearby(physics.V(-5, -5), 1)
	if !contains(got, 0) {
		t.Errorf("query at (-5,-5) = %v, want index 0", got)
	}

	// A tight query at the origin-adjacent positive cell must not also
	// collapse onto the negative cell's bucket key.
	if g.cellAt(physics.V(-5, -5)) == g.cellAt(physics.V(5, 5)) {
		t.Error("negative and positive positions share a cell")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	g := NewGrid(100, 100, 50)
	for i := 0; i < 5; i++ {
		g.Insert(i, physics.V(10, 10)) // all in one cell
	}

	got := g.QueryNearby(physics.V(10, 10), 1)
	if len(got) != 5 {
		t.Fatalf("got %d indices, want 5", len(got))
	}
	for i, idx := range got {
		if idx != i {
			t.Fatalf("bucket order = %v, want insertion order", got)
		}
	}
}

func TestClear(t *testing.T) {
	g := NewGrid(100, 100, 10)
	g.Insert(0, physics.V(5, 5))
	g.Insert(1, physics.V(95, 95))

	g.Clear()
	if got := g.QueryNearby(physics.V(5, 5), 50); len(got) != 0 {
		t.Errorf("query after clear = %v, want empty", got)
	}

	// Rebuild after clear works and reflects only fresh inserts.
	g.Insert(7, physics.V(5, 5))
	got := g.QueryNearby(physics.V(5, 5), 1)
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("query after rebuild = %v, want [7]", got)
	}
}

func TestQueryNearbyInto(t *testing.T) {
	g := NewGrid(100, 100, 10)
	g.Insert(3, physics.V(50, 50))

	buf := make([]int, 0, 16)
	buf = g.QueryNearbyInto(buf, physics.V(50, 50), 5)
	if len(buf) != 1 || buf[0] != 3 {
		t.Errorf("QueryNearbyInto = %v, want [3]", buf)
	}

	// Reuse keeps prior capacity; truncation is the caller's job.
	buf = g.QueryNearbyInto(buf[:0], physics.V(50, 50), 5)
	if len(buf) != 1 {
		t.Errorf("reused query = %v", buf)
	}
}
