package collision

import (
	"math"
	"testing"

	"github.com/lumafield/motes/physics"
)

func squareOutline() *Outline {
	return FromPoints([]physics.Vec2{
		physics.V(50, 50),
		physics.V(150, 50),
		physics.V(150, 150),
		physics.V(50, 150),
	})
}

func TestFromPointsEmpty(t *testing.T) {
	o := FromPoints(nil)
	if len(o.Segments) != 0 {
		t.Errorf("degenerate outline has %d segments", len(o.Segments))
	}
	if o.Bounds != (AABB{}) {
		t.Errorf("degenerate bounds = %+v, want zero", o.Bounds)
	}
	if o.Contains(physics.V(0, 0)) {
		t.Error("degenerate outline contains a point")
	}
	if o.Centroid() != (physics.Vec2{}) {
		t.Errorf("degenerate centroid = %v", o.Centroid())
	}
}

func TestFromPointsClosure(t *testing.T) {
	o := squareOutline()
	if len(o.Segments) != 4 {
		t.Fatalf("segments = %d, want 4 (closed polygon)", len(o.Segments))
	}
	// Last segment wraps back to the first point.
	last := o.Segments[3]
	if last.Start != physics.V(50, 150) || last.End != physics.V(50, 50) {
		t.Errorf("wraparound segment = %+v", last)
	}

	wantBounds := AABB{Min: physics.V(50, 50), Max: physics.V(150, 150)}
	if o.Bounds != wantBounds {
		t.Errorf("bounds = %+v, want %+v", o.Bounds, wantBounds)
	}
}

func TestContainsSquare(t *testing.T) {
	o := squareOutline()

	tests := []struct {
		name string
		p    physics.Vec2
		want bool
	}{
		{"center inside", physics.V(100, 100), true},
		{"far outside", physics.V(200, 200), false},
		{"outside left of bbox", physics.V(10, 100), false},
		{"just inside edge", physics.V(149, 100), true},
		{"just outside edge", physics.V(151, 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestContainsBoundaryStable(t *testing.T) {
	// The on-corner answer is implementation-defined but must not vary
	// between calls.
	o := squareOutline()
	corner := physics.V(50, 50)
	first := o.Contains(corner)
	for i := 0; i < 10; i++ {
		if o.Contains(corner) != first {
			t.Fatal("boundary containment answer changed between calls")
		}
	}
}

func TestContainsConcavePolygon(t *testing.T) {
	// U-shape: the notch between the arms is outside.
	o := FromPoints([]physics.Vec2{
		physics.V(0, 0), physics.V(30, 0), physics.V(30, 30),
		physics.V(20, 30), physics.V(20, 10),
		physics.V(10, 10), physics.V(10, 30),
		physics.V(0, 30),
	})

	if !o.Contains(physics.V(5, 15)) {
		t.Error("left arm should be inside")
	}
	if !o.Contains(physics.V(25, 15)) {
		t.Error("right arm should be inside")
	}
	if o.Contains(physics.V(15, 25)) {
		t.Error("notch should be outside")
	}
	if !o.Contains(physics.V(15, 5)) {
		t.Error("base should be inside")
	}
}

func TestCentroidApproximation(t *testing.T) {
	o := squareOutline()
	c := o.Centroid()
	if math.Abs(float64(c.X-100)) > 1e-4 || math.Abs(float64(c.Y-100)) > 1e-4 {
		t.Errorf("centroid = %v, want (100,100)", c)
	}
}

func TestSegmentNormal(t *testing.T) {
	// Left-perpendicular of (1,0) is (0,1); unit length.
	s := NewSegment(physics.V(0, 0), physics.V(10, 0))
	if math.Abs(float64(s.Normal.X)) > 1e-5 || math.Abs(float64(s.Normal.Y-1)) > 1e-5 {
		t.Errorf("normal = %v, want (0,1)", s.Normal)
	}

	// Degenerate segment gets a zero normal, never NaN.
	d := NewSegment(physics.V(5, 5), physics.V(5, 5))
	if d.Normal != (physics.Vec2{}) {
		t.Errorf("degenerate normal = %v, want zero", d.Normal)
	}
}

func TestSegmentClosestPointAndDistance(t *testing.T) {
	s := NewSegment(physics.V(0, 0), physics.V(10, 0))

	tests := []struct {
		name     string
		p        physics.Vec2
		closest  physics.Vec2
		distance float32
	}{
		{"above middle", physics.V(5, 3), physics.V(5, 0), 3},
		{"beyond end clamps", physics.V(20, 0), physics.V(10, 0), 10},
		{"before start clamps", physics.V(-4, 3), physics.V(0, 0), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ClosestPoint(tt.p)
			if got.Distance(tt.closest) > 1e-4 {
				t.Errorf("ClosestPoint = %v, want %v", got, tt.closest)
			}
			if d := s.DistanceTo(tt.p); math.Abs(float64(d-tt.distance)) > 1e-4 {
				t.Errorf("DistanceTo = %v, want %v", d, tt.distance)
			}
		})
	}
}

func TestOutlineDistance(t *testing.T) {
	o := squareOutline()
	if d := o.Distance(physics.V(100, 40)); math.Abs(float64(d-10)) > 1e-4 {
		t.Errorf("distance = %v, want 10", d)
	}
	if d := FromPoints(nil).Distance(physics.V(0, 0)); d != -1 {
		t.Errorf("degenerate distance = %v, want -1", d)
	}
}

func TestAABB(t *testing.T) {
	b := AABB{Min: physics.V(0, 0), Max: physics.V(10, 10)}

	if !b.Contains(physics.V(5, 5)) || !b.Contains(physics.V(0, 10)) {
		t.Error("Contains should include interior and boundary")
	}
	if b.Contains(physics.V(11, 5)) {
		t.Error("Contains should exclude points past max")
	}

	if !b.Intersects(AABB{Min: physics.V(5, 5), Max: physics.V(15, 15)}) {
		t.Error("overlapping boxes should intersect")
	}
	if b.Intersects(AABB{Min: physics.V(20, 20), Max: physics.V(30, 30)}) {
		t.Error("disjoint boxes should not intersect")
	}
}
