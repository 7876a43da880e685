package collision

import "github.com/lumafield/motes/physics"

// parallelEps treats a near-parallel ray/segment pair as non-intersecting
// instead of dividing by a vanishing denominator.
const parallelEps = 1e-4

// Outline is a closed polygon approximating a tracked subject's
// silhouette. It is derived data: rebuilt wholesale from a new point
// sequence, never partially mutated. Velocity is always zero at
// construction; reserved for motion-compensated collision later.
type Outline struct {
	Segments []Segment
	Bounds   AABB
	Velocity physics.Vec2
}

// FromPoints builds an outline from an ordered point sequence interpreted
// as a closed polygon: segment i connects point i to point (i+1) mod N.
// An empty input yields a degenerate outline, not an error.
func FromPoints(points []physics.Vec2) *Outline {
	if len(points) == 0 {
		return &Outline{}
	}

	o := &Outline{
		Segments: make([]Segment, 0, len(points)),
		Bounds:   AABB{Min: points[0], Max: points[0]},
	}

	for i := range points {
		next := (i + 1) % len(points)
		o.Segments = append(o.Segments, NewSegment(points[i], points[next]))

		o.Bounds.Min = o.Bounds.Min.Min(points[i])
		o.Bounds.Max = o.Bounds.Max.Max(points[i])
	}

	return o
}

// Contains reports whether the point lies inside the outline, via a
// bounding-box rejection followed by horizontal ray casting with an odd
// crossing count.
func (o *Outline) Contains(p physics.Vec2) bool {
	if !o.Bounds.Contains(p) {
		return false
	}

	rayEnd := physics.Vec2{X: o.Bounds.Max.X + 1, Y: p.Y}

	crossings := 0
	for _, seg := range o.Segments {
		if rayIntersectsSegment(p, rayEnd, seg.Start, seg.End) {
			crossings++
		}
	}

	return crossings%2 == 1
}

// rayIntersectsSegment runs the standard 2D segment intersection test
// using cross products of the ray and segment directions.
func rayIntersectsSegment(rayStart, rayEnd, segStart, segEnd physics.Vec2) bool {
	r := rayEnd.Sub(rayStart)
	s := segEnd.Sub(segStart)
	qp := segStart.Sub(rayStart)

	rCrossS := r.X*s.Y - r.Y*s.X
	if rCrossS < parallelEps && rCrossS > -parallelEps {
		return false
	}

	t := (qp.X*s.Y - qp.Y*s.X) / rCrossS
	u := (qp.X*r.Y - qp.Y*r.X) / rCrossS

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// Centroid returns the arithmetic mean of segment start points. This is
// an approximation of the polygon centroid, not the area-weighted one;
// good enough for rough CV-driven overlays.
func (o *Outline) Centroid() physics.Vec2 {
	if len(o.Segments) == 0 {
		return physics.Vec2{}
	}

	var sum physics.Vec2
	for _, seg := range o.Segments {
		sum = sum.Add(seg.Start)
	}
	return sum.Scale(1 / float32(len(o.Segments)))
}

// Distance returns the shortest distance from p to any outline edge, or
// -1 for a degenerate outline.
func (o *Outline) Distance(p physics.Vec2) float32 {
	if len(o.Segments) == 0 {
		return -1
	}
	best := o.Segments[0].DistanceTo(p)
	for _, seg := range o.Segments[1:] {
		if d := seg.DistanceTo(p); d < best {
			best = d
		}
	}
	return best
}
