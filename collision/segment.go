package collision

import "github.com/lumafield/motes/physics"

// Segment is one edge of an outline with its outward normal.
type Segment struct {
	Start, End physics.Vec2
	Normal     physics.Vec2
}

// NewSegment builds a segment with its left-perpendicular normal,
// normalized-or-zero for degenerate (zero-length) edges.
func NewSegment(start, end physics.Vec2) Segment {
	dir := end.Sub(start)
	normal := physics.Vec2{X: -dir.Y, Y: dir.X}.Normalize()
	return Segment{Start: start, End: end, Normal: normal}
}

// ClosestPoint returns the point on the segment nearest to p.
func (s Segment) ClosestPoint(p physics.Vec2) physics.Vec2 {
	edge := s.End.Sub(s.Start)
	lenSq := edge.LengthSq()
	if lenSq == 0 {
		return s.Start
	}
	t := p.Sub(s.Start).Dot(edge) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.Start.Add(edge.Scale(t))
}

// DistanceTo returns the distance from p to the segment.
func (s Segment) DistanceTo(p physics.Vec2) float32 {
	return p.Distance(s.ClosestPoint(p))
}
