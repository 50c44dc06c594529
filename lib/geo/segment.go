package geo

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a line segment. It is a two-vertex polygon, so its inner
// boundary is the line through both endpoints.
type Segment struct {
	Start r2.Vec `json:"start"`
	End   r2.Vec `json:"end"`
}

func NewSegment(from, to r2.Vec) *Segment {
	return &Segment{from, to}
}

func (s *Segment) Vertices() []r2.Vec {
	return []r2.Vec{s.Start, s.End}
}

func (s *Segment) OuterCoordsRange() (Range, Range) {
	return NewRange(s.Start.X, s.End.X), NewRange(s.Start.Y, s.End.Y)
}

func (s *Segment) OuterRadius() float64 {
	return PolygonOuterRadius(s)
}

func (s *Segment) OuterRadiusAt(angle float64) float64 {
	return PolygonOuterRadiusAt(s, angle)
}

func (s *Segment) InnerCoordsRange() (Range, Range) {
	return PolygonInnerCoordsRange(s)
}

func (s *Segment) InnerRadius() float64 {
	return PolygonInnerRadius(s)
}

func (s *Segment) InnerRadiusAt(angle float64) float64 {
	return PolygonInnerRadiusAt(s, angle)
}

func (s *Segment) Translate(delta r2.Vec) {
	s.Start = r2.Add(s.Start, delta)
	s.End = r2.Add(s.End, delta)
}

func (s *Segment) Rotate(angle float64) {
	s.Start = turn(s.Start, angle)
	s.End = turn(s.End, angle)
}

func (s *Segment) Scale(factor float64) {
	s.Start = r2.Scale(factor, s.Start)
	s.End = r2.Scale(factor, s.End)
}

func (s *Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.End, s.Start))
}

func (s *Segment) Midpoint() r2.Vec {
	return r2.Scale(0.5, r2.Add(s.Start, s.End))
}
