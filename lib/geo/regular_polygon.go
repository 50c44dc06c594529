package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RegularPolygon has its first vertex at angle Rotation, Radius away from Offset.
type RegularPolygon struct {
	Sides    int     `json:"sides"`
	Radius   float64 `json:"radius"`
	Rotation float64 `json:"rotation"`
	Offset   r2.Vec  `json:"offset"`
}

func NewRegularPolygon(offset r2.Vec, sides int, radius, rotation float64) (*RegularPolygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSides, sides)
	}
	return &RegularPolygon{
		Sides:    sides,
		Radius:   radius,
		Rotation: rotation,
		Offset:   offset,
	}, nil
}

// Segment is the angle subtended by one side.
func (p *RegularPolygon) Segment() float64 {
	return 2 * math.Pi / float64(p.Sides)
}

// Apothem is the distance from the center to the middle of a side.
func (p *RegularPolygon) Apothem() float64 {
	return p.Radius * math.Cos(math.Pi/float64(p.Sides))
}

func (p *RegularPolygon) Vertices() []r2.Vec {
	if p.Sides <= 0 {
		return nil
	}
	vs := make([]r2.Vec, p.Sides)
	seg := p.Segment()
	for i := range vs {
		vs[i] = r2.Add(p.Offset, Polar(p.Radius, p.Rotation+float64(i)*seg))
	}
	return vs
}

func (p *RegularPolygon) OuterCoordsRange() (Range, Range) {
	return PolygonOuterCoordsRange(p)
}

func (p *RegularPolygon) OuterRadius() float64 {
	return PolygonOuterRadius(p)
}

func (p *RegularPolygon) OuterRadiusAt(angle float64) float64 {
	return PolygonOuterRadiusAt(p, angle)
}

func (p *RegularPolygon) InnerCoordsRange() (Range, Range) {
	return PolygonInnerCoordsRange(p)
}

func (p *RegularPolygon) InnerRadius() float64 {
	return PolygonInnerRadius(p)
}

func (p *RegularPolygon) InnerRadiusAt(angle float64) float64 {
	return PolygonInnerRadiusAt(p, angle)
}

func (p *RegularPolygon) Translate(delta r2.Vec) {
	p.Offset = r2.Add(p.Offset, delta)
}

func (p *RegularPolygon) Rotate(angle float64) {
	p.Rotation -= angle
	p.Offset = turn(p.Offset, angle)
}

func (p *RegularPolygon) Scale(factor float64) {
	p.Radius *= factor
	p.Offset = r2.Scale(factor, p.Offset)
}
