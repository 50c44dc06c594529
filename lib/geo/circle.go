package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type Circle struct {
	Radius float64 `json:"radius"`
	Offset r2.Vec  `json:"offset"`
}

func NewCircle(offset r2.Vec, radius float64) *Circle {
	return &Circle{
		Radius: radius,
		Offset: offset,
	}
}

func (c *Circle) OuterCoordsRange() (Range, Range) {
	return Range{Min: c.Offset.X - c.Radius, Max: c.Offset.X + c.Radius},
		Range{Min: c.Offset.Y - c.Radius, Max: c.Offset.Y + c.Radius}
}

func (c *Circle) OuterRadius() float64 {
	return r2.Norm(c.Offset) + c.Radius
}

func (c *Circle) OuterRadiusAt(angle float64) float64 {
	return r2.Dot(c.Offset, Direction(angle)) + c.Radius
}

func (c *Circle) InnerCoordsRange() (Range, Range) {
	return axisRanges(c)
}

// InnerRadius is negative when the origin lies outside the circle.
func (c *Circle) InnerRadius() float64 {
	return c.Radius - r2.Norm(c.Offset)
}

// InnerRadiusAt solves |s·u - offset| = radius for the far crossing. When
// the origin lies outside the circle that is still the exit point, so a
// circle centered at (10, 0) with radius 1 reports 11 along +x. It is +Inf
// only when the ray misses the circle or the circle lies behind it.
func (c *Circle) InnerRadiusAt(angle float64) float64 {
	u := Direction(angle)
	b := r2.Dot(u, c.Offset)
	disc := b*b - r2.Norm2(c.Offset) + c.Radius*c.Radius
	if disc < 0 {
		return math.Inf(1)
	}
	s := b + math.Sqrt(disc)
	if s <= 0 {
		return math.Inf(1)
	}
	return s
}

func (c *Circle) Translate(delta r2.Vec) {
	c.Offset = r2.Add(c.Offset, delta)
}

func (c *Circle) Rotate(angle float64) {
	c.Offset = turn(c.Offset, angle)
}

func (c *Circle) Scale(factor float64) {
	c.Radius *= factor
	c.Offset = r2.Scale(factor, c.Offset)
}
