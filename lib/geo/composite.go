package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Composite is an ordered group of shapes acting as one. Its outer boundary
// is the union of its parts and its inner boundary reaches as far as the
// farthest part does.
type Composite struct {
	Parts []Shape
}

func NewComposite(parts ...Shape) (*Composite, error) {
	if len(parts) == 0 {
		return nil, ErrEmptyComposite
	}
	return &Composite{Parts: parts}, nil
}

func (c *Composite) OuterCoordsRange() (Range, Range) {
	c.mustHaveParts()
	xr, yr := emptyRange(), emptyRange()
	for _, p := range c.Parts {
		px, py := p.OuterCoordsRange()
		xr = xr.Union(px)
		yr = yr.Union(py)
	}
	return xr, yr
}

func (c *Composite) OuterRadius() float64 {
	return c.max(func(s Shape) float64 { return s.OuterRadius() })
}

func (c *Composite) OuterRadiusAt(angle float64) float64 {
	return c.max(func(s Shape) float64 { return s.OuterRadiusAt(angle) })
}

func (c *Composite) InnerCoordsRange() (Range, Range) {
	return axisRanges(c)
}

func (c *Composite) InnerRadius() float64 {
	return c.max(func(s Shape) float64 { return s.InnerRadius() })
}

// InnerRadiusAt is +Inf as soon as one part is unbounded along angle, so
// a composite holding a Segment cannot be filled in the directions the
// segment does not bound.
func (c *Composite) InnerRadiusAt(angle float64) float64 {
	return c.max(func(s Shape) float64 { return s.InnerRadiusAt(angle) })
}

// mustHaveParts panics with ErrEmptyComposite. An empty union has no
// boundary to report.
func (c *Composite) mustHaveParts() {
	if len(c.Parts) == 0 {
		panic(ErrEmptyComposite)
	}
}

func (c *Composite) max(f func(Shape) float64) float64 {
	c.mustHaveParts()
	v := math.Inf(-1)
	for _, p := range c.Parts {
		v = math.Max(v, f(p))
	}
	return v
}

func (c *Composite) Translate(delta r2.Vec) {
	for _, p := range c.Parts {
		p.Translate(delta)
	}
}

func (c *Composite) Rotate(angle float64) {
	for _, p := range c.Parts {
		p.Rotate(angle)
	}
}

func (c *Composite) Scale(factor float64) {
	for _, p := range c.Parts {
		p.Scale(factor)
	}
}
