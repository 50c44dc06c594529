package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygonal is anything described by a closed, ordered sequence of vertices.
// The package-level Polygon* helpers derive every outer and inner query from
// that sequence, so a vertex rule is all a polygon kind has to supply.
type Polygonal interface {
	Vertices() []r2.Vec
}

// vertices panics with ErrNoVertices when p has none. Constructors reject
// that case, so reaching it means a shape was assembled by hand.
func vertices(p Polygonal) []r2.Vec {
	vs := p.Vertices()
	if len(vs) == 0 {
		panic(ErrNoVertices)
	}
	return vs
}

func PolygonOuterCoordsRange(p Polygonal) (Range, Range) {
	return vertexRanges(vertices(p))
}

func PolygonOuterRadius(p Polygonal) float64 {
	radius := 0.
	for _, v := range vertices(p) {
		radius = math.Max(radius, r2.Norm(v))
	}
	return radius
}

func PolygonOuterRadiusAt(p Polygonal, angle float64) float64 {
	vs := vertices(p)
	u := Direction(angle)
	support := math.Inf(-1)
	for _, v := range vs {
		support = math.Max(support, r2.Dot(v, u))
	}
	return support
}

// Sides returns, for each edge, the foot of the perpendicular dropped from
// the origin onto the line through that edge.
func Sides(p Polygonal) []r2.Vec {
	vs := vertices(p)
	sides := make([]r2.Vec, 0, len(vs))
	for i, a := range vs {
		b := vs[(i+1)%len(vs)]
		sides = append(sides, lineFoot(a, b))
	}
	return sides
}

func lineFoot(a, b r2.Vec) r2.Vec {
	d := r2.Sub(b, a)
	l2 := r2.Norm2(d)
	if l2 == 0 {
		return a
	}
	t := -r2.Dot(a, d) / l2
	return r2.Add(a, r2.Scale(t, d))
}

func PolygonInnerCoordsRange(p Polygonal) (Range, Range) {
	return axisRanges(polygonInner{p})
}

func PolygonInnerRadius(p Polygonal) float64 {
	radius := math.Inf(1)
	for _, f := range Sides(p) {
		radius = math.Min(radius, r2.Norm(f))
	}
	return radius
}

// PolygonInnerRadiusAt is the nearest crossing of the ray at angle with an
// edge line. Lines the ray moves away from (foot·u <= 0) never count.
func PolygonInnerRadiusAt(p Polygonal, angle float64) float64 {
	u := Direction(angle)
	radius := math.Inf(1)
	for _, f := range Sides(p) {
		denom := r2.Dot(f, u)
		if denom <= 0 {
			continue
		}
		radius = math.Min(radius, r2.Norm2(f)/denom)
	}
	return radius
}

// Centroid is the center of mass of the enclosed area. Degenerate polygons
// with no area fall back to the mean of their vertices.
func Centroid(p Polygonal) r2.Vec {
	vs := vertices(p)
	var area float64
	var c r2.Vec
	for i, a := range vs {
		b := vs[(i+1)%len(vs)]
		cross := r2.Cross(a, b)
		area += cross
		c = r2.Add(c, r2.Scale(cross, r2.Add(a, b)))
	}
	if math.Abs(area) < PRECISION {
		var sum r2.Vec
		for _, v := range vs {
			sum = r2.Add(sum, v)
		}
		return r2.Scale(1/float64(len(vs)), sum)
	}
	return r2.Scale(1/(3*area), c)
}

type polygonInner struct {
	p Polygonal
}

func (pi polygonInner) InnerCoordsRange() (Range, Range) {
	return axisRanges(pi)
}

func (pi polygonInner) InnerRadius() float64 {
	return PolygonInnerRadius(pi.p)
}

func (pi polygonInner) InnerRadiusAt(angle float64) float64 {
	return PolygonInnerRadiusAt(pi.p, angle)
}

// Polygon is a free-form polygon. Points are closed implicitly and must wind
// consistently.
type Polygon struct {
	Points []r2.Vec `json:"points"`
}

func NewPolygon(points ...r2.Vec) (*Polygon, error) {
	if len(points) == 0 {
		return nil, ErrNoVertices
	}
	return &Polygon{Points: append([]r2.Vec(nil), points...)}, nil
}

// NewPolygonFromCorners builds the axis-aligned rectangle spanned by two
// opposite corners. The corners must surround the origin, since every query
// is taken relative to it.
func NewPolygonFromCorners(a, b r2.Vec) (*Polygon, error) {
	xr, yr := NewRange(a.X, b.X), NewRange(a.Y, b.Y)
	if !xr.Contains(0) || !yr.Contains(0) {
		return nil, malformed("rectangle", "corners %v and %v do not contain the origin", a, b)
	}
	return &Polygon{Points: []r2.Vec{
		{X: xr.Min, Y: yr.Min},
		{X: xr.Max, Y: yr.Min},
		{X: xr.Max, Y: yr.Max},
		{X: xr.Min, Y: yr.Max},
	}}, nil
}

func (p *Polygon) Vertices() []r2.Vec {
	return p.Points
}

func (p *Polygon) OuterCoordsRange() (Range, Range) {
	return PolygonOuterCoordsRange(p)
}

func (p *Polygon) OuterRadius() float64 {
	return PolygonOuterRadius(p)
}

func (p *Polygon) OuterRadiusAt(angle float64) float64 {
	return PolygonOuterRadiusAt(p, angle)
}

func (p *Polygon) InnerCoordsRange() (Range, Range) {
	return PolygonInnerCoordsRange(p)
}

func (p *Polygon) InnerRadius() float64 {
	return PolygonInnerRadius(p)
}

func (p *Polygon) InnerRadiusAt(angle float64) float64 {
	return PolygonInnerRadiusAt(p, angle)
}

func (p *Polygon) Translate(delta r2.Vec) {
	for i := range p.Points {
		p.Points[i] = r2.Add(p.Points[i], delta)
	}
}

func (p *Polygon) Rotate(angle float64) {
	for i := range p.Points {
		p.Points[i] = turn(p.Points[i], angle)
	}
}

func (p *Polygon) Scale(factor float64) {
	for i := range p.Points {
		p.Points[i] = r2.Scale(factor, p.Points[i])
	}
}
