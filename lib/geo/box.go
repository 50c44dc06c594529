package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Range is a closed interval along one axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func NewRange(a, b float64) Range {
	return Range{Min: math.Min(a, b), Max: math.Max(a, b)}
}

// emptyRange is the identity for Union.
func emptyRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

func (r Range) Size() float64 {
	return r.Max - r.Min
}

func (r Range) Center() float64 {
	return (r.Min + r.Max) / 2
}

func (r Range) Union(o Range) Range {
	return Range{Min: math.Min(r.Min, o.Min), Max: math.Max(r.Max, o.Max)}
}

func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Box converts an (x, y) range pair into a gonum box.
func Box(xr, yr Range) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: xr.Min, Y: yr.Min},
		Max: r2.Vec{X: xr.Max, Y: yr.Max},
	}
}

// vertexRanges returns the axis-aligned extent of a vertex sequence.
func vertexRanges(vertices []r2.Vec) (Range, Range) {
	xr, yr := emptyRange(), emptyRange()
	for _, v := range vertices {
		xr.Min = math.Min(xr.Min, v.X)
		xr.Max = math.Max(xr.Max, v.X)
		yr.Min = math.Min(yr.Min, v.Y)
		yr.Max = math.Max(yr.Max, v.Y)
	}
	return xr, yr
}

// axisRanges returns the inner boundary's extent along the four axis rays.
func axisRanges(s InnerShape) (Range, Range) {
	xr := Range{Min: -s.InnerRadiusAt(math.Pi), Max: s.InnerRadiusAt(0)}
	yr := Range{Min: -s.InnerRadiusAt(3 * math.Pi / 2), Max: s.InnerRadiusAt(math.Pi / 2)}
	return xr, yr
}
