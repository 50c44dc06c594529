package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Wrap* build the smallest shape of a kind, centered on the origin, that
// contains s plus padding. Fill* build the largest one s contains, less
// padding. Sizes never go below zero.

func WrapCircle(s OuterShape, padding float64) *Circle {
	return NewCircle(r2.Vec{}, math.Max(0, s.OuterRadius()+padding))
}

func WrapRect(s OuterShape, rotation, padding float64) *Rect {
	halfWidth := math.Max(s.OuterRadiusAt(rotation), s.OuterRadiusAt(rotation+math.Pi))
	halfHeight := math.Max(s.OuterRadiusAt(rotation+math.Pi/2), s.OuterRadiusAt(rotation+3*math.Pi/2))
	return NewRect(r2.Vec{},
		math.Max(0, 2*halfWidth+2*padding),
		math.Max(0, 2*halfHeight+2*padding),
		rotation,
	)
}

func WrapRegularPolygon(s OuterShape, sides int, rotation, padding float64) (*RegularPolygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSides, sides)
	}
	seg := 2 * math.Pi / float64(sides)
	apothem := math.Inf(-1)
	for i := 0; i < sides; i++ {
		apothem = math.Max(apothem, s.OuterRadiusAt(rotation+seg/2+float64(i)*seg))
	}
	apothem = math.Max(0, apothem+padding)
	return NewRegularPolygon(r2.Vec{}, sides, apothem/math.Cos(math.Pi/float64(sides)), rotation)
}

func FillCircle(s InnerShape, padding float64) (*Circle, error) {
	r := s.InnerRadius()
	if math.IsInf(r, 1) {
		return nil, ErrUnbounded
	}
	return NewCircle(r2.Vec{}, math.Max(0, r-padding)), nil
}

// FillRect takes its half extents from the inner radius along the rect's own
// axes, then shrinks uniformly until every corner is inside s as well.
func FillRect(s InnerShape, rotation, padding float64) (*Rect, error) {
	innerAt := func(angle float64) (float64, error) {
		r := s.InnerRadiusAt(angle)
		if math.IsInf(r, 1) {
			return 0, ErrUnbounded
		}
		return math.Max(0, r-padding), nil
	}

	var extents [4]float64
	for i := range extents {
		r, err := innerAt(rotation + float64(i)*math.Pi/2)
		if err != nil {
			return nil, err
		}
		extents[i] = r
	}
	a := math.Min(extents[0], extents[2])
	b := math.Min(extents[1], extents[3])

	k := 1.
	diagonal := math.Hypot(a, b)
	if diagonal > 0 {
		corner := math.Atan2(b, a)
		for _, angle := range []float64{corner, math.Pi - corner, math.Pi + corner, -corner} {
			r, err := innerAt(rotation + angle)
			if err != nil {
				return nil, err
			}
			k = math.Min(k, r/diagonal)
		}
	}
	return NewRect(r2.Vec{}, 2*a*k, 2*b*k, rotation), nil
}

func FillRegularPolygon(s InnerShape, sides int, rotation, padding float64) (*RegularPolygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSides, sides)
	}
	seg := 2 * math.Pi / float64(sides)
	radius := math.Inf(1)
	for i := 0; i < sides; i++ {
		radius = math.Min(radius, s.InnerRadiusAt(rotation+float64(i)*seg))
	}
	if math.IsInf(radius, 1) {
		return nil, ErrUnbounded
	}
	cos := math.Cos(math.Pi / float64(sides))
	apothem := math.Max(0, radius*cos-padding)
	return NewRegularPolygon(r2.Vec{}, sides, apothem/cos, rotation)
}
