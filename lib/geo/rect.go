package geo

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is axis-aligned in its own frame. Rotation turns that frame about
// the rectangle's center, which sits at Offset.
type Rect struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Offset   r2.Vec  `json:"offset"`
}

func NewRect(offset r2.Vec, width, height, rotation float64) *Rect {
	return &Rect{
		Width:    width,
		Height:   height,
		Rotation: rotation,
		Offset:   offset,
	}
}

// Vertices are listed counter-clockwise starting from the local bottom-left corner.
func (r *Rect) Vertices() []r2.Vec {
	hw, hh := r.Width/2, r.Height/2
	corners := []r2.Vec{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	rot := r2.NewRotation(r.Rotation, r2.Vec{})
	for i, c := range corners {
		corners[i] = r2.Add(rot.Rotate(c), r.Offset)
	}
	return corners
}

func (r *Rect) OuterCoordsRange() (Range, Range) {
	return PolygonOuterCoordsRange(r)
}

func (r *Rect) OuterRadius() float64 {
	return PolygonOuterRadius(r)
}

func (r *Rect) OuterRadiusAt(angle float64) float64 {
	return PolygonOuterRadiusAt(r, angle)
}

func (r *Rect) InnerCoordsRange() (Range, Range) {
	return PolygonInnerCoordsRange(r)
}

func (r *Rect) InnerRadius() float64 {
	return PolygonInnerRadius(r)
}

func (r *Rect) InnerRadiusAt(angle float64) float64 {
	return PolygonInnerRadiusAt(r, angle)
}

func (r *Rect) Translate(delta r2.Vec) {
	r.Offset = r2.Add(r.Offset, delta)
}

func (r *Rect) Rotate(angle float64) {
	r.Rotation -= angle
	r.Offset = turn(r.Offset, angle)
}

func (r *Rect) Scale(factor float64) {
	r.Width *= factor
	r.Height *= factor
	r.Offset = r2.Scale(factor, r.Offset)
}
