package textmeasure

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type rect struct {
	tl r2.Vec
	br r2.Vec
}

func newRect() *rect {
	return &rect{}
}

func (r rect) w() float64 {
	return r.br.X - r.tl.X
}

func (r rect) h() float64 {
	return r.br.Y - r.tl.Y
}

// norm returns the Rect in normal form, such that Max is component-wise greater or equal than Min.
func (r rect) norm() *rect {
	return &rect{
		tl: r2.Vec{
			X: math.Min(r.tl.X, r.br.X),
			Y: math.Min(r.tl.Y, r.br.Y),
		},
		br: r2.Vec{
			X: math.Max(r.tl.X, r.br.X),
			Y: math.Max(r.tl.Y, r.br.Y),
		},
	}
}

func (r1 *rect) union(o *rect) *rect {
	r := newRect()
	r.tl.X = math.Min(r1.tl.X, o.tl.X)
	r.tl.Y = math.Min(r1.tl.Y, o.tl.Y)
	r.br.X = math.Max(r1.br.X, o.br.X)
	r.br.Y = math.Max(r1.br.Y, o.br.Y)

	return r
}
