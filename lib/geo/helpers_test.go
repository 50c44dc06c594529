package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func vecEquals(a, b r2.Vec, e float64) bool {
	return math.Abs(a.X-b.X) < e && math.Abs(a.Y-b.Y) < e
}

// clone deep copies s so a test can compare it before and after a transform.
func clone(s Shape) Shape {
	switch s := s.(type) {
	case *Circle:
		c := *s
		return &c
	case *Rect:
		r := *s
		return &r
	case *RegularPolygon:
		p := *s
		return &p
	case *Segment:
		seg := *s
		return &seg
	case *Polygon:
		return &Polygon{Points: append([]r2.Vec(nil), s.Points...)}
	case *Composite:
		parts := make([]Shape, len(s.Parts))
		for i, p := range s.Parts {
			parts[i] = clone(p)
		}
		return &Composite{Parts: parts}
	}
	panic(fmt.Sprintf("clone: unsupported %T", s))
}
