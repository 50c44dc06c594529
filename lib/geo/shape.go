package geo

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Angles are in radians. Angle 0 points along +x and angles grow towards +y.
// Every shape is measured from its local origin: the point the enclosing
// layout treats as the center of the figure.

// OuterShape answers queries about the smallest region containing the shape.
type OuterShape interface {
	// OuterCoordsRange is the axis-aligned bounding box as (x, y) ranges.
	OuterCoordsRange() (Range, Range)
	// OuterRadius is the distance from the origin to the farthest point.
	OuterRadius() float64
	// OuterRadiusAt is the support function: the largest projection of the
	// shape onto the unit vector at angle.
	OuterRadiusAt(angle float64) float64
}

// InnerShape answers queries about the region the shape's boundary encloses.
type InnerShape interface {
	// InnerCoordsRange is the extent of the inner boundary along the four axis rays.
	InnerCoordsRange() (Range, Range)
	// InnerRadius is the distance from the origin to the nearest boundary.
	InnerRadius() float64
	// InnerRadiusAt is the distance from the origin to the boundary along angle.
	// It is +Inf when nothing bounds the ray.
	InnerRadiusAt(angle float64) float64
}

// Transformable shapes mutate in place.
type Transformable interface {
	Translate(delta r2.Vec)
	// Rotate turns the shape's frame by angle: every point p becomes R(-angle)·p.
	Rotate(angle float64)
	Scale(factor float64)
}

type Shape interface {
	OuterShape
	InnerShape
	Transformable
}

var (
	ErrNoVertices     = errors.New("shape has no vertices")
	ErrEmptyComposite = errors.New("composite has no parts")
	ErrTooFewSides    = errors.New("regular polygon needs at least 3 sides")
	ErrUnbounded      = errors.New("inner boundary does not bound the ray")
)

// MalformedError reports input geometry a constructor cannot represent.
type MalformedError struct {
	Shape  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s: %s", e.Shape, e.Reason)
}

func malformed(shape, format string, args ...interface{}) error {
	return &MalformedError{
		Shape:  shape,
		Reason: fmt.Sprintf(format, args...),
	}
}
