package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// How precise should comparisons be, avoid being too precise due to floating point issues
const PRECISION = 0.0001

// Direction returns the unit vector pointing at angle (radians, measured from +x towards +y).
func Direction(angle float64) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Vec{X: cos, Y: sin}
}

// Polar returns the point at distance length from the origin along angle.
func Polar(length, angle float64) r2.Vec {
	return r2.Scale(length, Direction(angle))
}

// turn applies the frame rotation used by every Rotate in this package:
// rotating the frame by angle moves a point by -angle around the local origin.
func turn(v r2.Vec, angle float64) r2.Vec {
	return r2.Rotate(v, -angle, r2.Vec{})
}
