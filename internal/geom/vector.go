// Package geom holds the pure math of the engine: headings, circle and box
// shapes, overlap classification and push-out resolution.
//
// Coordinates follow screen convention (x right, y down). Headings are in
// degrees; 0 points along +x and 90 along +y.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec is the engine's vector type.
type Vec = cp.Vector

// V is shorthand for a vector literal.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Deg converts radians to degrees.
func Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Polar returns the vector of length dist pointing along heading deg.
func Polar(deg, dist float64) Vec {
	return cp.ForAngle(Rad(deg)).Mult(dist)
}

// HeadingTo returns the heading in degrees from a to b.
// Coincident points yield 0.
func HeadingTo(from, to Vec) float64 {
	d := to.Sub(from)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	return Deg(d.ToAngle())
}

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDiff returns the signed smallest rotation from a to b in (-180, 180].
func AngleDiff(a, b float64) float64 {
	d := NormalizeDeg(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
