package orrery

import (
	"fmt"
	"math"
)

const (
	deg2rad = math.Pi / 180
	twoπ    = 2 * math.Pi
)

// Point is a position in the orbital plane, with the star at the origin.
type Point struct {
	X, Y float64
}

// Norm returns the distance of this point to the origin.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.X, p.Y)
}

// normalizeAngle wraps the provided angle in [0, 2π), whatever its magnitude.
func normalizeAngle(θ float64) float64 {
	θ = math.Mod(θ, twoπ)
	if θ < 0 {
		θ += twoπ
	}
	if θ >= twoπ {
		// -tiny + 2π rounds up to 2π.
		θ = 0
	}
	return θ
}

// Deg2rad converts degrees to radians, wrapped into [0, 2π).
func Deg2rad(a float64) float64 {
	return normalizeAngle(a * deg2rad)
}

// Rad2deg converts radians to degrees, wrapped into [0, 360).
func Rad2deg(a float64) float64 {
	return normalizeAngle(a) / deg2rad
}
