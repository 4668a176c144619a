package orrery

import (
	"fmt"
	"strings"
)

const (
	// OrbitScale stretches the (compressed) semi-major axes of the catalog for display.
	OrbitScale = 1.5
)

// Star is the fixed body at the focus of every orbit.
type Star struct {
	Name   string
	Radius float64
	Color  Color
}

// Sun is our closest star.
var Sun = Star{"Sun", 0.1, Color{1, 1, 0}}

// SolarSystem returns a fresh copy of the planetary catalog, ordered by distance.
// The semi-major axes are astronomical ratios squeezed to fit on screen, the
// periods are in years and the radii are only visual.
func SolarSystem() []Body {
	return []Body{
		// Mercury is fast.
		NewBody("Mercury", 0.4*OrbitScale, 0.205, 0.24, 0.015, Color{1, 0, 0}),
		// Venus is poisonous.
		NewBody("Venus", 0.7*OrbitScale, 0.007, 0.62, 0.02, Color{1, 1, 1}),
		// Earth is home.
		NewBody("Earth", 1.0*OrbitScale, 0.017, 1.0, 0.025, Color{0, 0, 1}),
		// Mars is the vacation place.
		NewBody("Mars", 1.5*OrbitScale, 0.093, 1.88, 0.02, Color{1, 0, 0}),
		// Jupiter is big.
		NewBody("Jupiter", 2.8*OrbitScale, 0.048, 11.86, 0.04, Color{1, 0.5, 0}),
		// Saturn floats and that's really cool.
		NewBody("Saturn", 3.5*OrbitScale, 0.056, 29.45, 0.035, Color{1, 1, 0.5}),
		// Uranus is no joke.
		NewBody("Uranus", 4.0*OrbitScale, 0.046, 84.02, 0.03, Color{0, 0.5, 1}),
		NewBody("Neptune", 4.5*OrbitScale, 0.010, 164.79, 0.03, Color{0, 0, 1}),
		// Pluto is not a planet and had that down ranking coming. It still gets a seat.
		NewBody("Pluto", 5.0*OrbitScale, 0.2488, 247.94, 0.01, Color{0.8, 0.7, 0.6}),
	}
}

// BodyFromString returns the catalog body from its name (case insensitive).
func BodyFromString(name string) (Body, error) {
	for _, b := range SolarSystem() {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return Body{}, fmt.Errorf("undefined body '%s'", name)
}
