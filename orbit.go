package orrery

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultPathSamples is the number of samples of an orbit path polyline.
	DefaultPathSamples = 100
	eccentricityε      = 1e-9
)

// Color is an RGB color with each channel in [0, 1].
type Color struct {
	R, G, B float64
}

// RGBA implements the color.Color interface (fully opaque).
func (c Color) RGBA() (r, g, b, a uint32) {
	return channel(c.R), channel(c.G), channel(c.B), 0xffff
}

func channel(v float64) uint32 {
	return uint32(math.Round(math.Max(0, math.Min(1, v)) * 0xffff))
}

// Body is one object orbiting the star along a fixed ellipse.
// Only the phase (mean anomaly) changes once the body is created.
type Body struct {
	Name   string  // Identification only
	Radius float64 // Visual radius, in world units
	Color  Color
	a      float64 // Semi-major axis
	e      float64 // Eccentricity
	period float64 // Time units per revolution
	m      float64 // Mean anomaly, always in [0, 2π), only written by SetMeanAnomaly
	ν      float64 // True anomaly of the last update
}

// NewBody returns a new body at mean anomaly zero.
// Panics if the orbit is not a valid ellipse: those are programming errors
// in the catalog and must not surface mid-simulation.
func NewBody(name string, a, e, period, radius float64, c Color) Body {
	b := Body{Name: name, Radius: radius, Color: c, a: a, e: e, period: period}
	if err := b.Validate(); err != nil {
		panic(err)
	}
	return b
}

// Validate returns an error if the body parameters do not describe a drawable ellipse.
func (b Body) Validate() error {
	switch {
	case !(b.a > 0):
		return fmt.Errorf("%s: semi-major axis must be positive (got %f)", b.Name, b.a)
	case b.e < 0 || !(b.e < 1):
		return fmt.Errorf("%s: eccentricity must be in [0, 1) (got %f)", b.Name, b.e)
	case !(b.period > 0):
		return fmt.Errorf("%s: orbital period must be positive (got %f)", b.Name, b.period)
	case !(b.Radius > 0):
		return fmt.Errorf("%s: visual radius must be positive (got %f)", b.Name, b.Radius)
	}
	for _, ch := range []float64{b.Color.R, b.Color.G, b.Color.B} {
		if ch < 0 || ch > 1 {
			return errors.New(b.Name + ": color channels must be in [0, 1]")
		}
	}
	return nil
}

// SemiMajorAxis returns a.
func (b Body) SemiMajorAxis() float64 {
	return b.a
}

// Eccentricity returns e.
func (b Body) Eccentricity() float64 {
	return b.e
}

// Period returns the orbital period.
func (b Body) Period() float64 {
	return b.period
}

// MeanAnomaly returns the current mean anomaly, in [0, 2π).
func (b Body) MeanAnomaly() float64 {
	return b.m
}

// Angle returns the true anomaly computed by the last Advance.
func (b Body) Angle() float64 {
	return b.ν
}

// MeanMotion returns the angular rate of the mean anomaly.
func (b Body) MeanMotion() float64 {
	return twoπ / b.period
}

// SemiParameter returns the semi latus rectum.
func (b Body) SemiParameter() float64 {
	return b.a * (1 - b.e*b.e)
}

// Apoapsis returns the largest distance to the star.
func (b Body) Apoapsis() float64 {
	return b.a * (1 + b.e)
}

// Periapsis returns the smallest distance to the star.
func (b Body) Periapsis() float64 {
	return b.a * (1 - b.e)
}

// RNorm returns the distance to the star at the current true anomaly.
func (b Body) RNorm() float64 {
	return ConicRadius(b.a, b.e, b.ν)
}

// Position returns the Cartesian position at the current true anomaly.
func (b Body) Position() Point {
	r := b.RNorm()
	sinν, cosν := math.Sincos(b.ν)
	return Point{r * cosν, r * sinν}
}

// SetMeanAnomaly sets the phase of this body and updates the true anomaly accordingly.
func (b *Body) SetMeanAnomaly(M float64, s KeplerSolver) KeplerSolution {
	b.m = normalizeAngle(M)
	sol := s.Solve(b.m, b.e)
	b.ν = TrueAnomaly(sol.E, b.e)
	return sol
}

// Advance moves the body along its orbit by dt (already time scaled) and
// returns its new position relative to the star.
func (b *Body) Advance(dt float64, s KeplerSolver) (Point, KeplerSolution) {
	sol := b.SetMeanAnomaly(b.m+b.MeanMotion()*dt, s)
	return b.Position(), sol
}

// OrbitPath returns the closed polyline of the orbit: n points evenly spaced
// in angle from the focus, followed by the first point again.
// The path only depends on the orbit shape, not on the current phase.
func (b Body) OrbitPath(n int) []Point {
	if n < 3 {
		n = DefaultPathSamples
	}
	angles := floats.Span(make([]float64, n+1), 0, twoπ)
	path := make([]Point, n+1)
	for i, ν := range angles[:n] {
		r := ConicRadius(b.a, b.e, ν)
		sinν, cosν := math.Sincos(ν)
		path[i] = Point{r * cosν, r * sinν}
	}
	path[n] = path[0]
	return path
}

// String implements the Stringer interface.
func (b Body) String() string {
	if b.e < eccentricityε {
		return fmt.Sprintf("%s a=%.3f e=0 T=%.2f M=%.3f", b.Name, b.a, b.period, Rad2deg(b.m))
	}
	return fmt.Sprintf("%s a=%.3f e=%.4f T=%.2f M=%.3f ν=%.3f", b.Name, b.a, b.e, b.period, Rad2deg(b.m), Rad2deg(b.ν))
}
