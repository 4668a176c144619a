package orrery

import "math"

// DefaultKeplerSolver is the solver used when none is configured.
var DefaultKeplerSolver = KeplerSolver{MaxIterations: 10, Tolerance: 1e-6}

// KeplerSolver solves Kepler's equation M = E - e sin E with Newton-Raphson.
type KeplerSolver struct {
	MaxIterations int     // Hard cap on the number of Newton steps
	Tolerance     float64 // Stop once |δE| falls below this
}

// KeplerSolution is the eccentric anomaly along with how it was obtained.
// A solution which did not converge is still the best available estimate.
type KeplerSolution struct {
	E          float64 // Eccentric anomaly (radians)
	Iterations int     // Newton steps actually taken
	Converged  bool    // Whether the last correction was below tolerance
	Correction float64 // Magnitude of the last correction
}

// Solve returns the eccentric anomaly for the mean anomaly M and eccentricity e.
// The initial guess is M itself, which is fine for the small eccentricities of
// the planets; the iteration count is bounded regardless of convergence.
func (s KeplerSolver) Solve(M, e float64) KeplerSolution {
	maxIter := s.MaxIterations
	if maxIter < 1 {
		maxIter = 1
	}
	sol := KeplerSolution{E: M}
	for sol.Iterations < maxIter {
		sinE, cosE := math.Sincos(sol.E)
		δ := (sol.E - e*sinE - M) / (1 - e*cosE)
		sol.E -= δ
		sol.Iterations++
		sol.Correction = math.Abs(δ)
		if sol.Correction < s.Tolerance {
			sol.Converged = true
			break
		}
	}
	return sol
}

// TrueAnomaly converts the eccentric anomaly E to the true anomaly ν, in (-π, π].
// WARNING: This half-angle form loses precision as e approaches 1 and as E
// approaches ±π (tan(E/2) diverges). Both are outside the planetary catalog.
func TrueAnomaly(E, e float64) float64 {
	return 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E/2))
}

// ConicRadius returns the distance to the focus at true anomaly ν.
func ConicRadius(a, e, ν float64) float64 {
	return a * (1 - e*e) / (1 + e*math.Cos(ν))
}
