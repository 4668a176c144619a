package orrery

import (
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestKeplerCircular(t *testing.T) {
	for M := 0.0; M < 2*math.Pi; M += 0.1 {
		sol := DefaultKeplerSolver.Solve(M, 0)
		if sol.E != M {
			t.Fatalf("E=%f != M=%f for e=0", sol.E, M)
		}
		if sol.Iterations != 1 || !sol.Converged {
			t.Fatalf("circular solution took %d iterations (converged: %v)", sol.Iterations, sol.Converged)
		}
	}
}

func TestKeplerResidual(t *testing.T) {
	for _, b := range SolarSystem() {
		for M := 0.0; M < 2*math.Pi; M += 0.05 {
			sol := DefaultKeplerSolver.Solve(M, b.Eccentricity())
			if !sol.Converged {
				t.Fatalf("%s: no convergence at M=%f: %+v", b.Name, M, sol)
			}
			if sol.Iterations > DefaultKeplerSolver.MaxIterations {
				t.Fatalf("%s: %d iterations", b.Name, sol.Iterations)
			}
			residual := sol.E - b.Eccentricity()*math.Sin(sol.E) - M
			if !scalar.EqualWithinAbs(residual, 0, 1e-9) {
				t.Fatalf("%s: Kepler's equation residual %g at M=%f", b.Name, residual, M)
			}
		}
	}
}

func TestKeplerMeeus(t *testing.T) {
	for _, e := range []float64{0.007, 0.017, 0.093, 0.205, 0.2488, 0.5} {
		for M := 0.0; M < 2*math.Pi; M += 0.1 {
			sol := DefaultKeplerSolver.Solve(M, e)
			exp := kepler.Kepler3(e, unit.Angle(M)).Rad()
			if ok, err := anglesEqual(sol.E, exp); !ok {
				// The tolerance is on the correction, the error is much smaller.
				if !scalar.EqualWithinAbs(normalizeAngle(sol.E), normalizeAngle(exp), 1e-6) {
					t.Fatalf("e=%f M=%f: E=%f != %f (Meeus): %s", e, M, sol.E, exp, err)
				}
			}
		}
	}
}

func TestKeplerNonConvergence(t *testing.T) {
	strict := KeplerSolver{MaxIterations: 1, Tolerance: 1e-12}
	sol := strict.Solve(1, 0.9)
	if sol.Converged {
		t.Fatal("a single step on e=0.9 should not converge")
	}
	if sol.Iterations != 1 {
		t.Fatalf("%d iterations instead of 1", sol.Iterations)
	}
	if math.IsNaN(sol.E) || sol.Correction == 0 {
		t.Fatalf("best estimate not returned: %+v", sol)
	}
	// More steps improve the estimate.
	better := KeplerSolver{MaxIterations: 50, Tolerance: 1e-12}.Solve(1, 0.9)
	if !better.Converged {
		t.Fatalf("no convergence with 50 iterations: %+v", better)
	}
	if math.Abs(better.E-0.9*math.Sin(better.E)-1) > math.Abs(sol.E-0.9*math.Sin(sol.E)-1) {
		t.Fatal("more iterations gave a worse estimate")
	}
	// A zero iteration budget still performs one step.
	if s := (KeplerSolver{}).Solve(1, 0.1); s.Iterations != 1 {
		t.Fatalf("%d iterations with an empty solver", s.Iterations)
	}
}

func TestTrueAnomaly(t *testing.T) {
	// At perihelion and for circular orbits, all anomalies coincide.
	if ν := TrueAnomaly(0, 0.3); ν != 0 {
		t.Fatalf("ν=%f at perihelion", ν)
	}
	for E := -3.0; E < 3; E += 0.25 {
		if ν := TrueAnomaly(E, 0); !scalar.EqualWithinAbs(ν, E, 1e-12) {
			t.Fatalf("ν=%f != E=%f for e=0", ν, E)
		}
		// Cross check with Meeus.
		exp := kepler.True(unit.Angle(E), 0.3).Rad()
		if ok, err := anglesEqual(TrueAnomaly(E, 0.3), exp); !ok {
			t.Fatalf("E=%f: %s", E, err)
		}
	}
}
