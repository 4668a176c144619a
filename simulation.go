package orrery

import (
	"fmt"
	"math/rand/v2"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// Diagnostics counts what happened in the Kepler solver since the start.
type Diagnostics struct {
	Advances        uint64  // Number of body updates
	NonConverged    uint64  // Updates whose solver hit the iteration cap
	MaxIterations   int     // Largest number of Newton steps used by one update
	WorstCorrection float64 // Largest final correction of a non converged update
}

// Simulation owns the whole simulation state: bodies, camera and solver.
// It is not safe for concurrent use; exactly one goroutine ticks it.
type Simulation struct {
	bodies      []Body
	Star        Star
	Camera      *Camera
	TimeScale   float64
	Solver      KeplerSolver
	Diagnostics Diagnostics
	solutions   []KeplerSolution // Last solution per body
	warned      []bool           // Whether non convergence was already logged per body
	seed        int64
	logger      kitlog.Logger
}

// NewSimulation returns a new simulation of the provided bodies around the Sun.
// Panics if a body is invalid.
func NewSimulation(conf Config, bodies []Body, logger kitlog.Logger) *Simulation {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	for _, b := range bodies {
		if err := b.Validate(); err != nil {
			panic(err)
		}
	}
	scale := conf.TimeScale
	if !(scale > 0) {
		scale = 1
	}
	solver := conf.Solver
	if solver.MaxIterations < 1 {
		solver = DefaultKeplerSolver
	}
	camConf := conf.Camera
	if !(camConf.MinZoom > 0) {
		camConf = DefaultCameraConfig()
	}
	owned := make([]Body, len(bodies))
	copy(owned, bodies)
	return &Simulation{
		bodies:    owned,
		Star:      Sun,
		Camera:    NewCamera(camConf),
		TimeScale: scale,
		Solver:    solver,
		solutions: make([]KeplerSolution, len(bodies)),
		warned:    make([]bool, len(bodies)),
		seed:      conf.Seed,
		logger:    logger,
	}
}

// Initialize sets the phase of every body once, before the first tick.
// The date is only used by PhaseEphemeris; a zero seed draws a new one from it.
func (s *Simulation) Initialize(mode PhaseMode, dt time.Time) {
	switch mode {
	case PhaseRandom:
		seed := s.seed
		if seed == 0 {
			seed = dt.UnixNano()
		}
		rnd := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32))
		for i := range s.bodies {
			s.solutions[i] = s.bodies[i].SetMeanAnomaly(rnd.Float64()*twoπ, s.Solver)
		}
		s.logger.Log("level", "info", "subsys", "orbit", "phase", mode, "seed", seed)
	case PhaseEphemeris:
		for i := range s.bodies {
			M, ok := MeanAnomalyAt(s.bodies[i].Name, dt)
			if !ok {
				s.logger.Log("level", "notice", "subsys", "orbit", "phase", mode, "body", s.bodies[i].Name, "message", "no mean elements, starting at perihelion")
			}
			s.solutions[i] = s.bodies[i].SetMeanAnomaly(M, s.Solver)
		}
		s.logger.Log("level", "info", "subsys", "orbit", "phase", mode, "date", dt.UTC())
	default:
		for i := range s.bodies {
			s.solutions[i] = s.bodies[i].SetMeanAnomaly(0, s.Solver)
		}
		s.logger.Log("level", "info", "subsys", "orbit", "phase", mode)
	}
}

// Advance moves body i forward by dt of host time and returns its new position.
func (s *Simulation) Advance(i int, dt float64) Point {
	pos, sol := s.bodies[i].Advance(dt*s.TimeScale, s.Solver)
	s.solutions[i] = sol
	s.Diagnostics.Advances++
	if sol.Iterations > s.Diagnostics.MaxIterations {
		s.Diagnostics.MaxIterations = sol.Iterations
	}
	if !sol.Converged {
		s.Diagnostics.NonConverged++
		if sol.Correction > s.Diagnostics.WorstCorrection {
			s.Diagnostics.WorstCorrection = sol.Correction
		}
		if !s.warned[i] {
			s.warned[i] = true
			b := s.bodies[i]
			s.logger.Log("level", "warning", "subsys", "kepler", "body", b.Name, "e", b.e, "M", b.m, "iterations", sol.Iterations, "correction", sol.Correction, "message", "eccentric anomaly did not converge")
		}
	}
	return pos
}

// Step advances every body by dt and returns their positions in catalog order.
func (s *Simulation) Step(dt float64) []Point {
	positions := make([]Point, len(s.bodies))
	for i := range s.bodies {
		positions[i] = s.Advance(i, dt)
	}
	return positions
}

// Bodies returns a copy of the bodies, in catalog order.
func (s *Simulation) Bodies() []Body {
	bodies := make([]Body, len(s.bodies))
	copy(bodies, s.bodies)
	return bodies
}

// Solutions returns the last Kepler solution of each body, in catalog order.
func (s *Simulation) Solutions() []KeplerSolution {
	sols := make([]KeplerSolution, len(s.solutions))
	copy(sols, s.solutions)
	return sols
}

// LogStatus logs the state of every body and the solver diagnostics.
func (s *Simulation) LogStatus() {
	for _, b := range s.bodies {
		s.logger.Log("level", "debug", "subsys", "orbit", "body", b)
	}
	s.logger.Log("level", "info", "subsys", "kepler", "advances", s.Diagnostics.Advances, "nonConverged", s.Diagnostics.NonConverged, "maxIterations", s.Diagnostics.MaxIterations, "camera", s.Camera)
}

func (s *Simulation) String() string {
	return fmt.Sprintf("%d bodies around %s (time scale %.3f)", len(s.bodies), s.Star.Name, s.TimeScale)
}
