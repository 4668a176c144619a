package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/ChristopherRabotin/orrery"
	kitlog "github.com/go-kit/kit/log"
)

// This tool runs the solar system animation, in a window or in the terminal.

var (
	configDir string
	logPath   string
	tracePath string
	phase     string
	terminal  bool
	verbose   bool
)

func init() {
	// Read flags
	flag.StringVar(&configDir, "config", "", "directory of orrery.toml (defaults to $"+orrery.ConfigEnv+")")
	flag.StringVar(&logPath, "log", "", "log file (defaults to stderr, discarded in terminal mode)")
	flag.StringVar(&tracePath, "trace", "", "write a CSV trace of every frame to this file")
	flag.StringVar(&phase, "phase", "", "initial phase of the bodies: zero, random or ephemeris (overrides the configuration)")
	flag.BoolVar(&terminal, "term", false, "draw in the terminal instead of a window")
	flag.BoolVar(&verbose, "verbose", false, "log the state of every body when done")
}

func main() {
	flag.Parse()
	conf, err := orrery.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("could not load configuration: %s", err)
	}
	if phase != "" {
		if conf.Phase, err = orrery.PhaseModeFromString(phase); err != nil {
			log.Fatal(err)
		}
	}
	if tracePath != "" {
		conf.TracePath = tracePath
	}

	var logOut io.Writer = os.Stderr
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			log.Fatalf("could not create log file: %s", err)
		}
		defer f.Close()
		logOut = f
	} else if terminal {
		// Anything written to stderr would scribble over the screen.
		logOut = io.Discard
	}
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(logOut))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	sim := orrery.NewSimulation(conf, orrery.SolarSystem(), logger)
	sim.Initialize(conf.Phase, time.Now())

	var tracer *orrery.Tracer
	if conf.TracePath != "" {
		if tracer, err = orrery.CreateTracer(conf.TracePath); err != nil {
			log.Fatal(err)
		}
	}

	if terminal {
		err = runTerminal(sim, conf, tracer, logger)
	} else {
		err = runWindow(sim, conf, tracer, logger)
	}
	if tracer != nil {
		if cerr := tracer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if verbose {
		sim.LogStatus()
	}
	if err != nil {
		log.Fatal(err)
	}
}
