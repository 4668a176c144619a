package orrery

import (
	kitlog "github.com/go-kit/kit/log"
)

// PathColor is the neutral color of the orbit paths.
var PathColor = Color{0.5, 0.5, 0.5}

// DriverConfig configures what the frame driver draws.
type DriverConfig struct {
	ShowPaths   bool
	PathSamples int
	PathColor   Color
}

// DriverConfigFrom returns the driver configuration matching conf.
func DriverConfigFrom(conf Config) DriverConfig {
	return DriverConfig{ShowPaths: conf.ShowPaths, PathSamples: conf.PathSamples, PathColor: PathColor}
}

// Driver runs the simulation and render loop, one tick at a time.
type Driver struct {
	sim      *Simulation
	renderer Renderer
	host     Host
	conf     DriverConfig
	paths    [][]Point // Orbit paths in world space, computed once
	previous float64   // Host time of the previous tick
	started  bool
	frames   uint64
	tracer   *Tracer
	logger   kitlog.Logger
}

// NewDriver returns a new frame driver of sim, drawing on r and fed by h.
func NewDriver(sim *Simulation, r Renderer, h Host, conf DriverConfig, logger kitlog.Logger) *Driver {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	d := &Driver{sim: sim, renderer: r, host: h, conf: conf, logger: logger}
	if conf.ShowPaths {
		d.paths = make([][]Point, len(sim.bodies))
		for i, b := range sim.bodies {
			d.paths[i] = b.OrbitPath(conf.PathSamples)
		}
	}
	return d
}

// SetTracer makes the driver record every body after each tick.
func (d *Driver) SetTracer(t *Tracer) {
	d.tracer = t
}

// Frames returns the number of completed ticks.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Tick advances the simulation by the host time elapsed since the previous
// tick (nothing on the first one), draws the frame and handles the input.
func (d *Driver) Tick() {
	now := d.host.Now()
	var dt float64
	if d.started {
		dt = now - d.previous
	}
	d.previous, d.started = now, true

	d.renderer.Clear()
	cam := d.sim.Camera
	view := cam.View()

	star := d.sim.Star
	d.renderer.DrawFilledDisc(MxP33(view, Point{}), cam.ApplyLength(star.Radius), star.Color)
	for i := range d.sim.bodies {
		if d.paths != nil {
			d.renderer.DrawLineLoop(MxPath33(view, d.paths[i]), d.conf.PathColor)
		}
		pos := d.sim.Advance(i, dt)
		b := d.sim.bodies[i]
		d.renderer.DrawFilledDisc(MxP33(view, pos), cam.ApplyLength(b.Radius), b.Color)
	}
	if d.tracer != nil {
		d.tracer.Record(d.frames, now, d.sim.bodies, d.sim.Solutions())
	}
	d.renderer.Present()
	d.frames++

	d.host.PollEvents(cam.HandleEvent)
}

// Run ticks until the host asks to close. Returns the trace error, if any.
func (d *Driver) Run() error {
	d.logger.Log("level", "info", "subsys", "driver", "status", "started", "simulation", d.sim)
	for !d.host.ShouldClose() {
		d.Tick()
		if d.tracer != nil {
			if err := d.tracer.Err(); err != nil {
				d.logger.Log("level", "critical", "subsys", "driver", "trace", err)
				return err
			}
		}
	}
	d.logger.Log("level", "notice", "subsys", "driver", "status", "finished", "frames", d.frames, "nonConverged", d.sim.Diagnostics.NonConverged)
	return nil
}
