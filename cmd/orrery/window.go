package main

import (
	"errors"
	"image/color"
	"time"

	"github.com/ChristopherRabotin/orrery"
	kitlog "github.com/go-kit/kit/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// Key repeat, in ticks (60 per second).
	repeatDelay    = 24
	repeatInterval = 3
)

var arrowKeys = map[ebiten.Key]orrery.Key{
	ebiten.KeyArrowLeft:  orrery.KeyLeft,
	ebiten.KeyArrowRight: orrery.KeyRight,
	ebiten.KeyArrowUp:    orrery.KeyUp,
	ebiten.KeyArrowDown:  orrery.KeyDown,
	ebiten.KeyHome:       orrery.KeyHome,
}

// window is the ebiten host. The driver ticks in Update and records the frame,
// which Draw replays on the screen.
type window struct {
	driver  *orrery.Driver
	frame   orrery.DrawList
	start   time.Time
	extent  float64
	closing bool
}

// Now implements the orrery.Host interface.
func (w *window) Now() float64 {
	return time.Since(w.start).Seconds()
}

// PollEvents implements the orrery.Host interface. Ebiten already polled the
// input before Update, so this only translates the current input state.
func (w *window) PollEvents(handle func(orrery.Event)) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		w.closing = true
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		handle(orrery.ScrollEvent{DY: dy})
	}
	for ek, k := range arrowKeys {
		switch {
		case inpututil.IsKeyJustPressed(ek):
			handle(orrery.KeyEvent{Key: k, Action: orrery.Press})
		case inpututil.IsKeyJustReleased(ek):
			handle(orrery.KeyEvent{Key: k, Action: orrery.Release})
		default:
			if d := inpututil.KeyPressDuration(ek); d > repeatDelay && (d-repeatDelay)%repeatInterval == 0 {
				handle(orrery.KeyEvent{Key: k, Action: orrery.Repeat})
			}
		}
	}
}

// ShouldClose implements the orrery.Host interface.
func (w *window) ShouldClose() bool {
	return w.closing
}

// Update implements the ebiten.Game interface.
func (w *window) Update() error {
	if w.closing {
		return ebiten.Termination
	}
	w.driver.Tick()
	return nil
}

// Draw implements the ebiten.Game interface.
func (w *window) Draw(screen *ebiten.Image) {
	w.frame.Replay(newScreenRenderer(screen, w.extent))
}

// Layout implements the ebiten.Game interface.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// screenRenderer maps the orthographic view [-extent, extent] (horizontally,
// aspect preserved, y up) onto an ebiten image.
type screenRenderer struct {
	screen       *ebiten.Image
	cx, cy, unit float64 // Screen center and pixels per view unit
}

func newScreenRenderer(screen *ebiten.Image, extent float64) *screenRenderer {
	b := screen.Bounds()
	return &screenRenderer{
		screen: screen,
		cx:     float64(b.Dx()) / 2,
		cy:     float64(b.Dy()) / 2,
		unit:   float64(b.Dx()) / (2 * extent),
	}
}

func (r *screenRenderer) project(p orrery.Point) (float32, float32) {
	return float32(r.cx + p.X*r.unit), float32(r.cy - p.Y*r.unit)
}

func (r *screenRenderer) Clear() {
	r.screen.Fill(color.Black)
}

func (r *screenRenderer) DrawFilledDisc(center orrery.Point, radius float64, c orrery.Color) {
	x, y := r.project(center)
	vector.DrawFilledCircle(r.screen, x, y, float32(radius*r.unit), c, true)
}

func (r *screenRenderer) DrawLineLoop(points []orrery.Point, c orrery.Color) {
	for i := range points {
		x0, y0 := r.project(points[i])
		x1, y1 := r.project(points[(i+1)%len(points)])
		vector.StrokeLine(r.screen, x0, y0, x1, y1, 1, c, true)
	}
}

// Present is a no-op: ebiten swaps the buffers once Draw returns.
func (r *screenRenderer) Present() {}

func runWindow(sim *orrery.Simulation, conf orrery.Config, tracer *orrery.Tracer, logger kitlog.Logger) error {
	ebiten.SetWindowSize(conf.Window.Width, conf.Window.Height)
	ebiten.SetWindowTitle(conf.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(conf.Window.Fullscreen)

	w := &window{start: time.Now(), extent: conf.ViewExtent}
	w.driver = orrery.NewDriver(sim, &w.frame, w, orrery.DriverConfigFrom(conf), logger)
	if tracer != nil {
		w.driver.SetTracer(tracer)
	}
	logger.Log("level", "info", "subsys", "window", "status", "started", "simulation", sim)
	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	logger.Log("level", "notice", "subsys", "window", "status", "finished", "frames", w.driver.Frames(), "nonConverged", sim.Diagnostics.NonConverged)
	if err == nil && tracer != nil {
		err = tracer.Err()
	}
	return err
}
