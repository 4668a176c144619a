package main

import (
	"math"
	"time"

	"github.com/ChristopherRabotin/orrery"
	"github.com/gdamore/tcell/v2"
	kitlog "github.com/go-kit/kit/log"
)

const terminalFrame = 33 * time.Millisecond // ~30 FPS

// terminalHost draws the view in character cells. Cells are about twice as
// tall as they are wide, hence the halved vertical scale.
type terminalHost struct {
	screen  tcell.Screen
	events  chan tcell.Event
	done    chan struct{}
	ticker  *time.Ticker
	start   time.Time
	extent  float64
	closing bool
}

func newTerminalHost(extent float64) (*terminalHost, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.Clear()

	t := &terminalHost{
		screen: screen,
		events: make(chan tcell.Event, 100),
		done:   make(chan struct{}),
		ticker: time.NewTicker(terminalFrame),
		start:  time.Now(),
		extent: extent,
	}
	go pumpEvents(screen.PollEvent, t.events, t.done)
	return t, nil
}

// pumpEvents forwards the polled events until poll returns nil (screen
// finalized), in which case events is closed, or until done is closed.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (t *terminalHost) Close() {
	close(t.done)
	t.ticker.Stop()
	t.screen.Fini()
}

// Now implements the orrery.Host interface.
func (t *terminalHost) Now() float64 {
	return time.Since(t.start).Seconds()
}

// PollEvents implements the orrery.Host interface: it drains the pending events.
func (t *terminalHost) PollEvents(handle func(orrery.Event)) {
	for {
		select {
		case ev, more := <-t.events:
			if !more {
				t.closing = true
				return
			}
			t.handle(ev, handle)
		default:
			return
		}
	}
}

func (t *terminalHost) handle(ev tcell.Event, handle func(orrery.Event)) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.closing = true
		case tcell.KeyLeft:
			handle(orrery.KeyEvent{Key: orrery.KeyLeft, Action: orrery.Press})
		case tcell.KeyRight:
			handle(orrery.KeyEvent{Key: orrery.KeyRight, Action: orrery.Press})
		case tcell.KeyUp:
			handle(orrery.KeyEvent{Key: orrery.KeyUp, Action: orrery.Press})
		case tcell.KeyDown:
			handle(orrery.KeyEvent{Key: orrery.KeyDown, Action: orrery.Press})
		case tcell.KeyHome:
			handle(orrery.KeyEvent{Key: orrery.KeyHome, Action: orrery.Press})
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				t.closing = true
			case '+', '=':
				handle(orrery.ScrollEvent{DY: 1})
			case '-', '_':
				handle(orrery.ScrollEvent{DY: -1})
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.WheelUp != 0 {
			handle(orrery.ScrollEvent{DY: 1})
		} else if ev.Buttons()&tcell.WheelDown != 0 {
			handle(orrery.ScrollEvent{DY: -1})
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// ShouldClose implements the orrery.Host interface.
func (t *terminalHost) ShouldClose() bool {
	return t.closing
}

func (t *terminalHost) project(p orrery.Point) (col, row, unit float64) {
	w, h := t.screen.Size()
	unit = float64(w) / (2 * t.extent)
	return float64(w)/2 + p.X*unit, float64(h)/2 - p.Y*unit/2, unit
}

func style(c orrery.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255)))
}

func (t *terminalHost) Clear() {
	t.screen.Clear()
}

// DrawFilledDisc fills every cell whose center is inside the disc, and at
// least the cell of the center.
func (t *terminalHost) DrawFilledDisc(center orrery.Point, radius float64, c orrery.Color) {
	col, row, unit := t.project(center)
	st := style(c)
	rc, rr := radius*unit, radius*unit/2
	t.screen.SetContent(int(math.Floor(col)), int(math.Floor(row)), '●', nil, st)
	for y := int(math.Floor(row - rr)); y <= int(math.Ceil(row+rr)); y++ {
		for x := int(math.Floor(col - rc)); x <= int(math.Ceil(col+rc)); x++ {
			dx := (float64(x) + 0.5 - col) / rc
			dy := (float64(y) + 0.5 - row) / rr
			if dx*dx+dy*dy <= 1 {
				t.screen.SetContent(x, y, '█', nil, st)
			}
		}
	}
}

func (t *terminalHost) DrawLineLoop(points []orrery.Point, c orrery.Color) {
	st := style(c)
	for _, p := range points {
		col, row, _ := t.project(p)
		t.screen.SetContent(int(math.Floor(col)), int(math.Floor(row)), '·', nil, st)
	}
}

// Present shows the frame and paces the loop.
func (t *terminalHost) Present() {
	t.screen.Show()
	<-t.ticker.C
}

func runTerminal(sim *orrery.Simulation, conf orrery.Config, tracer *orrery.Tracer, logger kitlog.Logger) error {
	t, err := newTerminalHost(conf.ViewExtent)
	if err != nil {
		return err
	}
	defer t.Close()
	driver := orrery.NewDriver(sim, t, t, orrery.DriverConfigFrom(conf), logger)
	if tracer != nil {
		driver.SetTracer(tracer)
	}
	return driver.Run()
}
