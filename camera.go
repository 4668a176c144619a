package orrery

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Key identifies the keys the camera reacts to.
type Key uint8

const (
	// KeyUnknown is any key the core does not handle.
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome // Recenters the camera
)

// Action is what happened to a key.
type Action uint8

const (
	Press Action = iota
	Repeat
	Release
)

// Event is a raw input event delivered by the host.
type Event interface {
	isEvent()
}

// KeyEvent is a key press, repeat or release.
type KeyEvent struct {
	Key    Key
	Action Action
}

// ScrollEvent is a scroll wheel (or equivalent) delta.
type ScrollEvent struct {
	DX, DY float64
}

func (KeyEvent) isEvent()    {}
func (ScrollEvent) isEvent() {}

// CameraConfig holds the camera tunables.
type CameraConfig struct {
	MinZoom  float64 // Zoom floor, prevents degenerate and inverted views
	ZoomRate float64 // Relative zoom change per scroll unit
	PanStep  float64 // Pan distance per key press at zoom 1, in world units
}

// DefaultCameraConfig returns the default camera tunables.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{MinZoom: 0.1, ZoomRate: 0.1, PanStep: 0.1}
}

// Camera is the view state: zoom first, then pan.
type Camera struct {
	Zoom       float64
	PanX, PanY float64
	conf       CameraConfig
}

// NewCamera returns a camera at zoom 1 centered on the star.
func NewCamera(conf CameraConfig) *Camera {
	if !(conf.MinZoom > 0) {
		panic(fmt.Errorf("camera zoom floor must be positive (got %f)", conf.MinZoom))
	}
	return &Camera{Zoom: 1, conf: conf}
}

// Scroll zooms in (positive delta) or out (negative delta).
func (c *Camera) Scroll(yoffset float64) {
	c.Zoom *= 1 + yoffset*c.conf.ZoomRate
	// A large negative delta makes the factor negative, hence !(>=).
	if !(c.Zoom >= c.conf.MinZoom) {
		c.Zoom = c.conf.MinZoom
	}
}

// Pan moves the viewer by one step in the direction of the key.
// KeyHome recenters instead.
// The step is in screen terms, so it shrinks in world units as the zoom grows.
func (c *Camera) Pan(k Key) {
	step := c.conf.PanStep / c.Zoom
	switch k {
	case KeyLeft:
		c.PanX += step
	case KeyRight:
		c.PanX -= step
	case KeyUp:
		c.PanY -= step
	case KeyDown:
		c.PanY += step
	case KeyHome:
		c.Reset()
	}
}

// HandleEvent updates the camera from an input event.
func (c *Camera) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case KeyEvent:
		if ev.Action != Release {
			c.Pan(ev.Key)
		}
	case ScrollEvent:
		if ev.DY != 0 {
			c.Scroll(ev.DY)
		}
	}
}

// View returns the world to view transform: v' = zoom·(v + pan).
func (c *Camera) View() *mat.Dense {
	var v mat.Dense
	v.Mul(Scale33(c.Zoom), Translate33(c.PanX, c.PanY))
	return &v
}

// Apply projects a world point into view space.
func (c *Camera) Apply(p Point) Point {
	return MxP33(c.View(), p)
}

// ApplyLength projects a world length (e.g. a radius) into view space.
func (c *Camera) ApplyLength(l float64) float64 {
	return l * c.Zoom
}

// Reset puts the camera back at zoom 1 centered on the star.
func (c *Camera) Reset() {
	c.Zoom, c.PanX, c.PanY = 1, 0, 0
}

func (c *Camera) String() string {
	return fmt.Sprintf("zoom=%.3f pan=(%.3f, %.3f)", c.Zoom, c.PanX, c.PanY)
}
