package orrery

// Renderer accepts the drawing commands of one frame, in view coordinates.
type Renderer interface {
	Clear()
	DrawFilledDisc(center Point, radius float64, c Color)
	DrawLineLoop(points []Point, c Color)
	Present()
}

// Host supplies time and input to the frame driver.
type Host interface {
	// Now returns monotonic time in seconds.
	Now() float64
	// PollEvents delivers all pending input events to handle before returning.
	PollEvents(handle func(Event))
	// ShouldClose returns whether the user asked to quit.
	ShouldClose() bool
}

// CommandKind is the type of a recorded drawing command.
type CommandKind uint8

const (
	CmdClear CommandKind = iota
	CmdDisc
	CmdLineLoop
	CmdPresent
)

func (k CommandKind) String() string {
	switch k {
	case CmdClear:
		return "clear"
	case CmdDisc:
		return "disc"
	case CmdLineLoop:
		return "loop"
	case CmdPresent:
		return "present"
	default:
		return "unknown"
	}
}

// DrawCommand is one recorded drawing command.
type DrawCommand struct {
	Kind   CommandKind
	Center Point   // CmdDisc
	Radius float64 // CmdDisc
	Points []Point // CmdLineLoop
	Color  Color
}

// DrawList is a Renderer which records the commands of the last frame so that
// they can be inspected or replayed on another Renderer.
// Clear starts a new frame.
type DrawList struct {
	Commands []DrawCommand
	Frames   uint64 // Number of presented frames
}

// Clear implements the Renderer interface.
func (d *DrawList) Clear() {
	d.Commands = d.Commands[:0]
	d.Commands = append(d.Commands, DrawCommand{Kind: CmdClear})
}

// DrawFilledDisc implements the Renderer interface.
func (d *DrawList) DrawFilledDisc(center Point, radius float64, c Color) {
	d.Commands = append(d.Commands, DrawCommand{Kind: CmdDisc, Center: center, Radius: radius, Color: c})
}

// DrawLineLoop implements the Renderer interface.
// The points are copied since the caller may reuse its buffer.
func (d *DrawList) DrawLineLoop(points []Point, c Color) {
	pts := make([]Point, len(points))
	copy(pts, points)
	d.Commands = append(d.Commands, DrawCommand{Kind: CmdLineLoop, Points: pts, Color: c})
}

// Present implements the Renderer interface.
func (d *DrawList) Present() {
	d.Commands = append(d.Commands, DrawCommand{Kind: CmdPresent})
	d.Frames++
}

// Replay issues the recorded commands on r, in order.
func (d *DrawList) Replay(r Renderer) {
	for _, cmd := range d.Commands {
		switch cmd.Kind {
		case CmdClear:
			r.Clear()
		case CmdDisc:
			r.DrawFilledDisc(cmd.Center, cmd.Radius, cmd.Color)
		case CmdLineLoop:
			r.DrawLineLoop(cmd.Points, cmd.Color)
		case CmdPresent:
			r.Present()
		}
	}
}

// Count returns the number of recorded commands of the provided kind.
func (d *DrawList) Count(k CommandKind) (n int) {
	for _, cmd := range d.Commands {
		if cmd.Kind == k {
			n++
		}
	}
	return
}
