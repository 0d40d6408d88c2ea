package cutplane

import (
	"github.com/Faultbox/cutplane/internal/engine/picking"
	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/pkg/math"
)

// GestureState is the drag state of a Gesture.
type GestureState int

const (
	GestureIdle GestureState = iota
	GestureDragging
)

func (s GestureState) String() string {
	if s == GestureDragging {
		return "dragging"
	}
	return "idle"
}

// Gesture tracks a primary-button drag in normalized device coordinates.
// The zero value is idle.
type Gesture struct {
	state   GestureState
	start   math.Vec2
	current math.Vec2
}

// Down starts a drag on a primary-button press. A press while already
// dragging restarts the drag at the new position.
func (g *Gesture) Down(ev host.PointerEvent, width, height float64) bool {
	if ev.Button != host.ButtonPrimary {
		return false
	}
	ndc, ok := picking.ScreenToNDC(ev.ClientX, ev.ClientY, width, height)
	if !ok {
		return false
	}
	g.state = GestureDragging
	g.start = ndc
	g.current = ndc
	return true
}

// Move updates the current sample. Moves outside a drag or without the
// primary button held are ignored.
func (g *Gesture) Move(ev host.PointerEvent, width, height float64) bool {
	if g.state != GestureDragging || ev.Buttons&host.ButtonsPrimary == 0 {
		return false
	}
	ndc, ok := picking.ScreenToNDC(ev.ClientX, ev.ClientY, width, height)
	if !ok {
		return false
	}
	g.current = ndc
	return true
}

// Up ends the drag whichever button was released, and reports whether a
// drag was in progress.
func (g *Gesture) Up() bool {
	was := g.state == GestureDragging
	g.state = GestureIdle
	return was
}

// Cancel forces the tracker back to idle.
func (g *Gesture) Cancel() {
	g.state = GestureIdle
}

// State returns whether a drag is in progress.
func (g *Gesture) State() GestureState { return g.state }

// Start returns the NDC position where the current drag began.
func (g *Gesture) Start() math.Vec2 { return g.start }

// Current returns the latest NDC position of the drag.
func (g *Gesture) Current() math.Vec2 { return g.current }
