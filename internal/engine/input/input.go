// Package input polls SDL2 events and translates mouse input into pointer
// events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cutplane/internal/host"
)

// EventType is the kind of a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Mod    sdl.Keymod
	Width  int
	Height int
	MouseX int
	MouseY int
	// RelX and RelY are the motion deltas of a move event.
	RelX, RelY int
	// Wheel is the vertical scroll amount.
	Wheel int
	// Button is the SDL button (1 left, 2 middle, 3 right) of a down/up event.
	Button uint8
	// Buttons is the SDL button state mask after the event.
	Buttons uint32
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. It returns true when the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			typ := EventKeyUp
			if e.Type == sdl.KEYDOWN {
				typ = EventKeyDown
			}
			i.events = append(i.events, Event{
				Type: typ,
				Key:  e.Keysym.Sym,
				Mod:  sdl.GetModState(),
			})

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:    EventMouseMove,
				MouseX:  int(e.X),
				MouseY:  int(e.Y),
				RelX:    int(e.XRel),
				RelY:    int(e.YRel),
				Buttons: e.State,
				Mod:     sdl.GetModState(),
			})

		case *sdl.MouseButtonEvent:
			typ := EventMouseUp
			if e.State == sdl.PRESSED {
				typ = EventMouseDown
			}
			_, _, state := sdl.GetMouseState()
			i.events = append(i.events, Event{
				Type:    typ,
				MouseX:  int(e.X),
				MouseY:  int(e.Y),
				Button:  e.Button,
				Buttons: state,
				Mod:     sdl.GetModState(),
			})

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:  EventMouseWheel,
				Wheel: int(e.Y),
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a key went down this frame.
func (i *Input) IsKeyPressed(key sdl.Keycode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}

// SDL button numbers.
const (
	sdlButtonLeft   = 1
	sdlButtonMiddle = 2
	sdlButtonRight  = 3
)

// Pointer converts a mouse event into a pointer event. ok is false for
// other event types.
func (e Event) Pointer() (ev host.PointerEvent, ok bool) {
	switch e.Type {
	case EventMouseDown:
		ev.Type = host.PointerDown
	case EventMouseMove:
		ev.Type = host.PointerMove
	case EventMouseUp:
		ev.Type = host.PointerUp
	default:
		return ev, false
	}
	ev.ClientX = float64(e.MouseX)
	ev.ClientY = float64(e.MouseY)
	ev.Button = pointerButton(e.Button)
	ev.Buttons = pointerButtons(e.Buttons)
	return ev, true
}

// pointerButton maps SDL button numbers to pointer button indices
// (0 primary, 1 auxiliary, 2 secondary, 3 and 4 the extra buttons).
func pointerButton(b uint8) int {
	switch b {
	case sdlButtonLeft:
		return host.ButtonPrimary
	case sdlButtonMiddle:
		return host.ButtonAuxiliary
	case sdlButtonRight:
		return host.ButtonSecondary
	case 0:
		return -1
	default:
		return int(b) - 1
	}
}

// pointerButtons maps an SDL state mask to a pointer buttons mask.
func pointerButtons(state uint32) uint32 {
	var out uint32
	if state&(1<<(sdlButtonLeft-1)) != 0 {
		out |= host.ButtonsPrimary
	}
	if state&(1<<(sdlButtonRight-1)) != 0 {
		out |= host.ButtonsSecondary
	}
	if state&(1<<(sdlButtonMiddle-1)) != 0 {
		out |= host.ButtonsAuxiliary
	}
	// X1 and X2 keep their positions.
	out |= state & (1<<3 | 1<<4)
	return out
}
