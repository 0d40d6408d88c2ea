package host

// PointerType is the phase of a pointer event.
type PointerType int

const (
	PointerDown PointerType = iota
	PointerMove
	PointerUp
)

func (t PointerType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// Button identifies the button that changed state in a down/up event.
const (
	ButtonPrimary   = 0
	ButtonAuxiliary = 1
	ButtonSecondary = 2
)

// Buttons bit mask of buttons currently held.
const (
	ButtonsPrimary   uint32 = 1 << 0
	ButtonsSecondary uint32 = 1 << 1
	ButtonsAuxiliary uint32 = 1 << 2
)

// PointerEvent is a pointer sample in viewport pixels, origin top-left.
type PointerEvent struct {
	Type    PointerType
	ClientX float64
	ClientY float64
	Button  int
	Buttons uint32
}

// PointerListener receives pointer events in delivery order.
type PointerListener func(PointerEvent)
