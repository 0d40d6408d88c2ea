package cutplane

import "github.com/Faultbox/cutplane/internal/host"

// Scene creates world-space nodes.
type Scene interface {
	Add(spec host.NodeSpec) host.Node
}

// Camera exposes the current view matrices and accepts camera-space
// children that move rigidly with the view.
type Camera interface {
	Transform() host.CameraTransform
	Attach(spec host.NodeSpec) host.Node
}

// Surface is the viewport element that delivers pointer input.
type Surface interface {
	Size() (width, height float64)
	Listen(fn host.PointerListener) (remove func())
}

// Cursor is the pointer shape requested from the host while the control
// is active.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
)

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorCrosshair:
		return "crosshair"
	default:
		return "unknown"
	}
}
