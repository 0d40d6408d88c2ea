package host

import (
	"sync"

	"github.com/Faultbox/cutplane/pkg/math"
)

// MemoryNode records the state of a node held by a MemoryScene or
// MemoryCamera.
type MemoryNode struct {
	Spec     NodeSpec
	Disposed bool

	owner *registry
}

func (n *MemoryNode) SetVisible(visible bool) {
	if n.Disposed {
		return
	}
	n.Spec.Visible = visible
}

func (n *MemoryNode) SetPositions(positions []math.Vec3) {
	if n.Disposed {
		return
	}
	n.Spec.Positions = append(n.Spec.Positions[:0], positions...)
}

func (n *MemoryNode) SetTransform(transform math.Mat4) {
	if n.Disposed {
		return
	}
	n.Spec.Transform = transform
}

func (n *MemoryNode) SetMaterial(material Material) {
	if n.Disposed {
		return
	}
	n.Spec.Material = material
}

func (n *MemoryNode) Dispose() {
	if n.Disposed {
		return
	}
	n.Disposed = true
	n.owner.remove(n)
}

// registry tracks live nodes and disposal counts.
type registry struct {
	mu       sync.Mutex
	nodes    []*MemoryNode
	created  int
	disposed int
}

func (r *registry) add(spec NodeSpec) *MemoryNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	spec.Positions = append([]math.Vec3(nil), spec.Positions...)
	n := &MemoryNode{Spec: spec, owner: r}
	r.nodes = append(r.nodes, n)
	r.created++
	return n
}

func (r *registry) remove(n *MemoryNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, live := range r.nodes {
		if live == n {
			r.nodes = append(r.nodes[:i], r.nodes[i+1:]...)
			break
		}
	}
	r.disposed++
}

func (r *registry) live() []*MemoryNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*MemoryNode(nil), r.nodes...)
}

func (r *registry) find(name string) []*MemoryNode {
	var out []*MemoryNode
	for _, n := range r.live() {
		if n.Spec.Name == name {
			out = append(out, n)
		}
	}
	return out
}

func (r *registry) counts() (created, disposed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, r.disposed
}

// MemoryScene is a scene graph root that keeps nodes in memory.
type MemoryScene struct {
	reg registry
}

// NewMemoryScene creates an empty scene.
func NewMemoryScene() *MemoryScene {
	return &MemoryScene{}
}

// Add creates a node in world space.
func (s *MemoryScene) Add(spec NodeSpec) Node {
	return s.reg.add(spec)
}

// Nodes returns the live nodes in creation order.
func (s *MemoryScene) Nodes() []*MemoryNode { return s.reg.live() }

// Find returns the live nodes with the given name.
func (s *MemoryScene) Find(name string) []*MemoryNode { return s.reg.find(name) }

// Counts returns how many nodes were created and disposed.
func (s *MemoryScene) Counts() (created, disposed int) { return s.reg.counts() }

// MemoryCamera is a camera with a fixed transform and camera-space children.
type MemoryCamera struct {
	transform CameraTransform
	reg       registry
}

// NewMemoryCamera creates a camera with the given matrices.
func NewMemoryCamera(projection, world math.Mat4) *MemoryCamera {
	return &MemoryCamera{transform: NewCameraTransform(projection, world)}
}

// Transform returns the current matrices.
func (c *MemoryCamera) Transform() CameraTransform { return c.transform }

// SetTransform replaces the camera matrices.
func (c *MemoryCamera) SetTransform(t CameraTransform) { c.transform = t }

// Attach creates a node in the camera's local space.
func (c *MemoryCamera) Attach(spec NodeSpec) Node {
	return c.reg.add(spec)
}

// Nodes returns the live camera children in creation order.
func (c *MemoryCamera) Nodes() []*MemoryNode { return c.reg.live() }

// Find returns the live camera children with the given name.
func (c *MemoryCamera) Find(name string) []*MemoryNode { return c.reg.find(name) }

// Counts returns how many children were created and disposed.
func (c *MemoryCamera) Counts() (created, disposed int) { return c.reg.counts() }

// MemorySurface is a viewport that fans pointer events out to listeners.
type MemorySurface struct {
	Width, Height float64
	Cursor        string

	mu        sync.Mutex
	listeners map[int]PointerListener
	order     []int
	nextID    int
}

// NewMemorySurface creates a surface of the given pixel size.
func NewMemorySurface(width, height float64) *MemorySurface {
	return &MemorySurface{
		Width:     width,
		Height:    height,
		listeners: make(map[int]PointerListener),
	}
}

// Size returns the viewport size in pixels.
func (s *MemorySurface) Size() (width, height float64) { return s.Width, s.Height }

// SetCursor records the requested cursor name.
func (s *MemorySurface) SetCursor(name string) { s.Cursor = name }

// Listen registers a listener. The returned function removes it and may be
// called more than once.
func (s *MemorySurface) Listen(fn PointerListener) (remove func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Listeners returns the number of registered listeners.
func (s *MemorySurface) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Dispatch delivers an event to every listener in registration order.
func (s *MemorySurface) Dispatch(ev PointerEvent) {
	s.mu.Lock()
	fns := make([]PointerListener, 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Drag dispatches a primary-button press at from, a move to to and a release.
func (s *MemorySurface) Drag(fromX, fromY, toX, toY float64) {
	s.Dispatch(PointerEvent{Type: PointerDown, ClientX: fromX, ClientY: fromY, Button: ButtonPrimary, Buttons: ButtonsPrimary})
	s.Dispatch(PointerEvent{Type: PointerMove, ClientX: toX, ClientY: toY, Buttons: ButtonsPrimary})
	s.Dispatch(PointerEvent{Type: PointerUp, ClientX: toX, ClientY: toY, Button: ButtonPrimary})
}
