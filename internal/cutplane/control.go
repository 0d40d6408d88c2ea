package cutplane

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/internal/logger"
	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
)

// Configuration errors returned by New.
var (
	ErrNoCamera  = errors.New("cutplane: camera is required")
	ErrNoScene   = errors.New("cutplane: scene is required")
	ErrNoSurface = errors.New("cutplane: surface is required")
)

const (
	DefaultPlaneName = "sectionPlane"
	DefaultMargin    = 2.0
	DefaultThickness = 0.07

	// arrowScale is the normal indicator length relative to the drag line.
	arrowScale = 0.25
)

// Config configures a Control.
type Config struct {
	Camera  Camera
	Scene   Scene
	Surface Surface

	// Style defaults to DefaultStyle when nil.
	Style *Style

	// PlaneName names the plane artifact node. It is a label only.
	PlaneName string
	// Margin is added to the mesh bounds diagonal to size the plane.
	// Zero selects DefaultMargin.
	Margin float64
	// Thickness of the plane box. Zero selects DefaultThickness.
	Thickness float64

	// SetCursor, when set, is called with the cursor the host should show.
	SetCursor func(Cursor)
	Logger    *zap.Logger
}

// Control turns drags on a surface into a cutting plane artifact.
// It must be used from a single goroutine.
type Control struct {
	camera    Camera
	scene     Scene
	surface   Surface
	setCursor func(Cursor)
	log       *zap.Logger

	style     Style
	name      string
	margin    float64
	thickness float64

	gesture  Gesture
	plane    geometry.Plane
	hasPlane bool

	bounds  geometry.Bounds
	center  math.Vec3
	hasMesh bool

	// artifact is the single plane node, nil until the first finalize.
	artifact host.Node

	line, point, arrow host.Node
	lineBuf            [2]math.Vec3
	pointBuf           [1]math.Vec3
	arrowBuf           [2]math.Vec3

	unlisten    func()
	subscribers []subscriber
	nextSub     int
	disposed    bool
}

type subscriber struct {
	id int
	fn func(geometry.Plane)
}

// New creates a control and starts listening on cfg.Surface.
func New(cfg Config) (*Control, error) {
	switch {
	case cfg.Camera == nil:
		return nil, ErrNoCamera
	case cfg.Scene == nil:
		return nil, ErrNoScene
	case cfg.Surface == nil:
		return nil, ErrNoSurface
	}

	c := &Control{
		camera:    cfg.Camera,
		scene:     cfg.Scene,
		surface:   cfg.Surface,
		setCursor: cfg.SetCursor,
		log:       cfg.Logger,
		style:     DefaultStyle(),
		name:      cfg.PlaneName,
		margin:    cfg.Margin,
		thickness: cfg.Thickness,
	}
	if cfg.Style != nil {
		c.style = *cfg.Style
	}
	if c.log == nil {
		c.log = logger.Named("cutplane")
	}
	if c.name == "" {
		c.name = DefaultPlaneName
	}
	if c.margin == 0 {
		c.margin = DefaultMargin
	}
	if c.thickness == 0 {
		c.thickness = DefaultThickness
	}

	c.line = c.camera.Attach(host.NodeSpec{
		Name:      c.name + ".line",
		Kind:      host.KindLine,
		Positions: c.lineBuf[:],
		Material:  previewMaterial(c.style.LineColor),
		Transform: math.Identity(),
	})
	c.point = c.camera.Attach(host.NodeSpec{
		Name:      c.name + ".point",
		Kind:      host.KindPoint,
		Positions: c.pointBuf[:],
		Material:  previewMaterial(c.style.PointColor),
		Transform: math.Identity(),
	})
	c.arrow = c.camera.Attach(host.NodeSpec{
		Name:      c.name + ".arrow",
		Kind:      host.KindLine,
		Positions: c.arrowBuf[:],
		Material:  previewMaterial(c.style.ArrowColor),
		Transform: math.Identity(),
	})

	c.unlisten = c.surface.Listen(c.HandlePointer)
	c.log.Debug("control created", zap.String("plane", c.name))
	return c, nil
}

// HandlePointer processes one pointer event. Events are handled in the
// order they are delivered.
func (c *Control) HandlePointer(ev host.PointerEvent) {
	if c.disposed {
		return
	}
	w, h := c.surface.Size()

	switch ev.Type {
	case host.PointerDown:
		if c.gesture.Down(ev, w, h) {
			c.beginDrag()
		}
	case host.PointerMove:
		if c.gesture.Move(ev, w, h) {
			c.updateDrag()
		}
	case host.PointerUp:
		if c.gesture.Up() {
			c.endDrag()
		}
	}
}

func (c *Control) beginDrag() {
	c.hasPlane = false

	view := c.camera.Transform()
	start, _ := unprojectDrag(c.gesture.Start(), c.gesture.Start(), view)

	c.pointBuf[0] = start
	c.lineBuf = [2]math.Vec3{start, start}
	c.arrowBuf = [2]math.Vec3{start, start}
	c.point.SetPositions(c.pointBuf[:])
	c.line.SetPositions(c.lineBuf[:])
	c.arrow.SetPositions(c.arrowBuf[:])
	c.showPreviews(true)
	c.cursor(CursorCrosshair)

	c.log.Debug("drag started",
		zap.Float64("x", c.gesture.Start().X),
		zap.Float64("y", c.gesture.Start().Y))
}

func (c *Control) updateDrag() {
	view := c.camera.Transform()
	start, end := unprojectDrag(c.gesture.Start(), c.gesture.Current(), view)

	c.lineBuf = [2]math.Vec3{start, end}
	c.line.SetPositions(c.lineBuf[:])

	if plane, ok := Solve(c.gesture.Start(), c.gesture.Current(), view); ok {
		c.plane = plane
		c.hasPlane = true
	} else {
		c.log.Debug("degenerate drag, keeping previous plane")
	}

	if c.hasPlane {
		// Previews live in camera space, so bring the world normal back.
		local := view.World.ExtractRotation().Transpose().TransformDirection(c.plane.Normal)
		mid := start.Lerp(end, 0.5)
		length := start.Distance(end) * arrowScale
		c.arrowBuf = [2]math.Vec3{mid, mid.Add(local.Scale(length))}
		c.arrow.SetPositions(c.arrowBuf[:])
	}
}

func (c *Control) endDrag() {
	c.showPreviews(false)
	c.cursor(CursorDefault)
	c.log.Debug("drag ended", zap.Bool("solved", c.hasPlane))
	c.Finalize()
}

// Finalize places the plane artifact for the current plane, anchored at the
// projection of the mesh centroid, and notifies subscribers. It does nothing
// until a drag has produced a plane and a mesh has been set. Calling it
// again without a new drag yields the same placement.
func (c *Control) Finalize() (geometry.Plane, bool) {
	if c.disposed {
		return geometry.Plane{}, false
	}
	if !c.hasPlane {
		c.log.Debug("finalize skipped: no plane solved")
		return geometry.Plane{}, false
	}
	if !c.hasMesh {
		c.log.Debug("finalize skipped: no mesh bounds")
		return geometry.Plane{}, false
	}

	c.plane.Point = geometry.ProjectPointOntoPlane(c.plane.Normal, c.plane.Point, c.center)
	c.removeArtifact()

	size := c.bounds.Diagonal() + c.margin
	orientation := math.QuatFromUnitVectors(math.UnitZ, c.plane.Normal)
	c.artifact = c.scene.Add(host.NodeSpec{
		Name:      c.name,
		Kind:      host.KindBox,
		Size:      math.Vec3{X: size, Y: size, Z: c.thickness},
		Material:  c.style.planeMaterial(),
		Transform: orientation.ToMat4().WithPosition(c.plane.Point),
		Visible:   true,
	})

	c.log.Info("plane finalized",
		zap.Float64s("normal", []float64{c.plane.Normal.X, c.plane.Normal.Y, c.plane.Normal.Z}),
		zap.Float64s("point", []float64{c.plane.Point.X, c.plane.Point.Y, c.plane.Point.Z}),
		zap.Float64("size", size))

	c.emit(c.plane)
	return c.plane, true
}

// SetMesh records the bounds and centroid of the loaded mesh. Loading a new
// mesh removes the current plane artifact; the next drag places a new one.
func (c *Control) SetMesh(bounds geometry.Bounds, center math.Vec3) {
	if c.disposed {
		return
	}
	if c.hasMesh {
		c.removeArtifact()
		c.hasPlane = false
	}
	c.bounds = bounds
	c.center = center
	c.hasMesh = true
	c.log.Debug("mesh set",
		zap.Float64("diagonal", bounds.Diagonal()),
		zap.Float64s("center", []float64{center.X, center.Y, center.Z}))
}

// Subscribe registers fn for finalized planes. The returned function
// unsubscribes and is safe to call more than once.
func (c *Control) Subscribe(fn func(geometry.Plane)) (cancel func()) {
	if c.disposed || fn == nil {
		return func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (c *Control) emit(p geometry.Plane) {
	subs := append([]subscriber(nil), c.subscribers...)
	for _, s := range subs {
		s.fn(p)
	}
}

// Plane returns the last solved or finalized plane.
func (c *Control) Plane() (geometry.Plane, bool) {
	return c.plane, c.hasPlane
}

// Mesh returns the bounds and centroid passed to SetMesh.
func (c *Control) Mesh() (bounds geometry.Bounds, center math.Vec3, ok bool) {
	return c.bounds, c.center, c.hasMesh
}

// State returns the drag state.
func (c *Control) State() GestureState { return c.gesture.State() }

// PlaneName returns the name given to the plane artifact node.
func (c *Control) PlaneName() string { return c.name }

// HasArtifact reports whether a plane artifact is in the scene.
func (c *Control) HasArtifact() bool { return c.artifact != nil }

// Dispose stops listening, removes the plane artifact and previews and
// drops subscribers. It is safe to call more than once.
func (c *Control) Dispose() {
	if c.disposed {
		return
	}
	if c.unlisten != nil {
		c.unlisten()
	}
	c.gesture.Cancel()
	c.removeArtifact()
	c.line.Dispose()
	c.point.Dispose()
	c.arrow.Dispose()
	c.cursor(CursorDefault)
	c.subscribers = nil
	c.disposed = true
	c.log.Debug("control disposed")
}

func (c *Control) removeArtifact() {
	if c.artifact == nil {
		return
	}
	c.artifact.Dispose()
	c.artifact = nil
}

func (c *Control) showPreviews(visible bool) {
	c.line.SetVisible(visible)
	c.point.SetVisible(visible)
	c.arrow.SetVisible(visible)
}

func (c *Control) cursor(cur Cursor) {
	if c.setCursor != nil {
		c.setCursor(cur)
	}
}
