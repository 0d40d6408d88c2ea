// Package viewer runs the interactive window: an orbiting view of an STL
// mesh on which primary-button drags place a cutting plane.
package viewer

import (
	"fmt"
	gomath "math"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cutplane/internal/config"
	"github.com/Faultbox/cutplane/internal/cutplane"
	"github.com/Faultbox/cutplane/internal/engine/camera"
	"github.com/Faultbox/cutplane/internal/engine/debug"
	"github.com/Faultbox/cutplane/internal/engine/input"
	"github.com/Faultbox/cutplane/internal/engine/lighting"
	"github.com/Faultbox/cutplane/internal/engine/picking"
	"github.com/Faultbox/cutplane/internal/engine/renderer"
	"github.com/Faultbox/cutplane/internal/engine/window"
	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/internal/logger"
	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
	"github.com/Faultbox/cutplane/pkg/watcher"
)

var meshMaterial = host.Material{
	Color:     host.Color{R: 0.7, G: 0.72, B: 0.75},
	Opacity:   1,
	DepthTest: true,
}

var boundsMaterial = host.Material{
	Color:     host.Color{R: 0.35, G: 0.35, B: 0.4},
	Opacity:   1,
	DepthTest: true,
}

// Viewer is the interactive application.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	orbit    *camera.OrbitCamera
	surface  *host.MemorySurface

	control *cutplane.Control
	binder  *cutplane.Binder

	watcher *watcher.FileWatcher
	reload  chan string

	screenshots      *debug.ScreenshotCapture
	screenshotQueued bool

	path   string
	info   cutplane.MeshInfo
	mesh   host.Node
	bounds host.Node

	running   bool
	orbiting  bool
	panning   bool
	showBound bool
}

// New opens the window and loads the mesh at path.
func New(cfg *config.Config, path string) (*Viewer, error) {
	v := &Viewer{
		cfg:         cfg,
		log:         logger.Named("viewer"),
		reload:      make(chan string, 1),
		screenshots: debug.NewScreenshotCapture("screenshots", "cutplane"),
		showBound:   true,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.orbit = camera.NewOrbitCamera()
	v.orbit.FOV = cfg.Camera.FOV * gomath.Pi / 180
	v.orbit.Near = cfg.Camera.Near
	v.orbit.Far = cfg.Camera.Far

	// Renderer after the window, the GL context must exist.
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:  dw,
		Height: dh,
		Light: lighting.KeyLight{
			Azimuth:   cfg.Light.Azimuth,
			Elevation: cfg.Light.Elevation,
			Ambient:   cfg.Light.Ambient,
		},
	}, v.orbit)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	ww, wh := v.window.Size()
	v.renderer.Resize(ww, wh, dw, dh)

	v.input = input.New()
	v.surface = host.NewMemorySurface(float64(ww), float64(wh))

	style, err := cutplane.StyleFromHex(cfg.Plane.Color, cfg.Plane.LineColor,
		cfg.Plane.PointColor, cfg.Plane.ArrowColor, cfg.Plane.Opacity)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.control, err = cutplane.New(cutplane.Config{
		Camera:    v.renderer,
		Scene:     v.renderer,
		Surface:   v.surface,
		Style:     &style,
		PlaneName: cfg.Plane.Name,
		Margin:    cfg.Plane.Margin,
		Thickness: cfg.Plane.Thickness,
		SetCursor: func(c cutplane.Cursor) {
			v.window.SetCrosshair(c == cutplane.CursorCrosshair)
		},
		Logger: logger.Named("cutplane"),
	})
	if err != nil {
		v.Close()
		return nil, err
	}
	v.control.Subscribe(v.onPlane)
	v.binder = cutplane.NewBinder(v.control)

	if err := v.load(path); err != nil {
		v.Close()
		return nil, err
	}
	v.orbit.FitToBounds(v.info.Bounds)
	if cfg.Camera.Distance > 0 {
		v.orbit.Distance = cfg.Camera.Distance
	}

	if cfg.Mesh.Watch {
		if err := v.watch(path); err != nil {
			v.Close()
			return nil, err
		}
	}

	v.log.Info("viewer initialized", zap.String("mesh", path))
	return v, nil
}

// watch reloads the mesh when the file changes. Callbacks arrive on timer
// goroutines and are handed to the main loop, which owns the GL context.
func (v *Viewer) watch(path string) error {
	fw, err := watcher.NewFileWatcher(v.cfg.Mesh.Debounce, logger.Named("watcher"))
	if err != nil {
		return err
	}
	err = fw.Watch([]string{path}, func(changed string) {
		select {
		case v.reload <- changed:
		default:
		}
	})
	if err != nil {
		fw.Close()
		return err
	}
	fw.Start()
	v.watcher = fw
	return nil
}

// load reads an STL file, binds it to the control and uploads it.
func (v *Viewer) load(path string) error {
	mesh, info, err := v.binder.BindFile(path, math.Identity())
	if err != nil {
		return fmt.Errorf("loading mesh: %w", err)
	}

	if v.mesh != nil {
		v.mesh.Dispose()
	}
	if v.bounds != nil {
		v.bounds.Dispose()
	}
	v.mesh = v.renderer.AddMesh("mesh", mesh.Positions, mesh.Normals, meshMaterial, math.Identity())
	v.bounds = v.renderer.Add(host.NodeSpec{
		Name:      "mesh.bounds",
		Kind:      host.KindSegments,
		Positions: debug.BoundsWireframe(info.Bounds, debug.DefaultBoundsPadding*info.Bounds.Diagonal()),
		Material:  boundsMaterial,
		Transform: math.Identity(),
		Visible:   v.showBound,
	})

	v.path, v.info = path, info
	v.window.SetTitle(fmt.Sprintf("%s - %s (%d triangles)", v.cfg.Window.Title, filepath.Base(path), info.Triangles))
	v.log.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("triangles", info.Triangles),
		zap.Float64("diagonal", info.Bounds.Diagonal()),
	)
	return nil
}

func (v *Viewer) onPlane(p geometry.Plane) {
	v.log.Info("section plane",
		zap.Float64s("normal", []float64{p.Normal.X, p.Normal.Y, p.Normal.Z}),
		zap.Float64s("point", []float64{p.Point.X, p.Point.Y, p.Point.Z}),
	)
}

// Run starts the main loop. It returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}

		select {
		case path := <-v.reload:
			if err := v.load(path); err != nil {
				v.log.Warn("reload failed", zap.Error(err))
			}
		default:
		}

		if v.screenshotQueued {
			v.screenshotQueued = false
			v.screenshot()
		}
		v.renderer.Render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		dw, dh := v.window.DrawableSize()
		v.renderer.Resize(event.Width, event.Height, dw, dh)
		v.surface.Width, v.surface.Height = float64(event.Width), float64(event.Height)

	case input.EventKeyDown:
		v.handleKey(event)

	case input.EventMouseWheel:
		v.orbit.HandleZoom(float64(event.Wheel))

	case input.EventMouseDown:
		switch {
		case event.Button == sdl.BUTTON_RIGHT && event.Mod&sdl.Keymod(sdl.KMOD_SHIFT) != 0,
			event.Button == sdl.BUTTON_MIDDLE:
			v.panning = true
		case event.Button == sdl.BUTTON_RIGHT:
			v.orbiting = true
		}

	case input.EventMouseUp:
		switch event.Button {
		case sdl.BUTTON_RIGHT:
			v.orbiting, v.panning = false, false
		case sdl.BUTTON_MIDDLE:
			v.panning = false
		}

	case input.EventMouseMove:
		switch {
		case v.panning:
			v.orbit.HandlePan(float64(event.RelX), float64(event.RelY))
		case v.orbiting:
			v.orbit.HandleDrag(float64(event.RelX), float64(event.RelY))
		}
	}

	if ev, ok := event.Pointer(); ok {
		v.surface.Dispatch(ev)
	}
}

func (v *Viewer) handleKey(event input.Event) {
	switch event.Key {
	case sdl.K_ESCAPE:
		v.running = false
	case sdl.K_f:
		v.orbit.FitToBounds(v.info.Bounds)
	case sdl.K_b:
		v.showBound = !v.showBound
		if v.bounds != nil {
			v.bounds.SetVisible(v.showBound)
		}
	case sdl.K_c:
		v.focusUnderCursor()
	case sdl.K_r:
		if err := v.load(v.path); err != nil {
			v.log.Warn("reload failed", zap.Error(err))
		}
	case sdl.K_p, sdl.K_F12:
		v.screenshotQueued = true
	}
}

// focusUnderCursor moves the orbit center to where the pointer ray enters
// the mesh bounds.
func (v *Viewer) focusUnderCursor() {
	x, y, _ := sdl.GetMouseState()
	t := v.renderer.Transform()
	inv, ok := t.Projection.Mul(t.View()).Invert()
	if !ok {
		return
	}
	ray, ok := picking.ScreenToRay(float64(x), float64(y), v.surface.Width, v.surface.Height, inv)
	if !ok {
		return
	}
	if dist, hit := ray.IntersectBounds(v.info.Bounds); hit {
		v.orbit.Center = ray.At(dist)
		v.log.Debug("focus", zap.Float64("distance", dist))
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h, err := v.renderer.Capture()
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases all resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.control != nil {
		v.control.Dispose()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
