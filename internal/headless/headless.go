// Package headless runs the cutting-plane control without a window, driving
// it with synthetic pointer events over in-memory collaborators.
package headless

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/cutplane/internal/config"
	"github.com/Faultbox/cutplane/internal/cutplane"
	"github.com/Faultbox/cutplane/internal/engine/camera"
	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
	"github.com/Faultbox/cutplane/pkg/stl"
)

// ErrNoPlane is returned when a drag does not produce a plane, for example a
// zero-length drag.
var ErrNoPlane = errors.New("drag produced no plane")

// Drag is a pointer drag in window pixels.
type Drag struct {
	From math.Vec2
	To   math.Vec2
}

// DragFromNDC converts NDC endpoints to pixels of a width x height viewport.
func DragFromNDC(from, to math.Vec2, width, height float64) Drag {
	px := func(v math.Vec2) math.Vec2 {
		return math.Vec2{
			X: (v.X + 1) / 2 * width,
			Y: (1 - v.Y) / 2 * height,
		}
	}
	return Drag{From: px(from), To: px(to)}
}

// Artifact describes the plane node left in the scene.
type Artifact struct {
	Name     string    `yaml:"name"`
	Size     math.Vec3 `yaml:"size"`
	Position math.Vec3 `yaml:"position"`
	Rotation math.Quat `yaml:"rotation"`
}

// Result is the outcome of a headless solve.
type Result struct {
	Mesh     cutplane.MeshInfo `yaml:"mesh"`
	Camera   CameraInfo        `yaml:"camera"`
	Plane    geometry.Plane    `yaml:"plane"`
	Artifact Artifact          `yaml:"artifact"`
}

// CameraInfo records the view the drag was made in.
type CameraInfo struct {
	Position math.Vec3 `yaml:"position"`
	Target   math.Vec3 `yaml:"target"`
	Width    float64   `yaml:"width"`
	Height   float64   `yaml:"height"`
}

// Info reads an STL file and measures it.
func Info(path string) (cutplane.MeshInfo, error) {
	mesh, err := stl.Parse(path)
	if err != nil {
		return cutplane.MeshInfo{}, err
	}
	info, err := cutplane.Measure(mesh.Positions, math.Identity())
	if err != nil {
		return cutplane.MeshInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	info.Name = mesh.Name
	return info, nil
}

// Session is a control bound to in-memory collaborators.
type Session struct {
	Scene   *host.MemoryScene
	Camera  *host.MemoryCamera
	Surface *host.MemorySurface
	Orbit   *camera.OrbitCamera
	Control *cutplane.Control

	cfg    *config.Config
	binder *cutplane.Binder
	planes []geometry.Plane
}

// NewSession builds a session sized and styled by cfg.
func NewSession(cfg *config.Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	style, err := cutplane.StyleFromHex(cfg.Plane.Color, cfg.Plane.LineColor,
		cfg.Plane.PointColor, cfg.Plane.ArrowColor, cfg.Plane.Opacity)
	if err != nil {
		return nil, err
	}

	orbit := camera.NewOrbitCamera()
	orbit.FOV = cfg.Camera.FOV * gomath.Pi / 180
	orbit.Near = cfg.Camera.Near
	orbit.Far = cfg.Camera.Far

	s := &Session{
		Scene:   host.NewMemoryScene(),
		Surface: host.NewMemorySurface(float64(cfg.Window.Width), float64(cfg.Window.Height)),
		Orbit:   orbit,
		cfg:     cfg,
	}
	s.Camera = host.NewMemoryCamera(math.Identity(), math.Identity())
	s.syncCamera()

	s.Control, err = cutplane.New(cutplane.Config{
		Camera:    s.Camera,
		Scene:     s.Scene,
		Surface:   s.Surface,
		Style:     &style,
		PlaneName: cfg.Plane.Name,
		Margin:    cfg.Plane.Margin,
		Thickness: cfg.Plane.Thickness,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}
	s.Control.Subscribe(func(p geometry.Plane) {
		s.planes = append(s.planes, p)
	})
	s.binder = cutplane.NewBinder(s.Control)
	return s, nil
}

func (s *Session) syncCamera() {
	aspect := s.Surface.Width / s.Surface.Height
	s.Camera.SetTransform(s.Orbit.Transform(aspect))
}

// Load binds a mesh file and frames the camera on it unless a fixed camera
// distance is configured.
func (s *Session) Load(path string) (cutplane.MeshInfo, error) {
	_, info, err := s.binder.BindFile(path, math.Identity())
	if err != nil {
		return cutplane.MeshInfo{}, err
	}
	s.Orbit.FitToBounds(info.Bounds)
	if d := s.cfg.Camera.Distance; d > 0 {
		s.Orbit.Distance = d
	}
	s.syncCamera()
	return info, nil
}

// Drag performs a primary-button drag and returns the finalized plane.
func (s *Session) Drag(d Drag) (geometry.Plane, error) {
	before := len(s.planes)
	s.Surface.Drag(d.From.X, d.From.Y, d.To.X, d.To.Y)
	if len(s.planes) == before {
		return geometry.Plane{}, ErrNoPlane
	}
	return s.planes[len(s.planes)-1], nil
}

// Artifact reports the live plane node, if any.
func (s *Session) Artifact() (Artifact, bool) {
	nodes := s.Scene.Find(s.Control.PlaneName())
	if len(nodes) == 0 {
		return Artifact{}, false
	}
	n := nodes[len(nodes)-1]
	return Artifact{
		Name:     n.Spec.Name,
		Size:     n.Spec.Size,
		Position: n.Spec.Transform.Position(),
		Rotation: math.QuatFromMat4(n.Spec.Transform),
	}, true
}

// Close disposes the control.
func (s *Session) Close() {
	s.Control.Dispose()
}

// Solve loads path, performs one drag and reports the result.
func Solve(cfg *config.Config, path string, d Drag, log *zap.Logger) (*Result, error) {
	s, err := NewSession(cfg, log)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	info, err := s.Load(path)
	if err != nil {
		return nil, err
	}
	plane, err := s.Drag(d)
	if err != nil {
		return nil, err
	}
	artifact, _ := s.Artifact()

	return &Result{
		Mesh: info,
		Camera: CameraInfo{
			Position: s.Orbit.Position(),
			Target:   s.Orbit.Center,
			Width:    s.Surface.Width,
			Height:   s.Surface.Height,
		},
		Plane:    plane,
		Artifact: artifact,
	}, nil
}
