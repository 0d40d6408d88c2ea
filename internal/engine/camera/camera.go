// Package camera provides the orbit camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float64 // Distance from center
	Pitch    float64 // Vertical angle, radians
	Yaw      float64 // Horizontal angle, radians

	// Projection
	FOV  float64 // Vertical field of view, radians
	Near float64
	Far  float64

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64
	PanSensitivity  float64
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10,
		Pitch:           0.5,
		FOV:             gomath.Pi / 4,
		Near:            0.1,
		Far:             1000,
		MinDistance:     0.01,
		MaxDistance:     1e5,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.Center.Add(math.Vec3{
		X: c.Distance * gomath.Cos(c.Pitch) * gomath.Sin(c.Yaw),
		Y: c.Distance * gomath.Sin(c.Pitch),
		Z: c.Distance * gomath.Cos(c.Pitch) * gomath.Cos(c.Yaw),
	})
}

// ViewMatrix returns the world-to-camera matrix.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.UnitY)
}

// WorldMatrix returns the camera-to-world matrix.
func (c *OrbitCamera) WorldMatrix() math.Mat4 {
	return c.ViewMatrix().Inverse()
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float64) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Transform returns a snapshot of the camera matrices.
func (c *OrbitCamera) Transform(aspect float64) host.CameraTransform {
	return host.NewCameraTransform(c.ProjectionMatrix(aspect), c.WorldMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandlePan moves the center in the view plane. Speed scales with distance.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float64) {
	world := c.WorldMatrix()
	right := world.Column(0).Normalize()
	up := world.Column(1).Normalize()
	speed := c.Distance * c.PanSensitivity
	c.Center = c.Center.Add(right.Scale(-deltaX * speed)).Add(up.Scale(deltaY * speed))
}

// FitToBounds centers the camera on a box and backs off until the whole box
// fits the vertical field of view.
func (c *OrbitCamera) FitToBounds(b geometry.Bounds) {
	c.Center = b.Center

	radius := b.Diagonal() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = clamp(radius/gomath.Sin(c.FOV/2), c.MinDistance, c.MaxDistance)
	if far := c.Distance + radius*2; far > c.Far {
		c.Far = far
	}
	c.Pitch = 0.5
	c.Yaw = 0.6
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Max(lo, gomath.Min(hi, v))
}
