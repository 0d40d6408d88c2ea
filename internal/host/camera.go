package host

import "github.com/Faultbox/cutplane/pkg/math"

// CameraTransform is a snapshot of the camera's matrices. It is read once per
// event and treated as immutable for that computation.
type CameraTransform struct {
	Projection        math.Mat4
	ProjectionInverse math.Mat4
	// World places the camera in the scene (the inverse of the view matrix).
	World math.Mat4
}

// NewCameraTransform builds a snapshot, inverting the projection.
func NewCameraTransform(projection, world math.Mat4) CameraTransform {
	return CameraTransform{
		Projection:        projection,
		ProjectionInverse: projection.Inverse(),
		World:             world,
	}
}

// View returns the world-to-camera matrix.
func (c CameraTransform) View() math.Mat4 {
	return c.World.Inverse()
}

// Forward returns the camera's viewing direction (its local -Z) in world space.
func (c CameraTransform) Forward() math.Vec3 {
	return c.World.Column(2).Normalize().Negate()
}
