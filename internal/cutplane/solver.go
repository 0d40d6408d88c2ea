package cutplane

import (
	"github.com/Faultbox/cutplane/internal/engine/picking"
	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
)

// SolveEpsilon is the smallest cross product length accepted as a normal.
const SolveEpsilon = 1e-9

// Solve computes the plane swept by a drag from start to end (both in NDC)
// under the given view. The plane contains the view direction and the drag
// line, so it appears edge-on from the camera.
//
// Only the camera's rotation is applied: moving the camera changes nothing,
// turning it changes the normal. ok is false when the drag is degenerate
// (zero length or along the view axis); callers keep their previous plane.
func Solve(start, end math.Vec2, view host.CameraTransform) (plane geometry.Plane, ok bool) {
	camStart, camEnd := unprojectDrag(start, end, view)

	rotation := view.World.ExtractRotation()
	worldStart := rotation.TransformDirection(camStart)
	worldEnd := rotation.TransformDirection(camEnd)

	tangent := worldStart.Sub(worldEnd).Normalize()
	eye := view.World.Column(2).Normalize()

	cross := tangent.Cross(eye)
	if cross.Length() < SolveEpsilon {
		return geometry.Plane{}, false
	}

	return geometry.Plane{Normal: cross.Normalize(), Point: worldStart}, true
}

// unprojectDrag maps both drag samples onto the camera-space plane at NDC
// depth 0.
func unprojectDrag(start, end math.Vec2, view host.CameraTransform) (camStart, camEnd math.Vec3) {
	return picking.Unproject(start, 0, view.ProjectionInverse),
		picking.Unproject(end, 0, view.ProjectionInverse)
}
