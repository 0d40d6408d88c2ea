// Package picking converts viewport pixels into normalized device
// coordinates, camera-space points and world-space rays.
package picking

import (
	gomath "math"

	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
)

// ScreenToNDC converts pixel coordinates (origin top-left, y down) to
// normalized device coordinates in [-1, 1] with y up. ok is false for a
// non-positive viewport size.
func ScreenToNDC(screenX, screenY, viewportW, viewportH float64) (ndc math.Vec2, ok bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return math.Vec2{}, false
	}
	return math.Vec2{
		X: screenX/viewportW*2 - 1,
		Y: -(screenY/viewportH*2 - 1),
	}, true
}

// Unproject maps an NDC point at depth z through an inverse projection (or
// inverse view-projection) matrix, applying the perspective divide.
func Unproject(ndc math.Vec2, z float64, inverse math.Mat4) math.Vec3 {
	p := inverse.MulVec4(math.Vec4{ndc.X, ndc.Y, z, 1})
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj math.Mat4) (Ray, bool) {
	ndc, ok := ScreenToNDC(screenX, screenY, viewportW, viewportH)
	if !ok {
		return Ray{}, false
	}

	near := Unproject(ndc, -1, invViewProj)
	far := Unproject(ndc, 1, invViewProj)

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}, true
}

// IntersectBounds tests ray intersection with an axis-aligned box using the
// slab method. If the ray starts inside the box, the exit distance is
// returned.
func (r Ray) IntersectBounds(box geometry.Bounds) (t float64, hit bool) {
	tmin := -gomath.MaxFloat64
	tmax := gomath.MaxFloat64

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = gomath.Max(tmin, t1)
		tmax = gomath.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
