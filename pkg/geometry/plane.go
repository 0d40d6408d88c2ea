package geometry

import (
	gomath "math"

	"github.com/Faultbox/cutplane/pkg/math"
)

// UnitTolerance is how far a normal's length may stray from 1.
const UnitTolerance = 1e-6

// Plane is an infinite plane given by a unit normal and a point on it.
type Plane struct {
	Normal math.Vec3 `yaml:"normal"`
	Point  math.Vec3 `yaml:"point"`
}

// Valid reports whether the normal is unit length.
func (p Plane) Valid() bool {
	return gomath.Abs(p.Normal.Length()-1) <= UnitTolerance
}

// SignedDistance returns the distance from q to the plane along the normal.
func (p Plane) SignedDistance(q math.Vec3) float64 {
	return p.Normal.Dot(q.Sub(p.Point))
}

// Project returns the point on the plane closest to q.
func (p Plane) Project(q math.Vec3) math.Vec3 {
	return ProjectPointOntoPlane(p.Normal, p.Point, q)
}

// ProjectPointOntoPlane returns the point on the plane through anchor with
// the given normal that is closest to point. normal must be non-zero; a zero
// normal yields NaN components.
func ProjectPointOntoPlane(normal, anchor, point math.Vec3) math.Vec3 {
	t := -normal.Dot(point.Sub(anchor)) / normal.Dot(normal)
	return point.Add(normal.Scale(t))
}
