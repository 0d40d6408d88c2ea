// Package geometry measures meshes and works with planes. It holds no state.
package geometry

import (
	"github.com/Faultbox/cutplane/pkg/math"
)

// Bounds is the axis-aligned box of a mesh after placement.
type Bounds struct {
	Min    math.Vec3
	Max    math.Vec3
	Center math.Vec3 // box midpoint, not the vertex centroid
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Diagonal returns the distance between the min and max corners.
func (b Bounds) Diagonal() float64 {
	return b.Max.Distance(b.Min)
}

// Contains reports whether p lies inside the box, faces included.
func (b Bounds) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// VertexCount returns the number of whole xyz vertices in a flat buffer.
func VertexCount(positions []float32) int {
	return len(positions) / 3
}

func vertex(positions []float32, i int) math.Vec3 {
	return math.Vec3{
		X: float64(positions[i*3]),
		Y: float64(positions[i*3+1]),
		Z: float64(positions[i*3+2]),
	}
}

// ComputeBounds transforms every vertex of a flat xyz buffer and returns the
// enclosing box. It returns false when the buffer holds no whole vertex.
func ComputeBounds(positions []float32, transform math.Mat4) (Bounds, bool) {
	n := VertexCount(positions)
	if n == 0 {
		return Bounds{}, false
	}

	first := transform.TransformPoint(vertex(positions, 0))
	min, max := first, first
	for i := 1; i < n; i++ {
		p := transform.TransformPoint(vertex(positions, i))
		min = min.Min(p)
		max = max.Max(p)
	}

	return Bounds{
		Min:    min,
		Max:    max,
		Center: min.Add(max).Scale(0.5),
	}, true
}

// ComputeCentroid returns the mean of all transformed vertices, or false when
// the buffer holds no whole vertex.
func ComputeCentroid(positions []float32, transform math.Mat4) (math.Vec3, bool) {
	n := VertexCount(positions)
	if n == 0 {
		return math.Vec3{}, false
	}

	var sum math.Vec3
	for i := 0; i < n; i++ {
		sum = sum.Add(transform.TransformPoint(vertex(positions, i)))
	}
	return sum.Scale(1 / float64(n)), true
}
