package geometry

import "github.com/Faultbox/cutplane/pkg/math"

// BoxTriangles returns a triangle list for a box of the given size centered
// on the origin, with outward flat normals. Each slice holds 36 xyz triples.
func BoxTriangles(size math.Vec3) (positions, normals []float32) {
	h := size.Scale(0.5)
	faces := []struct {
		normal math.Vec3
		u, v   math.Vec3
	}{
		{math.Vec3{X: 1}, math.Vec3{Y: h.Y}, math.Vec3{Z: h.Z}},
		{math.Vec3{X: -1}, math.Vec3{Z: h.Z}, math.Vec3{Y: h.Y}},
		{math.Vec3{Y: 1}, math.Vec3{Z: h.Z}, math.Vec3{X: h.X}},
		{math.Vec3{Y: -1}, math.Vec3{X: h.X}, math.Vec3{Z: h.Z}},
		{math.Vec3{Z: 1}, math.Vec3{X: h.X}, math.Vec3{Y: h.Y}},
		{math.Vec3{Z: -1}, math.Vec3{Y: h.Y}, math.Vec3{X: h.X}},
	}

	positions = make([]float32, 0, 36*3)
	normals = make([]float32, 0, 36*3)
	for _, f := range faces {
		c := math.Vec3{X: f.normal.X * h.X, Y: f.normal.Y * h.Y, Z: f.normal.Z * h.Z}
		corners := [4]math.Vec3{
			c.Sub(f.u).Sub(f.v),
			c.Add(f.u).Sub(f.v),
			c.Add(f.u).Add(f.v),
			c.Sub(f.u).Add(f.v),
		}
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			p := corners[i].Float32()
			n := f.normal.Float32()
			positions = append(positions, p[0], p[1], p[2])
			normals = append(normals, n[0], n[1], n[2])
		}
	}
	return positions, normals
}
