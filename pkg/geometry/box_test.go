package geometry

import (
	"testing"

	"github.com/Faultbox/cutplane/pkg/math"
)

func TestBoxTriangles(t *testing.T) {
	size := math.Vec3{X: 4, Y: 4, Z: 0.07}
	pos, nrm := BoxTriangles(size)

	if len(pos) != 36*3 || len(nrm) != 36*3 {
		t.Fatalf("lengths = %d/%d, want %d", len(pos), len(nrm), 36*3)
	}

	b, ok := ComputeBounds(pos, math.Identity())
	if !ok {
		t.Fatal("no bounds")
	}
	if !b.Size().ApproxEqual(size, 1e-6) {
		t.Errorf("box size = %v, want %v", b.Size(), size)
	}
	if !b.Center.ApproxEqual(math.Vec3{}, 1e-6) {
		t.Errorf("box center = %v, want origin", b.Center)
	}

	// Triangles wind counter-clockwise seen from outside.
	for tri := 0; tri < 12; tri++ {
		a, c, d := vertex(pos, tri*3), vertex(pos, tri*3+1), vertex(pos, tri*3+2)
		n := vertex(nrm, tri*3)
		if face := c.Sub(a).Cross(d.Sub(a)); face.Dot(n) <= 0 {
			t.Errorf("triangle %d winds inward: face %v, normal %v", tri, face, n)
		}
	}
}
