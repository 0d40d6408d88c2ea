// Package debug provides debug visualization utilities for the viewer.
package debug

import (
	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
)

// BoundsWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoundsWireframeVertexCount = 24

// DefaultBoundsPadding expands the mesh box so it does not z-fight with the mesh.
const DefaultBoundsPadding = 0.01

// BoundsWireframe returns line-list vertices for the edges of b expanded by
// padding on every side.
func BoundsWireframe(b geometry.Bounds, padding float64) []math.Vec3 {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo, hi := b.Min.Sub(pad), b.Max.Add(pad)

	corner := func(x, y, z bool) math.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}

	out := make([]math.Vec3, 0, BoundsWireframeVertexCount)
	for _, y := range []bool{false, true} {
		// Bottom and top faces
		out = append(out,
			corner(false, y, false), corner(true, y, false),
			corner(true, y, false), corner(true, y, true),
			corner(true, y, true), corner(false, y, true),
			corner(false, y, true), corner(false, y, false),
		)
	}
	// Vertical edges
	for _, xz := range [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		out = append(out, corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]))
	}
	return out
}

// AxisLines returns three line segments of the given length from origin along
// +X, +Y and +Z.
func AxisLines(origin math.Vec3, length float64) []math.Vec3 {
	return []math.Vec3{
		origin, origin.Add(math.UnitX.Scale(length)),
		origin, origin.Add(math.UnitY.Scale(length)),
		origin, origin.Add(math.UnitZ.Scale(length)),
	}
}
