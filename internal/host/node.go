// Package host describes what the cutting-plane engine needs from its
// surroundings: scene nodes, the camera's transforms and pointer input.
// The in-memory implementations back the headless CLI and the tests.
package host

import "github.com/Faultbox/cutplane/pkg/math"

// Kind selects the geometry a node is built from.
type Kind int

const (
	KindLine  Kind = iota // polyline through Positions
	KindPoint             // marker at Positions[0]
	KindBox               // box of Size centered on the local origin
	KindMesh              // triangle list in Positions
	KindSegments          // line list, one segment per pair of Positions
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindPoint:
		return "point"
	case KindBox:
		return "box"
	case KindMesh:
		return "mesh"
	case KindSegments:
		return "segments"
	default:
		return "unknown"
	}
}

// Color is an sRGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Material is the render state of a node.
type Material struct {
	Color       Color
	Opacity     float64
	DepthTest   bool
	RenderOrder int
}

// Transparent reports whether the material needs blending.
func (m Material) Transparent() bool {
	return m.Opacity < 1
}

// NodeSpec describes a node to create.
type NodeSpec struct {
	Name      string
	Kind      Kind
	Positions []math.Vec3
	Size      math.Vec3
	Material  Material
	Transform math.Mat4
	Visible   bool
}

// Node is a live scene object. Geometry and material resources are held until
// Dispose; calls after Dispose are ignored.
type Node interface {
	SetVisible(visible bool)
	SetPositions(positions []math.Vec3)
	SetTransform(transform math.Mat4)
	SetMaterial(material Material)
	Dispose()
}
