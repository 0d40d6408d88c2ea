package cutplane

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
	"github.com/Faultbox/cutplane/pkg/stl"
)

// ErrNoPositionData is returned for a vertex buffer without a whole vertex.
var ErrNoPositionData = errors.New("cutplane: mesh has no position data")

// MeshSink receives the measurements of a loaded mesh. *Control is one.
type MeshSink interface {
	SetMesh(bounds geometry.Bounds, center math.Vec3)
}

// MeshInfo summarizes a bound mesh.
type MeshInfo struct {
	Name      string          `yaml:"name,omitempty"`
	Triangles int             `yaml:"triangles"`
	Vertices  int             `yaml:"vertices"`
	Bounds    geometry.Bounds `yaml:"bounds"`
	Centroid  math.Vec3       `yaml:"centroid"`
}

// Binder measures meshes once per load and hands the result to a sink.
type Binder struct {
	sink MeshSink
}

// NewBinder returns a binder feeding sink.
func NewBinder(sink MeshSink) *Binder {
	return &Binder{sink: sink}
}

// Measure computes bounds and centroid of a flat xyz buffer under transform.
func Measure(positions []float32, transform math.Mat4) (MeshInfo, error) {
	bounds, ok := geometry.ComputeBounds(positions, transform)
	if !ok {
		return MeshInfo{}, ErrNoPositionData
	}
	centroid, _ := geometry.ComputeCentroid(positions, transform)
	n := geometry.VertexCount(positions)
	return MeshInfo{
		Triangles: n / 3,
		Vertices:  n,
		Bounds:    bounds,
		Centroid:  centroid,
	}, nil
}

// Bind measures positions and passes the result to the sink. On error the
// sink is not called.
func (b *Binder) Bind(positions []float32, transform math.Mat4) (MeshInfo, error) {
	info, err := Measure(positions, transform)
	if err != nil {
		return MeshInfo{}, err
	}
	b.sink.SetMesh(info.Bounds, info.Centroid)
	return info, nil
}

// BindMesh binds a decoded STL mesh.
func (b *Binder) BindMesh(mesh *stl.Mesh, transform math.Mat4) (MeshInfo, error) {
	info, err := b.Bind(mesh.Positions, transform)
	if err != nil {
		return MeshInfo{}, fmt.Errorf("binding %q: %w", mesh.Name, err)
	}
	info.Name = mesh.Name
	return info, nil
}

// BindFile reads an STL file and binds it. The decoded mesh is returned so
// the caller can upload it for drawing.
func (b *Binder) BindFile(path string, transform math.Mat4) (*stl.Mesh, MeshInfo, error) {
	mesh, err := stl.Parse(path)
	if err != nil {
		return nil, MeshInfo{}, err
	}
	info, err := b.BindMesh(mesh, transform)
	if err != nil {
		return nil, MeshInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, info, nil
}
