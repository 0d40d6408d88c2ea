package cutplane

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/cutplane/pkg/geometry"
	"github.com/Faultbox/cutplane/pkg/math"
)

type recordingSink struct {
	calls  int
	bounds geometry.Bounds
	center math.Vec3
}

func (s *recordingSink) SetMesh(b geometry.Bounds, c math.Vec3) {
	s.calls++
	s.bounds = b
	s.center = c
}

func TestBindUnitCube(t *testing.T) {
	sink := &recordingSink{}
	info, err := NewBinder(sink).Bind(cubeCorners(math.Vec3{}, 1), math.Identity())
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if sink.calls != 1 {
		t.Fatalf("SetMesh calls = %d, want 1", sink.calls)
	}
	if !sink.center.ApproxEqual(math.Vec3{}, 1e-9) {
		t.Errorf("centroid = %v, want origin", sink.center)
	}
	if size := sink.bounds.Size(); !size.ApproxEqual(math.Vec3{X: 1, Y: 1, Z: 1}, 1e-9) {
		t.Errorf("size = %v, want (1, 1, 1)", size)
	}
	if info.Vertices != 8 {
		t.Errorf("vertices = %d, want 8", info.Vertices)
	}
}

func TestBindAppliesTransform(t *testing.T) {
	sink := &recordingSink{}
	_, err := NewBinder(sink).Bind(cubeCorners(math.Vec3{}, 1), math.Translate(0, 0, 10).Mul(math.Scale(2, 2, 2)))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if !sink.center.ApproxEqual(math.Vec3{Z: 10}, 1e-9) {
		t.Errorf("centroid = %v, want (0, 0, 10)", sink.center)
	}
	if !sink.bounds.Max.ApproxEqual(math.Vec3{X: 1, Y: 1, Z: 11}, 1e-9) {
		t.Errorf("max = %v, want (1, 1, 11)", sink.bounds.Max)
	}
}

func TestBindWithoutPositions(t *testing.T) {
	sink := &recordingSink{}
	b := NewBinder(sink)
	for _, buf := range [][]float32{nil, {}, {1, 2}} {
		if _, err := b.Bind(buf, math.Identity()); !errors.Is(err, ErrNoPositionData) {
			t.Errorf("Bind(%v) error = %v, want ErrNoPositionData", buf, err)
		}
	}
	if sink.calls != 0 {
		t.Errorf("SetMesh called %d times for empty buffers", sink.calls)
	}
}

const tetra = `solid tetra
facet normal 0 0 -1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
facet normal 0 -1 0
  outer loop
    vertex 0 0 0
    vertex 0 0 1
    vertex 1 0 0
  endloop
endfacet
endsolid tetra
`

func TestBindFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.stl")
	if err := os.WriteFile(path, []byte(tetra), 0644); err != nil {
		t.Fatal(err)
	}

	f := newFixture(t)
	mesh, info, err := NewBinder(f.control).BindFile(path, math.Identity())
	if err != nil {
		t.Fatalf("BindFile: %v", err)
	}
	if mesh.TriangleCount() != 2 || info.Triangles != 2 {
		t.Errorf("triangles = %d/%d, want 2", mesh.TriangleCount(), info.Triangles)
	}
	if info.Name != "tetra" {
		t.Errorf("name = %q, want tetra", info.Name)
	}
	bounds, _, ok := f.control.Mesh()
	if !ok || !bounds.Max.ApproxEqual(math.Vec3{X: 1, Y: 1, Z: 1}, 1e-9) {
		t.Errorf("control bounds = %v (ok=%v)", bounds, ok)
	}
}

func TestBindFileMissing(t *testing.T) {
	sink := &recordingSink{}
	if _, _, err := NewBinder(sink).BindFile(filepath.Join(t.TempDir(), "none.stl"), math.Identity()); err == nil {
		t.Error("expected error for missing file")
	}
	if sink.calls != 0 {
		t.Error("sink called for missing file")
	}
}
