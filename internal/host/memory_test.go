package host

import (
	"testing"

	"github.com/Faultbox/cutplane/pkg/math"
)

func TestMemorySceneTracksDisposal(t *testing.T) {
	s := NewMemoryScene()
	a := s.Add(NodeSpec{Name: "a", Kind: KindBox})
	s.Add(NodeSpec{Name: "b", Kind: KindLine})

	if got := len(s.Nodes()); got != 2 {
		t.Fatalf("live nodes = %d, want 2", got)
	}

	a.Dispose()
	a.Dispose()

	created, disposed := s.Counts()
	if created != 2 || disposed != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", created, disposed)
	}
	if len(s.Find("a")) != 0 {
		t.Error("disposed node still found by name")
	}
	if len(s.Find("b")) != 1 {
		t.Error("live node not found by name")
	}
}

func TestMemoryNodeIgnoresCallsAfterDispose(t *testing.T) {
	s := NewMemoryScene()
	n := s.Add(NodeSpec{Name: "n", Visible: true}).(*MemoryNode)
	n.Dispose()

	n.SetVisible(false)
	n.SetPositions([]math.Vec3{{X: 1}})
	if !n.Spec.Visible || len(n.Spec.Positions) != 0 {
		t.Error("node mutated after dispose")
	}
}

func TestMemoryNodeCopiesPositions(t *testing.T) {
	c := NewMemoryCamera(math.Identity(), math.Identity())
	pts := []math.Vec3{{X: 1}, {X: 2}}
	n := c.Attach(NodeSpec{Kind: KindLine, Positions: pts}).(*MemoryNode)

	pts[0].X = 9
	if n.Spec.Positions[0].X != 1 {
		t.Error("node aliases caller positions")
	}

	n.SetPositions([]math.Vec3{{Y: 3}})
	if len(n.Spec.Positions) != 1 || n.Spec.Positions[0].Y != 3 {
		t.Errorf("positions = %v", n.Spec.Positions)
	}
}

func TestMemorySurfaceListeners(t *testing.T) {
	s := NewMemorySurface(100, 50)
	var got []PointerType
	remove := s.Listen(func(ev PointerEvent) { got = append(got, ev.Type) })

	s.Drag(0, 0, 10, 10)
	if len(got) != 3 || got[0] != PointerDown || got[1] != PointerMove || got[2] != PointerUp {
		t.Fatalf("events = %v", got)
	}

	remove()
	remove()
	if s.Listeners() != 0 {
		t.Errorf("listeners = %d, want 0", s.Listeners())
	}

	s.Dispatch(PointerEvent{Type: PointerDown})
	if len(got) != 3 {
		t.Error("removed listener still called")
	}
}

func TestCameraTransformForward(t *testing.T) {
	ct := NewCameraTransform(math.Perspective(1, 1, 0.1, 100), math.Identity())
	if f := ct.Forward(); !f.ApproxEqual(math.Vec3{Z: -1}, 1e-12) {
		t.Errorf("forward = %v, want -Z", f)
	}
	if p := ct.ProjectionInverse.Mul(ct.Projection); !matApprox(p, math.Identity(), 1e-9) {
		t.Errorf("projection inverse is not an inverse: %v", p)
	}
}

func matApprox(a, b math.Mat4, eps float64) bool {
	for i := range a {
		d := a[i] - b[i]
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindLine, "line"},
		{KindPoint, "point"},
		{KindBox, "box"},
		{KindMesh, "mesh"},
		{KindSegments, "segments"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
