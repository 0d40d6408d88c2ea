package cutplane

import (
	gomath "math"
	"math/rand"
	"testing"

	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/pkg/math"
)

func identityView() host.CameraTransform {
	return host.NewCameraTransform(math.Identity(), math.Identity())
}

func TestSolveHorizontalDragIdentityCamera(t *testing.T) {
	plane, ok := Solve(math.Vec2{X: -0.5}, math.Vec2{X: 0.5}, identityView())
	if !ok {
		t.Fatal("solve rejected a horizontal drag")
	}
	if !approx(gomath.Abs(plane.Normal.Y), 1, 1e-12) {
		t.Errorf("normal = %v, want parallel to Y", plane.Normal)
	}
	if !plane.Point.ApproxEqual(math.Vec3{X: -0.5}, 1e-12) {
		t.Errorf("point = %v, want drag start (-0.5, 0, 0)", plane.Point)
	}
}

func TestSolveVerticalDragGivesXNormal(t *testing.T) {
	plane, ok := Solve(math.Vec2{Y: 0.5}, math.Vec2{Y: -0.5}, identityView())
	if !ok {
		t.Fatal("solve rejected a vertical drag")
	}
	if !approx(gomath.Abs(plane.Normal.X), 1, 1e-12) {
		t.Errorf("normal = %v, want parallel to X", plane.Normal)
	}
}

func TestSolveRejectsZeroLengthDrag(t *testing.T) {
	p := math.Vec2{X: 0.25, Y: -0.1}
	if _, ok := Solve(p, p, identityView()); ok {
		t.Error("zero-length drag accepted")
	}
}

func TestSolveIgnoresCameraPosition(t *testing.T) {
	proj := math.Perspective(gomath.Pi/3, 1, 0.1, 100)
	rot := math.RotateY(0.7).Mul(math.RotateX(-0.3))
	a := host.NewCameraTransform(proj, rot)
	b := host.NewCameraTransform(proj, math.Translate(5, -3, 12).Mul(rot))

	start, end := math.Vec2{X: -0.3, Y: 0.2}, math.Vec2{X: 0.4, Y: -0.1}
	pa, okA := Solve(start, end, a)
	pb, okB := Solve(start, end, b)
	if !okA || !okB {
		t.Fatal("solve rejected")
	}
	if !pa.Normal.ApproxEqual(pb.Normal, 1e-12) {
		t.Errorf("normal depends on camera position: %v vs %v", pa.Normal, pb.Normal)
	}
}

func TestSolveNormalIsUnitAndContainsViewAxis(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	proj := math.Perspective(gomath.Pi/4, 16.0/9.0, 0.1, 1000)

	for i := 0; i < 500; i++ {
		world := math.Translate(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10).
			Mul(math.RotateY(rng.Float64() * 2 * gomath.Pi)).
			Mul(math.RotateX(rng.Float64()*2 - 1))
		view := host.NewCameraTransform(proj, world)
		start := math.Vec2{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
		end := math.Vec2{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}

		plane, ok := Solve(start, end, view)
		if !ok {
			continue
		}
		if !plane.Valid() {
			t.Fatalf("case %d: normal %v not unit length", i, plane.Normal)
		}
		eye := world.Column(2).Normalize()
		if d := plane.Normal.Dot(eye); !approx(d, 0, 1e-9) {
			t.Fatalf("case %d: normal not perpendicular to the view axis (dot %g)", i, d)
		}
	}
}
