package cutplane

import (
	"testing"

	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/pkg/math"
)

const viewSize = 200

type fixture struct {
	control *Control
	scene   *host.MemoryScene
	camera  *host.MemoryCamera
	surface *host.MemorySurface
	cursors []Cursor
}

// newFixture builds a control over an identity camera looking down -Z on a
// 200x200 viewport.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		scene:   host.NewMemoryScene(),
		camera:  host.NewMemoryCamera(math.Identity(), math.Identity()),
		surface: host.NewMemorySurface(viewSize, viewSize),
	}
	c, err := New(Config{
		Camera:    f.camera,
		Scene:     f.scene,
		Surface:   f.surface,
		SetCursor: func(cur Cursor) { f.cursors = append(f.cursors, cur) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.control = c
	return f
}

// pixel converts NDC to viewport pixels.
func pixel(x, y float64) (float64, float64) {
	return (x + 1) / 2 * viewSize, (1 - y) / 2 * viewSize
}

func (f *fixture) down(x, y float64) {
	px, py := pixel(x, y)
	f.surface.Dispatch(host.PointerEvent{Type: host.PointerDown, ClientX: px, ClientY: py, Button: host.ButtonPrimary, Buttons: host.ButtonsPrimary})
}

func (f *fixture) move(x, y float64) {
	px, py := pixel(x, y)
	f.surface.Dispatch(host.PointerEvent{Type: host.PointerMove, ClientX: px, ClientY: py, Buttons: host.ButtonsPrimary})
}

func (f *fixture) up() {
	f.surface.Dispatch(host.PointerEvent{Type: host.PointerUp, Button: host.ButtonPrimary})
}

// drag performs a full primary drag between two NDC points.
func (f *fixture) drag(x0, y0, x1, y1 float64) {
	f.down(x0, y0)
	f.move(x1, y1)
	f.up()
}

func (f *fixture) artifacts() int {
	return len(f.scene.Find(DefaultPlaneName))
}

// cubeCorners returns the 8 corners of an axis-aligned cube as a flat buffer.
func cubeCorners(center math.Vec3, size float64) []float32 {
	h := size / 2
	var out []float32
	for _, dx := range []float64{-h, h} {
		for _, dy := range []float64{-h, h} {
			for _, dz := range []float64{-h, h} {
				out = append(out,
					float32(center.X+dx), float32(center.Y+dy), float32(center.Z+dz))
			}
		}
	}
	return out
}

func (f *fixture) loadCube(t *testing.T, center math.Vec3, size float64) MeshInfo {
	t.Helper()
	info, err := NewBinder(f.control).Bind(cubeCorners(center, size), math.Identity())
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	return info
}

func approx(a, b, eps float64) bool {
	d := a - b
	return d <= eps && d >= -eps
}
