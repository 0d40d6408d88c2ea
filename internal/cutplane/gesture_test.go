package cutplane

import (
	"testing"

	"github.com/Faultbox/cutplane/internal/host"
	"github.com/Faultbox/cutplane/pkg/math"
)

func TestGestureDownRecordsNDC(t *testing.T) {
	var g Gesture
	if !g.Down(host.PointerEvent{ClientX: 50, ClientY: 150, Button: host.ButtonPrimary}, 200, 200) {
		t.Fatal("primary press rejected")
	}
	if g.State() != GestureDragging {
		t.Fatalf("state = %v, want dragging", g.State())
	}
	want := math.Vec2{X: -0.5, Y: -0.5}
	if g.Start() != want || g.Current() != want {
		t.Errorf("start/current = %v/%v, want %v", g.Start(), g.Current(), want)
	}
}

func TestGestureIgnoresSecondaryPress(t *testing.T) {
	var g Gesture
	if g.Down(host.PointerEvent{Button: host.ButtonSecondary, Buttons: host.ButtonsSecondary}, 200, 200) {
		t.Error("secondary press started a drag")
	}
	if g.State() != GestureIdle {
		t.Errorf("state = %v, want idle", g.State())
	}
}

func TestGestureMove(t *testing.T) {
	tests := []struct {
		name     string
		dragging bool
		buttons  uint32
		want     bool
	}{
		{"primary held", true, host.ButtonsPrimary, true},
		{"primary and secondary held", true, host.ButtonsPrimary | host.ButtonsSecondary, true},
		{"secondary only", true, host.ButtonsSecondary, false},
		{"no buttons", true, 0, false},
		{"not dragging", false, host.ButtonsPrimary, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Gesture
			if tt.dragging {
				g.Down(host.PointerEvent{ClientX: 100, ClientY: 100}, 200, 200)
			}
			got := g.Move(host.PointerEvent{ClientX: 200, ClientY: 0, Buttons: tt.buttons}, 200, 200)
			if got != tt.want {
				t.Fatalf("Move() = %v, want %v", got, tt.want)
			}
			if got && g.Current() != (math.Vec2{X: 1, Y: 1}) {
				t.Errorf("current = %v, want (1, 1)", g.Current())
			}
			if !got && g.Current() != (math.Vec2{}) {
				t.Errorf("rejected move changed current to %v", g.Current())
			}
		})
	}
}

func TestGestureUpAnyButton(t *testing.T) {
	var g Gesture
	g.Down(host.PointerEvent{ClientX: 10, ClientY: 10}, 200, 200)
	if !g.Up() {
		t.Error("Up() = false during drag")
	}
	if g.State() != GestureIdle {
		t.Errorf("state = %v after up", g.State())
	}
	if g.Up() {
		t.Error("Up() = true while idle")
	}
}

func TestGestureCancel(t *testing.T) {
	var g Gesture
	g.Down(host.PointerEvent{}, 200, 200)
	g.Cancel()
	if g.State() != GestureIdle {
		t.Errorf("state = %v after cancel", g.State())
	}
	if g.Move(host.PointerEvent{Buttons: host.ButtonsPrimary}, 200, 200) {
		t.Error("move accepted after cancel")
	}
}

func TestGestureIgnoresEmptyViewport(t *testing.T) {
	var g Gesture
	if g.Down(host.PointerEvent{}, 0, 0) {
		t.Error("press accepted on empty viewport")
	}
	g.Down(host.PointerEvent{}, 200, 200)
	if g.Move(host.PointerEvent{Buttons: host.ButtonsPrimary}, 200, 0) {
		t.Error("move accepted on empty viewport")
	}
}

func TestGestureAccessorsTrackDrag(t *testing.T) {
	var g Gesture
	g.Down(host.PointerEvent{ClientX: 0, ClientY: 0, Button: host.ButtonPrimary}, 100, 100)
	g.Move(host.PointerEvent{ClientX: 100, ClientY: 100, Buttons: host.ButtonsPrimary}, 100, 100)

	if g.Start() != (math.Vec2{X: -1, Y: 1}) {
		t.Errorf("start = %v, want (-1, 1)", g.Start())
	}
	if g.Current() != (math.Vec2{X: 1, Y: -1}) {
		t.Errorf("current = %v, want (1, -1)", g.Current())
	}
	if g.State() != GestureDragging {
		t.Errorf("state = %v, want dragging", g.State())
	}

	g.Up()
	if g.State() != GestureIdle {
		t.Errorf("state after up = %v, want idle", g.State())
	}
	if g.Start() != (math.Vec2{X: -1, Y: 1}) {
		t.Errorf("start after up = %v, want last drag start", g.Start())
	}
}
