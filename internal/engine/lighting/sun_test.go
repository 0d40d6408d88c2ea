package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/cutplane/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float64
		want               math.Vec3
	}{
		{"zenith", 0, 90, math.UnitY},
		{"horizon +Z", 0, 0, math.UnitZ},
		{"horizon +X", 90, 0, math.UnitX},
		{"horizon -Z", 180, 0, math.UnitZ.Negate()},
		{"nadir", 0, -90, math.UnitY.Negate()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if !got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
		})
	}
}

func TestKeyLightDirectionIsUnit(t *testing.T) {
	for az := -360.0; az <= 360; az += 45 {
		for el := -90.0; el <= 90; el += 15 {
			l := KeyLight{Azimuth: az, Elevation: el}
			if n := l.Direction().Length(); gomath.Abs(n-1) > 1e-12 {
				t.Errorf("az=%v el=%v: length %v", az, el, n)
			}
		}
	}
}

func TestDefaultKeyLight(t *testing.T) {
	l := DefaultKeyLight()
	if l.Ambient <= 0 || l.Ambient >= 1 {
		t.Errorf("ambient = %v, want in (0, 1)", l.Ambient)
	}
	if l.Direction().Y <= 0 {
		t.Error("default light should come from above")
	}
}
