// Package lighting describes the directional light that shades meshes.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/cutplane/pkg/math"
)

// KeyLight is a directional light given by compass angles.
// Azimuth is rotation around Y in degrees, 0 looking down +Z; Elevation is
// the angle above the horizon in degrees.
type KeyLight struct {
	Azimuth   float64
	Elevation float64
	// Ambient is the fraction of the base color kept on faces turned away
	// from the light, in [0, 1].
	Ambient float64
}

// DefaultKeyLight returns the light used when none is configured.
func DefaultKeyLight() KeyLight {
	return KeyLight{Azimuth: 35, Elevation: 55, Ambient: 0.35}
}

// Direction returns the unit vector pointing towards the light.
func (l KeyLight) Direction() math.Vec3 {
	return SunDirection(l.Azimuth, l.Elevation)
}

// SunDirection converts azimuth/elevation in degrees to a unit direction.
func SunDirection(azimuth, elevation float64) math.Vec3 {
	az := azimuth * gomath.Pi / 180
	el := elevation * gomath.Pi / 180

	return math.Vec3{
		X: gomath.Cos(el) * gomath.Sin(az),
		Y: gomath.Sin(el),
		Z: gomath.Cos(el) * gomath.Cos(az),
	}
}
