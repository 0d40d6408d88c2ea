// Package config handles viewer and engine configuration loading.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all cutplane settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Plane   PlaneConfig   `yaml:"plane"`
	Light   LightConfig   `yaml:"light"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings for the viewer.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig holds projection and orbit settings.
type CameraConfig struct {
	FOV      float64 `yaml:"fov"` // vertical, degrees
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Distance float64 `yaml:"distance"` // 0 fits the camera to the mesh
}

// PlaneConfig holds cutting plane styling and sizing.
type PlaneConfig struct {
	Name       string  `yaml:"name"`
	Color      string  `yaml:"color"`
	LineColor  string  `yaml:"line_color"`
	PointColor string  `yaml:"point_color"`
	ArrowColor string  `yaml:"arrow_color"`
	Opacity    float64 `yaml:"opacity"`
	Margin     float64 `yaml:"margin"`
	Thickness  float64 `yaml:"thickness"`
}

// LightConfig holds the viewer's directional light, angles in degrees.
type LightConfig struct {
	Azimuth   float64 `yaml:"azimuth"`
	Elevation float64 `yaml:"elevation"`
	Ambient   float64 `yaml:"ambient"`
}

// MeshConfig holds mesh source settings.
type MeshConfig struct {
	Path     string        `yaml:"path"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "cutplane",
			VSync:  true,
		},
		Camera: CameraConfig{
			FOV:  45,
			Near: 0.1,
			Far:  1000,
		},
		Plane: PlaneConfig{
			Name:       "sectionPlane",
			Color:      "#000000",
			LineColor:  "#000000",
			PointColor: "#000000",
			ArrowColor: "#000000",
			Opacity:    0.2,
			Margin:     2,
			Thickness:  0.07,
		},
		Light: LightConfig{
			Azimuth:   35,
			Elevation: 55,
			Ambient:   0.35,
		},
		Mesh: MeshConfig{
			Debounce: 200 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks ranges that the engine relies on.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %g", ErrInvalid, c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip range [%g, %g]", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Distance < 0:
		return fmt.Errorf("%w: camera distance %g", ErrInvalid, c.Camera.Distance)
	case c.Plane.Opacity < 0 || c.Plane.Opacity > 1:
		return fmt.Errorf("%w: plane opacity %g", ErrInvalid, c.Plane.Opacity)
	case c.Plane.Margin < 0:
		return fmt.Errorf("%w: plane margin %g", ErrInvalid, c.Plane.Margin)
	case c.Plane.Thickness <= 0:
		return fmt.Errorf("%w: plane thickness %g", ErrInvalid, c.Plane.Thickness)
	case c.Light.Elevation < -90 || c.Light.Elevation > 90:
		return fmt.Errorf("%w: light elevation %g", ErrInvalid, c.Light.Elevation)
	case c.Light.Ambient < 0 || c.Light.Ambient > 1:
		return fmt.Errorf("%w: light ambient %g", ErrInvalid, c.Light.Ambient)
	case c.Mesh.Debounce < 0:
		return fmt.Errorf("%w: mesh debounce %v", ErrInvalid, c.Mesh.Debounce)
	}
	return nil
}
