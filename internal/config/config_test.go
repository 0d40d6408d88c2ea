package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %g", cfg.Camera.FOV)
	}

	if cfg.Plane.Name != "sectionPlane" {
		t.Errorf("expected plane name sectionPlane, got %s", cfg.Plane.Name)
	}
	if cfg.Plane.Opacity != 0.2 {
		t.Errorf("expected plane opacity 0.2, got %g", cfg.Plane.Opacity)
	}
	if cfg.Plane.Margin != 2 {
		t.Errorf("expected plane margin 2, got %g", cfg.Plane.Margin)
	}
	if cfg.Plane.Thickness != 0.07 {
		t.Errorf("expected plane thickness 0.07, got %g", cfg.Plane.Thickness)
	}

	if cfg.Mesh.Debounce != 200*time.Millisecond {
		t.Errorf("expected debounce 200ms, got %v", cfg.Mesh.Debounce)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  vsync: false

camera:
  fov: 60
  distance: 12.5

plane:
  color: "#ff0000"
  opacity: 0.5
  margin: 0.5

mesh:
  path: "part.stl"
  watch: true
  debounce: 50ms

logging:
  level: "debug"
  log_file: "cutplane.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Camera.FOV != 60 || cfg.Camera.Distance != 12.5 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	// Unset keys keep their defaults.
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected near 0.1 kept from defaults, got %g", cfg.Camera.Near)
	}
	if cfg.Plane.Color != "#ff0000" || cfg.Plane.Opacity != 0.5 || cfg.Plane.Margin != 0.5 {
		t.Errorf("plane = %+v", cfg.Plane)
	}
	if cfg.Plane.Thickness != 0.07 {
		t.Errorf("expected thickness kept from defaults, got %g", cfg.Plane.Thickness)
	}
	if cfg.Mesh.Path != "part.stl" || !cfg.Mesh.Watch || cfg.Mesh.Debounce != 50*time.Millisecond {
		t.Errorf("mesh = %+v", cfg.Mesh)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "cutplane.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"negative distance", func(c *Config) { c.Camera.Distance = -1 }},
		{"opacity above one", func(c *Config) { c.Plane.Opacity = 1.5 }},
		{"negative margin", func(c *Config) { c.Plane.Margin = -2 }},
		{"zero thickness", func(c *Config) { c.Plane.Thickness = 0 }},
		{"light below nadir", func(c *Config) { c.Light.Elevation = -91 }},
		{"ambient above one", func(c *Config) { c.Light.Ambient = 1.1 }},
		{"negative debounce", func(c *Config) { c.Mesh.Debounce = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "width and height flags",
			args: []string{"--width", "2560", "--height", "1440"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
		},
		{
			name: "watch shorthand",
			args: []string{"-w"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Mesh.Watch {
					t.Error("expected watch to be enabled")
				}
			},
		},
		{
			name: "explicit zero opacity",
			args: []string{"--plane-opacity", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Plane.Opacity != 0 {
					t.Errorf("expected opacity 0, got %g", cfg.Plane.Opacity)
				}
			},
		},
		{
			name: "unset opacity keeps default",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Plane.Opacity != 0.2 {
					t.Errorf("expected opacity 0.2, got %g", cfg.Plane.Opacity)
				}
			},
		},
		{
			name: "plane color",
			args: []string{"--plane-color", "#00ff00"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Plane.Color != "#00ff00" {
					t.Errorf("expected plane color #00ff00, got %s", cfg.Plane.Color)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags Flags
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags.Register(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	var flags Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Register(fs)
	if err := fs.Parse([]string{"--config", configPath, "--width", "1920"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(&flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("plane:\n  opacity: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(&Flags{Config: configPath})
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Plane.Color = "#123456"
	cfg.Mesh.Debounce = time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestSaveUsesConfigDir(t *testing.T) {
	if os.Getenv("HOME") == "" {
		t.Skip("no home directory")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(ConfigDir(), "config.yaml") {
		t.Errorf("Save path = %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved config not found: %v", err)
	}
}

func TestWriteYAMLLoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 1600
	cfg.Light.Ambient = 0.5

	var buf bytes.Buffer
	if err := cfg.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if !strings.Contains(buf.String(), "width: 1600") {
		t.Errorf("output missing window width:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	var flags Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Register(fs)
	if err := fs.Parse([]string{"--config", path}); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(&flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("written config loads as %+v, want %+v", loaded, cfg)
	}
}
