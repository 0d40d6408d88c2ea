package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Register binds them to a flag set.
type Flags struct {
	Config       string
	Debug        bool
	Width        int
	Height       int
	Watch        bool
	PlaneColor   string
	PlaneOpacity float64
	LogFile      string

	fs *pflag.FlagSet
}

// Register adds the flags to fs, typically a cobra command's persistent set.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.Config, "config", "c", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.BoolVarP(&f.Watch, "watch", "w", false, "Reload the mesh when the file changes")
	fs.StringVar(&f.PlaneColor, "plane-color", "", "Plane color as hex (#rrggbb)")
	fs.Float64Var(&f.PlaneOpacity, "plane-opacity", 0, "Plane opacity in [0,1]")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file")
}

// changed reports whether a flag was set explicitly on the command line.
func (f *Flags) changed(name string) bool {
	if f.fs == nil {
		return false
	}
	return f.fs.Changed(name)
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Watch {
		cfg.Mesh.Watch = true
	}
	if f.PlaneColor != "" {
		cfg.Plane.Color = f.PlaneColor
	}
	if f.changed("plane-opacity") {
		cfg.Plane.Opacity = f.PlaneOpacity
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
