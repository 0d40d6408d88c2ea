package cutplane

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/cutplane/internal/host"
)

// Validation errors returned by the styling setters.
var (
	ErrInvalidColor   = errors.New("cutplane: invalid color")
	ErrInvalidOpacity = errors.New("cutplane: invalid opacity")
)

// Style holds the colors of the plane artifact and the drag previews.
type Style struct {
	PlaneColor   host.Color
	PlaneOpacity float64
	LineColor    host.Color
	PointColor   host.Color
	ArrowColor   host.Color
}

// DefaultStyle is a black plane at 20% opacity with black previews.
func DefaultStyle() Style {
	return Style{PlaneOpacity: 0.2}
}

// ParseColor parses "#rrggbb", "#rgb" or "0xrrggbb".
func ParseColor(s string) (host.Color, error) {
	hex := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(hex, "0x"):
		hex = "#" + hex[2:]
	case !strings.HasPrefix(hex, "#"):
		return host.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if n := len(hex) - 1; n != 3 && n != 6 {
		return host.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, r := range hex[1:] {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return host.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return host.Color{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return host.Color{R: c.R, G: c.G, B: c.B}, nil
}

// FormatColor returns c as "#rrggbb".
func FormatColor(c host.Color) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// StyleFromHex builds a style from hex strings, starting from DefaultStyle.
// Empty strings keep the default.
func StyleFromHex(plane, line, point, arrow string, opacity float64) (Style, error) {
	st := DefaultStyle()
	for _, f := range []struct {
		hex string
		dst *host.Color
	}{
		{plane, &st.PlaneColor},
		{line, &st.LineColor},
		{point, &st.PointColor},
		{arrow, &st.ArrowColor},
	} {
		if f.hex == "" {
			continue
		}
		c, err := ParseColor(f.hex)
		if err != nil {
			return DefaultStyle(), err
		}
		*f.dst = c
	}
	if err := checkOpacity(opacity); err != nil {
		return DefaultStyle(), err
	}
	st.PlaneOpacity = opacity
	return st, nil
}

func zapColor(key string, c host.Color) zap.Field {
	return zap.String(key, FormatColor(c))
}

func checkOpacity(v float64) error {
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: %g not in [0, 1]", ErrInvalidOpacity, v)
	}
	return nil
}

func (s Style) planeMaterial() host.Material {
	return host.Material{Color: s.PlaneColor, Opacity: s.PlaneOpacity, DepthTest: true}
}

// Previews draw on top of the scene.
func previewMaterial(c host.Color) host.Material {
	return host.Material{Color: c, Opacity: 1, RenderOrder: 1}
}

// SetPlaneColor changes the plane artifact color. Invalid input leaves the
// current color in place.
func (c *Control) SetPlaneColor(hex string) error {
	col, err := ParseColor(hex)
	if err != nil {
		return fmt.Errorf("setting plane color: %w", err)
	}
	c.style.PlaneColor = col
	c.applyStyle()
	return nil
}

// SetPlaneOpacity changes the plane artifact opacity, which must be in [0, 1].
func (c *Control) SetPlaneOpacity(opacity float64) error {
	if err := checkOpacity(opacity); err != nil {
		return fmt.Errorf("setting plane opacity: %w", err)
	}
	c.style.PlaneOpacity = opacity
	c.applyStyle()
	return nil
}

// SetLineColor changes the drag line color.
func (c *Control) SetLineColor(hex string) error {
	col, err := ParseColor(hex)
	if err != nil {
		return fmt.Errorf("setting line color: %w", err)
	}
	c.style.LineColor = col
	c.applyStyle()
	return nil
}

// SetPointColor changes the drag start marker color.
func (c *Control) SetPointColor(hex string) error {
	col, err := ParseColor(hex)
	if err != nil {
		return fmt.Errorf("setting point color: %w", err)
	}
	c.style.PointColor = col
	c.applyStyle()
	return nil
}

// SetArrowColor changes the normal indicator color.
func (c *Control) SetArrowColor(hex string) error {
	col, err := ParseColor(hex)
	if err != nil {
		return fmt.Errorf("setting arrow color: %w", err)
	}
	c.style.ArrowColor = col
	c.applyStyle()
	return nil
}

// Style returns the current style.
func (c *Control) Style() Style { return c.style }

func (c *Control) applyStyle() {
	if c.disposed {
		return
	}
	c.line.SetMaterial(previewMaterial(c.style.LineColor))
	c.point.SetMaterial(previewMaterial(c.style.PointColor))
	c.arrow.SetMaterial(previewMaterial(c.style.ArrowColor))
	if c.artifact != nil {
		c.artifact.SetMaterial(c.style.planeMaterial())
	}
	c.log.Debug("style applied",
		zapColor("plane", c.style.PlaneColor),
		zap.Float64("opacity", c.style.PlaneOpacity))
}
