package chartdraw

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// DashStyle selects the dash pattern of a stroked line.
type DashStyle uint8

const (
	DashSolid DashStyle = iota
	DashDotted
	DashDashed
	DashLargeDashed
	DashSparseDotted
)

// Pattern returns the dash pattern for a line of the given device width.
// Solid lines return nil.
func (d DashStyle) Pattern(width float64) []float64 {
	switch d {
	case DashDotted:
		return []float64{width, width}
	case DashDashed:
		return []float64{2 * width, 2 * width}
	case DashLargeDashed:
		return []float64{6 * width, 6 * width}
	case DashSparseDotted:
		return []float64{width, 4 * width}
	default:
		return nil
	}
}

// LineEnd is the decoration drawn at a line endpoint.
type LineEnd uint8

const (
	LineEndNormal LineEnd = iota
	LineEndArrow
	LineEndCircle
)

// LineStyle is the stroke configuration shared by all line-based shapes.
// Width is in CSS pixels.
type LineStyle struct {
	Color color.Color
	Width float64
	Dash  DashStyle
	Cap   LineCap
	Join  LineJoin
}

// Visible reports whether the style would draw anything.
func (ls LineStyle) Visible() bool {
	if ls.Color == nil || ls.Width <= 0 {
		return false
	}
	_, _, _, a := ls.Color.RGBA()
	return a > 0
}

// Apply configures the surface for stroking with the style and returns the
// quantized device width, which callers pass to RenderParams.Snap.
func (ls LineStyle) Apply(s Surface, p RenderParams) float64 {
	w := p.StrokeWidth(ls.Width)
	s.SetStrokeColor(ls.Color)
	s.SetLineWidth(w)
	s.SetDash(ls.Dash.Pattern(w))
	s.SetLineCap(ls.Cap)
	s.SetLineJoin(ls.Join)
	return w
}

// FillStyle is a solid fill with a separate opacity in [0, 1].
type FillStyle struct {
	Color   color.Color
	Opacity float64
	Visible bool
}

// Resolved returns the fill color with the opacity applied.
func (fs FillStyle) Resolved() color.Color {
	return WithAlpha(fs.Color, fs.Opacity)
}

// ParseColor parses a CSS hex color (#rgb or #rrggbb). An optional
// #rrggbbaa form carries alpha.
func ParseColor(s string) (color.Color, error) {
	if len(s) == 9 && s[0] == '#' {
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return nil, fmt.Errorf("chartdraw: parse color %q: %w", s, err)
		}
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return nil, fmt.Errorf("chartdraw: parse color alpha %q: %w", s, err)
		}
		return WithAlpha(c, float64(a)/255), nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("chartdraw: parse color %q: %w", s, err)
	}
	return c, nil
}

// MustParseColor is like ParseColor but panics on malformed input. It is
// meant for package-level color constants.
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha replaced by alpha in [0, 1].
// A nil color stays nil.
func WithAlpha(c color.Color, alpha float64) color.Color {
	if c == nil {
		return nil
	}
	cf, ok := colorful.MakeColor(opaque(c))
	if !ok {
		return color.Transparent
	}
	r, g, b := cf.Clamped().RGB255()
	alpha = max(0, min(1, alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// Blend mixes two colors in Lab space; t=0 returns a, t=1 returns b.
func Blend(a, b color.Color, t float64) color.Color {
	ca, okA := colorful.MakeColor(opaque(a))
	cb, okB := colorful.MakeColor(opaque(b))
	if !okA || !okB {
		return a
	}
	return ca.BlendLab(cb, t).Clamped()
}

// opaque strips alpha so colorful can read the straight RGB channels.
func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}
