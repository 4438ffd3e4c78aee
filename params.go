package chartdraw

import (
	"math"

	"github.com/gogpu/chartdraw/geom"
)

// RenderParams describes the target of a draw or hit-test call. It is
// supplied by the host every frame.
type RenderParams struct {
	// PixelRatio is the number of device pixels per CSS pixel.
	PixelRatio float64
	// CSSWidth and CSSHeight are the pane size in CSS pixels.
	CSSWidth  float64
	CSSHeight float64
	// Touch selects the touch hit tolerance instead of the mouse one.
	Touch bool
}

// NewRenderParams returns params for a pane of the given CSS size.
// A non-positive pixel ratio is treated as 1.
func NewRenderParams(cssWidth, cssHeight, pixelRatio float64) RenderParams {
	return RenderParams{PixelRatio: pixelRatio, CSSWidth: cssWidth, CSSHeight: cssHeight}.normalized()
}

func (p RenderParams) normalized() RenderParams {
	if p.PixelRatio <= 0 || math.IsNaN(p.PixelRatio) {
		p.PixelRatio = 1
	}
	return p
}

// Ratio returns the pixel ratio, defaulting to 1.
func (p RenderParams) Ratio() float64 {
	return p.normalized().PixelRatio
}

// DeviceWidth returns the pane width in whole device pixels.
func (p RenderParams) DeviceWidth() int {
	return int(math.Ceil(p.CSSWidth * p.Ratio()))
}

// DeviceHeight returns the pane height in whole device pixels.
func (p RenderParams) DeviceHeight() int {
	return int(math.Ceil(p.CSSHeight * p.Ratio()))
}

// Viewport returns the pane box in CSS pixels.
func (p RenderParams) Viewport() geom.Box {
	return geom.BoxXYWH(0, 0, p.CSSWidth, p.CSSHeight)
}

// ToDevice converts a CSS point to device pixels without snapping.
func (p RenderParams) ToDevice(pt geom.Point) geom.Point {
	return pt.Mul(p.Ratio())
}

// StrokeWidth quantizes a CSS line width to whole device pixels, never
// thinner than one device pixel.
func (p RenderParams) StrokeWidth(css float64) float64 {
	return math.Max(1, math.Floor(css*p.Ratio()))
}

// Snap converts a CSS coordinate to device pixels so that a line of the
// given device width renders crisp: odd widths are centered on half pixels
// and even widths on pixel edges.
func (p RenderParams) Snap(css, deviceWidth float64) float64 {
	v := math.Round(css * p.Ratio())
	if int(deviceWidth)%2 == 1 {
		v += 0.5
	}
	return v
}

// SnapPoint snaps both coordinates of a CSS point with Snap.
func (p RenderParams) SnapPoint(pt geom.Point, deviceWidth float64) geom.Point {
	return geom.Pt(p.Snap(pt.X, deviceWidth), p.Snap(pt.Y, deviceWidth))
}

// Tolerance is the nominal hit distance in CSS pixels per input modality.
type Tolerance struct {
	Mouse float64
	Touch float64
}

// Default hit tolerances in CSS pixels.
const (
	DefaultMouseTolerance = 3
	DefaultTouchTolerance = 20
)

// DefaultTolerance returns the default mouse and touch tolerances.
func DefaultTolerance() Tolerance {
	return Tolerance{Mouse: DefaultMouseTolerance, Touch: DefaultTouchTolerance}
}

// HitTolerance returns the CSS tolerance for the params' input modality.
// Zero fields fall back to the defaults.
func (p RenderParams) HitTolerance(t Tolerance) float64 {
	if p.Touch {
		if t.Touch > 0 {
			return t.Touch
		}
		return DefaultTouchTolerance
	}
	if t.Mouse > 0 {
		return t.Mouse
	}
	return DefaultMouseTolerance
}
