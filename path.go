package chartdraw

import (
	"math"

	"github.com/gogpu/chartdraw/geom"
)

// TracePolyline adds the CSS points as a subpath, snapped for a stroke of
// deviceWidth. Closed closes the subpath. Fewer than two points add nothing.
func TracePolyline(s Surface, p RenderParams, pts []geom.Point, deviceWidth float64, closed bool) {
	if len(pts) < 2 {
		return
	}
	first := p.SnapPoint(pts[0], deviceWidth)
	s.MoveTo(first.X, first.Y)
	for _, pt := range pts[1:] {
		d := p.SnapPoint(pt, deviceWidth)
		s.LineTo(d.X, d.Y)
	}
	if closed {
		s.ClosePath()
	}
}

// TracePolygon adds the CSS points as a closed subpath without snapping,
// which is what fills want: snapping would shift shared edges apart.
func TracePolygon(s Surface, p RenderParams, pts []geom.Point) {
	if len(pts) < 3 {
		return
	}
	first := p.ToDevice(pts[0])
	s.MoveTo(first.X, first.Y)
	for _, pt := range pts[1:] {
		d := p.ToDevice(pt)
		s.LineTo(d.X, d.Y)
	}
	s.ClosePath()
}

// StrokeSegment strokes a single CSS segment with the style.
func StrokeSegment(s Surface, p RenderParams, seg geom.Segment, ls LineStyle) {
	if !ls.Visible() {
		return
	}
	w := ls.Apply(s, p)
	s.BeginPath()
	TracePolyline(s, p, []geom.Point{seg.A, seg.B}, w, false)
	s.Stroke()
}

// FillPolygon fills a CSS polygon with the color.
func FillPolygon(s Surface, p RenderParams, pts []geom.Point, fs FillStyle) {
	if !fs.Visible || fs.Color == nil || len(pts) < 3 {
		return
	}
	s.SetFillColor(fs.Resolved())
	s.BeginPath()
	TracePolygon(s, p, pts)
	s.Fill()
}

// TraceRoundRect adds a device-space box with rounded corners as a closed
// subpath. The radius is clamped to half the shorter side.
func TraceRoundRect(s Surface, b geom.Box, r float64) {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return
	}
	r = max(0, min(r, w/2, h/2))
	x0, y0, x1, y1 := b.Min.X, b.Min.Y, b.Max.X, b.Max.Y
	if r == 0 {
		s.MoveTo(x0, y0)
		s.LineTo(x1, y0)
		s.LineTo(x1, y1)
		s.LineTo(x0, y1)
		s.ClosePath()
		return
	}
	s.MoveTo(x0+r, y0)
	s.LineTo(x1-r, y0)
	s.Arc(x1-r, y0+r, r, -math.Pi/2, 0)
	s.LineTo(x1, y1-r)
	s.Arc(x1-r, y1-r, r, 0, math.Pi/2)
	s.LineTo(x0+r, y1)
	s.Arc(x0+r, y1-r, r, math.Pi/2, math.Pi)
	s.LineTo(x0, y0+r)
	s.Arc(x0+r, y0+r, r, math.Pi, 3*math.Pi/2)
	s.ClosePath()
}
