package shapes

import (
	"math"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// hitConfig holds the per-modality hit tolerance shared by all renderers.
type hitConfig struct {
	tol chartdraw.Tolerance
}

// SetTolerance overrides the default mouse and touch hit tolerances.
// Zero fields keep the defaults.
func (h *hitConfig) SetTolerance(t chartdraw.Tolerance) {
	h.tol = t
}

func (h *hitConfig) tolerance(p chartdraw.RenderParams) float64 {
	return p.HitTolerance(h.tol)
}

// TextMeasurer measures the advance width of a string in CSS pixels.
// label.Measurer implements it.
type TextMeasurer interface {
	Advance(text string, f chartdraw.Font) float64
}

// approxAdvance is used when no measurer is configured.
func approxAdvance(m TextMeasurer, text string, f chartdraw.Font) float64 {
	if m != nil {
		return m.Advance(text, f)
	}
	n := 0
	for range text {
		n++
	}
	return float64(n) * f.Size * 0.6
}

// strokePolyline strokes CSS points as one snapped subpath.
func strokePolyline(s chartdraw.Surface, p chartdraw.RenderParams, pts []geom.Point, ls chartdraw.LineStyle, closed bool) {
	if !ls.Visible() || len(pts) < 2 {
		return
	}
	w := ls.Apply(s, p)
	s.BeginPath()
	chartdraw.TracePolyline(s, p, pts, w, closed)
	s.Stroke()
}

// strokeSmooth strokes CSS points without snapping. Curves and rotated
// shapes use it: snapping a dense polyline makes it wobble.
func strokeSmooth(s chartdraw.Surface, p chartdraw.RenderParams, pts []geom.Point, ls chartdraw.LineStyle, closed bool) {
	if !ls.Visible() || len(pts) < 2 {
		return
	}
	ls.Apply(s, p)
	s.BeginPath()
	traceSmooth(s, p, pts)
	if closed {
		s.ClosePath()
	}
	s.Stroke()
}

func traceSmooth(s chartdraw.Surface, p chartdraw.RenderParams, pts []geom.Point) {
	for i, pt := range pts {
		d := p.ToDevice(pt)
		if i == 0 {
			s.MoveTo(d.X, d.Y)
		} else {
			s.LineTo(d.X, d.Y)
		}
	}
}

// fillSmooth fills CSS points as a polygon without snapping.
func fillSmooth(s chartdraw.Surface, p chartdraw.RenderParams, pts []geom.Point, fs chartdraw.FillStyle) {
	if !fs.Visible || fs.Color == nil || len(pts) < 3 {
		return
	}
	s.SetFillColor(fs.Resolved())
	s.BeginPath()
	traceSmooth(s, p, pts)
	s.ClosePath()
	s.Fill()
}

// lineEnds draws the decorations at both ends of a stroked segment and
// returns the segment shortened so strokes stop short of arrow tips.
func lineEnds(s chartdraw.Surface, p chartdraw.RenderParams, seg geom.Segment, ls chartdraw.LineStyle, left, right chartdraw.LineEnd) geom.Segment {
	if !ls.Visible() {
		return seg
	}
	out := seg
	if a, ok := endDecoration(s, p, seg.B, seg.A, ls, left); ok {
		out.A = a
	}
	if b, ok := endDecoration(s, p, seg.A, seg.B, ls, right); ok {
		out.B = b
	}
	return out
}

func endDecoration(s chartdraw.Surface, p chartdraw.RenderParams, from, to geom.Point, ls chartdraw.LineStyle, end chartdraw.LineEnd) (geom.Point, bool) {
	switch end {
	case chartdraw.LineEndArrow:
		head, ok := NewArrowHead(from, to, ls.Width)
		if !ok {
			return geom.Point{}, false
		}
		head.Draw(s, p, ls.Color)
		return head.LineEnd, true
	case chartdraw.LineEndCircle:
		r := circleEndRadius(ls.Width)
		c := p.ToDevice(to)
		s.SetFillColor(ls.Color)
		s.BeginPath()
		s.Ellipse(c.X, c.Y, r*p.Ratio(), r*p.Ratio())
		s.Fill()
		return geom.Point{}, false
	}
	return geom.Point{}, false
}

func circleEndRadius(width float64) float64 {
	return math.Max(3, 1.5*width)
}

// endHit reports whether pt touches the decoration at the end "to".
func endHit(pt, from, to geom.Point, width float64, end chartdraw.LineEnd, tol float64) bool {
	switch end {
	case chartdraw.LineEndArrow:
		head, ok := NewArrowHead(from, to, width)
		return ok && head.Contains(pt, tol)
	case chartdraw.LineEndCircle:
		return pt.Distance(to) <= circleEndRadius(width)+tol
	}
	return false
}

// lineHit is the result of a hit on a shape outline.
func lineHit(kind chartdraw.HitKind) *chartdraw.HitResult {
	return chartdraw.NewHit(kind, chartdraw.AreaLine)
}

// backgroundHit is the result of a hit inside a filled shape.
func backgroundHit() *chartdraw.HitResult {
	return chartdraw.NewHit(chartdraw.HitMovePointBackground, chartdraw.AreaBackground)
}
