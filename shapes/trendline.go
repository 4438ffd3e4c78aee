package shapes

import (
	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// TrendLineData is the snapshot drawn by TrendLine.
type TrendLineData struct {
	Points      [2]geom.Point
	Line        chartdraw.LineStyle
	ExtendLeft  bool
	ExtendRight bool
	LeftEnd     chartdraw.LineEnd
	RightEnd    chartdraw.LineEnd
	// HitKind is reported for hits on the line; the zero value moves the
	// whole shape.
	HitKind chartdraw.HitKind
}

// TrendLine renders a segment, a ray or an infinite line through two
// points. Extended ends stop at the viewport edge.
type TrendLine struct {
	hitConfig
	data *TrendLineData
}

// NewTrendLine returns an empty trend line renderer.
func NewTrendLine() *TrendLine {
	return &TrendLine{}
}

// SetData replaces the snapshot. Nil clears it.
func (r *TrendLine) SetData(d *TrendLineData) {
	r.data = d
}

// visible returns the part of the line inside the viewport.
func (r *TrendLine) visible(p chartdraw.RenderParams) (geom.Segment, bool) {
	if r.data == nil {
		return geom.Segment{}, false
	}
	d := r.data
	seg := geom.Seg(d.Points[0], d.Points[1])
	if seg.Degenerate() {
		return geom.Segment{}, false
	}
	if !d.ExtendLeft && !d.ExtendRight {
		// Unextended segments are drawn even when partly off screen; the
		// surface clips them.
		return seg, true
	}
	return geom.ExtendSegment(seg, p.Viewport(), d.ExtendLeft, d.ExtendRight)
}

// Draw implements chartdraw.Renderer.
func (r *TrendLine) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	seg, ok := r.visible(p)
	if !ok || !r.data.Line.Visible() {
		return
	}
	d := r.data
	left, right := d.LeftEnd, d.RightEnd
	if d.ExtendLeft {
		left = chartdraw.LineEndNormal
	}
	if d.ExtendRight {
		right = chartdraw.LineEndNormal
	}
	shaft := lineEnds(s, p, seg, d.Line, left, right)
	chartdraw.StrokeSegment(s, p, shaft, d.Line)
}

// HitTest implements chartdraw.Renderer.
func (r *TrendLine) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	seg, ok := r.visible(p)
	if !ok {
		return nil
	}
	d := r.data
	tol := r.tolerance(p)
	if geom.DistanceToSegment(seg.A, seg.B, pt).Distance <= tol {
		return lineHit(d.HitKind)
	}
	if !d.ExtendLeft && endHit(pt, seg.B, seg.A, d.Line.Width, d.LeftEnd, tol) {
		return lineHit(d.HitKind)
	}
	if !d.ExtendRight && endHit(pt, seg.A, seg.B, d.Line.Width, d.RightEnd, tol) {
		return lineHit(d.HitKind)
	}
	return nil
}

// HorizontalLineData is the snapshot drawn by HorizontalLine.
type HorizontalLineData struct {
	Y    float64
	Line chartdraw.LineStyle
	// Start and End bound the line horizontally when Bounded is set;
	// otherwise it spans the viewport.
	Start, End float64
	Bounded    bool
	HitKind    chartdraw.HitKind
}

// HorizontalLine renders a horizontal line at a fixed y.
type HorizontalLine struct {
	hitConfig
	data *HorizontalLineData
}

// NewHorizontalLine returns an empty horizontal line renderer.
func NewHorizontalLine() *HorizontalLine {
	return &HorizontalLine{}
}

// SetData replaces the snapshot.
func (r *HorizontalLine) SetData(d *HorizontalLineData) {
	r.data = d
}

func (r *HorizontalLine) segment(p chartdraw.RenderParams) (geom.Segment, bool) {
	if r.data == nil {
		return geom.Segment{}, false
	}
	d := r.data
	x0, x1 := 0.0, p.CSSWidth
	if d.Bounded {
		x0, x1 = min(d.Start, d.End), max(d.Start, d.End)
		x0, x1 = max(x0, 0), min(x1, p.CSSWidth)
	}
	if x1 <= x0 || d.Y < 0 || d.Y > p.CSSHeight {
		return geom.Segment{}, false
	}
	return geom.Seg(geom.Pt(x0, d.Y), geom.Pt(x1, d.Y)), true
}

// Draw implements chartdraw.Renderer.
func (r *HorizontalLine) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if seg, ok := r.segment(p); ok {
		chartdraw.StrokeSegment(s, p, seg, r.data.Line)
	}
}

// HitTest implements chartdraw.Renderer.
func (r *HorizontalLine) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	seg, ok := r.segment(p)
	if !ok || geom.DistanceToSegment(seg.A, seg.B, pt).Distance > r.tolerance(p) {
		return nil
	}
	res := lineHit(r.data.HitKind)
	if res.Kind == chartdraw.HitMovePoint {
		res.Cursor = chartdraw.CursorNSResize
	}
	return res
}

// VerticalLineData is the snapshot drawn by VerticalLine.
type VerticalLineData struct {
	X       float64
	Line    chartdraw.LineStyle
	HitKind chartdraw.HitKind
}

// VerticalLine renders a vertical line spanning the viewport.
type VerticalLine struct {
	hitConfig
	data *VerticalLineData
}

// NewVerticalLine returns an empty vertical line renderer.
func NewVerticalLine() *VerticalLine {
	return &VerticalLine{}
}

// SetData replaces the snapshot.
func (r *VerticalLine) SetData(d *VerticalLineData) {
	r.data = d
}

func (r *VerticalLine) segment(p chartdraw.RenderParams) (geom.Segment, bool) {
	if r.data == nil || r.data.X < 0 || r.data.X > p.CSSWidth {
		return geom.Segment{}, false
	}
	return geom.Seg(geom.Pt(r.data.X, 0), geom.Pt(r.data.X, p.CSSHeight)), true
}

// Draw implements chartdraw.Renderer.
func (r *VerticalLine) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if seg, ok := r.segment(p); ok {
		chartdraw.StrokeSegment(s, p, seg, r.data.Line)
	}
}

// HitTest implements chartdraw.Renderer.
func (r *VerticalLine) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	seg, ok := r.segment(p)
	if !ok || geom.DistanceToSegment(seg.A, seg.B, pt).Distance > r.tolerance(p) {
		return nil
	}
	res := lineHit(r.data.HitKind)
	if res.Kind == chartdraw.HitMovePoint {
		res.Cursor = chartdraw.CursorEWResize
	}
	return res
}
