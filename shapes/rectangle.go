package shapes

import (
	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// RectangleData is the snapshot drawn by Rectangle. The two points are
// opposite corners in any order.
type RectangleData struct {
	Points      [2]geom.Point
	Border      chartdraw.LineStyle
	Fill        chartdraw.FillStyle
	ExtendLeft  bool
	ExtendRight bool
	// MiddleLine, when visible, is drawn horizontally through the center.
	MiddleLine chartdraw.LineStyle
}

// Rectangle renders an axis-aligned box. Edge hits move the shape, hits
// inside the fill move it as background.
type Rectangle struct {
	hitConfig
	data *RectangleData
}

// NewRectangle returns an empty rectangle renderer.
func NewRectangle() *Rectangle {
	return &Rectangle{}
}

// SetData replaces the snapshot.
func (r *Rectangle) SetData(d *RectangleData) {
	r.data = d
}

func (r *Rectangle) box(p chartdraw.RenderParams) (geom.Box, bool) {
	if r.data == nil {
		return geom.Box{}, false
	}
	b := geom.NewBox(r.data.Points[0], r.data.Points[1])
	if r.data.ExtendLeft {
		b.Min.X = min(b.Min.X, 0)
	}
	if r.data.ExtendRight {
		b.Max.X = max(b.Max.X, p.CSSWidth)
	}
	if b.Width() == 0 && b.Height() == 0 {
		return geom.Box{}, false
	}
	return b, true
}

// edges returns the visible outline. Extended sides have no vertical edge.
func (r *Rectangle) edges(b geom.Box) []geom.Segment {
	tl, tr := b.Min, geom.Pt(b.Max.X, b.Min.Y)
	br, bl := b.Max, geom.Pt(b.Min.X, b.Max.Y)
	out := []geom.Segment{geom.Seg(tl, tr), geom.Seg(bl, br)}
	if !r.data.ExtendLeft {
		out = append(out, geom.Seg(tl, bl))
	}
	if !r.data.ExtendRight {
		out = append(out, geom.Seg(tr, br))
	}
	return out
}

// Draw implements chartdraw.Renderer.
func (r *Rectangle) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	b, ok := r.box(p)
	if !ok {
		return
	}
	d := r.data
	if d.Fill.Visible && !b.Empty() {
		chartdraw.FillPolygon(s, p, b.Corners(), d.Fill)
	}
	if d.MiddleLine.Visible() {
		y := b.Center().Y
		chartdraw.StrokeSegment(s, p, geom.Seg(geom.Pt(b.Min.X, y), geom.Pt(b.Max.X, y)), d.MiddleLine)
	}
	if !d.Border.Visible() {
		return
	}
	if !d.ExtendLeft && !d.ExtendRight {
		strokePolyline(s, p, b.Corners(), d.Border, true)
		return
	}
	w := d.Border.Apply(s, p)
	s.BeginPath()
	for _, e := range r.edges(b) {
		chartdraw.TracePolyline(s, p, []geom.Point{e.A, e.B}, w, false)
	}
	s.Stroke()
}

// HitTest implements chartdraw.Renderer.
func (r *Rectangle) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	b, ok := r.box(p)
	if !ok {
		return nil
	}
	tol := r.tolerance(p)
	for _, e := range r.edges(b) {
		if geom.DistanceToSegment(e.A, e.B, pt).Distance <= tol {
			return lineHit(chartdraw.HitMovePoint)
		}
	}
	if r.data.Fill.Visible && b.Contains(pt) {
		return backgroundHit()
	}
	return nil
}
