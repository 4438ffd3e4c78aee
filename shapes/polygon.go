package shapes

import (
	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// PolygonData is the snapshot drawn by Polygon.
type PolygonData struct {
	Points []geom.Point
	Line   chartdraw.LineStyle
	// Fill is applied to the implicitly closed outline, also for open
	// polylines.
	Fill   chartdraw.FillStyle
	Closed bool
	// LeftEnd and RightEnd decorate the first and last segment of an open
	// polyline.
	LeftEnd  chartdraw.LineEnd
	RightEnd chartdraw.LineEnd
	HitKind  chartdraw.HitKind
}

// Polygon renders an open or closed polyline with optional fill and
// arrow ends.
type Polygon struct {
	hitConfig
	data *PolygonData
}

// NewPolygon returns an empty polygon renderer.
func NewPolygon() *Polygon {
	return &Polygon{}
}

// SetData replaces the snapshot.
func (r *Polygon) SetData(d *PolygonData) {
	r.data = d
}

// Draw implements chartdraw.Renderer.
func (r *Polygon) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if r.data == nil || len(r.data.Points) < 2 {
		return
	}
	d := r.data
	fillSmooth(s, p, d.Points, d.Fill)

	pts := d.Points
	if !d.Closed && d.Line.Visible() {
		pts = append([]geom.Point(nil), d.Points...)
		n := len(pts)
		first := lineEnds(s, p, geom.Seg(pts[0], pts[1]), d.Line, d.LeftEnd, chartdraw.LineEndNormal)
		pts[0] = first.A
		last := lineEnds(s, p, geom.Seg(pts[n-2], pts[n-1]), d.Line, chartdraw.LineEndNormal, d.RightEnd)
		pts[n-1] = last.B
	}
	strokePolyline(s, p, pts, d.Line, d.Closed)
}

// HitTest implements chartdraw.Renderer.
func (r *Polygon) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if r.data == nil || len(r.data.Points) < 2 {
		return nil
	}
	d := r.data
	tol := r.tolerance(p)
	if geom.DistanceToPolyline(pt, d.Points, d.Closed) <= tol {
		return lineHit(d.HitKind)
	}
	if !d.Closed {
		n := len(d.Points)
		if endHit(pt, d.Points[1], d.Points[0], d.Line.Width, d.LeftEnd, tol) ||
			endHit(pt, d.Points[n-2], d.Points[n-1], d.Line.Width, d.RightEnd, tol) {
			return lineHit(d.HitKind)
		}
	}
	if d.Fill.Visible && len(d.Points) >= 3 && geom.PointInPolygon(pt, d.Points) {
		return backgroundHit()
	}
	return nil
}

// TriangleData is the snapshot drawn by Triangle.
type TriangleData struct {
	Points [3]geom.Point
	Line   chartdraw.LineStyle
	Fill   chartdraw.FillStyle
}

// Triangle renders a filled, outlined triangle.
type Triangle struct {
	hitConfig
	data *TriangleData
}

// NewTriangle returns an empty triangle renderer.
func NewTriangle() *Triangle {
	return &Triangle{}
}

// SetData replaces the snapshot.
func (r *Triangle) SetData(d *TriangleData) {
	r.data = d
}

// Draw implements chartdraw.Renderer.
func (r *Triangle) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if r.data == nil {
		return
	}
	pts := r.data.Points[:]
	if geom.PolygonArea(pts) == 0 {
		// A collapsed triangle is still shown as its outline.
		strokePolyline(s, p, pts, r.data.Line, false)
		return
	}
	fillSmooth(s, p, pts, r.data.Fill)
	strokePolyline(s, p, pts, r.data.Line, true)
}

// HitTest implements chartdraw.Renderer.
func (r *Triangle) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if r.data == nil {
		return nil
	}
	a, b, c := r.data.Points[0], r.data.Points[1], r.data.Points[2]
	if geom.DistanceToPolyline(pt, r.data.Points[:], true) <= r.tolerance(p) {
		return lineHit(chartdraw.HitMovePoint)
	}
	if r.data.Fill.Visible && geom.PolygonArea(r.data.Points[:]) != 0 && geom.PointInTriangle(pt, a, b, c) {
		return backgroundHit()
	}
	return nil
}
