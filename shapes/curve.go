package shapes

import (
	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// QuadCurveData is the snapshot drawn by QuadCurve.
type QuadCurveData struct {
	Curve    geom.QuadBez
	Line     chartdraw.LineStyle
	Fill     chartdraw.FillStyle
	LeftEnd  chartdraw.LineEnd
	RightEnd chartdraw.LineEnd
}

// QuadCurve renders a quadratic Bézier curve. It is flattened in CSS
// pixels with a step chosen from the curve length. Hits near the flattened
// polyline are confirmed against the exact distance to the curve.
type QuadCurve struct {
	hitConfig
	data *QuadCurveData
	pts  []geom.Point
}

// NewQuadCurve returns an empty quadratic curve renderer.
func NewQuadCurve() *QuadCurve {
	return &QuadCurve{}
}

// SetData replaces the snapshot and flattens the curve.
func (r *QuadCurve) SetData(d *QuadCurveData) {
	r.data = d
	r.pts = nil
	if d != nil && d.Curve.LengthEstimate() > 0 {
		r.pts = d.Curve.Flatten(geom.FlattenStep(d.Curve.LengthEstimate()))
	}
}

// Draw implements chartdraw.Renderer.
func (r *QuadCurve) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if r.data == nil {
		return
	}
	d := r.data
	drawCurve(s, p, r.pts, d.Line, d.Fill, d.LeftEnd, d.RightEnd,
		d.Curve.P0.Add(d.Curve.Tangent(0)), d.Curve.P2.Sub(d.Curve.Tangent(1)))
}

// HitTest implements chartdraw.Renderer.
func (r *QuadCurve) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if r.data == nil {
		return nil
	}
	d := r.data
	nearest := func(pt geom.Point) float64 {
		dist, _ := geom.NearestOnQuad(d.Curve, pt)
		return dist
	}
	return curveHit(pt, r.tolerance(p), r.pts, nearest, d.Line.Width, d.Fill, d.LeftEnd, d.RightEnd,
		d.Curve.P0.Add(d.Curve.Tangent(0)), d.Curve.P2.Sub(d.Curve.Tangent(1)))
}

// CubicCurveData is the snapshot drawn by CubicCurve.
type CubicCurveData struct {
	Curve    geom.CubicBez
	Line     chartdraw.LineStyle
	Fill     chartdraw.FillStyle
	LeftEnd  chartdraw.LineEnd
	RightEnd chartdraw.LineEnd
}

// CubicCurve renders a cubic Bézier curve.
type CubicCurve struct {
	hitConfig
	data *CubicCurveData
	pts  []geom.Point
}

// NewCubicCurve returns an empty cubic curve renderer.
func NewCubicCurve() *CubicCurve {
	return &CubicCurve{}
}

// SetData replaces the snapshot and flattens the curve.
func (r *CubicCurve) SetData(d *CubicCurveData) {
	r.data = d
	r.pts = nil
	if d != nil && d.Curve.LengthEstimate() > 0 {
		r.pts = d.Curve.Flatten(geom.FlattenStep(d.Curve.LengthEstimate()))
	}
}

// Draw implements chartdraw.Renderer.
func (r *CubicCurve) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if r.data == nil {
		return
	}
	d := r.data
	drawCurve(s, p, r.pts, d.Line, d.Fill, d.LeftEnd, d.RightEnd,
		d.Curve.P0.Add(d.Curve.Tangent(0)), d.Curve.P3.Sub(d.Curve.Tangent(1)))
}

// HitTest implements chartdraw.Renderer.
func (r *CubicCurve) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if r.data == nil {
		return nil
	}
	d := r.data
	nearest := func(pt geom.Point) float64 {
		dist, _ := geom.NearestOnCubic(d.Curve, pt)
		return dist
	}
	return curveHit(pt, r.tolerance(p), r.pts, nearest, d.Line.Width, d.Fill, d.LeftEnd, d.RightEnd,
		d.Curve.P0.Add(d.Curve.Tangent(0)), d.Curve.P3.Sub(d.Curve.Tangent(1)))
}

// drawCurve fills and strokes a flattened curve. startDir and endDir are
// points just inside the curve ends, used to orient arrow heads.
func drawCurve(s chartdraw.Surface, p chartdraw.RenderParams, pts []geom.Point, ls chartdraw.LineStyle, fs chartdraw.FillStyle, left, right chartdraw.LineEnd, startDir, endDir geom.Point) {
	if len(pts) < 2 {
		return
	}
	fillSmooth(s, p, pts, fs)
	if !ls.Visible() {
		return
	}
	shaft := append([]geom.Point(nil), pts...)
	n := len(shaft)
	first := lineEnds(s, p, geom.Seg(startDir, shaft[0]), ls, chartdraw.LineEndNormal, left)
	last := lineEnds(s, p, geom.Seg(endDir, shaft[n-1]), ls, chartdraw.LineEndNormal, right)
	if left == chartdraw.LineEndArrow {
		shaft[0] = first.B
	}
	if right == chartdraw.LineEndArrow {
		shaft[n-1] = last.B
	}
	strokeSmooth(s, p, shaft, ls, false)
}

// flattenSlack bounds how far the flattened polyline may stray from the
// curve, so the polyline pass never rejects a point the exact pass accepts.
const flattenSlack = 1.0

// curveHit tests the flattened polyline first and confirms line hits with
// nearest, the exact distance to the curve.
func curveHit(pt geom.Point, tol float64, pts []geom.Point, nearest func(geom.Point) float64, width float64, fs chartdraw.FillStyle, left, right chartdraw.LineEnd, startDir, endDir geom.Point) *chartdraw.HitResult {
	if len(pts) < 2 {
		return nil
	}
	if geom.DistanceToPolyline(pt, pts, false) <= tol+flattenSlack && nearest(pt) <= tol {
		return lineHit(chartdraw.HitMovePoint)
	}
	n := len(pts)
	if endHit(pt, startDir, pts[0], width, left, tol) || endHit(pt, endDir, pts[n-1], width, right, tol) {
		return lineHit(chartdraw.HitMovePoint)
	}
	if fs.Visible && len(pts) >= 3 && geom.PointInPolygon(pt, pts) {
		return backgroundHit()
	}
	return nil
}
