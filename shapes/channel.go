package shapes

import (
	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// channelRegion clips the viewport to the area between line p0-p1 and line
// p2-p3. Without extension the region is also bounded by the lines p0-p2
// on the left and p1-p3 on the right. It returns nil when nothing is
// visible.
func channelRegion(pts [4]geom.Point, view geom.Box, extendLeft, extendRight bool) []geom.Point {
	l1, ok1 := geom.LineThroughPoints(pts[0], pts[1])
	l2, ok2 := geom.LineThroughPoints(pts[2], pts[3])
	if !ok1 || !ok2 {
		return nil
	}
	if l1.Distance(pts[2]) < 1e-9 && l1.Distance(pts[3]) < 1e-9 {
		// Both boundaries on one line: no area.
		return nil
	}
	region := view.Corners()
	clips := []geom.HalfPlane{
		geom.HalfPlaneThroughPoint(l1, geom.Midpoint(pts[2], pts[3])),
		geom.HalfPlaneThroughPoint(l2, geom.Midpoint(pts[0], pts[1])),
	}
	if !extendLeft {
		if left, ok := geom.LineThroughPoints(pts[0], pts[2]); ok {
			clips = append(clips, geom.HalfPlaneThroughPoint(left, geom.Midpoint(pts[1], pts[3])))
		}
	}
	if !extendRight {
		if right, ok := geom.LineThroughPoints(pts[1], pts[3]); ok {
			clips = append(clips, geom.HalfPlaneThroughPoint(right, geom.Midpoint(pts[0], pts[2])))
		}
	}
	for _, h := range clips {
		region = geom.IntersectPolygonAndHalfplane(region, h)
		if region == nil {
			return nil
		}
	}
	return region
}

// boundary returns the visible part of one channel boundary.
func boundary(a, b geom.Point, view geom.Box, extendLeft, extendRight bool) (geom.Segment, bool) {
	seg := geom.Seg(a, b)
	if !extendLeft && !extendRight {
		return seg, !seg.Degenerate()
	}
	return geom.ExtendSegment(seg, view, extendLeft, extendRight)
}

// channelHit checks the boundaries, then the fill.
func channelHit(pt geom.Point, tol float64, lines []geom.Segment, region []geom.Point, fill bool) *chartdraw.HitResult {
	for _, l := range lines {
		if geom.DistanceToSegment(l.A, l.B, pt).Distance <= tol {
			return lineHit(chartdraw.HitMovePoint)
		}
	}
	if fill && len(region) >= 3 && geom.PointInPolygon(pt, region) {
		return backgroundHit()
	}
	return nil
}

// ParallelChannelData is the snapshot drawn by ParallelChannel.
// Points[0]-Points[1] is the first boundary and Points[2]-Points[3] the
// second; the boundaries are expected to be parallel.
type ParallelChannelData struct {
	Points      [4]geom.Point
	Line        chartdraw.LineStyle
	Fill        chartdraw.FillStyle
	ExtendLeft  bool
	ExtendRight bool
	// MiddleLine, when visible, is drawn halfway between the boundaries.
	MiddleLine chartdraw.LineStyle
}

// ParallelChannel renders two parallel boundaries with the band between
// them filled.
type ParallelChannel struct {
	hitConfig
	data *ParallelChannelData
}

// NewParallelChannel returns an empty parallel channel renderer.
func NewParallelChannel() *ParallelChannel {
	return &ParallelChannel{}
}

// SetData replaces the snapshot.
func (r *ParallelChannel) SetData(d *ParallelChannelData) {
	r.data = d
}

// lines returns the visible boundaries followed by the middle line, if any.
func (r *ParallelChannel) lines(view geom.Box) []geom.Segment {
	d := r.data
	out := parallelLines(d.Points, view, d.ExtendLeft, d.ExtendRight)
	if mid, ok := r.middle(view); ok {
		out = append(out, mid)
	}
	return out
}

func (r *ParallelChannel) middle(view geom.Box) (geom.Segment, bool) {
	d := r.data
	if !d.MiddleLine.Visible() {
		return geom.Segment{}, false
	}
	a := geom.Midpoint(d.Points[0], d.Points[2])
	b := geom.Midpoint(d.Points[1], d.Points[3])
	return boundary(a, b, view, d.ExtendLeft, d.ExtendRight)
}

func parallelLines(pts [4]geom.Point, view geom.Box, extendLeft, extendRight bool) []geom.Segment {
	var out []geom.Segment
	if s, ok := boundary(pts[0], pts[1], view, extendLeft, extendRight); ok {
		out = append(out, s)
	}
	if s, ok := boundary(pts[2], pts[3], view, extendLeft, extendRight); ok {
		out = append(out, s)
	}
	return out
}

// Draw implements chartdraw.Renderer.
func (r *ParallelChannel) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if r.data == nil {
		return
	}
	d := r.data
	view := p.Viewport()
	if d.Fill.Visible {
		fillSmooth(s, p, channelRegion(d.Points, view, d.ExtendLeft, d.ExtendRight), d.Fill)
	}
	for _, l := range parallelLines(d.Points, view, d.ExtendLeft, d.ExtendRight) {
		chartdraw.StrokeSegment(s, p, l, d.Line)
	}
	if mid, ok := r.middle(view); ok {
		chartdraw.StrokeSegment(s, p, mid, d.MiddleLine)
	}
}

// HitTest implements chartdraw.Renderer.
func (r *ParallelChannel) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if r.data == nil {
		return nil
	}
	d := r.data
	view := p.Viewport()
	var region []geom.Point
	if d.Fill.Visible {
		region = channelRegion(d.Points, view, d.ExtendLeft, d.ExtendRight)
	}
	return channelHit(pt, r.tolerance(p), r.lines(view), region, d.Fill.Visible)
}

// DisjointChannelData is the snapshot drawn by DisjointChannel. The two
// boundaries Points[0]-Points[1] and Points[2]-Points[3] are independent.
type DisjointChannelData struct {
	Points      [4]geom.Point
	Line        chartdraw.LineStyle
	Fill        chartdraw.FillStyle
	ExtendLeft  bool
	ExtendRight bool
}

// DisjointChannel renders two non-parallel boundaries. When the extended
// boundaries meet inside the region the lines stop at the apex, giving a
// wedge. Boundaries that are parallel within tolerance are drawn with the
// parallel channel algorithm.
type DisjointChannel struct {
	hitConfig
	data *DisjointChannelData
}

// NewDisjointChannel returns an empty disjoint channel renderer.
func NewDisjointChannel() *DisjointChannel {
	return &DisjointChannel{}
}

// SetData replaces the snapshot.
func (r *DisjointChannel) SetData(d *DisjointChannelData) {
	r.data = d
}

// Parallel reports whether the boundaries are treated as parallel.
func (r *DisjointChannel) Parallel() bool {
	if r.data == nil {
		return false
	}
	_, ok := r.apex()
	return !ok
}

func (r *DisjointChannel) apex() (geom.Point, bool) {
	pts := r.data.Points
	l1, ok1 := geom.LineThroughPoints(pts[0], pts[1])
	l2, ok2 := geom.LineThroughPoints(pts[2], pts[3])
	if !ok1 || !ok2 {
		return geom.Point{}, false
	}
	return geom.IntersectLines(l1, l2)
}

func (r *DisjointChannel) lines(view geom.Box) []geom.Segment {
	d := r.data
	pts := d.Points
	if _, ok := r.apex(); !ok {
		return parallelLines(pts, view, d.ExtendLeft, d.ExtendRight)
	}
	l1, _ := geom.LineThroughPoints(pts[0], pts[1])
	l2, _ := geom.LineThroughPoints(pts[2], pts[3])

	var out []geom.Segment
	// Each boundary is kept on its own side of the other boundary, which
	// cuts it at the apex.
	if s, ok := boundary(pts[0], pts[1], view, d.ExtendLeft, d.ExtendRight); ok {
		if s, ok = geom.ClipSegmentToHalfplane(s, geom.HalfPlaneThroughPoint(l2, geom.Midpoint(pts[0], pts[1]))); ok {
			out = append(out, s)
		}
	}
	if s, ok := boundary(pts[2], pts[3], view, d.ExtendLeft, d.ExtendRight); ok {
		if s, ok = geom.ClipSegmentToHalfplane(s, geom.HalfPlaneThroughPoint(l1, geom.Midpoint(pts[2], pts[3]))); ok {
			out = append(out, s)
		}
	}
	return out
}

// Draw implements chartdraw.Renderer.
func (r *DisjointChannel) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if r.data == nil {
		return
	}
	d := r.data
	view := p.Viewport()
	if d.Fill.Visible {
		fillSmooth(s, p, channelRegion(d.Points, view, d.ExtendLeft, d.ExtendRight), d.Fill)
	}
	for _, l := range r.lines(view) {
		chartdraw.StrokeSegment(s, p, l, d.Line)
	}
}

// HitTest implements chartdraw.Renderer.
func (r *DisjointChannel) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if r.data == nil {
		return nil
	}
	d := r.data
	view := p.Viewport()
	var region []geom.Point
	if d.Fill.Visible {
		region = channelRegion(d.Points, view, d.ExtendLeft, d.ExtendRight)
	}
	return channelHit(pt, r.tolerance(p), r.lines(view), region, d.Fill.Visible)
}
