package paneview

import (
	"math"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/anchor"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/shapes"
)

// RectangleProps configures a rectangle.
type RectangleProps struct {
	Border      chartdraw.LineStyle
	Fill        chartdraw.FillStyle
	ExtendLeft  bool
	ExtendRight bool
	MiddleLine  chartdraw.LineStyle
}

// RectangleView shows a rectangle spanned by two corner points, with eight
// resize handles.
type RectangleView struct {
	Base
	src Source[RectangleProps]
}

// NewRectangleView returns a dirty view of src.
func NewRectangleView(id string, src Source[RectangleProps], env *Env) *RectangleView {
	v := &RectangleView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *RectangleView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 2)
	if !ok {
		return
	}
	props := v.src.Properties()
	r := shapes.NewRectangle()
	r.SetData(&shapes.RectangleData{
		Points:      [2]geom.Point{pr.pts[0], pr.pts[1]},
		Border:      props.Border,
		Fill:        props.Fill,
		ExtendLeft:  props.ExtendLeft,
		ExtendRight: props.ExtendRight,
		MiddleLine:  props.MiddleLine,
	})
	v.add(g, r)
	v.addAnchors(g, anchor.RectanglePoints(geom.NewBox(pr.pts[0], pr.pts[1])))
}

// TriangleProps configures a triangle.
type TriangleProps struct {
	Line chartdraw.LineStyle
	Fill chartdraw.FillStyle
}

// TriangleView shows a three-point triangle.
type TriangleView struct {
	Base
	src Source[TriangleProps]
}

// NewTriangleView returns a dirty view of src.
func NewTriangleView(id string, src Source[TriangleProps], env *Env) *TriangleView {
	v := &TriangleView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *TriangleView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 3)
	if !ok {
		return
	}
	props := v.src.Properties()
	t := shapes.NewTriangle()
	t.SetData(&shapes.TriangleData{
		Points: [3]geom.Point{pr.pts[0], pr.pts[1], pr.pts[2]},
		Line:   props.Line,
		Fill:   props.Fill,
	})
	v.add(g, t)
	v.addAnchors(g, freeAnchors(pr.pts[:3]))
}

// EllipseProps configures an ellipse.
type EllipseProps struct {
	Line chartdraw.LineStyle
	Fill chartdraw.FillStyle
}

// EllipseView shows an ellipse whose first axis runs between the first two
// points; the third point sets the other radius.
type EllipseView struct {
	Base
	src Source[EllipseProps]
}

// NewEllipseView returns a dirty view of src.
func NewEllipseView(id string, src Source[EllipseProps], env *Env) *EllipseView {
	v := &EllipseView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *EllipseView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 3)
	if !ok {
		return
	}
	a, b, c := pr.pts[0], pr.pts[1], pr.pts[2]
	axis := b.Sub(a)
	if axis.Length() == 0 {
		return
	}
	props := v.src.Properties()
	e := shapes.NewEllipse()
	e.SetData(&shapes.EllipseData{
		Center:   geom.Midpoint(a, b),
		RadiusX:  axis.Length() / 2,
		RadiusY:  geom.DistanceToLine(a, b, c).Distance,
		Rotation: axis.Angle(),
		Line:     props.Line,
		Fill:     props.Fill,
	})
	v.add(g, e)
	v.addAnchors(g, freeAnchors(pr.pts[:3]))
}

// ArcProps configures a circular arc.
type ArcProps struct {
	Line chartdraw.LineStyle
	Fill chartdraw.FillStyle
	// Wedge closes the arc through its center instead of the chord.
	Wedge bool
}

// ArcView shows the circular arc from the first to the second point that
// passes through the third.
type ArcView struct {
	Base
	src Source[ArcProps]
}

// NewArcView returns a dirty view of src.
func NewArcView(id string, src Source[ArcProps], env *Env) *ArcView {
	v := &ArcView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *ArcView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 3)
	if !ok {
		return
	}
	a, b, c := pr.pts[0], pr.pts[1], pr.pts[2]
	center, ok := circumcenter(a, b, c)
	if !ok {
		return
	}
	start, sweep := arcThrough(center, a, b, c)
	props := v.src.Properties()
	r := center.Distance(a)
	arc := shapes.NewArc()
	arc.SetData(&shapes.ArcData{
		Center:     center,
		RadiusX:    r,
		RadiusY:    r,
		StartAngle: start,
		EndAngle:   start + sweep,
		Wedge:      props.Wedge,
		Line:       props.Line,
		Fill:       props.Fill,
	})
	v.add(g, arc)
	v.addAnchors(g, freeAnchors(pr.pts[:3]))
}

// circumcenter returns the center of the circle through three points, or
// false when they are collinear.
func circumcenter(a, b, c geom.Point) (geom.Point, bool) {
	bisector := func(p, q geom.Point) (geom.Line, bool) {
		m := geom.Midpoint(p, q)
		return geom.LineThroughPoints(m, m.Add(q.Sub(p).Perp()))
	}
	l1, ok1 := bisector(a, b)
	l2, ok2 := bisector(b, c)
	if !ok1 || !ok2 {
		return geom.Point{}, false
	}
	return geom.IntersectLines(l1, l2)
}

// arcThrough returns the start angle and positive sweep of the arc around
// center from a to b, or from b to a, whichever contains via.
func arcThrough(center, a, b, via geom.Point) (start, sweep float64) {
	norm := func(x float64) float64 {
		x = math.Mod(x, 2*math.Pi)
		if x < 0 {
			x += 2 * math.Pi
		}
		return x
	}
	aa := a.Sub(center).Angle()
	ab := b.Sub(center).Angle()
	av := via.Sub(center).Angle()
	s := norm(ab - aa)
	if norm(av-aa) <= s {
		return aa, s
	}
	return ab, 2*math.Pi - s
}

// PolylineProps configures a polyline or polygon.
type PolylineProps struct {
	Line     chartdraw.LineStyle
	Fill     chartdraw.FillStyle
	Closed   bool
	LeftEnd  chartdraw.LineEnd
	RightEnd chartdraw.LineEnd
}

// PolylineView shows a path through all points.
type PolylineView struct {
	Base
	src Source[PolylineProps]
}

// NewPolylineView returns a dirty view of src.
func NewPolylineView(id string, src Source[PolylineProps], env *Env) *PolylineView {
	v := &PolylineView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *PolylineView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 2)
	if !ok {
		return
	}
	props := v.src.Properties()
	poly := shapes.NewPolygon()
	poly.SetData(&shapes.PolygonData{
		Points:   pr.pts,
		Line:     props.Line,
		Fill:     props.Fill,
		Closed:   props.Closed,
		LeftEnd:  props.LeftEnd,
		RightEnd: props.RightEnd,
	})
	v.add(g, poly)
	v.addAnchors(g, freeAnchors(pr.pts))
}
