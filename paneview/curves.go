package paneview

import (
	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/shapes"
)

// CurveProps configures single and double curves.
type CurveProps struct {
	Line     chartdraw.LineStyle
	Fill     chartdraw.FillStyle
	LeftEnd  chartdraw.LineEnd
	RightEnd chartdraw.LineEnd
}

// CurveView shows a quadratic curve from the first to the second point,
// bent toward the third.
type CurveView struct {
	Base
	src Source[CurveProps]
}

// NewCurveView returns a dirty view of src.
func NewCurveView(id string, src Source[CurveProps], env *Env) *CurveView {
	v := &CurveView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *CurveView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 3)
	if !ok {
		return
	}
	props := v.src.Properties()
	c := shapes.NewQuadCurve()
	c.SetData(&shapes.QuadCurveData{
		Curve:    geom.QuadBez{P0: pr.pts[0], P1: pr.pts[2], P2: pr.pts[1]},
		Line:     props.Line,
		Fill:     props.Fill,
		LeftEnd:  props.LeftEnd,
		RightEnd: props.RightEnd,
	})
	v.add(g, c)
	v.addAnchors(g, freeAnchors(pr.pts[:3]))
}

// DoubleCurveView shows an S-shaped cubic curve. The third point is the
// first control point; the second control point is its reflection through
// the midpoint of the end points.
type DoubleCurveView struct {
	Base
	src Source[CurveProps]
}

// NewDoubleCurveView returns a dirty view of src.
func NewDoubleCurveView(id string, src Source[CurveProps], env *Env) *DoubleCurveView {
	v := &DoubleCurveView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *DoubleCurveView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 3)
	if !ok {
		return
	}
	p0, p1, c1 := pr.pts[0], pr.pts[1], pr.pts[2]
	c2 := geom.Midpoint(p0, p1).Mul(2).Sub(c1)
	props := v.src.Properties()
	c := shapes.NewCubicCurve()
	c.SetData(&shapes.CubicCurveData{
		Curve:    geom.CubicBez{P0: p0, P1: c1, P2: c2, P3: p1},
		Line:     props.Line,
		Fill:     props.Fill,
		LeftEnd:  props.LeftEnd,
		RightEnd: props.RightEnd,
	})
	v.add(g, c)
	v.addAnchors(g, freeAnchors(pr.pts[:3]))
}
