package paneview

import (
	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/anchor"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/shapes"
)

// TrendLineProps configures a trend line, ray or extended line.
type TrendLineProps struct {
	Line        chartdraw.LineStyle
	ExtendLeft  bool
	ExtendRight bool
	LeftEnd     chartdraw.LineEnd
	RightEnd    chartdraw.LineEnd
}

// TrendLineView shows a two-point line.
type TrendLineView struct {
	Base
	src Source[TrendLineProps]
}

// NewTrendLineView returns a dirty view of src.
func NewTrendLineView(id string, src Source[TrendLineProps], env *Env) *TrendLineView {
	v := &TrendLineView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *TrendLineView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 2)
	if !ok {
		return
	}
	props := v.src.Properties()
	line := shapes.NewTrendLine()
	line.SetData(&shapes.TrendLineData{
		Points:      [2]geom.Point{pr.pts[0], pr.pts[1]},
		Line:        props.Line,
		ExtendLeft:  props.ExtendLeft,
		ExtendRight: props.ExtendRight,
		LeftEnd:     props.LeftEnd,
		RightEnd:    props.RightEnd,
	})
	v.add(g, line)
	v.addAnchors(g, freeAnchors(pr.pts[:2]))
}

// HorizontalLineProps configures a horizontal price line.
type HorizontalLineProps struct {
	Line chartdraw.LineStyle
}

// HorizontalLineView shows a horizontal line across the pane at the price
// of its single point.
type HorizontalLineView struct {
	Base
	src Source[HorizontalLineProps]
}

// NewHorizontalLineView returns a dirty view of src.
func NewHorizontalLineView(id string, src Source[HorizontalLineProps], env *Env) *HorizontalLineView {
	v := &HorizontalLineView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *HorizontalLineView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 1)
	if !ok {
		return
	}
	pt := pr.pts[0]
	line := shapes.NewHorizontalLine()
	line.SetData(&shapes.HorizontalLineData{Y: pt.Y, Line: v.src.Properties().Line})
	v.add(g, line)
	v.addAnchors(g, []anchor.Point{{Point: pt, Role: anchor.RoleEdgeVertical}})
}

// VerticalLineProps configures a vertical time line.
type VerticalLineProps struct {
	Line chartdraw.LineStyle
}

// VerticalLineView shows a vertical line at the bar of its single point.
type VerticalLineView struct {
	Base
	src Source[VerticalLineProps]
}

// NewVerticalLineView returns a dirty view of src.
func NewVerticalLineView(id string, src Source[VerticalLineProps], env *Env) *VerticalLineView {
	v := &VerticalLineView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *VerticalLineView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 1)
	if !ok {
		return
	}
	pt := pr.pts[0]
	line := shapes.NewVerticalLine()
	line.SetData(&shapes.VerticalLineData{X: pt.X, Line: v.src.Properties().Line})
	v.add(g, line)
	v.addAnchors(g, []anchor.Point{{Point: pt, Role: anchor.RoleEdgeHorizontal}})
}
