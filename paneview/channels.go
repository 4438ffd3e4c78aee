package paneview

import (
	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/anchor"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/shapes"
)

// ChannelProps configures parallel and disjoint channels.
type ChannelProps struct {
	Line        chartdraw.LineStyle
	Fill        chartdraw.FillStyle
	ExtendLeft  bool
	ExtendRight bool
	// MiddleLine is only drawn by parallel channels.
	MiddleLine chartdraw.LineStyle
}

// ParallelChannelView shows a channel whose first boundary runs through the
// first two points and whose second boundary is the parallel line through
// the third.
type ParallelChannelView struct {
	Base
	src Source[ChannelProps]
}

// NewParallelChannelView returns a dirty view of src.
func NewParallelChannelView(id string, src Source[ChannelProps], env *Env) *ParallelChannelView {
	v := &ParallelChannelView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *ParallelChannelView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 3)
	if !ok {
		return
	}
	p0, p1, p2 := pr.pts[0], pr.pts[1], pr.pts[2]
	p3 := p2.Add(p1.Sub(p0))
	props := v.src.Properties()
	ch := shapes.NewParallelChannel()
	ch.SetData(&shapes.ParallelChannelData{
		Points:      [4]geom.Point{p0, p1, p2, p3},
		Line:        props.Line,
		Fill:        props.Fill,
		ExtendLeft:  props.ExtendLeft,
		ExtendRight: props.ExtendRight,
		MiddleLine:  props.MiddleLine,
	})
	v.add(g, ch)

	pts := freeAnchors([]geom.Point{p0, p1, p2})
	pts = append(pts, anchor.Point{Point: p3, Index: 3})
	v.addAnchors(g, pts)
}

// DisjointChannelView shows a channel with two independent boundaries.
// With three points the second boundary mirrors the slope of the first;
// a fourth point places it freely.
type DisjointChannelView struct {
	Base
	src Source[ChannelProps]
}

// NewDisjointChannelView returns a dirty view of src.
func NewDisjointChannelView(id string, src Source[ChannelProps], env *Env) *DisjointChannelView {
	v := &DisjointChannelView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *DisjointChannelView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 3)
	if !ok {
		return
	}
	p0, p1, p2 := pr.pts[0], pr.pts[1], pr.pts[2]
	var p3 geom.Point
	if len(pr.pts) >= 4 {
		p3 = pr.pts[3]
	} else {
		p3 = geom.Pt(p1.X, p2.Y-(p1.Y-p0.Y))
	}
	props := v.src.Properties()
	ch := shapes.NewDisjointChannel()
	ch.SetData(&shapes.DisjointChannelData{
		Points:      [4]geom.Point{p0, p1, p2, p3},
		Line:        props.Line,
		Fill:        props.Fill,
		ExtendLeft:  props.ExtendLeft,
		ExtendRight: props.ExtendRight,
	})
	v.add(g, ch)
	v.addAnchors(g, freeAnchors([]geom.Point{p0, p1, p2, p3}))
}
