// Package paneview adapts drawing models to renderer graphs. A view pulls
// the domain points and properties of one drawing from its Source, converts
// the points to screen coordinates through the pane's scales and assembles
// a chartdraw.Composite from the shapes, label and anchor renderers.
//
// Views are lazy. Invalidate marks a view dirty; the next Renderer call
// rebuilds the graph from scratch and marks it clean again. Degenerate or
// missing input (too few points, an empty price scale, a series without
// data) yields an empty graph rather than an error.
package paneview

import (
	"context"
	"image/color"
	"math"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/anchor"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/icons"
	"github.com/gogpu/chartdraw/label"
	"github.com/gogpu/chartdraw/levelcache"
)

// State is the lifecycle state of a view.
type State uint8

const (
	// Clean views return their memoized graph.
	Clean State = iota
	// Dirty views rebuild on the next Renderer call.
	Dirty
)

func (s State) String() string {
	if s == Clean {
		return "clean"
	}
	return "dirty"
}

// IconRequester starts loading icons that are not cached yet. It calls done
// once, on the render thread, after every key has finished loading.
type IconRequester interface {
	Request(keys []icons.Key, done func())
}

// SyncRequester loads icons synchronously through a Loader. It suits
// batch rendering where there is no later frame to wait for.
type SyncRequester struct {
	Loader *icons.Loader
}

// Request implements IconRequester.
func (r SyncRequester) Request(keys []icons.Key, done func()) {
	_ = r.Loader.Load(context.Background(), keys, done)
}

// Env is the configuration and the caches shared by all views of a pane.
type Env struct {
	Measurer  label.Measurer
	Icons     *icons.Cache
	Requester IconRequester
	Tolerance chartdraw.Tolerance
	// Dark selects the dark theme for label defaults and level caches.
	Dark bool
	// Theme names the icon theme.
	Theme           string
	AnchorColor     color.Color
	AnchorBackColor color.Color
	// LevelRowHeight is the row height of level caches in CSS px.
	LevelRowHeight float64
	// LevelOptions configure level caches created by LevelCache.
	LevelOptions []levelcache.Option

	levels map[string]*levelcache.Cache
}

// NewEnv returns an environment with default settings and an estimating
// measurer.
func NewEnv() *Env {
	return &Env{
		Measurer:        label.Estimate{},
		Icons:           icons.New(),
		Tolerance:       chartdraw.DefaultTolerance(),
		Theme:           "light",
		AnchorColor:     color.RGBA{R: 0x29, G: 0x62, B: 0xff, A: 0xff},
		AnchorBackColor: color.White,
		LevelRowHeight:  18,
	}
}

// LevelCache returns the level cache of a tool kind, creating it on first
// use.
func (e *Env) LevelCache(kind string) *levelcache.Cache {
	if c, ok := e.levels[kind]; ok {
		return c
	}
	if e.levels == nil {
		e.levels = make(map[string]*levelcache.Cache)
	}
	opts := append([]levelcache.Option{levelcache.WithMeasurer(e.Measurer)}, e.LevelOptions...)
	c := levelcache.New(kind, e.LevelRowHeight, opts...)
	e.levels[kind] = c
	return c
}

// SetSymbol forwards an instrument change to every level cache.
func (e *Env) SetSymbol(symbol string) {
	for _, c := range e.levels {
		c.SetSymbol(symbol)
	}
}

// tolerant is implemented by renderers with configurable hit tolerance.
type tolerant interface {
	SetTolerance(chartdraw.Tolerance)
}

// Base holds the state shared by all views. Views embed it and pass their
// update function to init.
type Base struct {
	id       string
	env      *Env
	state    State
	graph    *chartdraw.Composite
	params   chartdraw.RenderParams
	selected bool
	hovered  *geom.Point
	update   func(g *chartdraw.Composite, p chartdraw.RenderParams)
}

func (b *Base) init(id string, env *Env, update func(*chartdraw.Composite, chartdraw.RenderParams)) {
	chartdraw.Assert(env != nil, "paneview: nil Env")
	b.id = id
	b.env = env
	b.update = update
	b.state = Dirty
}

// ID returns the drawing identifier.
func (b *Base) ID() string { return b.id }

// State returns the lifecycle state.
func (b *Base) State() State { return b.state }

// Invalidate marks the view dirty after a model change.
func (b *Base) Invalidate() { b.state = Dirty }

// Selected reports whether anchors are shown.
func (b *Base) Selected() bool { return b.selected }

// SetSelected shows or hides the anchors.
func (b *Base) SetSelected(v bool) {
	if b.selected != v {
		b.selected = v
		b.Invalidate()
	}
}

// SetHovered sets the live pointer position used for anchor halos; nil
// when the pointer left the pane.
func (b *Base) SetHovered(pt *geom.Point) {
	b.hovered = pt
	if b.selected {
		b.Invalidate()
	}
}

// Renderer returns the renderer graph of the view, rebuilding it when the
// view is dirty or the render params changed.
func (b *Base) Renderer(p chartdraw.RenderParams) chartdraw.Renderer {
	if b.state == Clean && b.graph != nil && b.params == p {
		return b.graph
	}
	// Clean before update: an invalidation raised while updating, such as a
	// synchronous icon load, must survive into the next call.
	g := chartdraw.NewComposite()
	b.graph, b.params, b.state = g, p, Clean
	b.update(g, p)
	chartdraw.Logger().Debug("paneview: graph rebuilt", "id", b.id, "renderers", g.Len())
	return g
}

// add appends renderers to g after applying the pane tolerance.
func (b *Base) add(g *chartdraw.Composite, rs ...chartdraw.Renderer) {
	for _, r := range rs {
		if t, ok := r.(tolerant); ok {
			t.SetTolerance(b.env.Tolerance)
		}
		g.Append(r)
	}
}

// addAnchors appends the anchor renderer when the view is selected. It must
// be the last renderer added so handles win hit tests.
func (b *Base) addAnchors(g *chartdraw.Composite, pts []anchor.Point) {
	if !b.selected || len(pts) == 0 {
		return
	}
	a := anchor.New()
	a.SetData(&anchor.Data{
		Points:          pts,
		Color:           b.env.AnchorColor,
		BackgroundColor: b.env.AnchorBackColor,
		Hovered:         b.hovered,
	})
	b.add(g, a)
}

// projection is the screen state of a source for one update.
type projection struct {
	pts    []geom.Point
	domain []DomainPoint
	scale  boundScale
}

// project converts the domain points of src to screen points. It reports
// false when fewer than minPoints points exist, the price scale is empty,
// the series has no first value or a point has no finite coordinate.
// Missing scales are contract violations and panic.
func project[P any](src Source[P], minPoints int) (projection, bool) {
	ps := chartdraw.Ensure(src.PriceScale(), "paneview: price scale")
	ts := chartdraw.Ensure(src.TimeScale(), "paneview: time scale")
	owner := chartdraw.Ensure(src.OwnerSource(), "paneview: owner source")
	domain := src.Points()
	if len(domain) < minPoints || ps.IsEmpty() {
		return projection{}, false
	}
	first, ok := owner.FirstValue()
	if !ok {
		return projection{}, false
	}
	pr := projection{domain: domain, scale: boundScale{scale: ps, first: first}}
	pr.pts = make([]geom.Point, len(domain))
	for i, d := range domain {
		pt := geom.Pt(ts.IndexToCoordinate(d.Index), ps.PriceToCoordinate(d.Price, first))
		if !pt.IsFinite() {
			return projection{}, false
		}
		pr.pts[i] = pt
	}
	return pr, true
}

// freeAnchors returns one free handle per point.
func freeAnchors(pts []geom.Point) []anchor.Point {
	return anchor.Points(pts...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
