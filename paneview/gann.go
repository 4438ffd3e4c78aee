package paneview

import (
	"image/color"
	"slices"
	"strconv"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/levelcache"
	"github.com/gogpu/chartdraw/shapes"
)

// GannLevel is one ray of a fan: Price units of price per Time units of
// time, relative to the 1x1 ray through the second point.
type GannLevel struct {
	Price   float64
	Time    float64
	Color   color.Color
	Visible bool
}

// Ratio returns the slope multiplier of the ray.
func (l GannLevel) Ratio() float64 { return l.Price / l.Time }

// Label returns the "price/time" text of the ray.
func (l GannLevel) Label() string {
	return strconv.FormatFloat(l.Price, 'f', -1, 64) + "/" + strconv.FormatFloat(l.Time, 'f', -1, 64)
}

// DefaultGannLevels returns the nine classic fan rays, all visible.
func DefaultGannLevels() []GannLevel {
	ratios := [][2]float64{{1, 8}, {1, 4}, {1, 3}, {1, 2}, {1, 1}, {2, 1}, {3, 1}, {4, 1}, {8, 1}}
	colors := []string{
		"#ff9800", "#089981", "#4caf50", "#00bcd4", "#787b86",
		"#2962ff", "#9c27b0", "#e91e63", "#f23645",
	}
	out := make([]GannLevel, len(ratios))
	for i, r := range ratios {
		out[i] = GannLevel{Price: r[0], Time: r[1], Color: chartdraw.MustParseColor(colors[i]), Visible: true}
	}
	return out
}

// GannFanProps configures a Gann fan.
type GannFanProps struct {
	Levels []GannLevel
	// LineWidth styles every ray; rays take the color of their level.
	LineWidth float64
	// FillOpacity, when positive, fills the wedges between adjacent visible
	// rays.
	FillOpacity float64
	ShowLabels  bool
}

// GannFanView shows rays fanning out of the first point at fixed
// price/time ratios of the vector to the second point.
type GannFanView struct {
	Base
	src Source[GannFanProps]
}

// NewGannFanView returns a dirty view of src.
func NewGannFanView(id string, src Source[GannFanProps], env *Env) *GannFanView {
	v := &GannFanView{src: src}
	v.init(id, env, v.update)
	return v
}

const gannKind = "gann"

type gannRay struct {
	index int
	level GannLevel
	end   geom.Point
}

func (v *GannFanView) update(g *chartdraw.Composite, p chartdraw.RenderParams) {
	pr, ok := project(v.src, 2)
	if !ok {
		return
	}
	origin, d := pr.pts[0], pr.pts[1].Sub(pr.pts[0])
	if d.X == 0 && d.Y == 0 {
		return
	}
	props := v.src.Properties()
	var rays []gannRay
	for i, l := range props.Levels {
		if !l.Visible || l.Time == 0 {
			continue
		}
		end := origin.Add(geom.Pt(d.X, d.Y*l.Ratio()))
		// A zero ratio on a vertical fan collapses the ray onto its origin.
		if !end.IsFinite() || end == origin {
			continue
		}
		rays = append(rays, gannRay{index: i, level: l, end: end})
	}
	slices.SortStableFunc(rays, func(a, b gannRay) int {
		switch {
		case a.level.Ratio() < b.level.Ratio():
			return -1
		case a.level.Ratio() > b.level.Ratio():
			return 1
		}
		return 0
	})

	if props.FillOpacity > 0 {
		view := p.Viewport()
		for i := 1; i < len(rays); i++ {
			a, b := rays[i-1], rays[i]
			wedge := geom.ClipPolygonToBox([]geom.Point{origin, far(origin, a.end, view), far(origin, b.end, view)}, view)
			if len(wedge) < 3 {
				continue
			}
			poly := shapes.NewPolygon()
			poly.SetData(&shapes.PolygonData{
				Points: wedge,
				Fill:   chartdraw.FillStyle{Color: b.level.Color, Opacity: props.FillOpacity, Visible: true},
				Closed: true,
			})
			v.add(g, poly)
		}
	}

	width := props.LineWidth
	if width <= 0 {
		width = 1
	}
	for _, r := range rays {
		t := shapes.NewTrendLine()
		t.SetData(&shapes.TrendLineData{
			Points:      [2]geom.Point{origin, r.end},
			Line:        chartdraw.LineStyle{Color: r.level.Color, Width: width},
			ExtendRight: true,
		})
		v.add(g, t)
	}

	if props.ShowLabels && len(rays) > 0 {
		cache := v.env.LevelCache(gannKind)
		st := levelcache.State{Points: pr.pts[:2], Dark: v.env.Dark, PixelRatio: p.Ratio()}
		placements := make([]levelcache.Placement, 0, len(rays))
		for _, r := range rays {
			st.Levels = append(st.Levels, levelcache.Level{
				Index:   r.index,
				Visible: true,
				Color:   r.level.Color,
				Coeff:   r.level.Ratio(),
				Text:    r.level.Label(),
			})
			placements = append(placements, levelcache.Placement{
				Level: r.index,
				At:    r.end.Add(geom.Pt(labelGap, 0)),
				Align: levelcache.AlignLeft,
			})
		}
		cache.UpdateSource(v.id, st)
		v.add(g, cache.Renderer(v.id, placements))
	}
	v.addAnchors(g, freeAnchors(pr.pts[:2]))
}

// far returns a point on the ray from origin through through that lies
// beyond every corner of view.
func far(origin, through geom.Point, view geom.Box) geom.Point {
	dir := through.Sub(origin)
	reach := view.Width() + view.Height() + origin.Sub(view.Center()).Length()
	return origin.Add(dir.Mul(2 * reach / dir.Length()))
}
