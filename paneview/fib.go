package paneview

import (
	"image/color"
	"math"
	"slices"
	"strconv"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/levelcache"
	"github.com/gogpu/chartdraw/shapes"
)

// FibLevel is one retracement ratio.
type FibLevel struct {
	Coeff   float64
	Color   color.Color
	Visible bool
}

// DefaultFibLevels returns the standard retracement and extension ratios.
// 0, 0.382, 0.618 and 1 are visible.
func DefaultFibLevels() []FibLevel {
	coeffs := []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1, 1.618, 2.618, 3.618, 4.236}
	colors := []string{
		"#787b86", "#f23645", "#ff9800", "#4caf50", "#089981", "#00bcd4",
		"#787b86", "#2962ff", "#f23645", "#9c27b0", "#e91e63",
	}
	out := make([]FibLevel, len(coeffs))
	for i, c := range coeffs {
		out[i] = FibLevel{
			Coeff:   c,
			Color:   chartdraw.MustParseColor(colors[i]),
			Visible: c == 0 || c == 0.382 || c == 0.618 || c == 1,
		}
	}
	return out
}

// FibRetracementProps configures a Fibonacci retracement.
type FibRetracementProps struct {
	Levels []FibLevel
	// LevelWidth and LevelDash style the level lines, which take the color
	// of their level.
	LevelWidth float64
	LevelDash  chartdraw.DashStyle
	// TrendLine is drawn between the two points when visible.
	TrendLine chartdraw.LineStyle
	// FillOpacity, when positive, fills the bands between adjacent visible
	// levels with the color of the upper level.
	FillOpacity float64
	ExtendLeft  bool
	ExtendRight bool
	// Reverse puts coefficient 0 at the first point instead of the second.
	Reverse bool
	// ShowLabels paints the coefficients, ShowPrices appends the level
	// price.
	ShowLabels bool
	ShowPrices bool
}

// FibRetracementView shows horizontal levels between two points.
type FibRetracementView struct {
	Base
	src Source[FibRetracementProps]
}

// NewFibRetracementView returns a dirty view of src.
func NewFibRetracementView(id string, src Source[FibRetracementProps], env *Env) *FibRetracementView {
	v := &FibRetracementView{src: src}
	v.init(id, env, v.update)
	return v
}

// fibKind names the level cache shared by all retracements.
const fibKind = "fib"

// labelGap separates level labels from the level line start, in CSS px.
const labelGap = 4

type fibLine struct {
	index int
	level FibLevel
	y     float64
	price float64
}

// levels returns the visible levels with their screen position, sorted by
// coefficient.
func (v *FibRetracementView) levels(pr projection, props FibRetracementProps) []fibLine {
	zero, one := 1, 0
	if props.Reverse {
		zero, one = 0, 1
	}
	c1, c2 := pr.pts[zero].Y, pr.pts[one].Y
	p1, p2 := pr.domain[zero].Price, pr.domain[one].Price
	mode := pr.scale.mode()

	var out []fibLine
	for i, l := range props.Levels {
		if !l.Visible {
			continue
		}
		y, price := geom.LevelPosition(mode, c1, c2, p1, p2, l.Coeff, pr.scale)
		if !finite(y) {
			continue
		}
		out = append(out, fibLine{index: i, level: l, y: y, price: price})
	}
	slices.SortStableFunc(out, func(a, b fibLine) int {
		switch {
		case a.level.Coeff < b.level.Coeff:
			return -1
		case a.level.Coeff > b.level.Coeff:
			return 1
		}
		return 0
	})
	return out
}

func (v *FibRetracementView) update(g *chartdraw.Composite, p chartdraw.RenderParams) {
	pr, ok := project(v.src, 2)
	if !ok {
		return
	}
	props := v.src.Properties()
	lines := v.levels(pr, props)
	x0 := min(pr.pts[0].X, pr.pts[1].X)
	x1 := max(pr.pts[0].X, pr.pts[1].X)
	start, end := x0, x1
	if props.ExtendLeft {
		start = math.Inf(-1)
	}
	if props.ExtendRight {
		end = math.Inf(1)
	}

	if props.FillOpacity > 0 {
		for i := 1; i < len(lines); i++ {
			a, b := lines[i-1], lines[i]
			r := shapes.NewRectangle()
			r.SetData(&shapes.RectangleData{
				Points:      [2]geom.Point{geom.Pt(x0, a.y), geom.Pt(x1, b.y)},
				Fill:        chartdraw.FillStyle{Color: b.level.Color, Opacity: props.FillOpacity, Visible: true},
				ExtendLeft:  props.ExtendLeft,
				ExtendRight: props.ExtendRight,
			})
			v.add(g, r)
		}
	}

	width := props.LevelWidth
	if width <= 0 {
		width = 1
	}
	for _, l := range lines {
		h := shapes.NewHorizontalLine()
		h.SetData(&shapes.HorizontalLineData{
			Y:       l.y,
			Line:    chartdraw.LineStyle{Color: l.level.Color, Width: width, Dash: props.LevelDash},
			Start:   start,
			End:     end,
			Bounded: true,
		})
		v.add(g, h)
	}

	if props.TrendLine.Visible() {
		t := shapes.NewTrendLine()
		t.SetData(&shapes.TrendLineData{
			Points: [2]geom.Point{pr.pts[0], pr.pts[1]},
			Line:   props.TrendLine,
		})
		v.add(g, t)
	}

	if props.ShowLabels && len(lines) > 0 {
		v.addLabels(g, p, pr, props, lines, x0)
	}
	v.addAnchors(g, freeAnchors(pr.pts[:2]))
}

func (v *FibRetracementView) addLabels(g *chartdraw.Composite, p chartdraw.RenderParams, pr projection, props FibRetracementProps, lines []fibLine, x0 float64) {
	cache := v.env.LevelCache(fibKind)
	st := levelcache.State{
		Points:     pr.pts[:2],
		Dark:       v.env.Dark,
		PixelRatio: p.Ratio(),
	}
	// Labels sit left of the levels, or at the pane edge when the levels
	// already run to it.
	at, align := x0-labelGap, levelcache.AlignRight
	if props.ExtendLeft {
		at, align = labelGap, levelcache.AlignLeft
	}
	placements := make([]levelcache.Placement, 0, len(lines))
	for _, l := range lines {
		text := strconv.FormatFloat(l.level.Coeff, 'f', -1, 64)
		if props.ShowPrices {
			text += " (" + strconv.FormatFloat(l.price, 'f', 2, 64) + ")"
		}
		st.Levels = append(st.Levels, levelcache.Level{
			Index:   l.index,
			Visible: true,
			Color:   l.level.Color,
			Coeff:   l.level.Coeff,
			Text:    text,
		})
		placements = append(placements, levelcache.Placement{
			Level: l.index,
			At:    geom.Pt(at, l.y),
			Align: align,
		})
	}
	cache.UpdateSource(v.id, st)
	v.add(g, cache.Renderer(v.id, placements))
}
