package main

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/label"
	"github.com/gogpu/chartdraw/paneview"
)

// Scene is a pane with drawings, as read from a YAML file.
type Scene struct {
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Background string     `yaml:"background"`
	Dark       bool       `yaml:"dark"`
	Theme      string     `yaml:"theme"`
	Symbol     string     `yaml:"symbol"`
	Icons      string     `yaml:"icons"`
	Price      PriceSpec  `yaml:"price"`
	Bars       BarSpec    `yaml:"bars"`
	FirstValue *float64   `yaml:"first_value"`
	Tools      []ToolSpec `yaml:"tools"`
	Tolerance  *TolSpec   `yaml:"tolerance"`
	Font       FontSpec   `yaml:"font"`
}

// PriceSpec describes the price scale: Min maps to the bottom edge and Max
// to the top.
type PriceSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	Log bool    `yaml:"log"`
}

// BarSpec places bar i at Offset + i*Spacing.
type BarSpec struct {
	Offset  float64 `yaml:"offset"`
	Spacing float64 `yaml:"spacing"`
}

// TolSpec overrides the hit tolerances in CSS px.
type TolSpec struct {
	Mouse float64 `yaml:"mouse"`
	Touch float64 `yaml:"touch"`
}

// LineSpec is a stroke style.
type LineSpec struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
	Dash  string  `yaml:"dash"`
}

// FillSpec is a fill style.
type FillSpec struct {
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

// FontSpec is a text face.
type FontSpec struct {
	Family string  `yaml:"family"`
	Size   float64 `yaml:"size"`
	Bold   bool    `yaml:"bold"`
	Italic bool    `yaml:"italic"`
}

// LevelSpec is a Fibonacci level (Coeff) or a Gann ray (Price/Time).
type LevelSpec struct {
	Coeff   float64 `yaml:"coeff"`
	Price   float64 `yaml:"price"`
	Time    float64 `yaml:"time"`
	Color   string  `yaml:"color"`
	Visible *bool   `yaml:"visible"`
}

// ToolSpec is one drawing. Fields not used by a kind are ignored.
type ToolSpec struct {
	ID          string       `yaml:"id"`
	Kind        string       `yaml:"kind"`
	Points      [][2]float64 `yaml:"points"`
	Selected    bool         `yaml:"selected"`
	Line        LineSpec     `yaml:"line"`
	Fill        *FillSpec    `yaml:"fill"`
	MiddleLine  *LineSpec    `yaml:"middle_line"`
	ExtendLeft  bool         `yaml:"extend_left"`
	ExtendRight bool         `yaml:"extend_right"`
	LeftEnd     string       `yaml:"left_end"`
	RightEnd    string       `yaml:"right_end"`
	Closed      bool         `yaml:"closed"`
	Wedge       bool         `yaml:"wedge"`
	Reverse     bool         `yaml:"reverse"`
	Labels      bool         `yaml:"labels"`
	Prices      bool         `yaml:"prices"`
	Levels      []LevelSpec  `yaml:"levels"`
	Text        string       `yaml:"text"`
	Font        *FontSpec    `yaml:"font"`
	Color       string       `yaml:"color"`
	Background  string       `yaml:"background"`
	Border      string       `yaml:"border"`
	Padding     float64      `yaml:"padding"`
	Radius      float64      `yaml:"radius"`
	Wrap        float64      `yaml:"wrap"`
	Align       string       `yaml:"align"`
	IconNames   []string     `yaml:"icons"`
	Tooltip     string       `yaml:"tooltip"`
}

// View is the part of a pane view the demo drives.
type View interface {
	ID() string
	Renderer(p chartdraw.RenderParams) chartdraw.Renderer
	SetSelected(bool)
}

// ParseScene decodes a scene and fills in defaults.
func ParseScene(r io.Reader) (*Scene, error) {
	var sc Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if sc.Width <= 0 {
		sc.Width = 800
	}
	if sc.Height <= 0 {
		sc.Height = 600
	}
	if sc.Bars.Spacing == 0 {
		sc.Bars.Spacing = 10
	}
	if sc.Theme == "" {
		sc.Theme = "light"
		if sc.Dark {
			sc.Theme = "dark"
		}
	}
	if sc.Font.Size <= 0 {
		sc.Font.Size = 12
	}
	for i := range sc.Tools {
		if sc.Tools[i].ID == "" {
			sc.Tools[i].ID = fmt.Sprintf("%s-%d", sc.Tools[i].Kind, i)
		}
	}
	return &sc, nil
}

// Env returns the pane environment configured from the scene.
func (sc *Scene) Env(m label.Measurer) *paneview.Env {
	env := paneview.NewEnv()
	if m != nil {
		env.Measurer = m
	}
	env.Dark = sc.Dark
	env.Theme = sc.Theme
	if sc.Tolerance != nil {
		env.Tolerance = chartdraw.Tolerance{Mouse: sc.Tolerance.Mouse, Touch: sc.Tolerance.Touch}
	}
	env.SetSymbol(sc.Symbol)
	return env
}

// scales returns the collaborators shared by every drawing of the scene.
func (sc *Scene) scales() (paneview.PriceScale, paneview.TimeScale, paneview.OwnerSource) {
	mode := geom.ScaleLinear
	if sc.Price.Log {
		mode = geom.ScaleLog
	}
	var ps paneview.MapperScale
	ps.Mode = mode
	if m, ok := geom.NewRangeScale(mode, sc.Price.Min, sc.Price.Max, 0, sc.Height); ok {
		ps.Mapper = m
	}
	first := sc.Price.Min
	if sc.FirstValue != nil {
		first = *sc.FirstValue
	}
	return ps, paneview.BarScale{Offset: sc.Bars.Offset, Spacing: sc.Bars.Spacing}, paneview.FirstValue(first)
}

// Views builds one view per tool in scene order.
func (sc *Scene) Views(env *paneview.Env) ([]View, error) {
	views := make([]View, 0, len(sc.Tools))
	for _, t := range sc.Tools {
		v, err := sc.view(t, env)
		if err != nil {
			return nil, fmt.Errorf("tool %q: %w", t.ID, err)
		}
		v.SetSelected(t.Selected)
		views = append(views, v)
	}
	return views, nil
}

func static[P any](sc *Scene, t ToolSpec, props P) *paneview.Static[P] {
	ps, ts, owner := sc.scales()
	pts := make([]paneview.DomainPoint, len(t.Points))
	for i, p := range t.Points {
		pts[i] = paneview.DomainPoint{Index: p[0], Price: p[1]}
	}
	return &paneview.Static[P]{DomainPoints: pts, Props: props, Price: ps, Time: ts, Owner: owner}
}

func (sc *Scene) view(t ToolSpec, env *paneview.Env) (View, error) {
	var p parser
	line := p.line(t.Line)
	fill := p.fill(t.Fill)
	leftEnd, rightEnd := p.end(t.LeftEnd), p.end(t.RightEnd)
	var middle chartdraw.LineStyle
	if t.MiddleLine != nil {
		middle = p.line(*t.MiddleLine)
	}

	kind := strings.ToLower(t.Kind)
	var v View
	switch kind {
	case "trendline", "ray", "extended":
		props := paneview.TrendLineProps{
			Line: line, ExtendLeft: t.ExtendLeft, ExtendRight: t.ExtendRight,
			LeftEnd: leftEnd, RightEnd: rightEnd,
		}
		switch kind {
		case "ray":
			props.ExtendRight = true
		case "extended":
			props.ExtendLeft, props.ExtendRight = true, true
		}
		v = paneview.NewTrendLineView(t.ID, static(sc, t, props), env)
	case "horizontal":
		v = paneview.NewHorizontalLineView(t.ID, static(sc, t, paneview.HorizontalLineProps{Line: line}), env)
	case "vertical":
		v = paneview.NewVerticalLineView(t.ID, static(sc, t, paneview.VerticalLineProps{Line: line}), env)
	case "rectangle":
		v = paneview.NewRectangleView(t.ID, static(sc, t, paneview.RectangleProps{
			Border: line, Fill: fill, ExtendLeft: t.ExtendLeft, ExtendRight: t.ExtendRight, MiddleLine: middle,
		}), env)
	case "triangle":
		v = paneview.NewTriangleView(t.ID, static(sc, t, paneview.TriangleProps{Line: line, Fill: fill}), env)
	case "ellipse":
		v = paneview.NewEllipseView(t.ID, static(sc, t, paneview.EllipseProps{Line: line, Fill: fill}), env)
	case "arc":
		v = paneview.NewArcView(t.ID, static(sc, t, paneview.ArcProps{Line: line, Fill: fill, Wedge: t.Wedge}), env)
	case "polyline", "polygon":
		v = paneview.NewPolylineView(t.ID, static(sc, t, paneview.PolylineProps{
			Line: line, Fill: fill, Closed: t.Closed || kind == "polygon", LeftEnd: leftEnd, RightEnd: rightEnd,
		}), env)
	case "parallel_channel", "disjoint_channel":
		props := paneview.ChannelProps{
			Line: line, Fill: fill, ExtendLeft: t.ExtendLeft, ExtendRight: t.ExtendRight, MiddleLine: middle,
		}
		if kind == "parallel_channel" {
			v = paneview.NewParallelChannelView(t.ID, static(sc, t, props), env)
		} else {
			v = paneview.NewDisjointChannelView(t.ID, static(sc, t, props), env)
		}
	case "curve", "double_curve":
		props := paneview.CurveProps{Line: line, Fill: fill, LeftEnd: leftEnd, RightEnd: rightEnd}
		if kind == "curve" {
			v = paneview.NewCurveView(t.ID, static(sc, t, props), env)
		} else {
			v = paneview.NewDoubleCurveView(t.ID, static(sc, t, props), env)
		}
	case "fib", "fib_retracement":
		v = paneview.NewFibRetracementView(t.ID, static(sc, t, p.fib(t, line)), env)
	case "gann", "gann_fan":
		v = paneview.NewGannFanView(t.ID, static(sc, t, p.gann(t)), env)
	case "text":
		v = paneview.NewTextView(t.ID, static(sc, t, p.text(t, sc.Font)), env)
	case "marker":
		v = paneview.NewMarkerView(t.ID, static(sc, t, p.marker(t, sc.Font)), env)
	default:
		return nil, fmt.Errorf("unknown kind %q", t.Kind)
	}
	if p.err != nil {
		return nil, p.err
	}
	return v, nil
}

// parser converts style specs and keeps the first error.
type parser struct {
	err error
}

func (p *parser) color(s string) color.Color {
	if s == "" || p.err != nil {
		return nil
	}
	c, err := chartdraw.ParseColor(s)
	if err != nil {
		p.err = err
		return nil
	}
	return c
}

func (p *parser) line(l LineSpec) chartdraw.LineStyle {
	ls := chartdraw.LineStyle{Color: p.color(l.Color), Width: l.Width}
	if ls.Color == nil {
		ls.Color = color.Black
	}
	if ls.Width == 0 {
		ls.Width = 1
	}
	switch strings.ToLower(l.Dash) {
	case "", "solid":
	case "dotted":
		ls.Dash = chartdraw.DashDotted
	case "dashed":
		ls.Dash = chartdraw.DashDashed
	case "large_dashed":
		ls.Dash = chartdraw.DashLargeDashed
	case "sparse_dotted":
		ls.Dash = chartdraw.DashSparseDotted
	default:
		p.fail(fmt.Errorf("unknown dash %q", l.Dash))
	}
	return ls
}

func (p *parser) fill(f *FillSpec) chartdraw.FillStyle {
	if f == nil {
		return chartdraw.FillStyle{}
	}
	opacity := f.Opacity
	if opacity == 0 {
		opacity = 1
	}
	return chartdraw.FillStyle{Color: p.color(f.Color), Opacity: opacity, Visible: f.Color != ""}
}

func (p *parser) end(s string) chartdraw.LineEnd {
	switch strings.ToLower(s) {
	case "", "normal":
		return chartdraw.LineEndNormal
	case "arrow":
		return chartdraw.LineEndArrow
	case "circle":
		return chartdraw.LineEndCircle
	}
	p.fail(fmt.Errorf("unknown line end %q", s))
	return chartdraw.LineEndNormal
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *parser) font(f *FontSpec, def FontSpec) chartdraw.Font {
	if f == nil {
		f = &def
	}
	size := f.Size
	if size <= 0 {
		size = def.Size
	}
	return chartdraw.Font{Family: f.Family, Size: size, Bold: f.Bold, Italic: f.Italic}
}

func visible(v *bool) bool { return v == nil || *v }

func (p *parser) fib(t ToolSpec, line chartdraw.LineStyle) paneview.FibRetracementProps {
	props := paneview.FibRetracementProps{
		Levels:      paneview.DefaultFibLevels(),
		LevelWidth:  line.Width,
		LevelDash:   line.Dash,
		ExtendLeft:  t.ExtendLeft,
		ExtendRight: t.ExtendRight,
		Reverse:     t.Reverse,
		ShowLabels:  t.Labels,
		ShowPrices:  t.Prices,
	}
	if t.Fill != nil {
		props.FillOpacity = t.Fill.Opacity
	}
	if t.MiddleLine != nil {
		props.TrendLine = p.line(*t.MiddleLine)
		props.TrendLine.Dash = chartdraw.DashDashed
	}
	if len(t.Levels) > 0 {
		props.Levels = props.Levels[:0]
		for _, l := range t.Levels {
			c := p.color(l.Color)
			if c == nil {
				c = line.Color
			}
			props.Levels = append(props.Levels, paneview.FibLevel{Coeff: l.Coeff, Color: c, Visible: visible(l.Visible)})
		}
	}
	return props
}

func (p *parser) gann(t ToolSpec) paneview.GannFanProps {
	props := paneview.GannFanProps{
		Levels:     paneview.DefaultGannLevels(),
		LineWidth:  t.Line.Width,
		ShowLabels: t.Labels,
	}
	if t.Fill != nil {
		props.FillOpacity = t.Fill.Opacity
	}
	if len(t.Levels) > 0 {
		props.Levels = props.Levels[:0]
		for _, l := range t.Levels {
			c := p.color(l.Color)
			if c == nil {
				c = color.Black
			}
			props.Levels = append(props.Levels, paneview.GannLevel{Price: l.Price, Time: l.Time, Color: c, Visible: visible(l.Visible)})
		}
	}
	return props
}

func (p *parser) text(t ToolSpec, def FontSpec) paneview.TextProps {
	props := paneview.TextProps{
		Text:            t.Text,
		Font:            p.font(t.Font, def),
		Color:           p.color(t.Color),
		WordWrapWidth:   t.Wrap,
		Padding:         t.Padding,
		BackgroundColor: p.color(t.Background),
		BorderColor:     p.color(t.Border),
		BorderWidth:     t.Line.Width,
		Radius:          t.Radius,
		Icons:           t.IconNames,
		Tooltip:         t.Tooltip,
	}
	switch strings.ToLower(t.Align) {
	case "", "left":
	case "center":
		props.HAlign = label.AlignCenter
	case "right":
		props.HAlign = label.AlignRight
	default:
		p.fail(fmt.Errorf("unknown align %q", t.Align))
	}
	return props
}

func (p *parser) marker(t ToolSpec, def FontSpec) paneview.MarkerProps {
	radius := t.Radius
	if radius <= 0 {
		radius = 9
	}
	props := paneview.MarkerProps{
		Letter:      t.Text,
		Radius:      radius,
		Font:        p.font(t.Font, def),
		TextColor:   p.color(t.Color),
		Background:  p.color(t.Background),
		BorderColor: p.color(t.Border),
		BorderWidth: t.Line.Width,
		Tooltip:     t.Tooltip,
	}
	if props.TextColor == nil {
		props.TextColor = color.White
	}
	return props
}
