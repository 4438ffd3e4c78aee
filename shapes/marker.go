package shapes

import (
	"image/color"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// LetterMarkerData is the snapshot drawn by LetterMarker.
type LetterMarkerData struct {
	Center      geom.Point
	Radius      float64
	Letter      string
	Font        chartdraw.Font
	TextColor   color.Color
	Background  color.Color
	BorderColor color.Color
	BorderWidth float64
	// Tooltip is attached to hits.
	Tooltip *chartdraw.Tooltip
	// OnClick makes hits HitCustom with the handler for both click and tap.
	OnClick func()
}

// LetterMarker renders a letter centered in a circle, used for event
// markers on the time axis.
type LetterMarker struct {
	hitConfig
	data     *LetterMarkerData
	measurer TextMeasurer
}

// NewLetterMarker returns an empty marker. m measures the letter for
// centering; nil falls back to an estimate.
func NewLetterMarker(m TextMeasurer) *LetterMarker {
	return &LetterMarker{measurer: m}
}

// SetData replaces the snapshot.
func (r *LetterMarker) SetData(d *LetterMarkerData) {
	r.data = d
}

// Draw implements chartdraw.Renderer.
func (r *LetterMarker) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if r.data == nil || r.data.Radius <= 0 {
		return
	}
	d := r.data
	ratio := p.Ratio()
	c := p.ToDevice(d.Center)
	rad := d.Radius * ratio

	s.BeginPath()
	s.Ellipse(c.X, c.Y, rad, rad)
	if d.Background != nil {
		s.SetFillColor(d.Background)
		s.Fill()
	}
	if d.BorderColor != nil && d.BorderWidth > 0 {
		s.SetStrokeColor(d.BorderColor)
		s.SetLineWidth(p.StrokeWidth(d.BorderWidth))
		s.SetDash(nil)
		s.Stroke()
	}
	if d.Letter == "" || d.TextColor == nil {
		return
	}
	f := d.Font
	if f.Size <= 0 {
		f.Size = d.Radius
	}
	w := approxAdvance(r.measurer, d.Letter, f)
	// Cap height is close to 0.7 em for the UI fonts in use.
	x := d.Center.X - w/2
	y := d.Center.Y + f.Size*0.35
	s.SetFont(f.Scaled(ratio))
	s.SetFillColor(d.TextColor)
	s.FillText(d.Letter, x*ratio, y*ratio)
}

// HitTest implements chartdraw.Renderer.
func (r *LetterMarker) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if r.data == nil || r.data.Radius <= 0 {
		return nil
	}
	d := r.data
	if !geom.PointInCircle(pt, d.Center, d.Radius+r.tolerance(p)) {
		return nil
	}
	var res *chartdraw.HitResult
	if d.OnClick != nil {
		res = chartdraw.NewHit(chartdraw.HitCustom, chartdraw.AreaBackground)
		res.OnClick = d.OnClick
		res.OnTap = d.OnClick
	} else {
		res = chartdraw.NewHit(chartdraw.HitRegular, chartdraw.AreaBackground)
	}
	res.Tooltip = d.Tooltip
	return res
}
