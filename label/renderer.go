package label

import (
	"image"
	"image/color"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// HAlign is the horizontal placement of the box relative to its anchor
// point.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical placement of the box relative to its anchor point.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Data is the snapshot drawn by Renderer.
type Data struct {
	Text  string
	Font  chartdraw.Font
	Color color.Color
	// Points holds the anchor point first; other points are ignored.
	Points []geom.Point
	HAlign HAlign
	VAlign VAlign
	// WordWrapWidth wraps text to this CSS width when positive.
	WordWrapWidth float64
	Padding       float64
	// Background fills the box with BackgroundColor.
	Background      bool
	BackgroundColor color.Color
	// Border strokes the box with BorderColor.
	Border      bool
	BorderColor color.Color
	BorderWidth float64
	// Radius rounds the box corners.
	Radius float64
	// Icons are drawn in a column beside the text, one per line height.
	Icons []image.Image
	// Offset shifts the box after alignment.
	Offset  geom.Point
	Tooltip *chartdraw.Tooltip
	// ForceRTL right-aligns lines and moves the icon column to the right
	// regardless of the text direction.
	ForceRTL bool
	HitKind  chartdraw.HitKind
}

// Size is the measured layout of a label in CSS pixels.
type Size struct {
	Width  float64
	Height float64
	// Lines are the wrapped lines in display order.
	Lines      []string
	LineWidths []float64
	LineHeight float64
	Ascent     float64
	// IconSize is the side of one icon, zero without icons.
	IconSize float64
}

// iconGap separates the icon column from the text.
const iconGap = 4

// Renderer draws a multi-line text box with optional background, border
// and icon column.
type Renderer struct {
	data     *Data
	measurer Measurer
	tol      chartdraw.Tolerance
	size     *Size
}

// New returns an empty label renderer. A nil measurer uses Estimate.
func New(m Measurer) *Renderer {
	if m == nil {
		m = Estimate{}
	}
	return &Renderer{measurer: m}
}

// SetData replaces the snapshot.
func (r *Renderer) SetData(d *Data) {
	r.data = d
	r.size = nil
}

// SetTolerance overrides the default hit tolerances.
func (r *Renderer) SetTolerance(t chartdraw.Tolerance) {
	r.tol = t
}

// RTL reports whether lines are laid out right to left.
func (r *Renderer) RTL() bool {
	return r.data != nil && (r.data.ForceRTL || Direction(r.data.Text) == bidi.RightToLeft)
}

// Measure lays out the snapshot without drawing. The result is cached until
// the next SetData.
func (r *Renderer) Measure() Size {
	if r.size != nil {
		return *r.size
	}
	if r.data == nil || (r.data.Text == "" && len(r.data.Icons) == 0) || r.data.Font.Size <= 0 {
		return Size{}
	}
	d := r.data
	met := r.measurer.Metrics(d.Font)
	sz := Size{
		LineHeight: met.LineHeight(),
		Ascent:     met.Ascent,
	}
	if d.Text != "" {
		sz.Lines = Wrap(d.Text, d.Font, d.WordWrapWidth, r.measurer)
	}
	textW := 0.0
	for _, l := range sz.Lines {
		w := r.measurer.Advance(l, d.Font)
		sz.LineWidths = append(sz.LineWidths, w)
		textW = max(textW, w)
	}
	textH := sz.LineHeight * float64(len(sz.Lines))
	if n := len(d.Icons); n > 0 {
		sz.IconSize = d.Font.Size
		if len(sz.Lines) > 0 {
			textW += iconGap
		}
		textW += sz.IconSize
		textH = max(textH, float64(n)*sz.LineHeight)
	}
	sz.Width = textW + 2*d.Padding
	sz.Height = textH + 2*d.Padding
	r.size = &sz
	return sz
}

// Box returns the CSS box of the label, or false when there is nothing to
// draw.
func (r *Renderer) Box(p chartdraw.RenderParams) (geom.Box, bool) {
	if r.data == nil || len(r.data.Points) == 0 {
		return geom.Box{}, false
	}
	sz := r.Measure()
	if sz.Width <= 0 || sz.Height <= 0 {
		return geom.Box{}, false
	}
	d := r.data
	at := d.Points[0].Add(d.Offset)
	x, y := at.X, at.Y
	switch d.HAlign {
	case AlignCenter:
		x -= sz.Width / 2
	case AlignRight:
		x -= sz.Width
	}
	switch d.VAlign {
	case AlignMiddle:
		y -= sz.Height / 2
	case AlignBottom:
		y -= sz.Height
	}
	return geom.BoxXYWH(x, y, sz.Width, sz.Height), true
}

// Draw implements chartdraw.Renderer.
func (r *Renderer) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	box, ok := r.Box(p)
	if !ok {
		return
	}
	d := r.data
	sz := r.Measure()
	ratio := p.Ratio()
	dev := geom.NewBox(p.ToDevice(box.Min), p.ToDevice(box.Max))

	if d.Background && d.BackgroundColor != nil {
		s.SetFillColor(d.BackgroundColor)
		s.BeginPath()
		chartdraw.TraceRoundRect(s, dev, d.Radius*ratio)
		s.Fill()
	}
	if d.Border && d.BorderColor != nil {
		w := p.StrokeWidth(max(d.BorderWidth, 1))
		// Inset by half the stroke so the border stays inside the box.
		s.SetStrokeColor(d.BorderColor)
		s.SetLineWidth(w)
		s.SetDash(nil)
		s.BeginPath()
		chartdraw.TraceRoundRect(s, dev.Inflate(-w/2), d.Radius*ratio)
		s.Stroke()
	}

	rtl := r.RTL()
	inner := box.Inflate(-d.Padding)
	textLeft, textRight := inner.Min.X, inner.Max.X
	if sz.IconSize > 0 {
		iconX := inner.Min.X
		if rtl {
			iconX = inner.Max.X - sz.IconSize
			textRight -= sz.IconSize + iconGap
		} else {
			textLeft += sz.IconSize + iconGap
		}
		for i, img := range d.Icons {
			if img == nil {
				continue
			}
			top := inner.Min.Y + float64(i)*sz.LineHeight + (sz.LineHeight-sz.IconSize)/2
			dst := geom.BoxXYWH(iconX, top, sz.IconSize, sz.IconSize)
			s.DrawImage(img, img.Bounds(), geom.NewBox(p.ToDevice(dst.Min), p.ToDevice(dst.Max)))
		}
	}

	if d.Color == nil {
		return
	}
	s.SetFont(d.Font.Scaled(ratio))
	s.SetFillColor(d.Color)
	for i, line := range sz.Lines {
		x := textLeft
		if rtl {
			x = textRight - sz.LineWidths[i]
		}
		baseline := inner.Min.Y + float64(i)*sz.LineHeight + sz.Ascent
		s.FillText(line, x*ratio, baseline*ratio)
	}
}

// HitTest implements chartdraw.Renderer.
func (r *Renderer) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	box, ok := r.Box(p)
	if !ok || !box.Inflate(p.HitTolerance(r.tol)).Contains(pt) {
		return nil
	}
	res := chartdraw.NewHit(r.data.HitKind, chartdraw.AreaText)
	res.Tooltip = r.data.Tooltip
	return res
}
