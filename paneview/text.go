package paneview

import (
	"image"
	"image/color"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/icons"
	"github.com/gogpu/chartdraw/label"
	"github.com/gogpu/chartdraw/shapes"
)

// TextProps configures a text note.
type TextProps struct {
	Text          string
	Font          chartdraw.Font
	Color         color.Color
	HAlign        label.HAlign
	VAlign        label.VAlign
	WordWrapWidth float64
	Padding       float64
	// BackgroundColor fills the box when non-nil.
	BackgroundColor color.Color
	// BorderColor strokes the box when non-nil.
	BorderColor color.Color
	BorderWidth float64
	Radius      float64
	// Icons name icons drawn beside the text lines, looked up in the icon
	// cache under the pane theme.
	Icons   []string
	Tooltip string
}

// TextView shows a text label anchored at its first point.
type TextView struct {
	Base
	src Source[TextProps]
	// requested holds icon keys handed to the requester, so a missing icon
	// is requested once rather than on every rebuild.
	requested map[icons.Key]bool
}

// NewTextView returns a dirty view of src.
func NewTextView(id string, src Source[TextProps], env *Env) *TextView {
	v := &TextView{src: src, requested: make(map[icons.Key]bool)}
	v.init(id, env, v.update)
	return v
}

func (v *TextView) update(g *chartdraw.Composite, p chartdraw.RenderParams) {
	pr, ok := project(v.src, 1)
	if !ok {
		return
	}
	props := v.src.Properties()
	if props.Text == "" && len(props.Icons) == 0 {
		return
	}
	d := &label.Data{
		Text:            props.Text,
		Font:            props.Font,
		Color:           props.Color,
		Points:          pr.pts[:1],
		HAlign:          props.HAlign,
		VAlign:          props.VAlign,
		WordWrapWidth:   props.WordWrapWidth,
		Padding:         props.Padding,
		Background:      props.BackgroundColor != nil,
		BackgroundColor: props.BackgroundColor,
		Border:          props.BorderColor != nil,
		BorderColor:     props.BorderColor,
		BorderWidth:     props.BorderWidth,
		Radius:          props.Radius,
		Icons:           v.iconImages(props.Icons, p),
	}
	if d.Color == nil {
		d.Color = color.Black
		if v.env.Dark {
			d.Color = color.White
		}
	}
	lr := label.New(v.env.Measurer)
	lr.SetData(d)
	if props.Tooltip != "" {
		if box, ok := lr.Box(p); ok {
			d.Tooltip = &chartdraw.Tooltip{Text: props.Tooltip, Rect: box}
		}
	}
	v.add(g, lr)
	v.addAnchors(g, freeAnchors(pr.pts[:1]))
}

// iconImages returns the cached images of names. Missing ones are requested
// and the view invalidates itself once they have all arrived.
func (v *TextView) iconImages(names []string, p chartdraw.RenderParams) []image.Image {
	if len(names) == 0 || v.env.Icons == nil {
		return nil
	}
	keys := make([]icons.Key, len(names))
	var missing []icons.Key
	for i, name := range names {
		keys[i] = icons.Key{Icon: name, Theme: v.env.Theme, PixelRatio: p.Ratio()}
		if !v.env.Icons.Contains(keys[i]) && !v.requested[keys[i]] {
			v.requested[keys[i]] = true
			missing = append(missing, keys[i])
		}
	}
	if len(missing) > 0 && v.env.Requester != nil {
		chartdraw.Logger().Debug("paneview: requesting icons", "id", v.id, "count", len(missing))
		v.env.Requester.Request(missing, v.Invalidate)
	}
	// Looked up after the request so synchronous requesters show at once.
	var out []image.Image
	for _, k := range keys {
		if img, ok := v.env.Icons.Get(k); ok {
			out = append(out, img)
		}
	}
	return out
}

// MarkerProps configures an event marker.
type MarkerProps struct {
	Letter      string
	Radius      float64
	Font        chartdraw.Font
	TextColor   color.Color
	Background  color.Color
	BorderColor color.Color
	BorderWidth float64
	Tooltip     string
	// OnClick is attached to hits as the click and tap handler.
	OnClick func()
}

// MarkerView shows a letter in a circle centered on its first point.
type MarkerView struct {
	Base
	src Source[MarkerProps]
}

// NewMarkerView returns a dirty view of src.
func NewMarkerView(id string, src Source[MarkerProps], env *Env) *MarkerView {
	v := &MarkerView{src: src}
	v.init(id, env, v.update)
	return v
}

func (v *MarkerView) update(g *chartdraw.Composite, _ chartdraw.RenderParams) {
	pr, ok := project(v.src, 1)
	if !ok {
		return
	}
	props := v.src.Properties()
	if props.Radius <= 0 {
		return
	}
	c := pr.pts[0]
	d := &shapes.LetterMarkerData{
		Center:      c,
		Radius:      props.Radius,
		Letter:      props.Letter,
		Font:        props.Font,
		TextColor:   props.TextColor,
		Background:  props.Background,
		BorderColor: props.BorderColor,
		BorderWidth: props.BorderWidth,
		OnClick:     props.OnClick,
	}
	if props.Tooltip != "" {
		r := props.Radius
		d.Tooltip = &chartdraw.Tooltip{Text: props.Tooltip, Rect: geom.BoxXYWH(c.X-r, c.Y-r, 2*r, 2*r)}
	}
	m := shapes.NewLetterMarker(v.env.Measurer)
	m.SetData(d)
	v.add(g, m)
}
