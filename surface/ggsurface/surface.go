// Package ggsurface implements chartdraw.Surface on top of the gogpu/gg
// software rasterizer.
//
// A Surface owns a gg.Context and an RGBA pixmap. Paths are built in device
// pixels; Fill and Stroke keep the current path like an HTML canvas, so a
// shape can be filled and then outlined without rebuilding it.
//
// Text is drawn with the Go fonts (Go Regular and Go Bold) loaded through
// gg's text package. Font sources are parsed once per process.
package ggsurface

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

var (
	fontsOnce sync.Once
	regular   *text.FontSource
	bold      *text.FontSource
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = text.NewFontSource(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("ggsurface: load regular font: %w", fontsErr)
			return
		}
		bold, fontsErr = text.NewFontSource(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("ggsurface: load bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

type style struct {
	stroke color.Color
	fill   color.Color
	font   chartdraw.Font
}

// Surface is a chartdraw.Raster drawing into a gogpu/gg context.
type Surface struct {
	dc     *gg.Context
	pm     *gg.Pixmap
	width  int
	height int

	cur   style
	stack []style

	// hasPoint tracks whether the current path has a current point, which
	// decides whether Arc joins the path or starts a subpath.
	hasPoint bool
	faces    map[chartdraw.Font]text.Face
}

// New returns a transparent surface of the given device size.
func New(width, height int) *Surface {
	pm := gg.NewPixmap(width, height)
	return &Surface{
		dc:     gg.NewContext(width, height, gg.WithPixmap(pm)),
		pm:     pm,
		width:  width,
		height: height,
		cur:    style{stroke: color.Black, fill: color.Black},
		faces:  make(map[chartdraw.Font]text.Face),
	}
}

// Factory is a chartdraw.RasterFactory backed by gogpu/gg.
func Factory(width, height int) chartdraw.Raster {
	return New(width, height)
}

// Context exposes the underlying gg context.
func (s *Surface) Context() *gg.Context { return s.dc }

// Size implements chartdraw.Raster.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Image implements chartdraw.Raster.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the surface as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("ggsurface: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("ggsurface: save png: %w", err)
	}
	return nil
}

// Close releases the context resources.
func (s *Surface) Close() error {
	return s.dc.Close()
}

// Fill the whole surface with c, ignoring the clip.
func (s *Surface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

// Save implements chartdraw.Surface.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.cur)
	s.dc.Push()
}

// Restore implements chartdraw.Surface.
func (s *Surface) Restore() {
	if n := len(s.stack); n > 0 {
		s.cur = s.stack[n-1]
		s.stack = s.stack[:n-1]
		s.dc.Pop()
	}
}

// Translate implements chartdraw.Surface.
func (s *Surface) Translate(x, y float64) { s.dc.Translate(x, y) }

// Rotate implements chartdraw.Surface.
func (s *Surface) Rotate(angle float64) { s.dc.Rotate(angle) }

// Scale implements chartdraw.Surface.
func (s *Surface) Scale(sx, sy float64) { s.dc.Scale(sx, sy) }

// ClipRect implements chartdraw.Surface.
func (s *Surface) ClipRect(x, y, w, h float64) { s.dc.ClipRect(x, y, w, h) }

// BeginPath implements chartdraw.Surface.
func (s *Surface) BeginPath() {
	s.dc.ClearPath()
	s.hasPoint = false
}

// MoveTo implements chartdraw.Surface.
func (s *Surface) MoveTo(x, y float64) {
	s.dc.MoveTo(x, y)
	s.hasPoint = true
}

// LineTo implements chartdraw.Surface.
func (s *Surface) LineTo(x, y float64) {
	if !s.hasPoint {
		s.MoveTo(x, y)
		return
	}
	s.dc.LineTo(x, y)
}

// QuadTo implements chartdraw.Surface.
func (s *Surface) QuadTo(cx, cy, x, y float64) {
	s.dc.QuadraticTo(cx, cy, x, y)
	s.hasPoint = true
}

// CubicTo implements chartdraw.Surface.
func (s *Surface) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
	s.hasPoint = true
}

// Arc is built from cubics: gg's DrawArc neither joins the current point
// nor follows a non-uniform transform.
func (s *Surface) Arc(cx, cy, r, a1, a2 float64) {
	chartdraw.AppendEllipseArc(s, geom.Pt(cx, cy), r, r, 0, a1, a2, s.hasPoint)
}

// Ellipse implements chartdraw.Surface.
func (s *Surface) Ellipse(cx, cy, rx, ry float64) {
	chartdraw.AppendEllipseArc(s, geom.Pt(cx, cy), rx, ry, 0, 0, 2*math.Pi, false)
	s.dc.ClosePath()
}

// ClosePath implements chartdraw.Surface.
func (s *Surface) ClosePath() { s.dc.ClosePath() }

// SetStrokeColor implements chartdraw.Surface.
func (s *Surface) SetStrokeColor(c color.Color) { s.cur.stroke = c }

// SetFillColor implements chartdraw.Surface.
func (s *Surface) SetFillColor(c color.Color) { s.cur.fill = c }

// SetLineWidth implements chartdraw.Surface.
func (s *Surface) SetLineWidth(w float64) { s.dc.SetLineWidth(w) }

// SetDash implements chartdraw.Surface.
func (s *Surface) SetDash(pattern []float64) {
	if len(pattern) == 0 {
		s.dc.ClearDash()
		return
	}
	s.dc.SetDash(pattern...)
}

// SetLineCap implements chartdraw.Surface.
func (s *Surface) SetLineCap(c chartdraw.LineCap) {
	switch c {
	case chartdraw.LineCapRound:
		s.dc.SetLineCap(gg.LineCapRound)
	case chartdraw.LineCapSquare:
		s.dc.SetLineCap(gg.LineCapSquare)
	default:
		s.dc.SetLineCap(gg.LineCapButt)
	}
}

// SetLineJoin implements chartdraw.Surface.
func (s *Surface) SetLineJoin(j chartdraw.LineJoin) {
	switch j {
	case chartdraw.LineJoinRound:
		s.dc.SetLineJoin(gg.LineJoinRound)
	case chartdraw.LineJoinBevel:
		s.dc.SetLineJoin(gg.LineJoinBevel)
	default:
		s.dc.SetLineJoin(gg.LineJoinMiter)
	}
}

// Fill implements chartdraw.Surface.
func (s *Surface) Fill() {
	if s.cur.fill == nil {
		return
	}
	s.dc.SetColor(s.cur.fill)
	if err := s.dc.FillPreserve(); err != nil {
		chartdraw.Logger().Warn("ggsurface: fill failed", "err", err)
	}
}

// Stroke implements chartdraw.Surface.
func (s *Surface) Stroke() {
	if s.cur.stroke == nil {
		return
	}
	s.dc.SetColor(s.cur.stroke)
	if err := s.dc.StrokePreserve(); err != nil {
		chartdraw.Logger().Warn("ggsurface: stroke failed", "err", err)
	}
}

// SetFont implements chartdraw.Surface.
func (s *Surface) SetFont(f chartdraw.Font) { s.cur.font = f }

func (s *Surface) face(f chartdraw.Font) text.Face {
	if face, ok := s.faces[f]; ok {
		return face
	}
	if err := loadFonts(); err != nil {
		chartdraw.Logger().Warn("ggsurface: fonts unavailable", "err", err)
		return nil
	}
	src := regular
	if f.Bold {
		src = bold
	}
	size := f.Size
	if size <= 0 {
		size = 12
	}
	face := src.Face(size)
	s.faces[f] = face
	return face
}

// FillText draws with the fill color. Glyphs are not rotated by the
// transform; only the origin is transformed.
func (s *Surface) FillText(str string, x, y float64) {
	face := s.face(s.cur.font)
	if face == nil || s.cur.fill == nil {
		return
	}
	dx, dy := s.dc.TransformPoint(x, y)
	s.dc.Push()
	s.dc.Identity()
	s.dc.SetFont(face)
	s.dc.SetColor(s.cur.fill)
	s.dc.DrawString(str, dx, dy)
	s.dc.Pop()
}

// DrawImage implements chartdraw.Surface.
func (s *Surface) DrawImage(img image.Image, src image.Rectangle, dst geom.Box) {
	if img == nil || src.Empty() || dst.Empty() {
		return
	}
	s.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:         dst.Min.X,
		Y:         dst.Min.Y,
		DstWidth:  dst.Width(),
		DstHeight: dst.Height(),
		SrcRect:   &src,
	})
}

// ClearRect resets device pixels to transparent. The transform is not
// applied.
func (s *Surface) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h))).
		Intersect(image.Rect(0, 0, s.width, s.height))
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			s.pm.SetPixel(px, py, gg.RGBA{})
		}
	}
}

var _ chartdraw.Raster = (*Surface)(nil)
