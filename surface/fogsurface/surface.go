// Package fogsurface implements chartdraw.Surface with fogleman/gg and
// freetype text. It is the second raster backend next to ggsurface and is
// used to cross-check renderer output.
package fogsurface

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	fgg "github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

var (
	fontsOnce sync.Once
	regular   *truetype.Font
	bold      *truetype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("fogsurface: parse regular font: %w", fontsErr)
			return
		}
		if bold, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("fogsurface: parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

type style struct {
	stroke color.Color
	fill   color.Color
	font   chartdraw.Font
}

// Surface is a chartdraw.Raster backed by a fogleman/gg context.
type Surface struct {
	dc  *fgg.Context
	img *image.RGBA

	cur      style
	stack    []style
	hasPoint bool
	faces    map[chartdraw.Font]font.Face
}

// New returns a transparent surface of the given device size.
func New(width, height int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Surface{
		dc:    fgg.NewContextForRGBA(img),
		img:   img,
		cur:   style{stroke: color.Black, fill: color.Black},
		faces: make(map[chartdraw.Font]font.Face),
	}
}

// Factory is a chartdraw.RasterFactory backed by fogleman/gg.
func Factory(width, height int) chartdraw.Raster {
	return New(width, height)
}

// Size implements chartdraw.Raster.
func (s *Surface) Size() (int, int) { return s.img.Rect.Dx(), s.img.Rect.Dy() }

// Image implements chartdraw.Raster.
func (s *Surface) Image() image.Image { return s.img }

// EncodePNG writes the surface as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("fogsurface: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("fogsurface: save png: %w", err)
	}
	return nil
}

// Clear fills the whole surface with c.
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

// ClipRect clips through a temporary path, so it discards the current path.
func (s *Surface) ClipRect(x, y, w, h float64) {
	s.dc.NewSubPath()
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Clip()
	s.hasPoint = false
}

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

// Arc implements chartdraw.Surface.
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

// SetDash with an empty pattern restores solid lines.
func (s *Surface) SetDash(pattern []float64) { s.dc.SetDash(pattern...) }

// SetLineCap implements chartdraw.Surface.
func (s *Surface) SetLineCap(c chartdraw.LineCap) {
	switch c {
	case chartdraw.LineCapRound:
		s.dc.SetLineCap(fgg.LineCapRound)
	case chartdraw.LineCapSquare:
		s.dc.SetLineCap(fgg.LineCapSquare)
	default:
		s.dc.SetLineCap(fgg.LineCapButt)
	}
}

// SetLineJoin maps miter joins to bevel; fogleman/gg has no miter join.
func (s *Surface) SetLineJoin(j chartdraw.LineJoin) {
	if j == chartdraw.LineJoinRound {
		s.dc.SetLineJoin(fgg.LineJoinRound)
		return
	}
	s.dc.SetLineJoin(fgg.LineJoinBevel)
}

// Fill implements chartdraw.Surface.
func (s *Surface) Fill() {
	if s.cur.fill == nil {
		return
	}
	s.dc.SetColor(s.cur.fill)
	s.dc.FillPreserve()
}

// Stroke implements chartdraw.Surface.
func (s *Surface) Stroke() {
	if s.cur.stroke == nil {
		return
	}
	s.dc.SetColor(s.cur.stroke)
	s.dc.StrokePreserve()
}

// SetFont implements chartdraw.Surface.
func (s *Surface) SetFont(f chartdraw.Font) { s.cur.font = f }

func (s *Surface) face(f chartdraw.Font) font.Face {
	if face, ok := s.faces[f]; ok {
		return face
	}
	if err := loadFonts(); err != nil {
		chartdraw.Logger().Warn("fogsurface: fonts unavailable", "err", err)
		return nil
	}
	ttf := regular
	if f.Bold {
		ttf = bold
	}
	size := f.Size
	if size <= 0 {
		size = 12
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	s.faces[f] = face
	return face
}

// FillText draws with the fill color at the transformed origin.
func (s *Surface) FillText(str string, x, y float64) {
	face := s.face(s.cur.font)
	if face == nil || s.cur.fill == nil {
		return
	}
	dx, dy := s.dc.TransformPoint(x, y)
	s.dc.Push()
	s.dc.Identity()
	s.dc.SetFontFace(face)
	s.dc.SetColor(s.cur.fill)
	s.dc.DrawString(str, dx, dy)
	s.dc.Pop()
}

// DrawImage scales src into dst with Catmull-Rom and composites it over the
// surface. The transform is not applied.
func (s *Surface) DrawImage(img image.Image, src image.Rectangle, dst geom.Box) {
	if img == nil || src.Empty() || dst.Empty() {
		return
	}
	r := image.Rect(
		int(math.Round(dst.Min.X)), int(math.Round(dst.Min.Y)),
		int(math.Round(dst.Max.X)), int(math.Round(dst.Max.Y)),
	)
	if r.Dx() == src.Dx() && r.Dy() == src.Dy() {
		draw.Draw(s.img, r, img, src.Min, draw.Over)
		return
	}
	draw.CatmullRom.Scale(s.img, r, img, src, draw.Over, nil)
}

// ClearRect resets device pixels to transparent.
func (s *Surface) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

var _ chartdraw.Raster = (*Surface)(nil)
