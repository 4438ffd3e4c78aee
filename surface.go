package chartdraw

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/chartdraw/geom"
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Font describes a text face. Size is in device pixels when handed to a
// Surface and in CSS pixels everywhere else.
type Font struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// Scaled returns the font with its size multiplied by factor.
func (f Font) Scaled(factor float64) Font {
	f.Size *= factor
	return f
}

// Surface is the drawing contract renderers paint onto. It mirrors the
// HTML canvas model: a current path is built with MoveTo/LineTo/curves and
// then filled or stroked. Fill and Stroke keep the path, BeginPath clears it.
//
// All coordinates are device pixels. Renderers convert and snap CSS
// coordinates with RenderParams before calling into the surface.
type Surface interface {
	// Save pushes the transform, clip and style state.
	Save()
	// Restore pops the state pushed by the matching Save.
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)
	// ClipRect intersects the clip region with the rectangle.
	ClipRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	// Arc adds a circular arc from angle a1 to a2 (radians, clockwise on
	// screen). When the path has a current point a line joins it to the
	// arc start.
	Arc(cx, cy, r, a1, a2 float64)
	// Ellipse adds a closed axis-aligned ellipse as a new subpath.
	Ellipse(cx, cy, rx, ry float64)
	ClosePath()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)
	// SetDash sets the dash pattern; an empty pattern draws solid lines.
	SetDash(pattern []float64)
	SetLineCap(c LineCap)
	SetLineJoin(j LineJoin)
	Fill()
	Stroke()

	SetFont(f Font)
	// FillText draws s with its baseline-left origin at (x, y).
	FillText(s string, x, y float64)

	// DrawImage draws the src part of img scaled into dst.
	DrawImage(img image.Image, src image.Rectangle, dst geom.Box)
	// ClearRect resets the rectangle to transparent.
	ClearRect(x, y, w, h float64)
}

// Raster is an off-screen Surface whose pixels can be read back.
type Raster interface {
	Surface
	Image() image.Image
	Size() (width, height int)
}

// RasterFactory allocates an off-screen raster of the given device size.
type RasterFactory func(width, height int) Raster

// PathBuilder is the path construction subset of Surface.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
}

// AppendEllipseArc adds an elliptical arc to the path using cubic Bézier
// segments of at most a quarter turn. The ellipse has radii rx, ry and is
// rotated by rotation radians around its center. When connect is true the
// arc start is joined with a line, otherwise a new subpath starts there.
//
// Backends use it to implement Arc and Ellipse, and renderers use it
// directly for rotated shapes so every backend flattens arcs the same way.
func AppendEllipseArc(b PathBuilder, center geom.Point, rx, ry, rotation, a1, a2 float64, connect bool) {
	for a2 < a1 {
		a2 += 2 * math.Pi
	}
	sweep := a2 - a1
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}
	m := geom.Translate(center.X, center.Y).Multiply(geom.Rotate(rotation)).Multiply(geom.Scale(rx, ry))

	start := m.TransformPoint(geom.Pt(math.Cos(a1), math.Sin(a1)))
	if connect {
		b.LineTo(start.X, start.Y)
	} else {
		b.MoveTo(start.X, start.Y)
	}
	if sweep == 0 {
		return
	}

	n := int(math.Ceil(sweep / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		t1 := a1 + float64(i)*step
		t2 := t1 + step
		sin1, cos1 := math.Sincos(t1)
		sin2, cos2 := math.Sincos(t2)
		c1 := m.TransformPoint(geom.Pt(cos1-k*sin1, sin1+k*cos1))
		c2 := m.TransformPoint(geom.Pt(cos2+k*sin2, sin2-k*cos2))
		end := m.TransformPoint(geom.Pt(cos2, sin2))
		b.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
	}
}
