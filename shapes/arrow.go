package shapes

import (
	"image/color"
	"math"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// ArrowHead is the filled triangle drawn at the end of a line.
// All points are CSS pixels.
type ArrowHead struct {
	Tip   geom.Point
	Left  geom.Point
	Right geom.Point
	// LineEnd is where the shaft stroke should stop. It sits inside the
	// head so a wide stroke does not poke out past the tip.
	LineEnd geom.Point
}

// arrowLength returns the head length for a line width.
func arrowLength(width float64) float64 {
	return math.Max(6, 4+2.5*width)
}

// NewArrowHead builds a head pointing from "from" to "to" for a line of the
// given CSS width. It reports false when the segment is shorter than the
// head itself.
func NewArrowHead(from, to geom.Point, width float64) (ArrowHead, bool) {
	d := to.Sub(from)
	length := d.Length()
	size := arrowLength(width)
	if length < size {
		return ArrowHead{}, false
	}
	dir := d.Div(length)
	base := to.Sub(dir.Mul(size))
	wing := dir.Perp().Mul(size * 0.5)
	return ArrowHead{
		Tip:     to,
		Left:    base.Add(wing),
		Right:   base.Sub(wing),
		LineEnd: base.Add(dir.Mul(width)),
	}, true
}

// Points returns the triangle vertices.
func (a ArrowHead) Points() []geom.Point {
	return []geom.Point{a.Tip, a.Left, a.Right}
}

// Contains reports whether pt lies in the head or within tol of it.
func (a ArrowHead) Contains(pt geom.Point, tol float64) bool {
	if geom.PointInTriangle(pt, a.Tip, a.Left, a.Right) {
		return true
	}
	return geom.DistanceToPolyline(pt, a.Points(), true) <= tol
}

// Draw fills the head.
func (a ArrowHead) Draw(s chartdraw.Surface, p chartdraw.RenderParams, c color.Color) {
	s.SetFillColor(c)
	s.BeginPath()
	chartdraw.TracePolygon(s, p, a.Points())
	s.Fill()
}
