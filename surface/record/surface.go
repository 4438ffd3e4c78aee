package record

import (
	"image"
	"image/color"
	"slices"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// curveSamples is the number of points a recorded curve is sampled into.
const curveSamples = 8

// state is the part of the surface state pushed by Save.
type state struct {
	stroke color.Color
	fill   color.Color
	width  float64
	dash   []float64
	font   chartdraw.Font
	matrix geom.Matrix
}

// Surface records every call it receives. It implements chartdraw.Raster
// so it can stand in for off-screen rasters as well; its image stays blank.
//
// The transform is tracked, and recorded paths are stored in transformed
// device coordinates.
type Surface struct {
	width, height int

	commands []Command
	paths    []Path
	texts    []Text

	cur   state
	stack []state

	subpaths [][]geom.Point
	closed   []bool
}

// New creates a recording surface of the given device size.
func New(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		cur:    state{width: 1, matrix: geom.Identity()},
	}
}

// Factory is a chartdraw.RasterFactory producing recording surfaces.
func Factory(width, height int) chartdraw.Raster {
	return New(width, height)
}

// Size implements chartdraw.Raster.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Image implements chartdraw.Raster. The image is blank.
func (s *Surface) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, s.width, s.height))
}

// Commands returns all recorded commands in call order.
func (s *Surface) Commands() []Command { return s.commands }

// Paths returns the path snapshots taken by the given drawing op
// (OpFill or OpStroke).
func (s *Surface) Paths(op Op) []Path {
	var out []Path
	for _, p := range s.paths {
		if p.Op == op {
			out = append(out, p)
		}
	}
	return out
}

// Texts returns all FillText calls.
func (s *Surface) Texts() []Text { return s.texts }

// Count returns how many commands of the given op were recorded.
func (s *Surface) Count(op Op) int {
	n := 0
	for _, c := range s.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (s *Surface) Reset() {
	s.commands = s.commands[:0]
	s.paths = s.paths[:0]
	s.texts = s.texts[:0]
	s.stack = s.stack[:0]
	s.subpaths = nil
	s.closed = nil
	s.cur = state{width: 1, matrix: geom.Identity()}
}

func (s *Surface) record(c Command) {
	s.commands = append(s.commands, c)
}

// Save implements chartdraw.Surface.
func (s *Surface) Save() {
	st := s.cur
	st.dash = slices.Clone(st.dash)
	s.stack = append(s.stack, st)
	s.record(Command{Op: OpSave})
}

// Restore implements chartdraw.Surface. Unbalanced calls are ignored.
func (s *Surface) Restore() {
	if n := len(s.stack); n > 0 {
		s.cur = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
	s.record(Command{Op: OpRestore})
}

// Translate implements chartdraw.Surface.
func (s *Surface) Translate(x, y float64) {
	s.cur.matrix = s.cur.matrix.Multiply(geom.Translate(x, y))
	s.record(Command{Op: OpTranslate, Args: []float64{x, y}})
}

// Rotate implements chartdraw.Surface.
func (s *Surface) Rotate(angle float64) {
	s.cur.matrix = s.cur.matrix.Multiply(geom.Rotate(angle))
	s.record(Command{Op: OpRotate, Args: []float64{angle}})
}

// Scale implements chartdraw.Surface.
func (s *Surface) Scale(sx, sy float64) {
	s.cur.matrix = s.cur.matrix.Multiply(geom.Scale(sx, sy))
	s.record(Command{Op: OpScale, Args: []float64{sx, sy}})
}

// ClipRect implements chartdraw.Surface.
func (s *Surface) ClipRect(x, y, w, h float64) {
	s.record(Command{Op: OpClipRect, Args: []float64{x, y, w, h}})
}

// BeginPath implements chartdraw.Surface.
func (s *Surface) BeginPath() {
	s.subpaths = nil
	s.closed = nil
	s.record(Command{Op: OpBeginPath})
}

func (s *Surface) tp(x, y float64) geom.Point {
	return s.cur.matrix.TransformPoint(geom.Pt(x, y))
}

func (s *Surface) moveTo(x, y float64) {
	s.subpaths = append(s.subpaths, []geom.Point{s.tp(x, y)})
	s.closed = append(s.closed, false)
}

func (s *Surface) lineTo(x, y float64) {
	if len(s.subpaths) == 0 {
		s.moveTo(x, y)
		return
	}
	last := len(s.subpaths) - 1
	s.subpaths[last] = append(s.subpaths[last], s.tp(x, y))
}

func (s *Surface) current() geom.Point {
	if len(s.subpaths) == 0 {
		return geom.Point{}
	}
	sp := s.subpaths[len(s.subpaths)-1]
	inv, _ := s.cur.matrix.Invert()
	return inv.TransformPoint(sp[len(sp)-1])
}

func (s *Surface) cubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c := geom.CubicBez{P0: s.current(), P1: geom.Pt(c1x, c1y), P2: geom.Pt(c2x, c2y), P3: geom.Pt(x, y)}
	for i := 1; i <= curveSamples; i++ {
		p := c.Eval(float64(i) / curveSamples)
		s.lineTo(p.X, p.Y)
	}
}

// MoveTo implements chartdraw.Surface.
func (s *Surface) MoveTo(x, y float64) {
	s.moveTo(x, y)
	s.record(Command{Op: OpMoveTo, Args: []float64{x, y}})
}

// LineTo implements chartdraw.Surface.
func (s *Surface) LineTo(x, y float64) {
	s.lineTo(x, y)
	s.record(Command{Op: OpLineTo, Args: []float64{x, y}})
}

// QuadTo implements chartdraw.Surface.
func (s *Surface) QuadTo(cx, cy, x, y float64) {
	q := geom.QuadBez{P0: s.current(), P1: geom.Pt(cx, cy), P2: geom.Pt(x, y)}
	for i := 1; i <= curveSamples; i++ {
		p := q.Eval(float64(i) / curveSamples)
		s.lineTo(p.X, p.Y)
	}
	s.record(Command{Op: OpQuadTo, Args: []float64{cx, cy, x, y}})
}

// CubicTo implements chartdraw.Surface.
func (s *Surface) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.cubicTo(c1x, c1y, c2x, c2y, x, y)
	s.record(Command{Op: OpCubicTo, Args: []float64{c1x, c1y, c2x, c2y, x, y}})
}

// pathOnly lets the arc helpers build into the path without recording
// MoveTo/LineTo/CubicTo commands of their own.
type pathOnly struct{ s *Surface }

func (p pathOnly) MoveTo(x, y float64) { p.s.moveTo(x, y) }
func (p pathOnly) LineTo(x, y float64) { p.s.lineTo(x, y) }
func (p pathOnly) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.s.cubicTo(c1x, c1y, c2x, c2y, x, y)
}

// Arc implements chartdraw.Surface.
func (s *Surface) Arc(cx, cy, r, a1, a2 float64) {
	chartdraw.AppendEllipseArc(pathOnly{s}, geom.Pt(cx, cy), r, r, 0, a1, a2, len(s.subpaths) > 0)
	s.record(Command{Op: OpArc, Args: []float64{cx, cy, r, a1, a2}})
}

// Ellipse implements chartdraw.Surface.
func (s *Surface) Ellipse(cx, cy, rx, ry float64) {
	chartdraw.AppendEllipseArc(pathOnly{s}, geom.Pt(cx, cy), rx, ry, 0, 0, 2*3.141592653589793, false)
	s.closed[len(s.closed)-1] = true
	s.record(Command{Op: OpEllipse, Args: []float64{cx, cy, rx, ry}})
}

// ClosePath implements chartdraw.Surface.
func (s *Surface) ClosePath() {
	if len(s.closed) > 0 {
		s.closed[len(s.closed)-1] = true
	}
	s.record(Command{Op: OpClosePath})
}

// SetStrokeColor implements chartdraw.Surface.
func (s *Surface) SetStrokeColor(c color.Color) {
	s.cur.stroke = c
	s.record(Command{Op: OpSetStrokeColor, Color: c})
}

// SetFillColor implements chartdraw.Surface.
func (s *Surface) SetFillColor(c color.Color) {
	s.cur.fill = c
	s.record(Command{Op: OpSetFillColor, Color: c})
}

// SetLineWidth implements chartdraw.Surface.
func (s *Surface) SetLineWidth(w float64) {
	s.cur.width = w
	s.record(Command{Op: OpSetLineWidth, Args: []float64{w}})
}

// SetDash implements chartdraw.Surface.
func (s *Surface) SetDash(pattern []float64) {
	s.cur.dash = slices.Clone(pattern)
	s.record(Command{Op: OpSetDash, Args: slices.Clone(pattern)})
}

// SetLineCap implements chartdraw.Surface.
func (s *Surface) SetLineCap(c chartdraw.LineCap) {
	s.record(Command{Op: OpSetLineCap, Args: []float64{float64(c)}})
}

// SetLineJoin implements chartdraw.Surface.
func (s *Surface) SetLineJoin(j chartdraw.LineJoin) {
	s.record(Command{Op: OpSetLineJoin, Args: []float64{float64(j)}})
}

func (s *Surface) snapshot(op Op, c color.Color) {
	subs := make([][]geom.Point, len(s.subpaths))
	for i, sp := range s.subpaths {
		subs[i] = slices.Clone(sp)
	}
	s.paths = append(s.paths, Path{
		Op:       op,
		Subpaths: subs,
		Closed:   slices.Clone(s.closed),
		Color:    c,
		Width:    s.cur.width,
		Dash:     slices.Clone(s.cur.dash),
	})
}

// Fill implements chartdraw.Surface.
func (s *Surface) Fill() {
	s.snapshot(OpFill, s.cur.fill)
	s.record(Command{Op: OpFill, Color: s.cur.fill})
}

// Stroke implements chartdraw.Surface.
func (s *Surface) Stroke() {
	s.snapshot(OpStroke, s.cur.stroke)
	s.record(Command{Op: OpStroke, Color: s.cur.stroke})
}

// SetFont implements chartdraw.Surface.
func (s *Surface) SetFont(f chartdraw.Font) {
	s.cur.font = f
	s.record(Command{Op: OpSetFont, Font: f})
}

// FillText implements chartdraw.Surface.
func (s *Surface) FillText(text string, x, y float64) {
	p := s.tp(x, y)
	s.texts = append(s.texts, Text{Text: text, X: p.X, Y: p.Y, Font: s.cur.font, Color: s.cur.fill})
	s.record(Command{Op: OpFillText, Text: text, Args: []float64{x, y}, Font: s.cur.font, Color: s.cur.fill})
}

// DrawImage implements chartdraw.Surface.
func (s *Surface) DrawImage(img image.Image, src image.Rectangle, dst geom.Box) {
	s.record(Command{Op: OpDrawImage, Image: img, Src: src, Dst: dst})
}

// ClearRect implements chartdraw.Surface.
func (s *Surface) ClearRect(x, y, w, h float64) {
	s.record(Command{Op: OpClearRect, Args: []float64{x, y, w, h}})
}

var _ chartdraw.Raster = (*Surface)(nil)
