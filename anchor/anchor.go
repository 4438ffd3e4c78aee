// Package anchor renders the draggable control points of a selected
// drawing and reports which logical point a pointer touches.
package anchor

import (
	"image/color"
	"math"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// Role is the geometric role of a handle. It decides the cursor shown
// while hovering it.
type Role uint8

const (
	// RoleFree is a point that can be dragged in any direction.
	RoleFree Role = iota
	// RoleMove moves the whole drawing.
	RoleMove
	// RoleCornerNWSE is a top-left or bottom-right corner.
	RoleCornerNWSE
	// RoleCornerNESW is a top-right or bottom-left corner.
	RoleCornerNESW
	// RoleEdgeHorizontal is the middle of a left or right edge.
	RoleEdgeHorizontal
	// RoleEdgeVertical is the middle of a top or bottom edge.
	RoleEdgeVertical
)

// Cursor returns the cursor suggested for the role.
func (r Role) Cursor() chartdraw.Cursor {
	switch r {
	case RoleMove:
		return chartdraw.CursorMove
	case RoleCornerNWSE:
		return chartdraw.CursorNWSEResize
	case RoleCornerNESW:
		return chartdraw.CursorNESWResize
	case RoleEdgeHorizontal:
		return chartdraw.CursorEWResize
	case RoleEdgeVertical:
		return chartdraw.CursorNSResize
	default:
		return chartdraw.CursorPointer
	}
}

// Point is one handle.
type Point struct {
	geom.Point
	// Index is the logical point index reported by hits.
	Index int
	// Square draws a square handle instead of a round one.
	Square bool
	Role   Role
	// Selected forces the halo on.
	Selected bool
}

// Data is the snapshot drawn by Renderer.
type Data struct {
	Points          []Point
	Color           color.Color
	BackgroundColor color.Color
	// HoverColor is the halo color; nil derives it from Color.
	HoverColor color.Color
	// Radius is the handle radius in CSS pixels; zero uses DefaultRadius.
	Radius float64
	// Hovered is the live pointer position, nil when the pointer is away.
	Hovered *geom.Point
}

// DefaultRadius is the handle radius used when Data.Radius is zero.
const DefaultRadius = 5.5

// haloFactor is the halo radius relative to the handle radius.
const haloFactor = 2

// Renderer draws handles and hit-tests them.
type Renderer struct {
	data *Data
	tol  chartdraw.Tolerance
}

// New returns an empty anchor renderer.
func New() *Renderer {
	return &Renderer{}
}

// SetData replaces the snapshot.
func (r *Renderer) SetData(d *Data) {
	r.data = d
}

// SetTolerance overrides the default hit tolerances.
func (r *Renderer) SetTolerance(t chartdraw.Tolerance) {
	r.tol = t
}

// Tolerance returns the hit tolerance in device pixels: the nominal CSS
// tolerance for the input modality scaled by the pixel ratio.
func (r *Renderer) Tolerance(p chartdraw.RenderParams) float64 {
	return p.HitTolerance(r.tol) * p.Ratio()
}

func (r *Renderer) radius() float64 {
	if r.data.Radius > 0 {
		return r.data.Radius
	}
	return DefaultRadius
}

// nearest returns the index into Points of the handle under pt, or -1.
// Later handles win ties so the topmost drawn handle is picked.
func (r *Renderer) nearest(pt geom.Point, p chartdraw.RenderParams) int {
	ratio := p.Ratio()
	limit := r.radius()*ratio + r.Tolerance(p)
	best, bestDist := -1, math.Inf(1)
	for i := len(r.data.Points) - 1; i >= 0; i-- {
		d := r.data.Points[i].Distance(pt) * ratio
		if d <= limit && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Draw implements chartdraw.Renderer.
func (r *Renderer) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if r.data == nil || len(r.data.Points) == 0 || r.data.Color == nil {
		return
	}
	d := r.data
	hovered := -1
	if d.Hovered != nil {
		hovered = r.nearest(*d.Hovered, p)
	}
	halo := d.HoverColor
	if halo == nil {
		halo = chartdraw.WithAlpha(d.Color, 0.25)
	}
	bg := d.BackgroundColor
	if bg == nil {
		bg = color.White
	}

	ratio := p.Ratio()
	rad := r.radius() * ratio
	lw := p.StrokeWidth(1)
	s.SetLineWidth(lw)
	s.SetDash(nil)
	for i, pt := range d.Points {
		c := p.ToDevice(pt.Point)
		if i == hovered || pt.Selected {
			s.SetFillColor(halo)
			s.BeginPath()
			shape(s, c, rad*haloFactor, pt.Square)
			s.Fill()
		}
		s.SetFillColor(bg)
		s.SetStrokeColor(d.Color)
		s.BeginPath()
		shape(s, c, rad-lw/2, pt.Square)
		s.Fill()
		s.Stroke()
	}
}

func shape(s chartdraw.Surface, c geom.Point, r float64, square bool) {
	if !square {
		s.Ellipse(c.X, c.Y, r, r)
		return
	}
	s.MoveTo(c.X-r, c.Y-r)
	s.LineTo(c.X+r, c.Y-r)
	s.LineTo(c.X+r, c.Y+r)
	s.LineTo(c.X-r, c.Y+r)
	s.ClosePath()
}

// HitTest implements chartdraw.Renderer. The result carries the logical
// index of the handle and the cursor of its role.
func (r *Renderer) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if r.data == nil {
		return nil
	}
	i := r.nearest(pt, p)
	if i < 0 {
		return nil
	}
	h := r.data.Points[i]
	if h.Role == RoleMove {
		res := chartdraw.NewHit(chartdraw.HitMovePoint, chartdraw.AreaAnchor)
		res.PointIndex = h.Index
		return res
	}
	return chartdraw.NewPointHit(h.Index, h.Role.Cursor())
}

// RectangleRoles returns the roles of the eight rectangle handles in the
// order top-left, top-right, bottom-right, bottom-left, top, right,
// bottom, left.
func RectangleRoles() [8]Role {
	return [8]Role{
		RoleCornerNWSE, RoleCornerNESW, RoleCornerNWSE, RoleCornerNESW,
		RoleEdgeVertical, RoleEdgeHorizontal, RoleEdgeVertical, RoleEdgeHorizontal,
	}
}

// RectanglePoints returns the eight handles of a box with indices 0-7 in
// RectangleRoles order.
func RectanglePoints(b geom.Box) []Point {
	c := b.Center()
	locs := [8]geom.Point{
		b.Min, geom.Pt(b.Max.X, b.Min.Y), b.Max, geom.Pt(b.Min.X, b.Max.Y),
		geom.Pt(c.X, b.Min.Y), geom.Pt(b.Max.X, c.Y), geom.Pt(c.X, b.Max.Y), geom.Pt(b.Min.X, c.Y),
	}
	roles := RectangleRoles()
	out := make([]Point, len(locs))
	for i := range locs {
		out[i] = Point{Point: locs[i], Index: i, Role: roles[i], Square: i >= 4}
	}
	return out
}

// Points turns plain points into free handles indexed in order.
func Points(pts ...geom.Point) []Point {
	out := make([]Point, len(pts))
	for i, pt := range pts {
		out[i] = Point{Point: pt, Index: i}
	}
	return out
}
