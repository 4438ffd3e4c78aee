package shapes

import (
	"math"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// EllipseData is the snapshot drawn by Ellipse. Rotation is in radians,
// clockwise on screen.
type EllipseData struct {
	Center   geom.Point
	RadiusX  float64
	RadiusY  float64
	Rotation float64
	Line     chartdraw.LineStyle
	Fill     chartdraw.FillStyle
}

func (d *EllipseData) transform() geom.Matrix {
	return geom.Translate(d.Center.X, d.Center.Y).
		Multiply(geom.Rotate(d.Rotation)).
		Multiply(geom.Scale(d.RadiusX, d.RadiusY))
}

// Ellipse renders a rotated ellipse with independent radii.
type Ellipse struct {
	hitConfig
	data *EllipseData
}

// NewEllipse returns an empty ellipse renderer.
func NewEllipse() *Ellipse {
	return &Ellipse{}
}

// SetData replaces the snapshot.
func (r *Ellipse) SetData(d *EllipseData) {
	r.data = d
}

func (r *Ellipse) valid() bool {
	return r.data != nil && r.data.RadiusX > 0 && r.data.RadiusY > 0
}

// Draw implements chartdraw.Renderer.
func (r *Ellipse) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if !r.valid() {
		return
	}
	d := r.data
	ratio := p.Ratio()
	c := p.ToDevice(d.Center)
	s.BeginPath()
	chartdraw.AppendEllipseArc(s, c, d.RadiusX*ratio, d.RadiusY*ratio, d.Rotation, 0, 2*math.Pi, false)
	s.ClosePath()
	if d.Fill.Visible && d.Fill.Color != nil {
		s.SetFillColor(d.Fill.Resolved())
		s.Fill()
	}
	if d.Line.Visible() {
		d.Line.Apply(s, p)
		s.Stroke()
	}
}

// HitTest implements chartdraw.Renderer. The query point is mapped into
// the unit circle space of the ellipse; the outline distance is measured
// back in screen space along the same radial direction.
func (r *Ellipse) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if !r.valid() {
		return nil
	}
	m := r.data.transform()
	inv, ok := m.Invert()
	if !ok {
		return nil
	}
	q := inv.TransformPoint(pt)
	if edgeDistance(m, q, pt) <= r.tolerance(p) {
		return lineHit(chartdraw.HitMovePoint)
	}
	if r.data.Fill.Visible && q.Length() < 1 {
		return backgroundHit()
	}
	return nil
}

// edgeDistance returns the screen distance from pt to the outline point
// that lies on the same unit-space ray as q.
func edgeDistance(m geom.Matrix, q, pt geom.Point) float64 {
	l := q.Length()
	if l == 0 {
		// The center: any direction works, take the nearer axis.
		a := m.TransformPoint(geom.Pt(1, 0)).Distance(pt)
		b := m.TransformPoint(geom.Pt(0, 1)).Distance(pt)
		return math.Min(a, b)
	}
	return m.TransformPoint(q.Div(l)).Distance(pt)
}

// ArcData is the snapshot drawn by Arc. Angles are parametric angles of the
// unrotated ellipse in radians, clockwise on screen, swept from StartAngle
// to EndAngle.
type ArcData struct {
	Center     geom.Point
	RadiusX    float64
	RadiusY    float64
	Rotation   float64
	StartAngle float64
	EndAngle   float64
	// Wedge closes the arc through the center; otherwise the chord closes
	// the filled area.
	Wedge bool
	Line  chartdraw.LineStyle
	Fill  chartdraw.FillStyle
}

// Arc renders an elliptical arc, optionally as a pie wedge.
type Arc struct {
	hitConfig
	data *ArcData
}

// NewArc returns an empty arc renderer.
func NewArc() *Arc {
	return &Arc{}
}

// SetData replaces the snapshot.
func (r *Arc) SetData(d *ArcData) {
	r.data = d
}

func (r *Arc) valid() bool {
	return r.data != nil && r.data.RadiusX > 0 && r.data.RadiusY > 0 && r.sweep() > 0
}

func (r *Arc) sweep() float64 {
	sw := math.Mod(r.data.EndAngle-r.data.StartAngle, 2*math.Pi)
	if sw < 0 {
		sw += 2 * math.Pi
	}
	if sw == 0 && r.data.EndAngle != r.data.StartAngle {
		sw = 2 * math.Pi
	}
	return sw
}

func (r *Arc) transform() geom.Matrix {
	d := r.data
	return geom.Translate(d.Center.X, d.Center.Y).
		Multiply(geom.Rotate(d.Rotation)).
		Multiply(geom.Scale(d.RadiusX, d.RadiusY))
}

// inSweep reports whether the unit-space direction q falls in the arc.
func (r *Arc) inSweep(q geom.Point) bool {
	a := math.Mod(q.Angle()-r.data.StartAngle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a <= r.sweep()
}

func (r *Arc) trace(b chartdraw.PathBuilder, center geom.Point, scale float64) {
	d := r.data
	start, end := d.StartAngle, d.StartAngle+r.sweep()
	if d.Wedge {
		b.MoveTo(center.X, center.Y)
	}
	chartdraw.AppendEllipseArc(b, center, d.RadiusX*scale, d.RadiusY*scale, d.Rotation, start, end, d.Wedge)
}

// Draw implements chartdraw.Renderer.
func (r *Arc) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	if !r.valid() {
		return
	}
	d := r.data
	c := p.ToDevice(d.Center)
	if d.Fill.Visible && d.Fill.Color != nil {
		s.BeginPath()
		r.trace(s, c, p.Ratio())
		s.ClosePath()
		s.SetFillColor(d.Fill.Resolved())
		s.Fill()
	}
	if d.Line.Visible() {
		d.Line.Apply(s, p)
		s.BeginPath()
		r.trace(s, c, p.Ratio())
		if d.Wedge {
			s.ClosePath()
		}
		s.Stroke()
	}
}

// HitTest implements chartdraw.Renderer.
func (r *Arc) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	if !r.valid() {
		return nil
	}
	d := r.data
	m := r.transform()
	inv, ok := m.Invert()
	if !ok {
		return nil
	}
	tol := r.tolerance(p)
	q := inv.TransformPoint(pt)

	start := m.TransformPoint(geom.Pt(math.Cos(d.StartAngle), math.Sin(d.StartAngle)))
	endAngle := d.StartAngle + r.sweep()
	end := m.TransformPoint(geom.Pt(math.Cos(endAngle), math.Sin(endAngle)))

	onCurve := r.inSweep(q) && edgeDistance(m, q, pt) <= tol
	onEnds := pt.Distance(start) <= tol || pt.Distance(end) <= tol
	if onCurve || onEnds {
		return lineHit(chartdraw.HitMovePoint)
	}
	if d.Wedge {
		if geom.DistanceToSegment(d.Center, start, pt).Distance <= tol ||
			geom.DistanceToSegment(d.Center, end, pt).Distance <= tol {
			return lineHit(chartdraw.HitMovePoint)
		}
	}
	if !d.Fill.Visible || q.Length() >= 1 {
		return nil
	}
	if d.Wedge {
		if r.inSweep(q) {
			return backgroundHit()
		}
		return nil
	}
	// Chord-closed area: inside the ellipse, on the arc's side of the chord.
	chord, ok := geom.LineThroughPoints(start, end)
	if !ok {
		if r.sweep() >= math.Pi {
			return backgroundHit()
		}
		return nil
	}
	mid := d.StartAngle + r.sweep()/2
	arcMid := m.TransformPoint(geom.Pt(math.Cos(mid), math.Sin(mid)))
	if geom.HalfPlaneThroughPoint(chord, arcMid).Contains(pt) {
		return backgroundHit()
	}
	return nil
}
