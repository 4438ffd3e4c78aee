package geom

import (
	"math"

	"honnef.co/go/curve"
)

// Flattening parameters. Samples are spaced roughly FlattenPixels apart
// along the control polygon, but never closer than MinFlattenStep in
// parameter space, which bounds a single curve to 1/MinFlattenStep samples.
const (
	FlattenPixels  = 2.0
	MinFlattenStep = 1.0 / 1024
	MaxFlattenStep = 0.25

	// coalesceDistance drops flattened samples closer than this to the
	// previously kept sample.
	coalesceDistance = 0.5
)

// QuadBez represents a quadratic Bézier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Tangent returns the derivative at t.
func (q QuadBez) Tangent(t float64) Point {
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	return d0.Lerp(d1, t).Mul(2)
}

// LengthEstimate returns the length of the control polygon, an upper bound
// of the arc length.
func (q QuadBez) LengthEstimate() float64 {
	return q.P0.Distance(q.P1) + q.P1.Distance(q.P2)
}

// Flatten approximates the curve with a polyline. A non-positive step
// selects FlattenStep(q.LengthEstimate()).
func (q QuadBez) Flatten(step float64) []Point {
	return flatten(q.Eval, q.P2, q.LengthEstimate(), step)
}

// Distance returns the distance from p to the flattened curve.
func (q QuadBez) Distance(p Point, step float64) float64 {
	return DistanceToPolyline(p, q.Flatten(step), false)
}

// CubicBez represents a cubic Bézier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Tangent returns the derivative at t.
func (c CubicBez) Tangent(t float64) Point {
	mt := 1.0 - t
	d0 := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	d1 := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d2 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// LengthEstimate returns the length of the control polygon.
func (c CubicBez) LengthEstimate() float64 {
	return c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
}

// Flatten approximates the curve with a polyline. A non-positive step
// selects FlattenStep(c.LengthEstimate()).
func (c CubicBez) Flatten(step float64) []Point {
	return flatten(c.Eval, c.P3, c.LengthEstimate(), step)
}

// Distance returns the distance from p to the flattened curve.
func (c CubicBez) Distance(p Point, step float64) float64 {
	return DistanceToPolyline(p, c.Flatten(step), false)
}

// FlattenStep returns the parametric step for a curve of the given
// estimated length: inversely proportional to the length, clamped to
// [MinFlattenStep, MaxFlattenStep].
func FlattenStep(length float64) float64 {
	if length <= 0 {
		return MaxFlattenStep
	}
	return math.Max(MinFlattenStep, math.Min(MaxFlattenStep, FlattenPixels/length))
}

func flatten(eval func(float64) Point, end Point, length, step float64) []Point {
	if step <= 0 {
		step = FlattenStep(length)
	}
	step = math.Max(step, MinFlattenStep)
	pts := make([]Point, 0, int(1/step)+2)
	pts = append(pts, eval(0))
	for t := step; t < 1; t += step {
		p := eval(t)
		if p.Distance(pts[len(pts)-1]) < coalesceDistance {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) > 1 && pts[len(pts)-1].Distance(end) < coalesceDistance {
		pts[len(pts)-1] = end
	} else {
		pts = append(pts, end)
	}
	return pts
}

// NearestOnQuad returns the exact distance from p to the quadratic curve
// and the parameter of the nearest point.
func NearestOnQuad(q QuadBez, p Point) (dist, t float64) {
	c := curve.QuadBez{P0: toCurve(q.P0), P1: toCurve(q.P1), P2: toCurve(q.P2)}
	distSq, t := c.Nearest(toCurve(p), 1e-9)
	return math.Sqrt(distSq), t
}

// NearestOnCubic returns the distance from p to the cubic curve and the
// parameter of the nearest point.
func NearestOnCubic(c CubicBez, p Point) (dist, t float64) {
	cb := curve.CubicBez{P0: toCurve(c.P0), P1: toCurve(c.P1), P2: toCurve(c.P2), P3: toCurve(c.P3)}
	distSq, t := cb.Nearest(toCurve(p), 1e-9)
	return math.Sqrt(distSq), t
}

func toCurve(p Point) curve.Point {
	return curve.Point{X: p.X, Y: p.Y}
}
