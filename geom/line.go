package geom

import "math"

// parallelEpsilon is the relative determinant below which two lines are
// treated as parallel. It is scaled by the lengths of both normals so the
// test does not depend on how far apart the defining points are.
const parallelEpsilon = 1e-6

// Line is an infinite line in implicit form A*x + B*y + C = 0.
type Line struct {
	A, B, C float64
}

// LineThroughPoints returns the line through p1 and p2.
// It reports false when the points coincide.
func LineThroughPoints(p1, p2 Point) (Line, bool) {
	if p1.Approx(p2, 1e-9) {
		return Line{}, false
	}
	return Line{
		A: p1.Y - p2.Y,
		B: p2.X - p1.X,
		C: p1.X*p2.Y - p2.X*p1.Y,
	}, true
}

// Eval returns the signed value of the implicit equation at p.
// The sign tells which side of the line p is on.
func (l Line) Eval(p Point) float64 {
	return l.A*p.X + l.B*p.Y + l.C
}

// Distance returns the perpendicular distance from p to the line.
func (l Line) Distance(p Point) float64 {
	n := math.Hypot(l.A, l.B)
	if n == 0 {
		return math.Inf(1)
	}
	return math.Abs(l.Eval(p)) / n
}

// Normal returns the unit normal of the line.
func (l Line) Normal() Point {
	return Pt(l.A, l.B).Normalize()
}

// Through returns the parallel line passing through p.
func (l Line) Through(p Point) Line {
	return Line{A: l.A, B: l.B, C: -(l.A*p.X + l.B*p.Y)}
}

// IntersectLines returns the unique intersection of two lines.
// It reports false for parallel or coincident lines; callers must then
// fall back to a shape that does not need the intersection.
func IntersectLines(l1, l2 Line) (Point, bool) {
	det := l1.A*l2.B - l2.A*l1.B
	scale := math.Hypot(l1.A, l1.B) * math.Hypot(l2.A, l2.B)
	if scale == 0 || math.Abs(det) <= parallelEpsilon*scale {
		return Point{}, false
	}
	return Point{
		X: (l1.B*l2.C - l2.B*l1.C) / det,
		Y: (l2.A*l1.C - l1.A*l2.C) / det,
	}, true
}

// Parallel reports whether two direction vectors are parallel within the
// relative tolerance used by IntersectLines.
func Parallel(d1, d2 Point) bool {
	scale := d1.Length() * d2.Length()
	if scale == 0 {
		return true
	}
	return math.Abs(d1.Cross(d2)) <= parallelEpsilon*scale
}

// Segment is a line segment from A to B.
type Segment struct {
	A, B Point
}

// Seg is a convenience function to create a Segment.
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

// Length returns the segment length.
func (s Segment) Length() float64 { return s.A.Distance(s.B) }

// Direction returns B - A.
func (s Segment) Direction() Point { return s.B.Sub(s.A) }

// Degenerate reports whether the segment has (almost) zero length.
func (s Segment) Degenerate() bool { return s.A.Approx(s.B, 1e-9) }

// Line returns the infinite line carrying the segment.
func (s Segment) Line() (Line, bool) { return LineThroughPoints(s.A, s.B) }

// Projection is the result of projecting a point onto a segment.
// T is the clamped projection fraction in [0, 1] measured from A.
type Projection struct {
	Distance float64
	T        float64
}

// DistanceToSegment returns the distance from p to the segment ab and the
// clamped projection fraction. A zero-length segment behaves as a point.
func DistanceToSegment(a, b, p Point) Projection {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return Projection{Distance: p.Distance(a)}
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Projection{
		Distance: p.Distance(a.Add(ab.Mul(t))),
		T:        t,
	}
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line through a and b, and the unclamped projection fraction.
func DistanceToLine(a, b, p Point) Projection {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return Projection{Distance: p.Distance(a)}
	}
	t := p.Sub(a).Dot(ab) / lenSq
	return Projection{
		Distance: p.Distance(a.Add(ab.Mul(t))),
		T:        t,
	}
}

// IntersectSegments returns the intersection point of two segments.
func IntersectSegments(s1, s2 Segment) (Point, bool) {
	d1 := s1.Direction()
	d2 := s2.Direction()
	den := d1.Cross(d2)
	if Parallel(d1, d2) {
		return Point{}, false
	}
	w := s2.A.Sub(s1.A)
	t := w.Cross(d2) / den
	u := w.Cross(d1) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return s1.A.Add(d1.Mul(t)), true
}

// ClipParametric clips the parametric line origin + t*dir, t in [tMin, tMax],
// to the box using the Liang-Barsky algorithm. It returns the clipped
// parameter range and false when nothing remains.
func ClipParametric(origin, dir Point, box Box, tMin, tMax float64) (float64, float64, bool) {
	p := [4]float64{-dir.X, dir.X, -dir.Y, dir.Y}
	q := [4]float64{
		origin.X - box.Min.X,
		box.Max.X - origin.X,
		origin.Y - box.Min.Y,
		box.Max.Y - origin.Y,
	}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > tMax {
				return 0, 0, false
			}
			tMin = math.Max(tMin, r)
		} else {
			if r < tMin {
				return 0, 0, false
			}
			tMax = math.Min(tMax, r)
		}
	}
	if tMin > tMax {
		return 0, 0, false
	}
	return tMin, tMax, true
}

// IntersectSegmentAndBox clips a segment to the box.
func IntersectSegmentAndBox(s Segment, box Box) (Segment, bool) {
	return ExtendSegment(s, box, false, false)
}

// ExtendSegment stretches the segment past A (extendLeft) and/or past B
// (extendRight) up to the box edges, then clips the result to the box.
// Zero-length segments and segments entirely outside the box report false.
func ExtendSegment(s Segment, box Box, extendLeft, extendRight bool) (Segment, bool) {
	if s.Degenerate() {
		return Segment{}, false
	}
	lo, hi := 0.0, 1.0
	if extendLeft {
		lo = math.Inf(-1)
	}
	if extendRight {
		hi = math.Inf(1)
	}
	dir := s.Direction()
	t0, t1, ok := ClipParametric(s.A, dir, box, lo, hi)
	if !ok {
		return Segment{}, false
	}
	return Segment{A: s.A.Add(dir.Mul(t0)), B: s.A.Add(dir.Mul(t1))}, true
}

// IntersectLineAndBox returns the part of an infinite line inside the box.
func IntersectLineAndBox(l Line, box Box) (Segment, bool) {
	n := math.Hypot(l.A, l.B)
	if n == 0 {
		return Segment{}, false
	}
	// Closest point on the line to the origin, then walk along the direction.
	origin := Pt(-l.A*l.C/(n*n), -l.B*l.C/(n*n))
	dir := Pt(-l.B, l.A)
	t0, t1, ok := ClipParametric(origin, dir, box, math.Inf(-1), math.Inf(1))
	if !ok {
		return Segment{}, false
	}
	return Segment{A: origin.Add(dir.Mul(t0)), B: origin.Add(dir.Mul(t1))}, true
}
