package geom

import "math"

// HalfPlane is the closed region on one side of a line.
// Positive selects the side where Line.Eval is non-negative.
type HalfPlane struct {
	Edge     Line
	Positive bool
}

// HalfPlaneThroughPoint returns the half-plane bounded by edge that
// contains p. Points on the edge belong to both sides.
func HalfPlaneThroughPoint(edge Line, p Point) HalfPlane {
	return HalfPlane{Edge: edge, Positive: edge.Eval(p) >= 0}
}

// Contains reports whether p lies in the half-plane.
func (h HalfPlane) Contains(p Point) bool {
	return h.value(p) >= -1e-9
}

// value returns the signed distance-like value, positive inside.
func (h HalfPlane) value(p Point) float64 {
	v := h.Edge.Eval(p)
	if !h.Positive {
		v = -v
	}
	return v
}

// IntersectPolygonAndHalfplane clips a polygon to a half-plane using one
// Sutherland-Hodgman pass. The result keeps the vertex order of the input.
// It returns nil when fewer than three vertices survive.
func IntersectPolygonAndHalfplane(polygon []Point, h HalfPlane) []Point {
	n := len(polygon)
	if n < 3 {
		return nil
	}
	out := make([]Point, 0, n+1)
	prev := polygon[n-1]
	prevVal := h.value(prev)
	for _, cur := range polygon {
		curVal := h.value(cur)
		curIn := curVal >= -1e-9
		prevIn := prevVal >= -1e-9
		if curIn != prevIn {
			t := prevVal / (prevVal - curVal)
			out = appendDistinct(out, prev.Lerp(cur, t))
		}
		if curIn {
			out = appendDistinct(out, cur)
		}
		prev, prevVal = cur, curVal
	}
	if len(out) > 1 && out[0].Approx(out[len(out)-1], 1e-9) {
		out = out[:len(out)-1]
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

// ClipPolygonToBox clips a polygon to an axis-aligned box with four
// half-plane passes.
func ClipPolygonToBox(polygon []Point, box Box) []Point {
	edges := []HalfPlane{
		{Edge: Line{A: 1, C: -box.Min.X}, Positive: true},
		{Edge: Line{A: 1, C: -box.Max.X}, Positive: false},
		{Edge: Line{B: 1, C: -box.Min.Y}, Positive: true},
		{Edge: Line{B: 1, C: -box.Max.Y}, Positive: false},
	}
	out := polygon
	for _, e := range edges {
		out = IntersectPolygonAndHalfplane(out, e)
		if out == nil {
			return nil
		}
	}
	return out
}

func appendDistinct(pts []Point, p Point) []Point {
	if len(pts) > 0 && pts[len(pts)-1].Approx(p, 1e-9) {
		return pts
	}
	return append(pts, p)
}

// PointInPolygon reports whether p lies inside the polygon using the
// even-odd rule.
func PointInPolygon(p Point, polygon []Point) bool {
	inside := false
	n := len(polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// PointInTriangle reports whether p lies inside or on the triangle abc.
func PointInTriangle(p, a, b, c Point) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// PointInCircle reports whether p lies within radius of center.
func PointInCircle(p, center Point, radius float64) bool {
	return p.Sub(center).LengthSquared() <= radius*radius
}

// PolygonArea returns the signed area of the polygon (shoelace formula).
// In a y-down system a positive area means clockwise vertex order on screen.
func PolygonArea(polygon []Point) float64 {
	var area float64
	n := len(polygon)
	for i := range polygon {
		area += polygon[i].Cross(polygon[(i+1)%n])
	}
	return area / 2
}

// IsConvex reports whether the polygon is convex. Collinear vertices are
// allowed.
func IsConvex(polygon []Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	sign := 0.0
	for i := range polygon {
		a, b, c := polygon[i], polygon[(i+1)%n], polygon[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(cross) < 1e-9 {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return false
		}
	}
	return true
}

// DistanceToPolyline returns the smallest distance from p to any segment of
// the polyline. Closed adds the segment from the last vertex back to the
// first. A polyline with a single vertex behaves as a point.
func DistanceToPolyline(p Point, pts []Point, closed bool) float64 {
	switch len(pts) {
	case 0:
		return math.Inf(1)
	case 1:
		return p.Distance(pts[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		best = math.Min(best, DistanceToSegment(pts[i-1], pts[i], p).Distance)
	}
	if closed && len(pts) > 2 {
		best = math.Min(best, DistanceToSegment(pts[len(pts)-1], pts[0], p).Distance)
	}
	return best
}

// ClipSegmentToHalfplane returns the part of s inside the half-plane.
func ClipSegmentToHalfplane(s Segment, h HalfPlane) (Segment, bool) {
	va, vb := h.value(s.A), h.value(s.B)
	inA, inB := va >= -1e-9, vb >= -1e-9
	switch {
	case inA && inB:
		return s, true
	case !inA && !inB:
		return Segment{}, false
	}
	x := s.A.Lerp(s.B, va/(va-vb))
	if inA {
		return Segment{A: s.A, B: x}, true
	}
	return Segment{A: x, B: s.B}, true
}
