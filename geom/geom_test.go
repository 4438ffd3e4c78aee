package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		got    Point
		expect Point
	}{
		{"add", Pt(1, 2).Add(Pt(3, 4)), Pt(4, 6)},
		{"sub", Pt(5, 7).Sub(Pt(2, 3)), Pt(3, 4)},
		{"mul", Pt(1, 2).Mul(3), Pt(3, 6)},
		{"div", Pt(4, 6).Div(2), Pt(2, 3)},
		{"perp", Pt(1, 0).Perp(), Pt(0, 1)},
		{"rotate", Pt(1, 0).Rotate(math.Pi / 2), Pt(0, 1)},
		{"lerp", Pt(0, 0).Lerp(Pt(10, 20), 0.25), Pt(2.5, 5)},
		{"normalize zero", Point{}.Normalize(), Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.got.Approx(tt.expect, 1e-9), "got %v, want %v", tt.got, tt.expect)
		})
	}
}

func TestMatrix_Invert(t *testing.T) {
	m := Translate(10, 20).Multiply(Rotate(0.7)).Multiply(Scale(3, 0.5))
	inv, ok := m.Invert()
	require.True(t, ok)

	p := Pt(13, -4)
	back := inv.TransformPoint(m.TransformPoint(p))
	assert.True(t, back.Approx(p, 1e-9), "round trip gave %v", back)

	_, ok = Scale(1, 0).Invert()
	assert.False(t, ok, "collapsed transform must not invert")
}

func TestDistanceToSegment_OnSegmentIsZero(t *testing.T) {
	segments := []Segment{
		Seg(Pt(0, 0), Pt(100, 0)),
		Seg(Pt(-30, 12), Pt(45, -80)),
		Seg(Pt(3.3, 7.1), Pt(3.3, 907.5)),
	}
	for _, s := range segments {
		for i := 0; i <= 20; i++ {
			frac := float64(i) / 20
			p := s.A.Lerp(s.B, frac)
			proj := DistanceToSegment(s.A, s.B, p)
			assert.InDelta(t, 0, proj.Distance, 1e-9)
			assert.InDelta(t, frac, proj.T, 1e-9)
		}
	}
}

func TestDistanceToSegment_Clamped(t *testing.T) {
	proj := DistanceToSegment(Pt(0, 0), Pt(10, 0), Pt(-3, 4))
	assert.InDelta(t, 5, proj.Distance, 1e-9)
	assert.Equal(t, 0.0, proj.T)

	proj = DistanceToSegment(Pt(0, 0), Pt(10, 0), Pt(5, 2))
	assert.InDelta(t, 2, proj.Distance, 1e-9)
	assert.InDelta(t, 0.5, proj.T, 1e-9)

	proj = DistanceToSegment(Pt(1, 1), Pt(1, 1), Pt(4, 5))
	assert.InDelta(t, 5, proj.Distance, 1e-9)
}

func TestIntersectLines(t *testing.T) {
	l1, _ := LineThroughPoints(Pt(0, 0), Pt(10, 10))
	l2, _ := LineThroughPoints(Pt(0, 10), Pt(10, 0))
	p, ok := IntersectLines(l1, l2)
	require.True(t, ok)
	assert.True(t, p.Approx(Pt(5, 5), 1e-9))

	l3, _ := LineThroughPoints(Pt(0, 5), Pt(10, 15))
	_, ok = IntersectLines(l1, l3)
	assert.False(t, ok, "parallel lines have no unique intersection")

	_, ok = IntersectLines(l1, l1)
	assert.False(t, ok, "coincident lines have no unique intersection")

	// Slopes differ by less than 1e-6.
	l4, _ := LineThroughPoints(Pt(0, 0), Pt(1000, 1000))
	l5, _ := LineThroughPoints(Pt(0, 50), Pt(1000, 1050.0000001))
	_, ok = IntersectLines(l4, l5)
	assert.False(t, ok)

	_, ok = LineThroughPoints(Pt(1, 1), Pt(1, 1))
	assert.False(t, ok)
}

func TestExtendSegment(t *testing.T) {
	box := BoxXYWH(0, 0, 800, 600)
	tests := []struct {
		name        string
		seg         Segment
		left, right bool
		want        Segment
		ok          bool
	}{
		{"inside", Seg(Pt(100, 100), Pt(200, 200)), false, false, Seg(Pt(100, 100), Pt(200, 200)), true},
		{"ray right", Seg(Pt(100, 300), Pt(200, 300)), false, true, Seg(Pt(100, 300), Pt(800, 300)), true},
		{"ray left", Seg(Pt(100, 300), Pt(200, 300)), true, false, Seg(Pt(0, 300), Pt(200, 300)), true},
		{"both", Seg(Pt(100, 100), Pt(200, 200)), true, true, Seg(Pt(0, 0), Pt(600, 600)), true},
		{"clipped", Seg(Pt(-100, 300), Pt(900, 300)), false, false, Seg(Pt(0, 300), Pt(800, 300)), true},
		{"outside", Seg(Pt(-100, -10), Pt(-50, -10)), false, false, Segment{}, false},
		{"ray away from box", Seg(Pt(-100, 300), Pt(-50, 300)), true, false, Segment{}, false},
		{"degenerate", Seg(Pt(5, 5), Pt(5, 5)), true, true, Segment{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtendSegment(tt.seg, box, tt.left, tt.right)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, got.A.Approx(tt.want.A, 1e-9), "A = %v, want %v", got.A, tt.want.A)
				assert.True(t, got.B.Approx(tt.want.B, 1e-9), "B = %v, want %v", got.B, tt.want.B)
			}
		})
	}
}

func TestIntersectLineAndBox(t *testing.T) {
	l, _ := LineThroughPoints(Pt(0, 100), Pt(1, 100))
	s, ok := IntersectLineAndBox(l, BoxXYWH(0, 0, 800, 600))
	require.True(t, ok)
	assert.InDelta(t, 800, s.Length(), 1e-9)
	assert.InDelta(t, 100, s.A.Y, 1e-9)
}

func TestIntersectPolygonAndHalfplane_ConvexAndContained(t *testing.T) {
	polygons := [][]Point{
		{Pt(0, 0), Pt(100, 0), Pt(100, 100), Pt(0, 100)},
		{Pt(50, -20), Pt(120, 40), Pt(80, 130), Pt(-10, 90), Pt(-30, 10)},
		{Pt(0, 0), Pt(200, 10), Pt(30, 150)},
	}
	cuts := [][2]Point{
		{Pt(0, 50), Pt(100, 60)},
		{Pt(20, -100), Pt(60, 300)},
		{Pt(-50, 0), Pt(200, 200)},
		{Pt(500, 0), Pt(500, 10)},
	}

	for pi, poly := range polygons {
		require.True(t, IsConvex(poly))
		for ci, cut := range cuts {
			edge, ok := LineThroughPoints(cut[0], cut[1])
			require.True(t, ok)
			for _, positive := range []bool{true, false} {
				h := HalfPlane{Edge: edge, Positive: positive}
				got := IntersectPolygonAndHalfplane(poly, h)
				if got == nil {
					continue
				}
				assert.True(t, IsConvex(got), "poly %d cut %d: result not convex", pi, ci)
				for _, p := range got {
					assert.True(t, h.Contains(p), "poly %d cut %d: %v outside half-plane", pi, ci, p)
					inside := PointInPolygon(p, poly) || DistanceToPolyline(p, poly, true) < 1e-6
					assert.True(t, inside, "poly %d cut %d: %v outside polygon", pi, ci, p)
				}
			}
		}
	}
}

func TestIntersectPolygonAndHalfplane_Empty(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	edge, _ := LineThroughPoints(Pt(20, 0), Pt(20, 1))
	h := HalfPlaneThroughPoint(edge, Pt(30, 0))
	assert.Nil(t, IntersectPolygonAndHalfplane(square, h))
	assert.Nil(t, IntersectPolygonAndHalfplane(square[:2], h))
}

func TestClipPolygonToBox(t *testing.T) {
	poly := []Point{Pt(-50, -50), Pt(150, -50), Pt(150, 150), Pt(-50, 150)}
	got := ClipPolygonToBox(poly, BoxXYWH(0, 0, 100, 100))
	require.Len(t, got, 4)
	assert.InDelta(t, 10000, math.Abs(PolygonArea(got)), 1e-6)
}

func TestPointInShapes(t *testing.T) {
	assert.True(t, PointInTriangle(Pt(1, 1), Pt(0, 0), Pt(5, 0), Pt(0, 5)))
	assert.False(t, PointInTriangle(Pt(4, 4), Pt(0, 0), Pt(5, 0), Pt(0, 5)))
	assert.True(t, PointInCircle(Pt(3, 4), Pt(0, 0), 5))
	assert.False(t, PointInCircle(Pt(3, 4.1), Pt(0, 0), 5))
	assert.True(t, PointInPolygon(Pt(5, 5), []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}))
}

func TestQuadDistance_ConvergesToExact(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(150, 300), P2: Pt(300, 0)}
	queries := []Point{Pt(150, 100), Pt(20, 40), Pt(300, -20), Pt(160, 160)}

	for _, p := range queries {
		exact, _ := NearestOnQuad(q, p)
		coarse := math.Abs(q.Distance(p, 0.1) - exact)
		fine := math.Abs(q.Distance(p, 0.002) - exact)
		assert.LessOrEqual(t, fine, coarse+1e-6, "query %v", p)
		assert.Less(t, fine, 0.1, "query %v", p)
	}
}

func TestCubicDistance_ConvergesToExact(t *testing.T) {
	c := CubicBez{P0: Pt(0, 200), P1: Pt(100, 0), P2: Pt(200, 400), P3: Pt(300, 200)}
	for _, p := range []Point{Pt(150, 200), Pt(50, 120), Pt(290, 250)} {
		exact, _ := NearestOnCubic(c, p)
		got := c.Distance(p, 0.001)
		assert.InDelta(t, exact, got, 0.6, "query %v", p)
	}
}

func TestFlatten_CoalescesAndKeepsEndpoints(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 1), P2: Pt(2, 0)}
	pts := q.Flatten(MinFlattenStep)
	assert.Equal(t, q.P0, pts[0])
	assert.Equal(t, q.P2, pts[len(pts)-1])
	assert.Less(t, len(pts), 10, "samples closer than the coalesce distance must merge")

	assert.Equal(t, MaxFlattenStep, FlattenStep(0))
	assert.Equal(t, MinFlattenStep, FlattenStep(1e9))
}

func TestLevelPosition(t *testing.T) {
	lin, ok := NewRangeScale(ScaleLinear, 100, 200, 0, 500)
	require.True(t, ok)
	c1, c2 := lin.PriceToCoordinate(100), lin.PriceToCoordinate(200)
	coord, price := LevelPosition(ScaleLinear, c1, c2, 100, 200, 0.5, lin)
	assert.InDelta(t, 150, price, 1e-9)
	assert.InDelta(t, 250, coord, 1e-9)

	logScale, ok := NewRangeScale(ScaleLog, 10, 1000, 0, 400)
	require.True(t, ok)
	c1, c2 = logScale.PriceToCoordinate(10), logScale.PriceToCoordinate(1000)
	coord, price = LevelPosition(ScaleLog, c1, c2, 10, 1000, 0.5, logScale)
	assert.InDelta(t, 200, coord, 1e-9, "log levels interpolate in coordinate space")
	assert.InDelta(t, 100, price, 1e-6)

	_, ok = NewRangeScale(ScaleLog, 0, 10, 0, 100)
	assert.False(t, ok)
	_, ok = NewRangeScale(ScaleLinear, 5, 5, 0, 100)
	assert.False(t, ok)
}
