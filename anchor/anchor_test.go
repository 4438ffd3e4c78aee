package anchor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/surface/record"
)

var blue = color.RGBA{B: 255, A: 255}

func TestTolerance_ScalesWithRatio(t *testing.T) {
	r := New()
	for _, touch := range []bool{false, true} {
		base := chartdraw.NewRenderParams(800, 600, 1)
		base.Touch = touch
		want := base.HitTolerance(chartdraw.Tolerance{})
		for _, ratio := range []float64{1, 1.5, 2, 3} {
			p := chartdraw.NewRenderParams(800, 600, ratio)
			p.Touch = touch
			assert.InDelta(t, want*ratio, r.Tolerance(p), 1e-9, "touch=%v ratio=%v", touch, ratio)
		}
	}
}

func TestHitTest_SameCSSReachAtAnyRatio(t *testing.T) {
	r := New()
	r.SetData(&Data{Points: Points(geom.Pt(100, 100), geom.Pt(200, 100)), Color: blue})
	for _, ratio := range []float64{1, 2, 3} {
		p := chartdraw.NewRenderParams(800, 600, ratio)
		// Radius 5.5 plus mouse tolerance 3.
		h := r.HitTest(geom.Pt(108, 100), p)
		require.NotNil(t, h, "ratio=%v", ratio)
		assert.Equal(t, chartdraw.HitChangePoint, h.Kind)
		assert.Equal(t, 0, h.PointIndex)
		assert.Nil(t, r.HitTest(geom.Pt(109, 100), p), "ratio=%v", ratio)
	}
}

func TestHitTest_NearestWins(t *testing.T) {
	r := New()
	r.SetData(&Data{Points: Points(geom.Pt(100, 100), geom.Pt(106, 100)), Color: blue})
	p := chartdraw.NewRenderParams(800, 600, 1)

	h := r.HitTest(geom.Pt(101, 100), p)
	require.NotNil(t, h)
	assert.Equal(t, 0, h.PointIndex)

	h = r.HitTest(geom.Pt(105, 100), p)
	require.NotNil(t, h)
	assert.Equal(t, 1, h.PointIndex)
}

func TestHitTest_Touch(t *testing.T) {
	r := New()
	r.SetData(&Data{Points: Points(geom.Pt(100, 100)), Color: blue})
	p := chartdraw.NewRenderParams(800, 600, 2)
	assert.Nil(t, r.HitTest(geom.Pt(115, 100), p))
	p.Touch = true
	assert.NotNil(t, r.HitTest(geom.Pt(115, 100), p))
}

func TestRectanglePoints_Roles(t *testing.T) {
	pts := RectanglePoints(geom.NewBox(geom.Pt(100, 100), geom.Pt(300, 200)))
	require.Len(t, pts, 8)

	want := []struct {
		at     geom.Point
		cursor chartdraw.Cursor
	}{
		{geom.Pt(100, 100), chartdraw.CursorNWSEResize},
		{geom.Pt(300, 100), chartdraw.CursorNESWResize},
		{geom.Pt(300, 200), chartdraw.CursorNWSEResize},
		{geom.Pt(100, 200), chartdraw.CursorNESWResize},
		{geom.Pt(200, 100), chartdraw.CursorNSResize},
		{geom.Pt(300, 150), chartdraw.CursorEWResize},
		{geom.Pt(200, 200), chartdraw.CursorNSResize},
		{geom.Pt(100, 150), chartdraw.CursorEWResize},
	}

	r := New()
	r.SetData(&Data{Points: pts, Color: blue})
	p := chartdraw.NewRenderParams(800, 600, 1)
	for i, w := range want {
		assert.Equal(t, w.at, pts[i].Point, "handle %d", i)
		h := r.HitTest(w.at, p)
		require.NotNil(t, h, "handle %d", i)
		assert.Equal(t, i, h.PointIndex)
		assert.Equal(t, w.cursor, h.Cursor, "handle %d", i)
	}
}

func TestHitTest_MoveRole(t *testing.T) {
	r := New()
	r.SetData(&Data{Points: []Point{{Point: geom.Pt(50, 50), Index: 2, Role: RoleMove}}, Color: blue})
	h := r.HitTest(geom.Pt(50, 50), chartdraw.NewRenderParams(800, 600, 1))
	require.NotNil(t, h)
	assert.Equal(t, chartdraw.HitMovePoint, h.Kind)
	assert.Equal(t, chartdraw.AreaAnchor, h.Area)
	assert.Equal(t, 2, h.PointIndex)
}

func TestDraw_HaloOnHovered(t *testing.T) {
	hover := geom.Pt(201, 100)
	r := New()
	r.SetData(&Data{Points: Points(geom.Pt(100, 100), geom.Pt(200, 100)), Color: blue, Hovered: &hover})
	rec := record.New(1600, 1200)
	r.Draw(rec, chartdraw.NewRenderParams(800, 600, 2))

	fills := rec.Paths(record.OpFill)
	// One halo plus one body per handle.
	require.Len(t, fills, 3)
	assert.Len(t, rec.Paths(record.OpStroke), 2)

	halo := fills[1].Bounds()
	assert.InDelta(t, 400, halo.Center().X, 1e-6)
	assert.InDelta(t, DefaultRadius*2*2*2, halo.Width(), 1e-6)
}

func TestDraw_Empty(t *testing.T) {
	rec := record.New(100, 100)
	New().Draw(rec, chartdraw.NewRenderParams(100, 100, 1))
	r := New()
	r.SetData(&Data{Color: blue})
	r.Draw(rec, chartdraw.NewRenderParams(100, 100, 1))
	assert.Empty(t, rec.Commands())
	assert.Nil(t, r.HitTest(geom.Pt(0, 0), chartdraw.NewRenderParams(100, 100, 1)))
}
