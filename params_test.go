package chartdraw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/chartdraw/geom"
)

func TestRenderParams_Ratio(t *testing.T) {
	for _, r := range []float64{0, -2, math.NaN()} {
		assert.Equal(t, 1.0, NewRenderParams(10, 10, r).Ratio())
	}
	assert.Equal(t, 1.0, RenderParams{}.Ratio())

	p := NewRenderParams(100.5, 50, 1.5)
	assert.Equal(t, 151, p.DeviceWidth())
	assert.Equal(t, 75, p.DeviceHeight())
	assert.Equal(t, geom.BoxXYWH(0, 0, 100.5, 50), p.Viewport())
	assert.Equal(t, geom.Pt(15, 30), p.ToDevice(geom.Pt(10, 20)))
}

func TestRenderParams_StrokeWidth(t *testing.T) {
	tests := []struct {
		css, ratio, want float64
	}{
		{1, 1, 1},
		{1, 2, 2},
		{1.5, 2, 3},
		{1, 1.5, 1},
		{0.2, 1, 1},
		{3, 1.25, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewRenderParams(1, 1, tt.ratio).StrokeWidth(tt.css), "css=%v ratio=%v", tt.css, tt.ratio)
	}
}

func TestRenderParams_Snap(t *testing.T) {
	p := NewRenderParams(100, 100, 2)
	assert.Equal(t, 21.5, p.Snap(10.3, 1))
	assert.Equal(t, 21.0, p.Snap(10.3, 2))
	assert.Equal(t, 7.5, p.Snap(3.4, 3))
	assert.Equal(t, geom.Pt(20.5, 41.5), p.SnapPoint(geom.Pt(10, 20.6), 1))
}

func TestRenderParams_HitTolerance(t *testing.T) {
	mouse := NewRenderParams(1, 1, 1)
	touch := mouse
	touch.Touch = true

	assert.Equal(t, float64(DefaultMouseTolerance), mouse.HitTolerance(Tolerance{}))
	assert.Equal(t, float64(DefaultTouchTolerance), touch.HitTolerance(Tolerance{}))
	custom := Tolerance{Mouse: 5, Touch: 12}
	assert.Equal(t, 5.0, mouse.HitTolerance(custom))
	assert.Equal(t, 12.0, touch.HitTolerance(custom))
	assert.Equal(t, DefaultTolerance(), Tolerance{Mouse: 3, Touch: 20})
}
