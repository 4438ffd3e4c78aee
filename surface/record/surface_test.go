package record

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpSave, "Save"},
		{OpArc, "Arc"},
		{OpFillText, "FillText"},
		{OpClearRect, "ClearRect"},
		{Op(250), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestSurface_StrokeSnapshot(t *testing.T) {
	s := New(100, 100)
	s.SetStrokeColor(color.Black)
	s.SetLineWidth(2)
	s.BeginPath()
	s.MoveTo(10, 10)
	s.LineTo(50, 10)
	s.LineTo(50, 40)
	s.Stroke()

	paths := s.Paths(OpStroke)
	require.Len(t, paths, 1)
	p := paths[0]
	assert.Equal(t, 2.0, p.Width)
	assert.Equal(t, color.Black, p.Color)
	require.Len(t, p.Subpaths, 1)
	assert.Equal(t, []geom.Point{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 40}}, p.Subpaths[0])
	assert.Equal(t, 1, s.Count(OpStroke))
	assert.Equal(t, 1, s.Count(OpMoveTo))
	assert.Equal(t, 2, s.Count(OpLineTo))
}

func TestSurface_FillKeepsPath(t *testing.T) {
	s := New(100, 100)
	s.BeginPath()
	s.MoveTo(0, 0)
	s.LineTo(10, 0)
	s.LineTo(10, 10)
	s.ClosePath()
	s.Fill()
	s.Stroke()

	require.Len(t, s.Paths(OpFill), 1)
	require.Len(t, s.Paths(OpStroke), 1)
	assert.Equal(t, s.Paths(OpFill)[0].Subpaths, s.Paths(OpStroke)[0].Subpaths)
	assert.True(t, s.Paths(OpFill)[0].Closed[0])

	s.BeginPath()
	s.Stroke()
	assert.Empty(t, s.Paths(OpStroke)[1].Subpaths)
}

func TestSurface_TransformAndRestore(t *testing.T) {
	s := New(100, 100)
	s.Save()
	s.Translate(5, 7)
	s.SetFillColor(color.White)
	s.FillText("hi", 1, 1)
	s.Restore()
	s.FillText("again", 1, 1)

	texts := s.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, 6.0, texts[0].X)
	assert.Equal(t, 8.0, texts[0].Y)
	assert.Equal(t, 1.0, texts[1].X)
	assert.Nil(t, texts[1].Color)
}

func TestSurface_ArcRecordsOneCommand(t *testing.T) {
	s := New(100, 100)
	s.BeginPath()
	s.Arc(50, 50, 10, 0, math.Pi)
	s.Stroke()

	assert.Equal(t, 1, s.Count(OpArc))
	assert.Zero(t, s.Count(OpCubicTo))
	pts := s.Paths(OpStroke)[0].Points()
	require.NotEmpty(t, pts)
	assert.InDelta(t, 60, pts[0].X, 1e-9)
	assert.InDelta(t, 40, pts[len(pts)-1].X, 1e-9)
	for _, p := range pts {
		assert.InDelta(t, 10, p.Distance(geom.Pt(50, 50)), 0.01)
	}
}

func TestSurface_Ellipse(t *testing.T) {
	s := New(100, 100)
	s.BeginPath()
	s.Ellipse(50, 50, 20, 10)
	s.Fill()

	b := s.Paths(OpFill)[0].Bounds()
	assert.InDelta(t, 30, b.Min.X, 0.01)
	assert.InDelta(t, 70, b.Max.X, 0.01)
	assert.InDelta(t, 40, b.Min.Y, 0.01)
	assert.InDelta(t, 60, b.Max.Y, 0.01)
}

func TestSurface_Reset(t *testing.T) {
	s := New(10, 10)
	s.SetFont(chartdraw.Font{Size: 12})
	s.FillText("x", 0, 0)
	s.Reset()
	assert.Empty(t, s.Commands())
	assert.Empty(t, s.Texts())
	w, h := s.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}
