package levelcache

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/surface/record"
)

var fibCoeffs = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1, 1.618, 2.618, 3.618, 4.236}

func newCache(opts ...Option) *Cache {
	opts = append([]Option{WithRasterFactory(record.Factory), WithFont(chartdraw.Font{Size: 10})}, opts...)
	return New("fib", 20, opts...)
}

func fibState(visible ...int) State {
	st := State{Points: []geom.Point{geom.Pt(10, 10), geom.Pt(200, 300)}, PixelRatio: 1}
	for i, c := range fibCoeffs {
		st.Levels = append(st.Levels, Level{Index: i, Coeff: c, Color: color.RGBA{R: uint8(i * 20), A: 255}})
	}
	for _, v := range visible {
		st.Levels[v].Visible = true
	}
	return st
}

func rasterOf(t *testing.T, c *Cache) *record.Surface {
	t.Helper()
	rec, ok := c.Raster().(*record.Surface)
	require.True(t, ok)
	return rec
}

func TestUpdateSource_UnchangedFingerprintDoesNotRepaint(t *testing.T) {
	c := newCache()
	st := fibState(0, 4, 6)

	_, painted := c.UpdateSource("a", st)
	require.True(t, painted)
	rec := rasterOf(t, c)
	texts := rec.Count(record.OpFillText)

	_, painted = c.UpdateSource("a", st)
	assert.False(t, painted)
	_, painted = c.UpdateSource("a", fibState(0, 4, 6))
	assert.False(t, painted)

	assert.Equal(t, 1, c.Stats().Repaints)
	assert.Equal(t, texts, rec.Count(record.OpFillText))
}

func TestUpdateSource_ColorChangeRepaintsOneRow(t *testing.T) {
	c := newCache()
	c.UpdateSource("a", fibState(0, 4, 6))
	c.UpdateSource("b", fibState(1, 2))
	rec := rasterOf(t, c)
	clears := rec.Count(record.OpClearRect)

	st := fibState(0, 4, 6)
	st.Levels[4].Color = color.RGBA{G: 200, A: 255}
	_, painted := c.UpdateSource("a", st)
	require.True(t, painted)
	_, painted = c.UpdateSource("b", fibState(1, 2))
	assert.False(t, painted)

	assert.Equal(t, 3, c.Stats().Repaints)
	assert.Equal(t, clears+1, rec.Count(record.OpClearRect))
}

func TestUpdateSource_HiddenLevelsIgnored(t *testing.T) {
	c := newCache()
	c.UpdateSource("a", fibState(0, 1))
	st := fibState(0, 1)
	st.Levels[5].Color = color.White
	_, painted := c.UpdateSource("a", st)
	assert.False(t, painted)
}

func TestUpdateSource_ThreeOfElevenLevels(t *testing.T) {
	c := newCache()
	row, _ := c.UpdateSource("a", fibState(2, 4, 9))
	require.Len(t, row.Cells, 3)
	assert.Equal(t, []int{2, 4, 9}, []int{row.Cells[0].Level, row.Cells[1].Level, row.Cells[2].Level})
	for i := 1; i < len(row.Cells); i++ {
		prev, cur := row.Cells[i-1], row.Cells[i]
		assert.Greater(t, prev.Width, 0.0)
		assert.LessOrEqual(t, prev.X+prev.Width, cur.X, "cells %d and %d overlap", i-1, i)
	}
	assert.Equal(t, 3, rasterOf(t, c).Count(record.OpFillText))
}

func TestUpdateSource_PriceRangeEmpty(t *testing.T) {
	c := newCache()
	st := fibState(1, 2)
	st.PriceRangeEmpty = true
	row, painted := c.UpdateSource("a", st)
	assert.True(t, painted)
	assert.Empty(t, row.Cells)
}

func TestCapacityGrowth(t *testing.T) {
	c := newCache(WithInitialCapacity(2))
	c.UpdateSource("a", fibState(0))
	c.UpdateSource("b", fibState(0))
	assert.Equal(t, 2, c.Capacity())
	first := rasterOf(t, c)

	row, _ := c.UpdateSource("c", fibState(0))
	assert.Equal(t, 2, row.Index)
	assert.Equal(t, 4, c.Capacity())
	assert.Equal(t, 1, c.Stats().Reallocations)

	grown := rasterOf(t, c)
	require.NotSame(t, first, grown)
	_, h := grown.Size()
	assert.Equal(t, 4*20, h)
	require.NotEmpty(t, grown.Commands())
	assert.Equal(t, record.OpDrawImage, grown.Commands()[0].Op, "old rows are copied first")

	c.UpdateSource("d", fibState(0))
	c.UpdateSource("e", fibState(0))
	assert.Equal(t, 8, c.Capacity())

	// Existing rows keep their index and are not repainted.
	row, painted := c.UpdateSource("a", fibState(0))
	assert.False(t, painted)
	assert.Equal(t, 0, row.Index)
}

func TestCapacityGrowth_FromOne(t *testing.T) {
	c := newCache(WithInitialCapacity(1))
	c.UpdateSource("a", fibState(0))
	c.UpdateSource("b", fibState(0))
	assert.Equal(t, 2, c.Capacity())
}

func TestSetSymbol(t *testing.T) {
	c := newCache()
	c.SetSymbol("AAPL")
	c.UpdateSource("a", fibState(0))
	c.UpdateSource("b", fibState(0))

	c.SetSymbol("AAPL")
	_, ok := c.Row("b")
	assert.True(t, ok, "same symbol keeps rows")

	c.SetSymbol("MSFT")
	_, ok = c.Row("a")
	assert.False(t, ok)
	row, painted := c.UpdateSource("b", fibState(0))
	assert.True(t, painted)
	assert.Equal(t, 0, row.Index)
}

func TestRemove_IndexNotReused(t *testing.T) {
	c := newCache()
	c.UpdateSource("a", fibState(0))
	c.UpdateSource("b", fibState(0))
	c.Remove("a")
	c.Remove("missing")
	_, ok := c.Row("a")
	assert.False(t, ok)

	row, _ := c.UpdateSource("c", fibState(0))
	assert.Equal(t, 2, row.Index)
	assert.Equal(t, 2, c.Stats().Rows)
}

func TestPixelRatioChange(t *testing.T) {
	c := newCache()
	c.UpdateSource("a", fibState(0))
	first := rasterOf(t, c)

	st := fibState(0)
	st.PixelRatio = 2
	_, painted := c.UpdateSource("a", st)
	assert.True(t, painted)
	second := rasterOf(t, c)
	assert.NotSame(t, first, second)
	_, h := second.Size()
	assert.Equal(t, DefaultInitialCapacity*40, h)
}

func TestRenderer(t *testing.T) {
	c := newCache()
	row, _ := c.UpdateSource("a", fibState(2, 4, 9))
	c.UpdateSource("b", fibState(1))

	r := c.Renderer("a", []Placement{
		{Level: 2, At: geom.Pt(100, 50)},
		{Level: 4, At: geom.Pt(100, 80), Align: AlignRight},
		{Level: 7, At: geom.Pt(100, 110)},
	})
	p := chartdraw.NewRenderParams(800, 600, 1)
	out := record.New(800, 600)
	r.Draw(out, p)

	var blits []record.Command
	for _, cmd := range out.Commands() {
		if cmd.Op == record.OpDrawImage {
			blits = append(blits, cmd)
		}
	}
	require.Len(t, blits, 2, "hidden level 7 is skipped")

	cell := row.Cells[0]
	assert.Equal(t, int(cell.X), blits[0].Src.Min.X)
	assert.Equal(t, 0, blits[0].Src.Min.Y)
	assert.Equal(t, 20, blits[0].Src.Dy())
	assert.InDelta(t, 100, blits[0].Dst.Min.X, 1e-9)
	assert.InDelta(t, 40, blits[0].Dst.Min.Y, 1e-9)
	assert.InDelta(t, 100, blits[1].Dst.Max.X, 1)

	assert.NotNil(t, r.HitTest(geom.Pt(105, 50), p))
	assert.Nil(t, r.HitTest(geom.Pt(95, 50), p))

	n := len(out.Commands())
	c.Renderer("missing", []Placement{{Level: 0}}).Draw(out, p)
	assert.Len(t, out.Commands(), n)
}

func TestFingerprint(t *testing.T) {
	a := fibState(1, 2)
	b := fibState(1, 2)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b.Dark = true
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))

	b = fibState(1, 2)
	b.Points[1].Y++
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))

	b = fibState(1, 2)
	b.Levels[2].Coeff = 0.4
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "0.618", Level{Coeff: 0.618}.Label())
	assert.Equal(t, "1", Level{Coeff: 1}.Label())
	assert.Equal(t, "61.8%", Level{Coeff: 0.618, Text: "61.8%"}.Label())
}
