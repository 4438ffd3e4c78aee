package chartdraw

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, color.NRGBAModel.Convert(c))

	c, err = ParseColor("#0f0")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, color.NRGBAModel.Convert(c))

	c, err = ParseColor("#00ff0080")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 255, A: 128}, c)

	for _, bad := range []string{"red", "#12", "#00ff00zz", ""} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
	assert.Panics(t, func() { MustParseColor("nope") })
}

func TestWithAlpha(t *testing.T) {
	assert.Nil(t, WithAlpha(nil, 1))
	assert.Equal(t, color.NRGBA{A: 128}, WithAlpha(color.Black, 0.5))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, WithAlpha(color.White, 7))

	fs := FillStyle{Color: MustParseColor("#2962ff"), Opacity: 0.2, Visible: true}
	assert.Equal(t, color.NRGBA{R: 0x29, G: 0x62, B: 0xff, A: 51}, fs.Resolved())
}

func TestBlend(t *testing.T) {
	channel := func(c color.Color) float64 {
		r, _, _, _ := c.RGBA()
		return float64(r >> 8)
	}
	assert.InDelta(t, 0, channel(Blend(color.Black, color.White, 0)), 1)
	assert.InDelta(t, 255, channel(Blend(color.Black, color.White, 1)), 1)
	mid := channel(Blend(color.Black, color.White, 0.5))
	assert.True(t, mid > 60 && mid < 200, "mid gray %v", mid)
}

func TestLineStyle_Visible(t *testing.T) {
	assert.False(t, LineStyle{Width: 1}.Visible())
	assert.False(t, LineStyle{Color: color.Black}.Visible())
	assert.False(t, LineStyle{Color: color.Transparent, Width: 1}.Visible())
	assert.True(t, LineStyle{Color: color.Black, Width: 1}.Visible())
}

func TestDashStyle_Pattern(t *testing.T) {
	assert.Nil(t, DashSolid.Pattern(2))
	assert.Equal(t, []float64{2, 2}, DashDotted.Pattern(2))
	assert.Equal(t, []float64{4, 4}, DashDashed.Pattern(2))
	assert.Equal(t, []float64{12, 12}, DashLargeDashed.Pattern(2))
	assert.Equal(t, []float64{2, 8}, DashSparseDotted.Pattern(2))
}

func TestFont_Scaled(t *testing.T) {
	f := Font{Family: "sans", Size: 12, Bold: true}
	assert.Equal(t, Font{Family: "sans", Size: 24, Bold: true}, f.Scaled(2))
	assert.Equal(t, 12.0, f.Size)
}
