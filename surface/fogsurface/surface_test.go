package fogsurface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestSurface_FillRect(t *testing.T) {
	s := New(40, 40)
	s.SetFillColor(color.RGBA{R: 255, A: 255})
	s.BeginPath()
	s.MoveTo(10, 10)
	s.LineTo(30, 10)
	s.LineTo(30, 30)
	s.LineTo(10, 30)
	s.ClosePath()
	s.Fill()

	img := s.Image()
	assert.NotZero(t, alphaAt(img, 20, 20), "inside must be painted")
	assert.Zero(t, alphaAt(img, 2, 2), "outside must stay transparent")
}

func TestSurface_ClearRect(t *testing.T) {
	s := New(20, 20)
	s.Clear(color.White)
	s.ClearRect(0, 0, 10, 20)

	img := s.Image()
	assert.Zero(t, alphaAt(img, 5, 5))
	assert.NotZero(t, alphaAt(img, 15, 5))
}

func TestSurface_DrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			src.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	s := New(20, 20)
	s.DrawImage(src, src.Bounds(), geom.BoxXYWH(8, 8, 8, 8))

	img := s.Image()
	assert.NotZero(t, alphaAt(img, 12, 12))
	assert.Zero(t, alphaAt(img, 2, 2))
}

func TestSurface_EncodePNG(t *testing.T) {
	s := New(8, 6)
	s.SetStrokeColor(color.Black)
	s.SetLineWidth(1)
	s.SetDash(chartdraw.DashDashed.Pattern(1))
	s.BeginPath()
	s.Arc(4, 3, 2, 0, 3)
	s.Stroke()

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
}

func TestSurface_SaveRestoreStyle(t *testing.T) {
	s := New(10, 10)
	s.SetFillColor(color.White)
	s.Save()
	s.SetFillColor(nil)
	s.Restore()
	s.BeginPath()
	s.Ellipse(5, 5, 4, 4)
	s.Fill()
	assert.NotZero(t, alphaAt(s.Image(), 5, 5))
}
