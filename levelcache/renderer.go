package levelcache

import (
	"image"
	"math"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// Align is the horizontal alignment of a cell relative to its placement
// point. Cells are always centered vertically on the point.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Placement positions the cell of one level on screen, in CSS pixels.
type Placement struct {
	Level int
	At    geom.Point
	Align Align
}

// Renderer returns a renderer blitting the row cells of a tool instance at
// the placements. It draws nothing when the instance has no row.
func (c *Cache) Renderer(id string, placements []Placement) chartdraw.Renderer {
	row, ok := c.Row(id)
	return &cellRenderer{cache: c, row: row, ok: ok, placements: placements}
}

type cellRenderer struct {
	cache      *Cache
	row        Row
	ok         bool
	placements []Placement
}

// each calls fn with the CSS destination box and device source rectangle
// of every placement that has a painted cell.
func (r *cellRenderer) each(p chartdraw.RenderParams, fn func(dst geom.Box, src image.Rectangle)) {
	if !r.ok || r.cache.raster == nil {
		return
	}
	ratio := r.cache.ratio
	rh := r.cache.deviceRowHeight()
	for _, pl := range r.placements {
		cell, ok := r.row.Cell(pl.Level)
		if !ok {
			continue
		}
		w, h := cell.Width/ratio, rh/ratio
		x := pl.At.X
		switch pl.Align {
		case AlignCenter:
			x -= w / 2
		case AlignRight:
			x -= w
		}
		dst := geom.BoxXYWH(x, pl.At.Y-h/2, w, h)
		y0 := int(float64(r.row.Index) * rh)
		src := image.Rect(int(cell.X), y0, int(math.Ceil(cell.X+cell.Width)), y0+int(rh))
		fn(dst, src)
	}
}

func (r *cellRenderer) Draw(s chartdraw.Surface, p chartdraw.RenderParams) {
	var img image.Image
	r.each(p, func(dst geom.Box, src image.Rectangle) {
		if img == nil {
			img = r.cache.raster.Image()
		}
		// Snap to whole device pixels so the blit is not resampled.
		at := geom.Pt(math.Round(dst.Min.X*p.Ratio()), math.Round(dst.Min.Y*p.Ratio()))
		s.DrawImage(img, src, geom.BoxXYWH(at.X, at.Y, float64(src.Dx()), float64(src.Dy())))
	})
}

func (r *cellRenderer) HitTest(pt geom.Point, p chartdraw.RenderParams) *chartdraw.HitResult {
	var hit bool
	r.each(p, func(dst geom.Box, _ image.Rectangle) {
		hit = hit || dst.Contains(pt)
	})
	if !hit {
		return nil
	}
	return chartdraw.NewHit(chartdraw.HitMovePoint, chartdraw.AreaText)
}
