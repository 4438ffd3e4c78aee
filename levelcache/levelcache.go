// Package levelcache keeps the numeric level labels of multi-level tools
// (Fibonacci retracements, Gann fans) in one shared off-screen raster.
//
// Every tool instance owns a fixed-height row. A row is repainted only when
// the fingerprint of the tool's visible state changes, so unchanged labels
// are blitted from the raster every frame instead of being laid out again.
// The cache is single-owner and must only be used from the render thread.
package levelcache

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/label"
	"github.com/gogpu/chartdraw/surface/ggsurface"
)

// Level is one configured level of a tool.
type Level struct {
	// Index identifies the level within its tool.
	Index   int
	Visible bool
	Color   color.Color
	Coeff   float64
	// Text is the label; empty uses the coefficient.
	Text string
}

// Label returns the text painted for the level.
func (l Level) Label() string {
	if l.Text != "" {
		return l.Text
	}
	return strconv.FormatFloat(l.Coeff, 'f', -1, 64)
}

// State is the visible state of one tool instance.
type State struct {
	Points          []geom.Point
	Levels          []Level
	PriceRangeEmpty bool
	Dark            bool
	PixelRatio      float64
}

// Fingerprint returns a string that changes whenever anything painted for
// the state changes. Hidden levels do not contribute.
func Fingerprint(s State) string {
	var b strings.Builder
	f := func(v float64) {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte(',')
	}
	for _, p := range s.Points {
		f(p.X)
		f(p.Y)
	}
	b.WriteByte('|')
	for _, l := range s.Levels {
		if !l.Visible {
			continue
		}
		b.WriteString(strconv.Itoa(l.Index))
		b.WriteByte(':')
		f(l.Coeff)
		b.WriteString(strconv.Quote(l.Text))
		if l.Color != nil {
			r, g, bl, a := l.Color.RGBA()
			for _, c := range [4]uint32{r, g, bl, a} {
				b.WriteString(strconv.FormatUint(uint64(c), 16))
				b.WriteByte('.')
			}
		}
		b.WriteByte(';')
	}
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(s.PriceRangeEmpty))
	b.WriteString(strconv.FormatBool(s.Dark))
	f(s.PixelRatio)
	return b.String()
}

// Cell is the painted label of one level inside a row, in device pixels.
type Cell struct {
	Level int
	X     float64
	Width float64
}

// Row is the slot of one tool instance.
type Row struct {
	Index       int
	Width       float64
	Fingerprint string
	Cells       []Cell
}

// Cell returns the cell of a level.
func (r Row) Cell(level int) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Level == level {
			return c, true
		}
	}
	return Cell{}, false
}

// Stats reports cache activity.
type Stats struct {
	Rows          int
	Capacity      int
	Repaints      int
	Reallocations int
}

// Defaults.
const (
	DefaultInitialCapacity = 8
	defaultWidth           = 256
	// cellPadding is the horizontal padding around each label in CSS px.
	cellPadding = 2
)

type options struct {
	factory  chartdraw.RasterFactory
	measurer label.Measurer
	capacity int
	font     chartdraw.Font
}

// Option configures a Cache.
type Option func(*options)

// WithRasterFactory sets the constructor of the off-screen raster.
func WithRasterFactory(f chartdraw.RasterFactory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithMeasurer sets the measurer used to size cells.
func WithMeasurer(m label.Measurer) Option {
	return func(o *options) {
		o.measurer = m
	}
}

// WithInitialCapacity sets the number of rows of the first raster.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithFont sets the label font in CSS pixels.
func WithFont(f chartdraw.Font) Option {
	return func(o *options) {
		o.font = f
	}
}

// Cache is the shared label raster of one tool kind.
type Cache struct {
	kind      string
	rowHeight float64
	opts      options

	raster   chartdraw.Raster
	capacity int
	width    int
	ratio    float64

	rows   map[string]*Row
	next   int
	symbol string
	stats  Stats
}

// New returns an empty cache for a tool kind with rows of rowHeight CSS
// pixels. The raster is allocated on first use.
func New(kind string, rowHeight float64, opts ...Option) *Cache {
	chartdraw.Assert(rowHeight > 0, "levelcache: row height must be positive")
	o := options{
		factory:  ggsurface.Factory,
		measurer: label.Estimate{},
		capacity: DefaultInitialCapacity,
		font:     chartdraw.Font{Size: 11},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.capacity = max(o.capacity, 1)
	return &Cache{
		kind:      kind,
		rowHeight: rowHeight,
		opts:      o,
		capacity:  o.capacity,
		rows:      make(map[string]*Row),
	}
}

// Kind returns the tool kind the cache serves.
func (c *Cache) Kind() string { return c.kind }

// Capacity returns the number of rows the current raster holds.
func (c *Cache) Capacity() int { return c.capacity }

// Stats returns activity counters.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.Rows = len(c.rows)
	s.Capacity = c.capacity
	return s
}

// Raster returns the backing raster, nil before the first update.
func (c *Cache) Raster() chartdraw.Raster { return c.raster }

// Row returns the row of a tool instance.
func (c *Cache) Row(id string) (Row, bool) {
	r, ok := c.rows[id]
	if !ok {
		return Row{}, false
	}
	return *r, true
}

// SetSymbol switches the active instrument. A different symbol clears all
// rows.
func (c *Cache) SetSymbol(symbol string) {
	if symbol == c.symbol {
		return
	}
	c.symbol = symbol
	c.Clear()
}

// Clear drops every row and clears the raster. Row indices restart at 0.
func (c *Cache) Clear() {
	clear(c.rows)
	c.next = 0
	if c.raster != nil {
		w, h := c.raster.Size()
		c.raster.ClearRect(0, 0, float64(w), float64(h))
	}
}

// Remove forgets a tool instance. Its row index is not reused until Clear.
func (c *Cache) Remove(id string) {
	r, ok := c.rows[id]
	if !ok {
		return
	}
	if c.raster != nil {
		c.clearRow(r.Index)
	}
	delete(c.rows, id)
}

// UpdateSource assigns a row to the tool instance if needed and repaints it
// when its fingerprint changed. It returns the row and whether it was
// repainted.
func (c *Cache) UpdateSource(id string, st State) (Row, bool) {
	ratio := st.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	if c.raster != nil && ratio != c.ratio {
		// Device row height changed; rows stay assigned but repaint.
		chartdraw.Logger().Debug("levelcache: pixel ratio changed", "kind", c.kind, "from", c.ratio, "to", ratio)
		c.raster = nil
		for _, r := range c.rows {
			r.Fingerprint = ""
		}
	}
	c.ratio = ratio

	r, ok := c.rows[id]
	if !ok {
		r = &Row{Index: c.next}
		c.next++
		c.rows[id] = r
	}
	fp := Fingerprint(st)
	if ok && r.Fingerprint == fp && c.raster != nil {
		return *r, false
	}

	cells, texts, width := c.layout(st)
	c.ensure(r.Index+1, int(math.Ceil(width)))
	c.paint(r.Index, st, cells, texts)
	r.Fingerprint = fp
	r.Cells = cells
	r.Width = width
	c.stats.Repaints++
	chartdraw.Logger().Debug("levelcache: row repainted", "kind", c.kind, "row", r.Index, "cells", len(cells))
	return *r, true
}

func (c *Cache) deviceRowHeight() float64 {
	return math.Ceil(c.rowHeight * c.ratio)
}

// layout measures the visible levels and places them left to right.
func (c *Cache) layout(st State) ([]Cell, []string, float64) {
	if st.PriceRangeEmpty {
		return nil, nil, 0
	}
	f := c.opts.font
	pad := cellPadding * c.ratio
	var (
		cells []Cell
		texts []string
		x     float64
	)
	for _, l := range st.Levels {
		if !l.Visible {
			continue
		}
		t := l.Label()
		w := math.Ceil(c.opts.measurer.Advance(t, f)*c.ratio) + 2*pad
		cells = append(cells, Cell{Level: l.Index, X: x, Width: w})
		texts = append(texts, t)
		// One device pixel gap keeps filtering from bleeding between cells.
		x += w + 1
	}
	return cells, texts, x
}

// ensure grows the raster to hold rows rows of at least width device px.
func (c *Cache) ensure(rows, width int) {
	if c.raster != nil && rows <= c.capacity && width <= c.width {
		return
	}
	capacity := c.capacity
	for rows > capacity {
		capacity = max(2*capacity, capacity+1)
	}
	w := max(c.width, defaultWidth)
	for width > w {
		w *= 2
	}
	rh := c.deviceRowHeight()
	next := c.opts.factory(w, int(rh)*capacity)
	if old := c.raster; old != nil {
		ow, oh := old.Size()
		next.DrawImage(old.Image(), image.Rect(0, 0, ow, oh), geom.BoxXYWH(0, 0, float64(ow), float64(oh)))
		c.stats.Reallocations++
		chartdraw.Logger().Debug("levelcache: raster reallocated", "kind", c.kind, "capacity", capacity, "width", w)
	}
	c.raster = next
	c.capacity = capacity
	c.width = w
}

func (c *Cache) clearRow(index int) {
	rh := c.deviceRowHeight()
	c.raster.ClearRect(0, float64(index)*rh, float64(c.width), rh)
}

func (c *Cache) paint(index int, st State, cells []Cell, texts []string) {
	c.clearRow(index)
	if len(cells) == 0 {
		return
	}
	rh := c.deviceRowHeight()
	f := c.opts.font.Scaled(c.ratio)
	met := c.opts.measurer.Metrics(c.opts.font)
	// Center the text box vertically in the row.
	baseline := float64(index)*rh + (rh-met.LineHeight()*c.ratio)/2 + met.Ascent*c.ratio
	fallback := color.Color(color.Black)
	if st.Dark {
		fallback = color.White
	}
	s := c.raster
	s.SetFont(f)
	byIndex := make(map[int]Level, len(st.Levels))
	for _, l := range st.Levels {
		byIndex[l.Index] = l
	}
	for i, cell := range cells {
		col := byIndex[cell.Level].Color
		if col == nil {
			col = fallback
		}
		s.SetFillColor(col)
		s.FillText(texts[i], cell.X+cellPadding*c.ratio, baseline)
	}
}
