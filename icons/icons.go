// Package icons caches icon rasters per (icon, theme, pixel ratio) with LRU
// eviction, and loads missing icons concurrently.
//
// Cache is single-owner like the rest of the rendering state: only the
// render thread may call its methods. Loader.Fetch runs anywhere and hands
// back a Batch that the render thread stores with Cache.Store.
package icons

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/chartdraw/cache"
)

// ErrNotFound is returned by fetchers for unknown icons.
var ErrNotFound = errors.New("icons: not found")

// Key identifies one rendition of an icon.
type Key struct {
	Icon       string
	Theme      string
	PixelRatio float64
}

// DefaultCapacity is the number of renditions kept by default.
const DefaultCapacity = 128

type options struct {
	capacity int
	onEvict  func(Key, image.Image)
}

// Option configures a Cache.
type Option func(*options)

// WithCapacity bounds the number of cached renditions.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithOnEvict registers a callback for renditions dropped by the LRU
// policy or by Clear.
func WithOnEvict(fn func(Key, image.Image)) Option {
	return func(o *options) {
		o.onEvict = fn
	}
}

// Cache holds scaled icon images.
type Cache struct {
	lru *cache.LRU[Key, *image.RGBA]
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	o := options{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	var evict func(Key, *image.RGBA)
	if o.onEvict != nil {
		evict = func(k Key, img *image.RGBA) { o.onEvict(k, img) }
	}
	return &Cache{lru: cache.New(o.capacity, evict)}
}

// Get returns the rendition for key.
func (c *Cache) Get(key Key) (image.Image, bool) {
	img, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return img, true
}

// Contains reports whether key is cached without touching its recency.
func (c *Cache) Contains(key Key) bool {
	_, ok := c.lru.Peek(key)
	return ok
}

// Put scales src to a square of cssSize CSS pixels at the key's pixel ratio
// and stores it. It returns the stored image.
func (c *Cache) Put(key Key, src image.Image, cssSize float64) image.Image {
	img := Scale(src, DeviceSize(cssSize, key.PixelRatio))
	c.lru.Set(key, img)
	return img
}

// Len returns the number of cached renditions.
func (c *Cache) Len() int { return c.lru.Len() }

// Stats returns LRU counters.
func (c *Cache) Stats() cache.Stats { return c.lru.Stats() }

// Clear drops every rendition.
func (c *Cache) Clear() { c.lru.Clear() }

// DeviceSize returns the device pixel side of an icon of cssSize at ratio.
func DeviceSize(cssSize, ratio float64) int {
	if ratio <= 0 {
		ratio = 1
	}
	return max(1, int(math.Round(cssSize*ratio)))
}

// Scale resamples src into a size x size RGBA image with Catmull-Rom
// filtering. A source that already has that size is copied unfiltered.
func Scale(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := src.Bounds()
	if b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
