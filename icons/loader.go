package icons

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/chartdraw"
)

// Fetcher produces the source image of an icon for a theme.
type Fetcher interface {
	Fetch(ctx context.Context, icon, theme string) (image.Image, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, icon, theme string) (image.Image, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, icon, theme string) (image.Image, error) {
	return f(ctx, icon, theme)
}

// FSFetcher reads PNG icons laid out as <theme>/<icon>.png, falling back to
// <icon>.png for icons shared by all themes.
type FSFetcher struct {
	FS fs.FS
}

// Fetch implements Fetcher.
func (f FSFetcher) Fetch(ctx context.Context, icon, theme string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, name := range []string{path.Join(theme, icon+".png"), icon + ".png"} {
		file, err := f.FS.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("icons: open %s: %w", name, err)
		}
		img, err := png.Decode(file)
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("icons: decode %s: %w", name, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %s (theme %q)", ErrNotFound, icon, theme)
}

// Batch holds the icons fetched by one Loader.Fetch call.
type Batch struct {
	Keys   []Key
	Images []image.Image
	// Size is the CSS size the images are scaled to when stored.
	Size float64
}

// Store scales and stores every fetched image of the batch and returns the
// number stored.
func (c *Cache) Store(b Batch) int {
	n := 0
	for i, img := range b.Images {
		if img == nil {
			continue
		}
		c.Put(b.Keys[i], img, b.Size)
		n++
	}
	return n
}

// DefaultConcurrency bounds simultaneous fetches.
const DefaultConcurrency = 8

// Loader fetches icons concurrently and stores them in a Cache.
type Loader struct {
	cache       *Cache
	fetcher     Fetcher
	size        float64
	concurrency int
}

// NewLoader returns a loader storing icons of cssSize CSS pixels in c.
func NewLoader(c *Cache, f Fetcher, cssSize float64) *Loader {
	chartdraw.Assert(c != nil && f != nil, "icons: loader needs a cache and a fetcher")
	return &Loader{cache: c, fetcher: f, size: cssSize, concurrency: DefaultConcurrency}
}

// SetConcurrency bounds simultaneous fetches; n <= 0 removes the bound.
func (l *Loader) SetConcurrency(n int) {
	l.concurrency = n
}

// Fetch fetches every key concurrently and waits for all of them. Failed
// icons are logged, left nil in the batch and joined into the returned
// error; the batch is valid even when the error is not nil. A cancelled
// context stops pending fetches and returns the context error.
//
// Fetch does not touch the cache and may run on any goroutine.
func (l *Loader) Fetch(ctx context.Context, keys []Key) (Batch, error) {
	b := Batch{Keys: keys, Images: make([]image.Image, len(keys)), Size: l.size}
	errs := make([]error, len(keys))

	var g errgroup.Group
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, k := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := l.fetcher.Fetch(ctx, k.Icon, k.Theme)
			if err != nil {
				errs[i] = fmt.Errorf("icons: load %s: %w", k.Icon, err)
				return nil
			}
			b.Images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return b, err
	}
	if err := ctx.Err(); err != nil {
		return b, err
	}
	for i, err := range errs {
		if err != nil {
			chartdraw.Logger().Warn("icons: load failed", "icon", keys[i].Icon, "theme", keys[i].Theme, "err", err)
		}
	}
	return b, errors.Join(errs...)
}

// Load fetches the keys missing from the cache, stores them and calls
// invalidate exactly once when at least one icon was stored. It must be
// called from the goroutine owning the cache.
func (l *Loader) Load(ctx context.Context, keys []Key, invalidate func()) error {
	var missing []Key
	seen := make(map[Key]bool, len(keys))
	for _, k := range keys {
		if seen[k] || l.cache.Contains(k) {
			continue
		}
		seen[k] = true
		missing = append(missing, k)
	}
	if len(missing) == 0 {
		return nil
	}
	b, err := l.Fetch(ctx, missing)
	if ctx.Err() != nil {
		return err
	}
	if l.cache.Store(b) > 0 && invalidate != nil {
		invalidate()
	}
	return err
}
