package icons

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(size int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCache_PutScalesToRatio(t *testing.T) {
	c := New()
	red := color.RGBA{R: 255, A: 255}
	img := c.Put(Key{Icon: "lock", Theme: "light", PixelRatio: 2}, solid(64, red), 16)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	r, g, _, a := img.At(16, 16).RGBA()
	assert.Greater(t, r, uint32(0xff00))
	assert.Zero(t, g)
	assert.Greater(t, a, uint32(0xff00))

	got, ok := c.Get(Key{Icon: "lock", Theme: "light", PixelRatio: 2})
	require.True(t, ok)
	assert.Same(t, img, got)

	_, ok = c.Get(Key{Icon: "lock", Theme: "dark", PixelRatio: 2})
	assert.False(t, ok, "theme is part of the key")
	_, ok = c.Get(Key{Icon: "lock", Theme: "light", PixelRatio: 1})
	assert.False(t, ok, "pixel ratio is part of the key")
}

func TestCache_Eviction(t *testing.T) {
	var evicted []string
	c := New(WithCapacity(2), WithOnEvict(func(k Key, _ image.Image) {
		evicted = append(evicted, k.Icon)
	}))
	src := solid(4, color.Black)
	c.Put(Key{Icon: "a"}, src, 4)
	c.Put(Key{Icon: "b"}, src, 4)
	c.Get(Key{Icon: "a"})
	c.Put(Key{Icon: "c"}, src, 4)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains(Key{Icon: "a"}))

	c.Clear()
	assert.Equal(t, []string{"b", "a", "c"}, evicted)
	assert.Zero(t, c.Len())
}

func TestDeviceSize(t *testing.T) {
	assert.Equal(t, 16, DeviceSize(16, 1))
	assert.Equal(t, 24, DeviceSize(16, 1.5))
	assert.Equal(t, 16, DeviceSize(16, 0))
	assert.Equal(t, 1, DeviceSize(0.1, 1))
}

func TestLoader_JoinAllInvalidatesOnce(t *testing.T) {
	var calls atomic.Int32
	f := FetcherFunc(func(ctx context.Context, icon, theme string) (image.Image, error) {
		calls.Add(1)
		return solid(8, color.White), nil
	})
	c := New()
	l := NewLoader(c, f, 16)
	l.SetConcurrency(2)

	keys := []Key{
		{Icon: "a", Theme: "light", PixelRatio: 1},
		{Icon: "b", Theme: "light", PixelRatio: 1},
		{Icon: "c", Theme: "light", PixelRatio: 1},
		{Icon: "a", Theme: "light", PixelRatio: 1},
	}
	invalidations := 0
	require.NoError(t, l.Load(context.Background(), keys, func() { invalidations++ }))
	assert.Equal(t, 1, invalidations)
	assert.EqualValues(t, 3, calls.Load(), "duplicates are fetched once")
	assert.Equal(t, 3, c.Len())

	// Everything cached: no fetch and no invalidation.
	require.NoError(t, l.Load(context.Background(), keys, func() { invalidations++ }))
	assert.Equal(t, 1, invalidations)
	assert.EqualValues(t, 3, calls.Load())
}

func TestLoader_PartialFailure(t *testing.T) {
	f := FetcherFunc(func(ctx context.Context, icon, theme string) (image.Image, error) {
		if icon == "missing" {
			return nil, ErrNotFound
		}
		return solid(8, color.White), nil
	})
	c := New()
	l := NewLoader(c, f, 8)

	invalidations := 0
	err := l.Load(context.Background(), []Key{{Icon: "ok"}, {Icon: "missing"}}, func() { invalidations++ })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 1, invalidations)
	assert.True(t, c.Contains(Key{Icon: "ok"}))
	assert.False(t, c.Contains(Key{Icon: "missing"}))
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := FetcherFunc(func(ctx context.Context, icon, theme string) (image.Image, error) {
		return solid(8, color.White), nil
	})
	c := New()
	invalidations := 0
	err := NewLoader(c, f, 8).Load(ctx, []Key{{Icon: "a"}}, func() { invalidations++ })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, invalidations)
	assert.Zero(t, c.Len())
}

func TestFetch_DoesNotTouchCache(t *testing.T) {
	f := FetcherFunc(func(ctx context.Context, icon, theme string) (image.Image, error) {
		return solid(8, color.White), nil
	})
	c := New()
	b, err := NewLoader(c, f, 8).Fetch(context.Background(), []Key{{Icon: "a"}, {Icon: "b"}})
	require.NoError(t, err)
	assert.Zero(t, c.Len())
	assert.Equal(t, 2, c.Store(b))
	assert.Equal(t, 2, c.Len())
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFSFetcher(t *testing.T) {
	fsys := fstest.MapFS{
		"dark/lock.png": {Data: encodePNG(t, solid(4, color.White))},
		"lock.png":      {Data: encodePNG(t, solid(4, color.Black))},
		"broken.png":    {Data: []byte("nope")},
	}
	f := FSFetcher{FS: fsys}
	ctx := context.Background()

	img, err := f.Fetch(ctx, "lock", "dark")
	require.NoError(t, err)
	_, g, _, _ := img.At(0, 0).RGBA()
	assert.EqualValues(t, 0xffff, g)

	img, err = f.Fetch(ctx, "lock", "light")
	require.NoError(t, err)
	_, g, _, _ = img.At(0, 0).RGBA()
	assert.Zero(t, g)

	_, err = f.Fetch(ctx, "unknown", "light")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.Fetch(ctx, "broken", "light")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
