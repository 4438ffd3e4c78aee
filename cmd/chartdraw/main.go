// Command chartdraw renders a YAML scene of chart drawings to PNG and
// answers hit-test queries against it.
//
// Usage:
//
//	chartdraw -scene scene.yaml -output out.png -ratio 2 -hit 120,300
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/icons"
	"github.com/gogpu/chartdraw/label"
	"github.com/gogpu/chartdraw/levelcache"
	"github.com/gogpu/chartdraw/paneview"
	"github.com/gogpu/chartdraw/surface/fogsurface"
	"github.com/gogpu/chartdraw/surface/ggsurface"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "chartdraw:", err)
		}
		os.Exit(1)
	}
}

// canvas is a raster the demo can clear and save.
type canvas interface {
	chartdraw.Surface
	Clear(c color.Color)
	SavePNG(path string) error
}

func newCanvas(backend string, width, height int) (canvas, chartdraw.RasterFactory, error) {
	switch backend {
	case "gg":
		return ggsurface.New(width, height), ggsurface.Factory, nil
	case "fogleman":
		return fogsurface.New(width, height), fogsurface.Factory, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", backend)
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("chartdraw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		scenePath = fs.String("scene", "scene.yaml", "scene file")
		output    = fs.String("output", "chartdraw.png", "output PNG; empty skips rendering")
		backend   = fs.String("backend", "gg", "raster backend: gg or fogleman")
		ratio     = fs.Float64("ratio", 1, "device pixel ratio")
		hit       = fs.String("hit", "", "hit-test the CSS point x,y and print the result")
		touch     = fs.Bool("touch", false, "use the touch hit tolerance")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	chartdraw.SetLogger(logger)
	defer chartdraw.SetLogger(nil)

	f, err := os.Open(*scenePath)
	if err != nil {
		return err
	}
	sc, err := ParseScene(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", *scenePath, err)
	}

	p := chartdraw.NewRenderParams(sc.Width, sc.Height, *ratio)
	p.Touch = *touch

	var out canvas
	factory := chartdraw.RasterFactory(ggsurface.Factory)
	if *output != "" {
		if out, factory, err = newCanvas(*backend, p.DeviceWidth(), p.DeviceHeight()); err != nil {
			return err
		}
		if c, ok := out.(io.Closer); ok {
			defer c.Close()
		}
	}

	var m label.Measurer
	if otm, err := label.NewOpenTypeMeasurer(); err != nil {
		logger.Warn("falling back to estimated text metrics", "err", err)
	} else {
		defer otm.Close()
		m = otm
	}
	env := sc.Env(m)
	env.LevelOptions = append(env.LevelOptions, levelcache.WithRasterFactory(factory))
	if sc.Icons != "" {
		dir := sc.Icons
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(*scenePath), dir)
		}
		loader := icons.NewLoader(env.Icons, icons.FSFetcher{FS: os.DirFS(dir)}, sc.Font.Size)
		env.Requester = paneview.SyncRequester{Loader: loader}
	}

	views, err := sc.Views(env)
	if err != nil {
		return err
	}
	pane := chartdraw.NewComposite()
	for _, v := range views {
		pane.Append(v.Renderer(p))
	}
	logger.Debug("scene built", "tools", len(views), "ratio", p.Ratio())

	if *hit != "" {
		pt, err := parsePoint(*hit)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, pane.HitTest(pt, p))
	}

	if out == nil {
		return nil
	}
	bg := color.Color(color.White)
	if sc.Dark {
		bg = color.RGBA{R: 0x13, G: 0x17, B: 0x22, A: 0xff}
	}
	if sc.Background != "" {
		if bg, err = chartdraw.ParseColor(sc.Background); err != nil {
			return err
		}
	}
	out.Clear(bg)
	pane.Draw(out, p)
	if err := out.SavePNG(*output); err != nil {
		return err
	}
	logger.Info("rendered", "output", *output, "width", p.DeviceWidth(), "height", p.DeviceHeight(), "backend", *backend)
	return nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("hit point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("hit point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("hit point %q: %w", s, err)
	}
	return geom.Pt(x, y), nil
}
