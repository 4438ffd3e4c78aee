// Package chartdraw renders interactive chart drawing tools (trend lines,
// channels, Fibonacci levels, ellipses, arcs, Gann fans, text notes) and
// answers hit queries about them.
//
// # Overview
//
// The root package holds the contracts shared by every renderer:
//   - Surface: the canvas-like drawing target, in device pixels
//   - RenderParams: pixel ratio and pane size supplied every frame
//   - Renderer: Draw plus HitTest, implemented once per shape
//   - Composite: an ordered, nestable container of renderers
//   - HitResult: what a pointer interaction does (move, change a point, ...)
//
// Sub-packages provide the pieces:
//   - geom: vector math, clipping, curves, price mapping
//   - shapes: one renderer per primitive
//   - anchor: draggable control points
//   - label: text measurement, wrapping and label boxes
//   - levelcache: shared off-screen raster for per-level labels
//   - icons: icon raster cache and loader
//   - paneview: per-tool adapters turning domain points into renderer graphs
//   - surface/ggsurface, surface/fogsurface, surface/record: Surface backends
//
// # Quick Start
//
//	line := shapes.NewTrendLine()
//	line.SetData(&shapes.TrendLineData{
//	    Points:      [2]geom.Point{geom.Pt(100, 300), geom.Pt(200, 250)},
//	    Line:        chartdraw.LineStyle{Color: color.Black, Width: 1},
//	    ExtendRight: true,
//	})
//
//	params := chartdraw.NewRenderParams(800, 600, 2)
//	dc := ggsurface.New(params.DeviceWidth(), params.DeviceHeight())
//	line.Draw(dc, params)
//	hit := line.HitTest(geom.Pt(400, 152), params)
//
// # Coordinate System
//
// Renderer data and hit queries use CSS pixels with the origin at the
// top-left of the pane and y growing downward. Surfaces receive device
// pixels: renderers multiply by RenderParams.PixelRatio and snap straight
// lines so that one-pixel strokes stay crisp at every density.
//
// # Threading
//
// Rendering is single-threaded. SetData, Draw and HitTest must be called
// from the thread that owns the pane; the caches in levelcache and icons
// are owned by that thread as well.
package chartdraw
