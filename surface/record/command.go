// Package record provides a Surface that records drawing operations as
// typed commands instead of rasterizing them.
//
// The recording surface is what tests and tooling use to inspect what a
// renderer drew: which paths were stroked or filled, with which colors and
// widths, and which strings were placed where.
//
// # Example
//
//	rec := record.New(1600, 1200)
//	renderer.Draw(rec, params)
//	for _, p := range rec.Paths(record.OpStroke) {
//	    fmt.Println(p.Subpaths, p.Width)
//	}
package record

import (
	"image"
	"image/color"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
)

// Op identifies the type of a recorded command.
type Op uint8

const (
	// State commands
	OpSave      Op = iota // Save current state
	OpRestore             // Restore previous state
	OpTranslate           // Translate transform
	OpRotate              // Rotate transform
	OpScale               // Scale transform
	OpClipRect            // Intersect clip with a rectangle

	// Path commands
	OpBeginPath // Clear the current path
	OpMoveTo    // Start a subpath
	OpLineTo    // Line segment
	OpQuadTo    // Quadratic curve
	OpCubicTo   // Cubic curve
	OpArc       // Circular arc
	OpEllipse   // Full ellipse
	OpClosePath // Close the subpath

	// Style commands
	OpSetStrokeColor
	OpSetFillColor
	OpSetLineWidth
	OpSetDash
	OpSetLineCap
	OpSetLineJoin
	OpSetFont

	// Drawing commands
	OpFill      // Fill the current path
	OpStroke    // Stroke the current path
	OpFillText  // Draw a string
	OpDrawImage // Blit an image
	OpClearRect // Clear a rectangle
)

var opNames = [...]string{
	OpSave:           "Save",
	OpRestore:        "Restore",
	OpTranslate:      "Translate",
	OpRotate:         "Rotate",
	OpScale:          "Scale",
	OpClipRect:       "ClipRect",
	OpBeginPath:      "BeginPath",
	OpMoveTo:         "MoveTo",
	OpLineTo:         "LineTo",
	OpQuadTo:         "QuadTo",
	OpCubicTo:        "CubicTo",
	OpArc:            "Arc",
	OpEllipse:        "Ellipse",
	OpClosePath:      "ClosePath",
	OpSetStrokeColor: "SetStrokeColor",
	OpSetFillColor:   "SetFillColor",
	OpSetLineWidth:   "SetLineWidth",
	OpSetDash:        "SetDash",
	OpSetLineCap:     "SetLineCap",
	OpSetLineJoin:    "SetLineJoin",
	OpSetFont:        "SetFont",
	OpFill:           "Fill",
	OpStroke:         "Stroke",
	OpFillText:       "FillText",
	OpDrawImage:      "DrawImage",
	OpClearRect:      "ClearRect",
}

// String returns the string representation of an Op.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Unknown"
}

// Command is one recorded operation. Only the fields relevant to Op are
// set.
type Command struct {
	Op    Op
	Args  []float64
	Text  string
	Color color.Color
	Font  chartdraw.Font
	Image image.Image
	Src   image.Rectangle
	Dst   geom.Box
}

// Path is a snapshot of the current path taken at a Fill or Stroke.
// Curves are sampled into points.
type Path struct {
	Op       Op
	Subpaths [][]geom.Point
	Closed   []bool
	Color    color.Color
	Width    float64
	Dash     []float64
}

// Points returns all points of all subpaths.
func (p Path) Points() []geom.Point {
	var out []geom.Point
	for _, sp := range p.Subpaths {
		out = append(out, sp...)
	}
	return out
}

// Bounds returns the bounding box of all points.
func (p Path) Bounds() geom.Box {
	return geom.BoundingBox(p.Points()...)
}

// Text is a recorded FillText call.
type Text struct {
	Text  string
	X, Y  float64
	Font  chartdraw.Font
	Color color.Color
}
