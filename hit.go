package chartdraw

import (
	"fmt"

	"github.com/gogpu/chartdraw/geom"
)

// HitKind tells the host what a pointer interaction with a shape does.
type HitKind uint8

const (
	// HitMovePoint drags the whole shape.
	HitMovePoint HitKind = iota
	// HitMovePointBackground drags the whole shape from its fill area.
	// Hosts may give it lower priority than line hits of other shapes.
	HitMovePointBackground
	// HitChangePoint drags a single logical point (see HitResult.PointIndex).
	HitChangePoint
	// HitRegular selects the shape without starting a drag.
	HitRegular
	// HitCustom runs the result's click or tap handler.
	HitCustom
)

var hitKindNames = [...]string{
	HitMovePoint:           "MovePoint",
	HitMovePointBackground: "MovePointBackground",
	HitChangePoint:         "ChangePoint",
	HitRegular:             "Regular",
	HitCustom:              "Custom",
}

// String returns the kind name.
func (k HitKind) String() string {
	if int(k) < len(hitKindNames) {
		return hitKindNames[k]
	}
	return fmt.Sprintf("HitKind(%d)", k)
}

// Area tags the part of a shape that was hit.
type Area uint8

const (
	AreaNone Area = iota
	AreaLine
	AreaBackground
	AreaText
	AreaAnchor
)

var areaNames = [...]string{
	AreaNone:       "none",
	AreaLine:       "line",
	AreaBackground: "background",
	AreaText:       "text",
	AreaAnchor:     "anchor",
}

// String returns the area name.
func (a Area) String() string {
	if int(a) < len(areaNames) {
		return areaNames[a]
	}
	return fmt.Sprintf("Area(%d)", a)
}

// Cursor is the pointer glyph a host should show over a hit.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorMove
	CursorGrabbing
	CursorEWResize
	CursorNSResize
	CursorNWSEResize
	CursorNESWResize
)

var cursorNames = [...]string{
	CursorDefault:    "default",
	CursorPointer:    "pointer",
	CursorMove:       "move",
	CursorGrabbing:   "grabbing",
	CursorEWResize:   "ew-resize",
	CursorNSResize:   "ns-resize",
	CursorNWSEResize: "nwse-resize",
	CursorNESWResize: "nesw-resize",
}

// String returns the CSS cursor name.
func (c Cursor) String() string {
	if int(c) < len(cursorNames) {
		return cursorNames[c]
	}
	return fmt.Sprintf("Cursor(%d)", c)
}

// Tooltip is shown by the host while the pointer is over a hit.
type Tooltip struct {
	Text string
	Rect geom.Box
}

// HitResult is the answer of a successful hit test. A nil *HitResult means
// nothing was hit.
type HitResult struct {
	Kind HitKind
	// PointIndex is the logical point index for HitChangePoint, -1 otherwise.
	PointIndex int
	Area       Area
	Cursor     Cursor
	Tooltip    *Tooltip
	// OnClick and OnTap are invoked by the host on actual input events.
	OnClick func()
	OnTap   func()
}

// NewHit returns a hit of the given kind without a point index.
func NewHit(kind HitKind, area Area) *HitResult {
	return &HitResult{Kind: kind, PointIndex: -1, Area: area, Cursor: defaultCursor(kind)}
}

// NewPointHit returns a HitChangePoint result for the logical point index.
func NewPointHit(index int, cursor Cursor) *HitResult {
	return &HitResult{Kind: HitChangePoint, PointIndex: index, Area: AreaAnchor, Cursor: cursor}
}

func defaultCursor(kind HitKind) Cursor {
	switch kind {
	case HitMovePoint, HitMovePointBackground:
		return CursorMove
	case HitChangePoint:
		return CursorGrabbing
	case HitCustom:
		return CursorPointer
	default:
		return CursorDefault
	}
}

// String formats the result for logs and the demo CLI.
func (r *HitResult) String() string {
	if r == nil {
		return "<no hit>"
	}
	if r.Kind == HitChangePoint {
		return fmt.Sprintf("%s(point=%d, cursor=%s)", r.Kind, r.PointIndex, r.Cursor)
	}
	return fmt.Sprintf("%s(area=%s, cursor=%s)", r.Kind, r.Area, r.Cursor)
}
