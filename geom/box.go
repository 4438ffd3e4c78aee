package geom

import "math"

// Box is an axis-aligned rectangle. Min is the top-left corner.
type Box struct {
	Min, Max Point
}

// NewBox creates a box from two corner points in any order.
func NewBox(p1, p2 Point) Box {
	return Box{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// BoxXYWH creates a box from its origin and size.
func BoxXYWH(x, y, w, h float64) Box {
	return NewBox(Pt(x, y), Pt(x+w, y+h))
}

// Width returns the width of the box.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the height of the box.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the center of the box.
func (b Box) Center() Point { return Midpoint(b.Min, b.Max) }

// Empty reports whether the box has no area.
func (b Box) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Contains reports whether p lies inside the box (edges included).
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersects reports whether two boxes overlap.
func (b Box) Intersects(o Box) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X && b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// Inflate grows the box by d on every side. Negative d shrinks it.
func (b Box) Inflate(d float64) Box {
	return Box{
		Min: Point{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Point{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Corners returns the four corners clockwise starting at the top-left.
func (b Box) Corners() []Point {
	return []Point{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// BoundingBox returns the box enclosing all points.
// An empty slice yields the zero box.
func BoundingBox(points ...Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}
