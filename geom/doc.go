// Package geom is the geometry kernel used by the drawing tool renderers.
//
// All coordinates are CSS pixels in a y-down system: the origin is the
// top-left corner of the pane, x grows to the right and y grows downward.
//
// The package covers:
//   - vector arithmetic on Point and affine transforms with Matrix
//   - implicit lines, half-planes and segment/line/box intersection
//   - Sutherland-Hodgman clipping of polygons against half-planes
//   - flattening and distance queries for quadratic and cubic Bézier curves
//   - price to coordinate mapping on linear and logarithmic scales
//
// Degenerate inputs (coincident points, parallel lines, empty boxes) are
// reported through boolean results or nil slices, never through panics.
package geom
