// Package shapes provides one chartdraw.Renderer per drawing primitive:
// trend lines and rays, horizontal and vertical lines, polygons and
// polylines with arrow ends, rectangles, triangles, ellipses, arcs and
// wedges, parallel and disjoint channels, Bézier curves and letter markers.
//
// Every renderer keeps only its last snapshot, set with SetData. Snapshot
// coordinates are CSS pixels; Draw converts and snaps them to device pixels
// with the RenderParams of the call. Degenerate snapshots (coincident
// points, zero radii, boundaries collapsed onto one line) draw nothing and
// never hit.
//
// Hits on outlines report AreaLine and, unless overridden, HitMovePoint.
// Hits inside a visible fill report HitMovePointBackground so hosts can
// prefer outline hits of overlapping shapes.
package shapes
