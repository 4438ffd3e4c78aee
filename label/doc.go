// Package label lays out and draws text boxes for drawing tools: word
// wrapping, multi-line measurement, rounded backgrounds, borders, an icon
// column and right-to-left alignment.
//
// Measure is independent of Draw so callers can position a label (for
// example to keep it inside the pane) before drawing it. Measurers turn
// text into widths; OpenTypeMeasurer and ShapingMeasurer use real fonts
// while Estimate gives deterministic widths without any font.
package label
