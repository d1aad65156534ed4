// Package viz previews compositions in the terminal.
//
// [Model] is a Bubble Tea program that steps the chart renderer at the
// composition's frame rate. Bars are drawn either as block rows styled with
// lipgloss or rasterized onto a braille [Canvas]; a sparkline tracks the
// animation progress. Frames can be recorded to an animated GIF.
package viz
