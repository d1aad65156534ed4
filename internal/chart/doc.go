// Package chart draws an animated horizontal bar chart onto a scene surface.
//
// A [Builder] turns a dataset and a canvas size into scales, ticks and rows
// and creates the static structure of the chart once. A [Renderer] is called
// once per video frame: it evaluates the growth curve and reconciles one bar
// and one label per category.
package chart
