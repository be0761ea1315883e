// Package render draws straight-line planar layouts.
//
// # Overview
//
// A [planar.Layout] and its extracted cells can be written as:
//
//   - SVG drawn directly with svgo ([WriteSVG], [SVG])
//   - Graphviz DOT with every vertex pinned at its layout position ([ToDOT])
//   - SVG produced by Graphviz neato from that DOT ([RenderGraphviz])
//   - PDF or PNG converted from any SVG ([ToPDF], [ToPNG])
//
// # Frame
//
// Layout coordinates are unitless and y points up. Both sinks map the
// bounding box of the layout into a frame of [Options.Width] by
// [Options.Height] pixels with [Options.Margin] on each side, preserving
// aspect ratio and flipping y.
//
//	svg, err := render.SVG(layout, cells, render.DefaultOptions())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Edges involved in a crossing are stroked in red so that a non-planar
// drawing is visible at a glance.
//
// PDF and PNG conversion shells out to rsvg-convert (from librsvg).
//
// [planar.Layout]: github.com/matzehuels/vankamp/pkg/planar#Layout
package render
