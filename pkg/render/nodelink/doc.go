// Package nodelink exports the graph topology through Graphviz.
//
// # Overview
//
// The built-in renderer draws graphs on a fixed circle. This package hands
// the same topology to Graphviz instead, which is useful for larger graphs
// or for further processing with external tools.
//
// # Usage
//
// Convert a topology to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(sess.Topology(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// [Exporter] wraps all of these behind a frame cache.
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Highlight: vertices and edges of the last algorithm run, drawn in the
//     algorithm's colors
//   - Theme: colors for nodes and edges
//   - Engine: Graphviz layout engine, "circo" by default
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
