package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/structviz/pkg/canvas"
	"github.com/matzehuels/structviz/pkg/highlight"
	"github.com/matzehuels/structviz/pkg/render"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

// DefaultEngine lays vertices out on a circle, like the built-in renderer.
const DefaultEngine = "circo"

// Graph is the part of a topology the exporter reads.
type Graph interface {
	VertexCount() int
	Directed() bool
	Edges() []snapshot.Edge
}

// Options configures node-link diagram rendering.
type Options struct {
	Highlight highlight.Set
	// Theme colors; empty fields use the default theme.
	Theme  canvas.Theme
	Engine string
}

// ToDOT converts a topology to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Undirected graphs list each edge once. Edge labels carry the weight.
func ToDOT(g Graph, opts Options) string {
	th := opts.Theme.Merge(canvas.DefaultTheme())
	colors := th.Algorithm(opts.Highlight.Algorithm.String())
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}

	kind, arrow := "graph", "--"
	if g.Directed() {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	fmt.Fprintf(&buf, "  layout=%q;\n", engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, color=%q, fontcolor=%q, fontname=\"Arial\", penwidth=2];\n",
		th.Primary, th.Text, th.NodeText)
	fmt.Fprintf(&buf, "  edge [color=%q, fontcolor=%q, fontname=\"Arial\", penwidth=2];\n", th.Primary, th.Text)
	buf.WriteString("\n")

	for v := range g.VertexCount() {
		attrs := []string{fmt.Sprintf("label=%q", strconv.Itoa(v))}
		if opts.Highlight.HasVertex(v) {
			attrs = append(attrs,
				fmt.Sprintf("fillcolor=%q", colors.Light),
				fmt.Sprintf("color=%q", colors.Border),
				"penwidth=3")
		}
		if step := opts.Highlight.StepOf(v); step > 0 {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", strconv.Itoa(step)))
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("label=%q", strconv.Itoa(e.Weight))}
		if opts.Highlight.HasEdge(e.U, e.V) {
			attrs = append(attrs, fmt.Sprintf("color=%q", colors.Dark), "penwidth=4")
		}
		fmt.Fprintf(&buf, "  %d %s %d [%s];\n", e.U, arrow, e.V, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.Convert].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so the export scales like a frame.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, "pdf", 0)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, "png", scale)
}
