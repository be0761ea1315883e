package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/vankamp/pkg/planar"
)

// Graphviz reads pos in inches.
const pointsPerInch = 72.0

// ToDOT converts a layout to an undirected Graphviz graph. Every vertex
// carries a pinned pos attribute, so neato keeps the drawing
// exactly as laid out. Edges involved in a crossing are colored red.
func ToDOT(l *planar.Layout, opts Options) (string, error) {
	opts.setDefaults()
	pos := l.Positions()
	f, err := newFrame(pos, opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=circle, width=0.12, height=0.12, fixedsize=true, style=filled, fillcolor=white, fontsize=9];\n")
	buf.WriteString("  edge [penwidth=2, color=\"#333333\"];\n")
	buf.WriteString("\n")

	for v, p := range pos {
		x, y := f.point(p)
		label := `""`
		if opts.Labels {
			label = strconv.Quote(strconv.Itoa(v))
		}
		// Graphviz y grows upward.
		fmt.Fprintf(&buf, "  %d [pos=\"%.4f,%.4f!\", label=%s];\n",
			v, x/pointsPerInch, (float64(opts.Height)-y)/pointsPerInch, label)
	}

	buf.WriteString("\n")
	crossing := crossingEdges(l)
	for _, e := range l.Graph().Edges() {
		if crossing[e] {
			fmt.Fprintf(&buf, "  %d -- %d [color=\"#d62728\"];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderGraphviz renders a DOT graph to SVG using Graphviz neato.
// Pinned positions from [ToDOT] are respected.
func RenderGraphviz(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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

// normalizeViewBox replaces the Graphviz root element with one whose width
// and height equal the viewBox, so the SVG scales like the svgo output.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
