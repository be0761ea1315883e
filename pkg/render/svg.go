package render

import (
	"bytes"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/vankamp/pkg/planar"
)

var cellPalette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072",
	"#80b1d3", "#fdb462", "#b3de69", "#fccde5",
}

const (
	edgeStyle     = "stroke:#333333;stroke-width:2;stroke-linecap:round"
	crossingStyle = "stroke:#d62728;stroke-width:2;stroke-linecap:round"
	vertexStyle   = "fill:#ffffff;stroke:#333333;stroke-width:1.5"
	labelStyle    = "font-family:sans-serif;font-size:11px;fill:#555555"
)

// SVG renders l into an in-memory SVG document.
func SVG(l *planar.Layout, cells []planar.Cell, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, l, cells, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSVG draws cells, then edges, then vertices of l onto w.
// Cells are shaded in palette order when [Options.FillCells] is set.
func WriteSVG(w io.Writer, l *planar.Layout, cells []planar.Cell, opts Options) error {
	opts.setDefaults()
	pos := l.Positions()
	f, err := newFrame(pos, opts)
	if err != nil {
		return err
	}

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#ffffff")

	if opts.FillCells {
		canvas.Gid("cells")
		for i, c := range cells {
			xs, ys := polygon(f, c, l)
			canvas.Polygon(xs, ys, "fill:"+cellPalette[i%len(cellPalette)]+";fill-opacity:0.6;stroke:none")
		}
		canvas.Gend()
	}

	crossing := crossingEdges(l)
	canvas.Gid("edges")
	for _, e := range l.Graph().Edges() {
		x1, y1 := f.pixel(pos[e.From])
		x2, y2 := f.pixel(pos[e.To])
		style := edgeStyle
		if crossing[e] {
			style = crossingStyle
		}
		canvas.Line(x1, y1, x2, y2, style)
	}
	canvas.Gend()

	canvas.Gid("vertices")
	for v, p := range pos {
		x, y := f.pixel(p)
		canvas.Circle(x, y, vertexRadius, vertexStyle)
		if opts.Labels {
			canvas.Text(x+vertexRadius+2, y-vertexRadius-2, strconv.Itoa(v), labelStyle)
		}
	}
	canvas.Gend()

	canvas.End()
	return nil
}

func polygon(f frame, c planar.Cell, l *planar.Layout) ([]int, []int) {
	pts := c.Points(l)
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = f.pixel(p)
	}
	return xs, ys
}
