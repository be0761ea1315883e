package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/vankamp/pkg/graph"
	"github.com/matzehuels/vankamp/pkg/planar"
	"github.com/matzehuels/vankamp/pkg/render"
)

// Render generates output artifacts in the requested formats from a
// serialized layout. Cells are traced again from the stored positions.
func Render(ctx context.Context, gl graph.Layout, opts Options) (map[string][]byte, error) {
	drawing, err := gl.Drawing(opts.Thresholds())
	if err != nil {
		return nil, fmt.Errorf("rebuild drawing: %w", err)
	}
	cells, err := planar.ExtractCells(drawing)
	if err != nil {
		return nil, err
	}
	return RenderDrawing(ctx, gl, drawing, cells, opts)
}

// RenderDrawing generates output artifacts for a drawing whose cells are
// already known. gl is written as-is for the json format.
func RenderDrawing(ctx context.Context, gl graph.Layout, drawing *planar.Layout, cells []planar.Cell, opts Options) (map[string][]byte, error) {
	ropts := opts.RenderOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))

	// PNG and PDF are converted from the svgo drawing; render it once.
	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = render.SVG(drawing, cells, ropts)
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = svgOnce()
		case FormatDOT:
			var dot string
			dot, err = render.ToDOT(drawing, ropts)
			data = []byte(dot)
		case FormatGraphvizSVG:
			var dot string
			if dot, err = render.ToDOT(drawing, ropts); err == nil {
				data, err = render.RenderGraphviz(ctx, dot)
			}
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = graph.MarshalLayout(gl)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
