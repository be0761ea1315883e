package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vankamp/pkg/graph"
	"github.com/matzehuels/vankamp/pkg/pipeline"
	"github.com/matzehuels/vankamp/pkg/render"
)

// renderCommand creates the render command for drawing a saved layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		margin     int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a refined layout",
		Long: `Render a refined layout.

The render command takes a layout.json file (written by 'refine -f json')
and draws it as SVG, DOT, Graphviz SVG, PNG or PDF. No optimization is run.
Edges that cross are drawn in red.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if cmd.Flags().Changed("margin") {
				opts.Margin = &margin
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, graphviz-svg, png, pdf (comma-separated)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "image width in pixels (default 800)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "image height in pixels (default 800)")
	cmd.Flags().IntVar(&margin, "margin", render.DefaultMargin, "margin in pixels")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label vertices with their ids")
	cmd.Flags().BoolVar(&opts.NoFill, "no-fill", false, "do not shade cells")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "raster scale for png output (default 2)")
	cmd.Flags().Float64Var(&opts.MinEdge, "min-edge", pipeline.DefaultMinEdge, "shortest acceptable edge length")
	cmd.Flags().Float64Var(&opts.MaxEdge, "max-edge", pipeline.DefaultMaxEdge, "longest acceptable edge length")

	return cmd
}

// runRender loads the layout and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess("Rendering complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(pipeline.Stats{
		VertexCount: len(layout.Nodes),
		EdgeCount:   len(layout.Edges),
		CellCount:   len(layout.Cells),
	}, cacheHit)
	return nil
}
