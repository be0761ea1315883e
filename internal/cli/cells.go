package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vankamp/pkg/pipeline"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// cellsCommand creates the cells command that lists the bounded faces of the
// initial drawing.
func (c *CLI) cellsCommand() *cobra.Command {
	var flags refineFlags

	cmd := &cobra.Command{
		Use:   "cells [edges]",
		Short: "List the cells of a planar drawing",
		Long: `List the cells of a planar drawing.

Each cell is printed as the closed vertex walk around its boundary followed
by its edge count and area. The drawing is built the same way as for
'refine', but no optimization is run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.loadOptions(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return c.runCells(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

// runCells embeds the graph and prints its cells to w.
func (c *CLI) runCells(ctx context.Context, w io.Writer, opts pipeline.Options) error {
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	prog := newProgress(c.Logger)

	g, err := pipeline.Load(opts)
	if err != nil {
		return err
	}
	pos, err := pipeline.Embed(ctx, g, opts)
	if err != nil {
		return err
	}
	l, err := planar.NewLayout(g, pos, opts.Thresholds())
	if err != nil {
		return err
	}
	cells, err := planar.ExtractCells(l)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Extracted %d cells", len(cells)))

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%d cells", len(cells))))
	for i, cell := range cells {
		fmt.Fprintf(w, "%4d  %s  %s\n", i,
			StyleValue.Render(cell.String()),
			StyleDim.Render(fmt.Sprintf("%d edges, area %.4f", cell.Len(), cell.Area(l))))
	}
	if n := l.Crossings(); n > 0 {
		printWarning("Initial drawing has %d crossing(s)", n)
	}
	return nil
}
