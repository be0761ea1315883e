package pipeline

import (
	"context"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/embed"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/graph"
	"github.com/matzehuels/vankamp/pkg/planar"
	"github.com/matzehuels/vankamp/pkg/refine"
)

// Load reads the edge list named by opts.Edges.
// Disconnected graphs are accepted with a warning.
func Load(opts Options) (*planar.Graph, error) {
	if opts.Edges == "" {
		return nil, vkerr.New(vkerr.ErrCodeInvalidConfig, "edge list path is required")
	}
	g, err := graph.ReadEdgeListFile(opts.Edges)
	if err != nil {
		return nil, err
	}
	if comps := graph.Components(g); len(comps) > 1 && opts.Logger != nil {
		opts.Logger.Warn("graph is disconnected",
			"components", len(comps))
	}
	return g, nil
}

// Provider returns the initial-position source selected by opts.
// A positions file takes precedence over an outer cycle.
func (o *Options) Provider() (embed.Provider, error) {
	switch {
	case o.Positions != "":
		l, err := graph.ReadLayoutFile(o.Positions)
		if err != nil {
			return nil, err
		}
		pos, err := l.Positions()
		if err != nil {
			return nil, err
		}
		return embed.Fixed(pos), nil
	case len(o.Outer) > 0:
		outer := make([]planar.Vertex, len(o.Outer))
		copy(outer, o.Outer)
		return embed.Tutte{Outer: outer}, nil
	default:
		return nil, vkerr.New(vkerr.ErrCodeInvalidConfig, "initial layout required: give a positions file or an outer cycle")
	}
}

// Embed computes initial positions for g.
func Embed(ctx context.Context, g *planar.Graph, opts Options) ([]geom.Point, error) {
	p, err := opts.Provider()
	if err != nil {
		return nil, err
	}
	return p.Embed(ctx, g)
}

// Refine runs the optimizer on g from pos and returns the refined drawing,
// its cells and the run report. The report is returned alongside any error
// so a cancelled run can still be summarized.
func Refine(ctx context.Context, g *planar.Graph, pos []geom.Point, opts Options) (*planar.Layout, []planar.Cell, *refine.Report, error) {
	terms, err := opts.Terms()
	if err != nil {
		return nil, nil, nil, err
	}
	l, err := planar.NewLayout(g, pos, opts.Thresholds())
	if err != nil {
		return nil, nil, nil, err
	}
	r, err := refine.New(l, terms, opts.RefineOptions())
	if err != nil {
		return nil, nil, nil, err
	}
	report, err := r.Run(ctx)
	return l, r.Cells(), report, err
}

// ExportRefined serializes a refined drawing with its run statistics.
func ExportRefined(l *planar.Layout, cells []planar.Cell, report *refine.Report) graph.Layout {
	out := graph.Export(l, cells)
	if report == nil {
		return out
	}
	out.RunID = report.RunID
	out.Stats = &graph.Stats{
		Mode:         string(report.Mode),
		Passes:       report.Passes,
		Steps:        report.Steps,
		Accepted:     report.Accepted,
		Rejected:     report.Rejected,
		NonConverged: report.NonConverged,
		Skipped:      report.Skipped,
		InitialCost:  report.InitialCost,
		FinalCost:    report.FinalCost,
		Crossings:    report.Crossings,
		DurationMS:   report.Duration.Milliseconds(),
	}
	return out
}
