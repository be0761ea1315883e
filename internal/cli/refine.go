package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/vankamp/pkg/buildinfo"
	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/observability"
	"github.com/matzehuels/vankamp/pkg/pipeline"
)

// refineFlags holds the flags shared by refine and cells. Flags override
// config file values only when set on the command line.
type refineFlags struct {
	config      string
	positions   string
	outer       []int
	mode        string
	passes      int
	seed        uint64
	minEdge     float64
	maxEdge     float64
	nudge       float64
	maxDuration time.Duration
	weights     map[string]string
}

// register adds the input and optimizer flags to fs.
func (f *refineFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.config, "config", "c", "", "options file (.toml, .yaml or .yml)")
	fs.StringVar(&f.positions, "positions", "", "layout JSON with initial vertex positions")
	fs.IntSliceVar(&f.outer, "outer", nil, "outer cycle for a Tutte embedding (comma-separated vertex ids)")
	fs.StringVar(&f.mode, "mode", pipeline.DefaultMode, "optimizer step: vertex or cell")
	fs.IntVar(&f.passes, "passes", 0, "number of passes (default 10)")
	fs.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed for cell order")
	fs.Float64Var(&f.minEdge, "min-edge", pipeline.DefaultMinEdge, "shortest acceptable edge length")
	fs.Float64Var(&f.maxEdge, "max-edge", pipeline.DefaultMaxEdge, "longest acceptable edge length")
	fs.Float64Var(&f.nudge, "nudge", 0, "outward push of each initial guess as a fraction of its offset from the centroid (default 0.01)")
	fs.DurationVar(&f.maxDuration, "max-duration", 0, "stop refining after this long (0 = no limit)")
	fs.StringToStringVar(&f.weights, "weight", nil, "penalty weight override, e.g. --weight convexity=2,diameter=0")
}

// apply overlays the flags that were set on opts.
func (f *refineFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	if fs.Changed("positions") {
		opts.Positions = f.positions
	}
	if fs.Changed("outer") {
		opts.Outer = f.outer
	}
	if fs.Changed("mode") {
		opts.Mode = f.mode
	}
	if fs.Changed("passes") {
		passes := f.passes
		opts.Passes = &passes
	}
	if fs.Changed("seed") {
		seed := f.seed
		opts.Seed = &seed
	}
	if fs.Changed("min-edge") || fs.Changed("max-edge") {
		opts.MinEdge, opts.MaxEdge = f.minEdge, f.maxEdge
	}
	if fs.Changed("nudge") {
		opts.Nudge = f.nudge
	}
	if fs.Changed("max-duration") {
		opts.MaxDuration = f.maxDuration
	}
	if len(f.weights) > 0 && opts.Weights == nil {
		opts.Weights = make(map[string]float64, len(f.weights))
	}
	for name, raw := range f.weights {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return vkerr.Wrap(vkerr.ErrCodeInvalidConfig, err, "weight %s", name)
		}
		opts.Weights[name] = w
	}
	return nil
}

// loadOptions reads the config file, if any, then applies edges and flags.
func (f *refineFlags) loadOptions(fs *pflag.FlagSet, args []string) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		loaded, err := pipeline.LoadOptions(f.config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}
	if len(args) > 0 {
		opts.Edges = args[0]
	}
	if err := f.apply(fs, &opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// refineCommand creates the refine command that runs the full pipeline.
func (c *CLI) refineCommand() *cobra.Command {
	var (
		flags       refineFlags
		formatsStr  string
		output      string
		noCache     bool
		refresh     bool
		metricsFile string
		render      pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "refine [edges]",
		Short: "Refine a planar drawing of an edge list",
		Long: `Refine a planar drawing of an edge list.

The edge list has one "u v" pair per line. Initial positions come from a
layout JSON (--positions) or from a Tutte embedding of the given outer
cycle (--outer). The optimizer then moves vertices (or whole cells with
--mode cell) to improve cell shape, rejecting any move that makes edges
cross.

Settings can be read from a TOML or YAML file with --config; flags given on
the command line take precedence. Results are cached locally for faster
subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.loadOptions(cmd.Flags(), args)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("format") {
				opts.Formats = parseFormats(formatsStr)
			}
			if fs.Changed("width") {
				opts.Width = render.Width
			}
			if fs.Changed("height") {
				opts.Height = render.Height
			}
			if fs.Changed("labels") {
				opts.Labels = render.Labels
			}
			if fs.Changed("no-fill") {
				opts.NoFill = render.NoFill
			}
			if fs.Changed("scale") {
				opts.Scale = render.Scale
			}
			opts.Refresh = refresh
			return c.runRefine(cmd.Context(), opts, output, noCache, metricsFile)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, graphviz-svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&render.Width, "width", 0, "image width in pixels (default 800)")
	cmd.Flags().IntVar(&render.Height, "height", 0, "image height in pixels (default 800)")
	cmd.Flags().BoolVar(&render.Labels, "labels", false, "label vertices with their ids")
	cmd.Flags().BoolVar(&render.NoFill, "no-fill", false, "do not shade cells")
	cmd.Flags().Float64Var(&render.Scale, "scale", 0, "raster scale for png output (default 2)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and recompute")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	return cmd
}

// runRefine executes the pipeline and writes its artifacts. A run stopped by
// a signal or --max-duration still writes the partially refined drawing.
func (c *CLI) runRefine(ctx context.Context, opts pipeline.Options, output string, noCache bool, metricsFile string) error {
	c.Logger.Debug("starting refinement", "version", buildinfo.Short(), "edges", opts.Edges)

	var metrics *observability.PrometheusHooks
	if metricsFile != "" {
		metrics = observability.NewPrometheusHooks(nil)
		observability.SetRefineHooks(metrics)
		observability.SetPipelineHooks(metrics)
		observability.SetCacheHooks(metrics)
		defer observability.Reset()
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Refining layout...")
	opts.Progress = spinner.SetProgress
	spinner.Start()

	result, runErr := runner.Execute(ctx, opts)
	if result == nil {
		spinner.StopWithError("Refinement failed")
		return runErr
	}
	spinner.Stop()
	elapsed := spinner.Elapsed().Round(time.Millisecond)

	if metrics != nil {
		if err := metrics.WriteFile(metricsFile); err != nil {
			return fmt.Errorf("write metrics %s: %w", metricsFile, err)
		}
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Edges,
		output:    output,
	})
	if err != nil {
		return err
	}

	if runErr != nil {
		printWarning("Refinement stopped early: %s", vkerr.UserMessage(runErr))
	} else {
		printSuccess("Refinement complete in %s", elapsed)
	}
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Stats, result.CacheInfo.RefineHit)
	if st := result.Layout.Stats; st != nil {
		printRefineStats(st)
	}
	if metricsFile != "" {
		printDetail("Metrics: %s", metricsFile)
	}
	if runErr == nil {
		if jsonPath := pathFor(paths, opts.Formats, pipeline.FormatJSON); jsonPath != "" {
			printNewline()
			printNextStep("Render", appName+" render "+jsonPath)
		}
	}
	return runErr
}

// pathFor returns the path written for format, or "".
func pathFor(paths, formats []string, format string) string {
	for i, f := range formats {
		if f == format && i < len(paths) {
			return paths[i]
		}
	}
	return ""
}
