package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vankamp/pkg/cache"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/graph"
	"github.com/matzehuels/vankamp/pkg/observability"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// Stage names reported to [observability.PipelineHooks].
const (
	StageLoad   = "load"
	StageEmbed  = "embed"
	StageRefine = "refine"
	StageRender = "render"
)

// Cache entry types reported to [observability.CacheHooks].
const (
	cacheTypeLayout   = "layout"
	cacheTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → embed → refine → render pipeline with caching.
//
// When refinement is cancelled, the partially refined layout is still
// rendered and returned together with the error.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load + Embed
	loadStart := time.Now()
	g, err := stage(ctx, StageLoad, func() (*planar.Graph, error) { return Load(opts) })
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	pos, err := stage(ctx, StageEmbed, func() ([]geom.Point, error) { return Embed(ctx, g, opts) })
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.VertexCount = g.VertexCount()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Info("loaded graph",
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Refine
	refineStart := time.Now()
	refined, refineHit, refineErr := r.RefineWithCacheInfo(ctx, g, pos, opts)
	if refined == nil {
		return nil, fmt.Errorf("refine: %w", refineErr)
	}
	result.Drawing = refined.Drawing
	result.Cells = refined.Cells
	result.Layout = refined.Layout
	result.Stats.CellCount = len(refined.Cells)
	result.Stats.RefineTime = time.Since(refineStart)
	result.CacheInfo.RefineHit = refineHit

	if st := refined.Layout.Stats; st != nil {
		r.Logger.Info("refined layout",
			"accepted", st.Accepted,
			"rejected", st.Rejected,
			"initial_cost", st.InitialCost,
			"final_cost", st.FinalCost,
			"crossings", st.Crossings,
			"cached", refineHit,
			"duration", result.Stats.RefineTime)
	}

	// Stage 3: Render. A cancelled context would fail graphviz and
	// rsvg-convert, so partial results are rendered without it.
	renderCtx := ctx
	if refineErr != nil {
		renderCtx = context.WithoutCancel(ctx)
	}
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(renderCtx, refined, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if refineErr != nil {
		return result, fmt.Errorf("refine: %w", refineErr)
	}
	return result, nil
}

// Refined is the outcome of the refine stage.
type Refined struct {
	Drawing *planar.Layout
	Cells   []planar.Cell
	Layout  graph.Layout
}

// RefineWithCacheInfo refines a drawing with caching and returns cache hit info.
//
// A cancelled run returns the partially refined drawing together with the
// error; partial results are never cached.
func (r *Runner) RefineWithCacheInfo(ctx context.Context, g *planar.Graph, pos []geom.Point, opts Options) (*Refined, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.LayoutKey(cache.InputHash(g.Edges(), pos), opts.LayoutKeyOpts())
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var cached graph.Layout
		if err := cache.GetJSON(ctx, r.Cache, cacheKey, &cached); err == nil {
			if refined, err := fromCached(cached, opts); err == nil {
				hooks.OnCacheHit(ctx, cacheTypeLayout)
				return refined, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, cacheTypeLayout)
	}

	start := time.Now()
	observability.Pipeline().OnStageStart(ctx, StageRefine)
	drawing, cells, report, err := Refine(ctx, g, pos, opts)
	observability.Pipeline().OnStageComplete(ctx, StageRefine, time.Since(start), err)
	if drawing == nil {
		return nil, false, err
	}
	refined := &Refined{
		Drawing: drawing,
		Cells:   cells,
		Layout:  ExportRefined(drawing, cells, report),
	}
	if err != nil {
		return refined, false, err
	}

	// Cache the result
	if data, merr := graph.MarshalLayout(refined.Layout); merr == nil {
		if serr := r.Cache.Set(ctx, cacheKey, data, 0); serr == nil {
			hooks.OnCacheSet(ctx, cacheTypeLayout, len(data))
		} else {
			r.Logger.Debug("cache write failed", "key", cacheKey, "error", serr)
		}
	}

	return refined, false, nil
}

// fromCached rebuilds a drawing from its serialized form. The stored cells
// are those of the initial drawing; they are re-extracted only when absent.
func fromCached(gl graph.Layout, opts Options) (*Refined, error) {
	drawing, err := gl.Drawing(opts.Thresholds())
	if err != nil {
		return nil, err
	}
	cells, err := gl.StoredCells(drawing.Graph())
	if err != nil {
		return nil, err
	}
	if cells == nil {
		if cells, err = planar.ExtractCells(drawing); err != nil {
			return nil, err
		}
	}
	return &Refined{Drawing: drawing, Cells: cells, Layout: gl}, nil
}

// RenderWithCacheInfo renders a serialized layout with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, gl graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	refined, err := fromCached(gl, opts)
	if err != nil {
		return nil, false, err
	}
	return r.renderWithCacheInfo(ctx, refined, opts)
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, refined *Refined, opts Options) (map[string][]byte, bool, error) {
	// Compute cache key from layout data
	layoutData, err := graph.MarshalLayout(refined.Layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	hooks := observability.Cache()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, cacheTypeArtifact)
				break
			}
			hooks.OnCacheHit(ctx, cacheTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered, err := stage(ctx, StageRender, func() (map[string][]byte, error) {
		return RenderDrawing(ctx, refined.Layout, refined.Drawing, refined.Cells, opts)
	})
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, 0); err == nil {
			hooks.OnCacheSet(ctx, cacheTypeArtifact, len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// stage runs fn between the pipeline hooks for name.
func stage[T any](ctx context.Context, name string, fn func() (T, error)) (T, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	v, err := fn()
	hooks.OnStageComplete(ctx, name, time.Since(start), err)
	return v, err
}
