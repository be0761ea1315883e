// Package pipeline provides the end-to-end refinement pipeline for vankamp.
//
// This package implements the complete load → embed → refine → render
// pipeline used by the CLI. By centralizing this logic, every command applies
// the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read the edge list into a [planar.Graph]
//  2. Embed: Obtain initial positions from a layout file or a Tutte embedding
//  3. Refine: Run the optimizer and export the refined layout
//  4. Render: Generate output in various formats (SVG, DOT, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Edges:   "diagram.edges",
//	    Outer:   []int{0, 1, 2, 3},
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Options can also be read from a TOML or YAML file with [LoadOptions].
//
// [planar.Graph]: github.com/matzehuels/vankamp/pkg/planar#Graph
package pipeline

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/vankamp/pkg/cache"
	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/graph"
	"github.com/matzehuels/vankamp/pkg/planar"
	"github.com/matzehuels/vankamp/pkg/planar/penalty"
	"github.com/matzehuels/vankamp/pkg/refine"
	"github.com/matzehuels/vankamp/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config Files
// =============================================================================

const (
	// DefaultMinEdge is the shortest acceptable edge length.
	DefaultMinEdge = 0.1

	// DefaultMaxEdge is the longest acceptable edge length.
	DefaultMaxEdge = 0.5

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultTolerance is the Nelder-Mead convergence tolerance.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations caps simplex iterations per move.
	DefaultMaxIterations = 500

	// DefaultMode is the default optimizer step.
	DefaultMode = string(refine.ModeVertex)
)

// Format constants for output formats.
const (
	FormatSVG         = "svg"
	FormatDOT         = "dot"
	FormatGraphvizSVG = "graphviz-svg"
	FormatPNG         = "png"
	FormatPDF         = "pdf"
	FormatJSON        = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:         true,
	FormatDOT:         true,
	FormatGraphvizSVG: true,
	FormatPNG:         true,
	FormatPDF:         true,
	FormatJSON:        true,
}

// FormatExtension returns the file extension written for format.
func FormatExtension(format string) string {
	switch format {
	case FormatGraphvizSVG:
		return "graphviz.svg"
	default:
		return format
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the refinement pipeline.
// Field tags name the keys accepted in TOML and YAML config files.
type Options struct {
	// Input options
	Edges     string `toml:"edges" yaml:"edges" json:"edges,omitempty"`
	Positions string `toml:"positions" yaml:"positions" json:"positions,omitempty"` // Layout JSON with initial positions
	Outer     []int  `toml:"outer" yaml:"outer" json:"outer,omitempty"`             // Outer cycle for the Tutte embedding

	// Refine options
	Mode          string             `toml:"mode" yaml:"mode" json:"mode,omitempty" validate:"omitempty,oneof=vertex cell"`
	Passes        *int               `toml:"passes" yaml:"passes" json:"passes,omitempty" validate:"omitempty,gte=0"` // Nil means the default; 0 leaves the drawing unchanged
	Seed          *uint64            `toml:"seed" yaml:"seed" json:"seed,omitempty"`
	MinEdge       float64            `toml:"min_edge" yaml:"min_edge" json:"min_edge,omitempty" validate:"gte=0"`
	MaxEdge       float64            `toml:"max_edge" yaml:"max_edge" json:"max_edge,omitempty" validate:"gtfield=MinEdge"`
	Nudge         float64            `toml:"nudge" yaml:"nudge" json:"nudge,omitempty" validate:"gte=0"`
	Tolerance     float64            `toml:"tolerance" yaml:"tolerance" json:"tolerance,omitempty" validate:"gte=0"`
	MaxIterations int                `toml:"max_iterations" yaml:"max_iterations" json:"max_iterations,omitempty" validate:"gte=0"`
	MaxDuration   time.Duration      `toml:"max_duration" yaml:"max_duration" json:"max_duration,omitempty" validate:"gte=0"`
	Weights       map[string]float64 `toml:"weights" yaml:"weights" json:"weights,omitempty"` // Overrides on the default penalty weights

	// Render options
	Formats []string `toml:"formats" yaml:"formats" json:"formats,omitempty"`
	Width   int      `toml:"width" yaml:"width" json:"width,omitempty" validate:"gte=0"`
	Height  int      `toml:"height" yaml:"height" json:"height,omitempty" validate:"gte=0"`
	Margin  *int     `toml:"margin" yaml:"margin" json:"margin,omitempty" validate:"omitempty,gte=0"` // Nil means the default; 0 draws edge to edge
	Labels  bool     `toml:"labels" yaml:"labels" json:"labels,omitempty"`
	NoFill  bool     `toml:"no_fill" yaml:"no_fill" json:"no_fill,omitempty"`
	Scale   float64  `toml:"scale" yaml:"scale" json:"scale,omitempty" validate:"gte=0"`

	// Runtime options (not serialized)
	Refresh  bool                   `toml:"-" yaml:"-" json:"-"`
	Logger   *log.Logger            `toml:"-" yaml:"-" json:"-"`
	Progress func(done, total int) `toml:"-" yaml:"-" json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Drawing is the refined layout.
	Drawing *planar.Layout

	// Cells are the bounded faces of the refined layout.
	Cells []planar.Cell

	// Layout is the serialized refined layout, stats included.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	CellCount   int
	LoadTime    time.Duration
	RefineTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RefineHit bool // Whether the refined layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

var validate = validator.New()

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "invalid format: %q (must be one of: %s)",
			format, strings.Join(slices.Sorted(maps.Keys(ValidFormats)), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every zero-valued setting with its default.
// It is idempotent.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Passes == nil {
		o.Passes = ptr(refine.DefaultPasses)
	}
	if o.Seed == nil {
		o.Seed = ptr(DefaultSeed)
	}
	if o.MinEdge == 0 && o.MaxEdge == 0 {
		o.MinEdge, o.MaxEdge = DefaultMinEdge, DefaultMaxEdge
	}
	if o.Nudge == 0 {
		o.Nudge = refine.DefaultNudge
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = render.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = render.DefaultHeight
	}
	if o.Margin == nil {
		o.Margin = ptr(render.DefaultMargin)
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks field ranges, formats and penalty names.
// Call SetDefaults first; zero thresholds are rejected.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return formatValidationError(err)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := o.Terms(); err != nil {
		return err
	}
	return vkerr.ValidateThresholds(o.MinEdge, o.MaxEdge)
}

// ValidateAndSetDefaults applies defaults and validates the result.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// ValidateForRender validates only what rendering needs.
func (o *Options) ValidateForRender() error {
	o.SetDefaults()
	if err := validate.StructPartial(o, "Width", "Height", "Margin", "Scale"); err != nil {
		return formatValidationError(err)
	}
	return ValidateFormats(o.Formats)
}

// formatValidationError converts validator errors to a coded config error
// naming the first failing field.
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return vkerr.Wrap(vkerr.ErrCodeInvalidConfig, err, "validate options")
	}
	e := verrs[0]
	switch e.Tag() {
	case "oneof":
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "%s: must be one of %s, got %v", e.Field(), e.Param(), e.Value())
	case "gte":
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "%s: must be at least %s, got %v", e.Field(), e.Param(), e.Value())
	case "gtfield":
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "%s: must be greater than %s, got %v", e.Field(), e.Param(), e.Value())
	default:
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "%s: validation failed (%s)", e.Field(), e.Tag())
	}
}

// Thresholds returns the edge-length window.
func (o *Options) Thresholds() planar.Thresholds {
	return planar.Thresholds{MinEdge: o.MinEdge, MaxEdge: o.MaxEdge}
}

// Terms returns the default penalty weights overridden by Weights.
// Weight keys are matched case-insensitively; a zero weight removes a term.
func (o *Options) Terms() (penalty.Terms, error) {
	weights := penalty.Defaults().Weights()
	for name, w := range o.Weights {
		k, err := penalty.ParseKind(name)
		if err != nil {
			return nil, err
		}
		weights[k.String()] = w
	}
	return penalty.ParseTerms(weights)
}

// RefineOptions returns the optimizer configuration.
func (o *Options) RefineOptions() refine.Options {
	nm := refine.DefaultNelderMead()
	nm.Tolerance = o.Tolerance
	nm.MaxIterations = o.MaxIterations
	return refine.Options{
		Mode:        refine.Mode(o.Mode),
		Passes:      deref(o.Passes, refine.DefaultPasses),
		Seed:        deref(o.Seed, DefaultSeed),
		Nudge:       o.Nudge,
		MaxDuration: o.MaxDuration,
		Minimizer:   nm,
		Logger:      o.Logger,
		Progress:    o.Progress,
	}
}

// RenderOptions returns the frame and decoration settings.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Width:     o.Width,
		Height:    o.Height,
		Margin:    deref(o.Margin, render.DefaultMargin),
		Labels:    o.Labels,
		FillCells: !o.NoFill,
	}
}

// LayoutKeyOpts returns cache key options for refinement.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	terms, _ := o.Terms()
	return cache.LayoutKeyOpts{
		Mode:          o.Mode,
		Passes:        deref(o.Passes, refine.DefaultPasses),
		Seed:          deref(o.Seed, DefaultSeed),
		MinEdge:       o.MinEdge,
		MaxEdge:       o.MaxEdge,
		Nudge:         o.Nudge,
		Tolerance:     o.Tolerance,
		MaxIterations: o.MaxIterations,
		Weights:       terms.Weights(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		Margin:    deref(o.Margin, render.DefaultMargin),
		Labels:    o.Labels,
		FillCells: !o.NoFill,
		Scale:     o.Scale,
	}
}

func ptr[T any](v T) *T { return &v }

// deref returns *p, or def when p is nil.
func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func (s Stats) String() string {
	return fmt.Sprintf("%d vertices, %d edges, %d cells", s.VertexCount, s.EdgeCount, s.CellCount)
}
