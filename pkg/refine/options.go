package refine

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
)

// Mode selects what a single optimizer step moves.
type Mode string

const (
	// ModeVertex moves one vertex per step.
	ModeVertex Mode = "vertex"
	// ModeCell translates and reshapes one whole cell per step.
	ModeCell Mode = "cell"
)

// Default option values.
const (
	DefaultPasses = 10
	DefaultNudge  = 0.01
)

// Options configures a [Refiner].
type Options struct {
	Mode   Mode   // What a step moves; empty means ModeVertex
	Passes int    // Full sweeps over all vertices or cells; 0 leaves the drawing unchanged
	Seed   uint64 // Seed for the per-pass visiting order

	// Nudge scales the outward push of each initial guess: the guess moves by
	// Nudge times its offset from the drawing's centroid.
	Nudge float64

	// MaxDuration caps the wall-clock time of Run; 0 means no cap.
	MaxDuration time.Duration

	// Minimizer performs each local search. Nil uses DefaultNelderMead.
	Minimizer Minimizer

	// Logger receives per-pass debug output. Nil discards it.
	Logger *log.Logger

	// Progress, if set, is called after every step with the number of steps
	// done and the total planned for the run.
	Progress func(done, total int)
}

// DefaultOptions returns vertex-mode options with the standard pass count.
func DefaultOptions() Options {
	return Options{
		Mode:   ModeVertex,
		Passes: DefaultPasses,
		Nudge:  DefaultNudge,
	}
}

func (o *Options) setDefaults() {
	if o.Mode == "" {
		o.Mode = ModeVertex
	}
	if o.Minimizer == nil {
		o.Minimizer = DefaultNelderMead()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

func (o Options) validate() error {
	if o.Mode != ModeVertex && o.Mode != ModeCell {
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "invalid mode %q (valid: vertex, cell)", o.Mode)
	}
	if o.Passes < 0 {
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "passes must be non-negative, got %d", o.Passes)
	}
	if math.IsNaN(o.Nudge) || math.IsInf(o.Nudge, 0) || o.Nudge < 0 {
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "nudge must be finite and non-negative, got %g", o.Nudge)
	}
	if o.MaxDuration < 0 {
		return vkerr.New(vkerr.ErrCodeInvalidConfig, "max duration must be non-negative, got %s", o.MaxDuration)
	}
	return nil
}
