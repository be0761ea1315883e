package refine

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/optimize"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
)

// Minimizer finds a local minimum of f starting from x0.
//
// Implementations return an error coded MINIMIZER_NON_CONVERGENCE when the
// search stops on a budget rather than on convergence. The returned point is
// the best one found.
type Minimizer interface {
	Minimize(ctx context.Context, f func(x []float64) float64, x0 []float64) ([]float64, error)
}

// NelderMead is a [Minimizer] backed by the gonum simplex method.
type NelderMead struct {
	Tolerance      float64 // Absolute objective change counted as converged
	Stall          int     // Iterations without Tolerance improvement before converging
	MaxIterations  int     // Simplex iterations before giving up; 0 means unlimited
	MaxEvaluations int     // Objective evaluations before giving up; 0 means unlimited
	SimplexSize    float64 // Edge length of the initial simplex; 0 uses gonum's default
}

// DefaultNelderMead returns the minimizer used when none is configured.
func DefaultNelderMead() NelderMead {
	return NelderMead{
		Tolerance:     1e-6,
		Stall:         10,
		MaxIterations: 500,
		SimplexSize:   0.05,
	}
}

// Minimize implements [Minimizer].
func (m NelderMead) Minimize(ctx context.Context, f func([]float64) float64, x0 []float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   m.Tolerance,
			Iterations: max(m.Stall, 1),
		},
		MajorIterations: m.MaxIterations,
		FuncEvaluations: m.MaxEvaluations,
		Concurrent:      1,
		Recorder:        contextRecorder{ctx},
	}
	if deadline, ok := ctx.Deadline(); ok {
		settings.Runtime = max(time.Until(deadline), time.Nanosecond)
	}

	res, err := optimize.Minimize(optimize.Problem{Func: f}, x0, settings, &optimize.NelderMead{SimplexSize: m.SimplexSize})
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if res == nil {
		return nil, vkerr.Wrap(vkerr.ErrCodeMinimizerNonConvergence, err, "nelder-mead failed")
	}
	if err != nil || !converged(res.Status) || math.IsNaN(res.F) {
		return res.X, vkerr.Wrap(vkerr.ErrCodeMinimizerNonConvergence, err,
			"nelder-mead stopped with %v after %d iterations", res.Status, res.MajorIterations)
	}
	return res.X, nil
}

// contextRecorder stops the search once ctx is done. gonum consults the
// recorder after every operation, evaluations included.
type contextRecorder struct {
	ctx context.Context
}

func (r contextRecorder) Init() error { return r.ctx.Err() }

func (r contextRecorder) Record(*optimize.Location, optimize.Operation, *optimize.Stats) error {
	return r.ctx.Err()
}

func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return true
	}
	return false
}
