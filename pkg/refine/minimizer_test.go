package refine

import (
	"context"
	"errors"
	"math"
	"testing"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
)

func bowl(x []float64) float64 {
	return (x[0]-1)*(x[0]-1) + (x[1]+2)*(x[1]+2)
}

func TestNelderMeadConverges(t *testing.T) {
	x, err := DefaultNelderMead().Minimize(context.Background(), bowl, []float64{0, 0})
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if math.Abs(x[0]-1) > 1e-2 || math.Abs(x[1]+2) > 1e-2 {
		t.Errorf("Minimize = %v, want near (1, -2)", x)
	}
}

func TestNelderMeadIterationLimit(t *testing.T) {
	m := DefaultNelderMead()
	m.MaxIterations = 1
	x, err := m.Minimize(context.Background(), bowl, []float64{0, 0})
	if !vkerr.Is(err, vkerr.ErrCodeMinimizerNonConvergence) {
		t.Fatalf("Minimize error = %v, want MINIMIZER_NON_CONVERGENCE", err)
	}
	if len(x) != 2 {
		t.Errorf("Minimize returned %v, want the best point so far", x)
	}
}

func TestNelderMeadStopsWhenCancelledMidSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A slope has no minimum, so only cancellation ends the search early.
	var evals, afterCancel int
	slope := func(x []float64) float64 {
		evals++
		if evals == 10 {
			cancel()
		} else if evals > 10 {
			afterCancel++
		}
		return -x[0] - x[1]
	}
	m := DefaultNelderMead()
	m.MaxIterations = 0
	_, err := m.Minimize(ctx, slope, []float64{0, 0})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Minimize error = %v, want context.Canceled", err)
	}
	if afterCancel > 3 {
		t.Errorf("%d evaluations after cancel, want the search to stop promptly", afterCancel)
	}
}

func TestNelderMeadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DefaultNelderMead().Minimize(ctx, bowl, []float64{0, 0}); err != context.Canceled {
		t.Errorf("Minimize error = %v, want context.Canceled", err)
	}
}
