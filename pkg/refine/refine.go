package refine

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/observability"
	"github.com/matzehuels/vankamp/pkg/planar"
	"github.com/matzehuels/vankamp/pkg/planar/objective"
	"github.com/matzehuels/vankamp/pkg/planar/penalty"
)

// Outcome classifies one optimizer step.
type Outcome = observability.MoveOutcome

const (
	Accepted     = observability.MoveAccepted
	Rejected     = observability.MoveRejected
	NonConverged = observability.MoveNonConverged
	Skipped      = observability.MoveSkipped // isolated vertex, nothing to move
)

// Report summarizes a run.
type Report struct {
	RunID        string        `json:"run_id"`
	Mode         Mode          `json:"mode"`
	Passes       int           `json:"passes"` // completed passes
	Steps        int           `json:"steps"`
	Accepted     int           `json:"accepted"`
	Rejected     int           `json:"rejected"`
	NonConverged int           `json:"non_converged"`
	Skipped      int           `json:"skipped"`
	InitialCost  float64       `json:"initial_cost"`
	FinalCost    float64       `json:"final_cost"`
	Crossings    int           `json:"crossings"`
	TimedOut     bool          `json:"timed_out,omitempty"`
	Duration     time.Duration `json:"duration"`
}

func (r *Report) record(o Outcome) {
	r.Steps++
	switch o {
	case Accepted:
		r.Accepted++
	case Rejected:
		r.Rejected++
	case NonConverged:
		r.NonConverged++
	case Skipped:
		r.Skipped++
	}
}

// Refiner moves the vertices of one layout in place.
//
// A Refiner is not safe for concurrent use, and the layout must not be
// modified by anyone else while a run is in progress.
type Refiner struct {
	layout *planar.Layout
	cells  []planar.Cell
	opts   Options
	logger *log.Logger

	whole  *objective.Whole
	vertex *objective.Vertex
	mover  *objective.CellMover
}

// New extracts the cells of l and prepares the aggregators for terms.
//
// It fails with MALFORMED_EMBEDDING when the faces of l cannot be traced and
// INVALID_CONFIG for bad options or terms.
func New(l *planar.Layout, terms penalty.Terms, opts Options) (*Refiner, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	cells, err := planar.ExtractCells(l)
	if err != nil {
		return nil, err
	}
	g := l.Graph()
	return &Refiner{
		layout: l,
		cells:  cells,
		opts:   opts,
		logger: opts.Logger,
		whole:  objective.NewWhole(terms, cells, g.VertexCount()),
		vertex: objective.NewVertex(terms, cells, g.VertexCount()),
		mover:  objective.NewCellMover(terms, cells, g),
	}, nil
}

// Cells returns the cells extracted from the initial drawing.
func (r *Refiner) Cells() []planar.Cell { return r.cells }

// Layout returns the layout being refined.
func (r *Refiner) Layout() *planar.Layout { return r.layout }

// Cost returns the whole-layout objective of the current drawing.
func (r *Refiner) Cost() (float64, error) { return r.whole.Score(r.layout) }

// Run performs the configured passes and returns what happened.
//
// On cancellation or a structural error the layout keeps every move accepted
// so far, and the partial report is returned along with the error. Hitting
// MaxDuration is not an error; the report is marked TimedOut.
func (r *Refiner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	hooks := observability.Refine()
	report := &Report{RunID: uuid.NewString(), Mode: r.opts.Mode}

	units := r.units()
	total := r.opts.Passes * units
	hooks.OnRunStart(ctx, report.RunID, string(r.opts.Mode), r.layout.Graph().VertexCount(), len(r.cells))
	r.logger.Debug("refine start",
		"run", report.RunID,
		"mode", r.opts.Mode,
		"passes", r.opts.Passes,
		"vertices", r.layout.Graph().VertexCount(),
		"cells", len(r.cells))

	err := r.run(ctx, hooks, report, start, units, total)
	report.Duration = time.Since(start)
	report.Crossings = r.layout.Crossings()
	if cost, cerr := r.Cost(); cerr == nil {
		report.FinalCost = cost
	} else if err == nil {
		err = cerr
	}

	hooks.OnRunComplete(ctx, report.RunID, observability.RunStats{
		Mode:        string(report.Mode),
		Passes:      report.Passes,
		Steps:       report.Steps,
		Accepted:    report.Accepted,
		Rejected:    report.Rejected,
		InitialCost: report.InitialCost,
		FinalCost:   report.FinalCost,
		Duration:    report.Duration,
	}, err)
	return report, err
}

func (r *Refiner) run(ctx context.Context, hooks observability.RefineHooks, report *Report, start time.Time, units, total int) error {
	cost, err := r.Cost()
	if err != nil {
		return err
	}
	report.InitialCost = cost

	seed := r.opts.Seed
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	for pass := range r.opts.Passes {
		for _, u := range rng.Perm(units) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if r.opts.MaxDuration > 0 && time.Since(start) > r.opts.MaxDuration {
				report.TimedOut = true
				r.logger.Warn("refine time limit reached", "limit", r.opts.MaxDuration, "steps", report.Steps)
				return nil
			}

			stepStart := time.Now()
			var outcome Outcome
			if r.opts.Mode == ModeCell {
				outcome, err = r.StepCell(ctx, u)
			} else {
				outcome, err = r.StepVertex(ctx, u)
			}
			if err != nil {
				return err
			}
			hooks.OnMove(ctx, string(r.opts.Mode), outcome, time.Since(stepStart))
			report.record(outcome)
			if r.opts.Progress != nil {
				r.opts.Progress(report.Steps, total)
			}
		}

		cost, err := r.Cost()
		if err != nil {
			return err
		}
		report.Passes = pass + 1
		hooks.OnPassComplete(ctx, report.RunID, pass, cost)
		r.logger.Debug("pass complete",
			"pass", pass+1,
			"accepted", report.Accepted,
			"rejected", report.Rejected,
			"non_converged", report.NonConverged,
			"cost", cost)
	}
	return nil
}

func (r *Refiner) units() int {
	if r.opts.Mode == ModeCell {
		return len(r.cells)
	}
	return r.layout.Graph().VertexCount()
}

// StepVertex tries to move v and reports the outcome. Isolated vertices are
// skipped.
func (r *Refiner) StepVertex(ctx context.Context, v planar.Vertex) (Outcome, error) {
	l := r.layout
	nbrs := l.Graph().Neighbors(v)
	if len(nbrs) == 0 {
		return Skipped, nil
	}

	vs := []planar.Vertex{v}
	saved := []geom.Point{l.Position(v)}

	pts := make([]geom.Point, len(nbrs))
	for i, n := range nbrs {
		pts[i] = l.Position(n)
	}
	mean := geom.Centroid(pts)
	guess := r2.Add(mean, r.outward(mean))

	f := func(x []float64) (float64, error) { return r.vertex.Evaluate(l, v, x) }
	return r.step(ctx, vs, saved, []float64{guess.X, guess.Y}, f, l.Graph().IncidentEdges(v))
}

// StepCell tries to move every vertex of cell i at once and reports the
// outcome.
func (r *Refiner) StepCell(ctx context.Context, i int) (Outcome, error) {
	if i < 0 || i >= len(r.cells) {
		return "", vkerr.New(vkerr.ErrCodeInternal, "cell %d out of range", i)
	}
	l := r.layout
	vs := r.mover.Vertices(i)
	saved := make([]geom.Point, len(vs))
	for j, v := range vs {
		saved[j] = l.Position(v)
	}

	offset := r.outward(geom.Centroid(saved))
	x0 := make([]float64, 0, 2*len(vs))
	for _, p := range saved {
		q := r2.Add(p, offset)
		x0 = append(x0, q.X, q.Y)
	}

	f := func(x []float64) (float64, error) { return r.mover.Evaluate(l, i, x) }
	return r.step(ctx, vs, saved, x0, f, r.mover.Edges(i))
}

// outward returns the push applied to an initial guess centered at p: Nudge
// times the offset of p from the drawing's centroid.
func (r *Refiner) outward(p geom.Point) r2.Vec {
	return r2.Scale(r.opts.Nudge, r2.Sub(p, r.layout.Centroid()))
}

// step minimizes f from x0 and then gates the result on crossings along
// edges. Every path that does not accept restores saved onto vs.
func (r *Refiner) step(ctx context.Context, vs []planar.Vertex, saved []geom.Point, x0 []float64,
	f func([]float64) (float64, error), edges []planar.Edge) (Outcome, error) {
	l := r.layout
	restore := func() {
		for j, v := range vs {
			l.SetPosition(v, saved[j])
		}
	}

	var evalErr error
	objectiveFn := func(x []float64) float64 {
		if evalErr != nil {
			return math.Inf(1)
		}
		c, err := f(x)
		if err != nil {
			evalErr = err
			return math.Inf(1)
		}
		return c
	}

	x, err := r.opts.Minimizer.Minimize(ctx, objectiveFn, x0)
	if evalErr != nil {
		restore()
		return "", evalErr
	}
	if cerr := ctx.Err(); cerr != nil {
		restore()
		return "", cerr
	}
	if err != nil {
		restore()
		if vkerr.Is(err, vkerr.ErrCodeMinimizerNonConvergence) {
			r.logger.Debug("minimizer did not converge", "vertices", vs, "err", err)
			return NonConverged, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", vkerr.Wrap(vkerr.ErrCodeInternal, err, "minimize")
	}

	if len(x) != 2*len(vs) {
		restore()
		return "", vkerr.New(vkerr.ErrCodeInternal, "minimizer returned %d coordinates for %d vertices", len(x), len(vs))
	}
	for j, v := range vs {
		p := geom.Point{X: x[2*j], Y: x[2*j+1]}
		if !geom.IsFinite(p) {
			restore()
			return Rejected, nil
		}
		l.SetPosition(v, p)
	}

	var crossing float64
	for _, e := range edges {
		crossing += penalty.PlanarityEdge.EvalEdge(e, l)
	}
	if crossing != 0 {
		restore()
		return Rejected, nil
	}
	return Accepted, nil
}
