// Package refine improves a planar drawing by local derivative-free moves.
//
// A [Refiner] extracts the cells of the initial drawing once, then runs a
// fixed number of passes. Each pass visits every vertex (in [ModeVertex]) or
// every cell (in [ModeCell]) in a freshly shuffled order and proposes a new
// position for it:
//
//  1. Save the current position.
//  2. Start from an initial guess: the mean of the neighbors for a vertex, or
//     the cell itself for a cell, pushed slightly away from the centroid of
//     the whole drawing.
//  3. Minimize the scoped objective from package objective with a
//     [Minimizer], Nelder-Mead by default.
//  4. Commit the minimizer's best point and count crossings on every edge
//     touching the moved vertices. Any crossing rejects the move and restores
//     the saved position exactly; otherwise the move is accepted.
//
// The objective only penalizes crossings. The check in step 4 forbids them,
// so a drawing that starts planar stays planar after every accepted move.
//
// A minimizer that hits its iteration or evaluation budget is treated as a
// rejection and counted in [Report.NonConverged]. Structural failures, such
// as a cell collapsing to a point, abort the run.
//
// There is no convergence-based early exit: a run makes passes × units
// steps unless the context is cancelled or [Options.MaxDuration] elapses.
package refine
