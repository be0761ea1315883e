package objective

import (
	"github.com/matzehuels/vankamp/pkg/planar"
	"github.com/matzehuels/vankamp/pkg/planar/penalty"
)

// Whole scores an entire layout: cell terms averaged over all cells, edge
// terms averaged over all edges, plus graph terms.
type Whole struct {
	s        scorer
	cellIdx  []int
	vertices []planar.Vertex
}

// NewWhole creates a whole-layout aggregator for a layout with n vertices.
func NewWhole(terms penalty.Terms, cells []planar.Cell, n int) *Whole {
	return &Whole{
		s:        newScorer(terms, cells),
		cellIdx:  indices(len(cells)),
		vertices: allVertices(n),
	}
}

// Evaluate commits x as the coordinates of every vertex, in vertex order,
// and returns the cost of the result.
func (w *Whole) Evaluate(l *planar.Layout, x []float64) (float64, error) {
	if err := commit(l, w.vertices, x); err != nil {
		return 0, err
	}
	return w.Score(l)
}

// Score returns the cost of l without moving anything.
func (w *Whole) Score(l *planar.Layout) (float64, error) {
	return w.s.score(l, w.cellIdx, l.Graph().Edges())
}
