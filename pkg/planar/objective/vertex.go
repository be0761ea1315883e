package objective

import (
	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/planar"
	"github.com/matzehuels/vankamp/pkg/planar/penalty"
)

// Vertex scores the neighborhood of one moved vertex: the cells through it
// and the edges incident to it.
type Vertex struct {
	s           scorer
	vertexCells [][]int
}

// NewVertex creates a vertex-scoped aggregator for a layout with n vertices.
func NewVertex(terms penalty.Terms, cells []planar.Cell, n int) *Vertex {
	return &Vertex{
		s:           newScorer(terms, cells),
		vertexCells: planar.VertexCells(n, cells),
	}
}

// Evaluate commits x = (x, y) as the position of v and returns the cost of
// its neighborhood.
func (a *Vertex) Evaluate(l *planar.Layout, v planar.Vertex, x []float64) (float64, error) {
	if v < 0 || v >= len(a.vertexCells) {
		return 0, vkerr.New(vkerr.ErrCodeInternal, "vertex %d out of range", v)
	}
	if err := commit(l, []planar.Vertex{v}, x); err != nil {
		return 0, err
	}
	return a.s.score(l, a.vertexCells[v], l.Graph().IncidentEdges(v))
}

// Cells returns the indices of the cells through v.
func (a *Vertex) Cells(v planar.Vertex) []int { return a.vertexCells[v] }
