package objective

import (
	"slices"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/planar"
	"github.com/matzehuels/vankamp/pkg/planar/penalty"
)

// CellMover scores the neighborhood of a moved cell: every cell through one
// of its vertices and every edge incident to one of its vertices.
type CellMover struct {
	s     scorer
	scope []cellScope
}

type cellScope struct {
	vertices []planar.Vertex
	cells    []int
	edges    []planar.Edge
}

// NewCellMover creates a cell-scoped aggregator over the cells of g
// and precomputes the neighborhood of every cell.
func NewCellMover(terms penalty.Terms, cells []planar.Cell, g *planar.Graph) *CellMover {
	vc := planar.VertexCells(g.VertexCount(), cells)
	scope := make([]cellScope, len(cells))
	for i, c := range cells {
		vs := c.DistinctVertices()
		var touched []int
		seen := make(map[planar.Edge]bool)
		var edges []planar.Edge
		for _, v := range vs {
			touched = append(touched, vc[v]...)
			for _, e := range g.IncidentEdges(v) {
				if !seen[e.Key()] {
					seen[e.Key()] = true
					edges = append(edges, e)
				}
			}
		}
		slices.Sort(touched)
		scope[i] = cellScope{vertices: vs, cells: slices.Compact(touched), edges: edges}
	}
	return &CellMover{s: newScorer(terms, cells), scope: scope}
}

// Vertices returns the distinct vertices of cell i in the order Evaluate
// expects their coordinates.
func (m *CellMover) Vertices(i int) []planar.Vertex { return m.scope[i].vertices }

// Edges returns the edges incident to any vertex of cell i, each once.
func (m *CellMover) Edges(i int) []planar.Edge { return m.scope[i].edges }

// Evaluate commits x as consecutive (x, y) pairs for [CellMover.Vertices] of
// cell i and returns the cost of its neighborhood.
func (m *CellMover) Evaluate(l *planar.Layout, i int, x []float64) (float64, error) {
	if i < 0 || i >= len(m.scope) {
		return 0, vkerr.New(vkerr.ErrCodeInternal, "cell %d out of range", i)
	}
	sc := m.scope[i]
	if err := commit(l, sc.vertices, x); err != nil {
		return 0, err
	}
	return m.s.score(l, sc.cells, sc.edges)
}
