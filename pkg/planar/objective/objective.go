// Package objective folds penalty terms into scalar costs for the optimizer.
//
// Three aggregators cover the three ways a layout is mutated:
//
//   - [Whole] writes every vertex coordinate and scores the full drawing.
//   - [Vertex] writes one vertex and scores the cells and edges around it.
//   - [CellMover] writes every vertex of one cell and scores the cells and
//     edges around those vertices.
//
// Evaluating a candidate commits it: the aggregator writes the candidate
// coordinates into the layout before scoring, and the layout keeps them
// afterwards. Callers that may reject a candidate must save and restore the
// affected positions themselves. The mutated target is always an explicit
// argument; aggregators hold no per-call state and may be reused.
//
// Cell-scoped terms are averaged over the cells in scope and edge-scoped
// terms over the edges in scope; each average is multiplied by the term's
// weight. Graph-scoped terms are added at their full weight.
package objective

import (
	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
	"github.com/matzehuels/vankamp/pkg/planar/penalty"
)

// scorer evaluates a term list over chosen cells and edges.
type scorer struct {
	cellTerms  penalty.Terms
	edgeTerms  penalty.Terms
	graphTerms penalty.Terms
	cells      []planar.Cell
}

func newScorer(terms penalty.Terms, cells []planar.Cell) scorer {
	return scorer{
		cellTerms:  terms.Scoped(penalty.ScopeCell),
		edgeTerms:  terms.Scoped(penalty.ScopeEdge),
		graphTerms: terms.Scoped(penalty.ScopeGraph),
		cells:      cells,
	}
}

func (s *scorer) score(l *planar.Layout, cellIdx []int, edges []planar.Edge) (float64, error) {
	var total float64
	if len(cellIdx) > 0 {
		for _, t := range s.cellTerms {
			var sum float64
			for _, i := range cellIdx {
				p, err := t.Kind.EvalCell(s.cells[i], l)
				if err != nil {
					return 0, err
				}
				sum += p
			}
			total += t.Weight * sum / float64(len(cellIdx))
		}
	}
	if len(edges) > 0 {
		for _, t := range s.edgeTerms {
			var sum float64
			for _, e := range edges {
				sum += t.Kind.EvalEdge(e, l)
			}
			total += t.Weight * sum / float64(len(edges))
		}
	}
	for _, t := range s.graphTerms {
		total += t.Weight * t.Kind.EvalGraph(l)
	}
	return total, nil
}

// commit writes x as consecutive (x, y) pairs onto vs.
func commit(l *planar.Layout, vs []planar.Vertex, x []float64) error {
	if len(x) != 2*len(vs) {
		return vkerr.New(vkerr.ErrCodeInternal, "candidate has %d coordinates for %d vertices", len(x), len(vs))
	}
	for i, v := range vs {
		l.SetPosition(v, geom.Point{X: x[2*i], Y: x[2*i+1]})
	}
	return nil
}

// Flatten returns the positions of vs as consecutive (x, y) pairs, the
// candidate layout the aggregators accept.
func Flatten(l *planar.Layout, vs []planar.Vertex) []float64 {
	x := make([]float64, 0, 2*len(vs))
	for _, v := range vs {
		p := l.Position(v)
		x = append(x, p.X, p.Y)
	}
	return x
}

func allVertices(n int) []planar.Vertex {
	vs := make([]planar.Vertex, n)
	for i := range vs {
		vs[i] = i
	}
	return vs
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
