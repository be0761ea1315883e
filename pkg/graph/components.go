package graph

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/vankamp/pkg/planar"
)

// Components returns the connected components of g, each sorted, ordered by
// their smallest vertex.
func Components(g *planar.Graph) [][]planar.Vertex {
	ug := simple.NewUndirectedGraph()
	for v := range g.VertexCount() {
		ug.AddNode(simple.Node(int64(v)))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(ug.NewEdge(simple.Node(int64(e.From)), simple.Node(int64(e.To))))
	}

	var out [][]planar.Vertex
	for _, cc := range topo.ConnectedComponents(ug) {
		comp := make([]planar.Vertex, len(cc))
		for i, n := range cc {
			comp[i] = planar.Vertex(n.ID())
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	slices.SortFunc(out, func(a, b []planar.Vertex) int { return a[0] - b[0] })
	return out
}

// IsConnected reports whether every vertex of g is reachable from vertex 0.
func IsConnected(g *planar.Graph) bool {
	return len(Components(g)) <= 1
}
