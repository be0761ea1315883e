package planar

import "github.com/matzehuels/vankamp/pkg/geom"

// Crosses reports whether the drawn segments of a and b properly cross.
// Edges that share an endpoint never cross.
func (l *Layout) Crosses(a, b Edge) bool {
	if a.Touches(b) {
		return false
	}
	return geom.SegmentsIntersect(l.pos[a.From], l.pos[a.To], l.pos[b.From], l.pos[b.To])
}

// EdgeCrossings counts the edges of the graph that properly cross e.
// The edge itself and edges sharing an endpoint with it are skipped, so e
// need not be an edge of the graph.
//
// Runs in O(E).
func (l *Layout) EdgeCrossings(e Edge) int {
	count := 0
	for _, other := range l.graph.edges {
		if l.Crosses(e, other) {
			count++
		}
	}
	return count
}

// Crossings counts unordered pairs of non-adjacent edges that properly cross.
//
// Runs in O(E²).
func (l *Layout) Crossings() int {
	edges := l.graph.edges
	count := 0
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if l.Crosses(edges[i], edges[j]) {
				count++
			}
		}
	}
	return count
}

// VertexCrossings sums [Layout.EdgeCrossings] over the edges incident to v.
// It is zero exactly when no edge at v crosses another edge.
func (l *Layout) VertexCrossings(v Vertex) int {
	count := 0
	for _, n := range l.graph.Neighbors(v) {
		count += l.EdgeCrossings(Edge{From: v, To: n})
	}
	return count
}

// IsPlanar reports whether the drawing has no proper crossings.
func (l *Layout) IsPlanar() bool { return l.Crossings() == 0 }
