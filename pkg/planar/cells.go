package planar

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
)

// Cell is the boundary of one face: a closed walk of directed edges where
// each edge ends where the next one begins.
type Cell []Edge

// Len returns the number of boundary edges.
func (c Cell) Len() int { return len(c) }

// Vertices returns the start vertex of every boundary edge in walk order.
// A vertex visited twice by the walk appears twice.
func (c Cell) Vertices() []Vertex {
	out := make([]Vertex, len(c))
	for i, e := range c {
		out[i] = e.From
	}
	return out
}

// DistinctVertices returns the boundary vertices in order of first visit,
// each once.
func (c Cell) DistinctVertices() []Vertex {
	out := make([]Vertex, 0, len(c))
	for _, e := range c {
		if !slices.Contains(out, e.From) {
			out = append(out, e.From)
		}
	}
	return out
}

// CellFromWalk rebuilds a cell from the vertex walk returned by
// [Cell.Vertices]. Every consecutive pair, including last to first, must be an
// edge of g.
func CellFromWalk(g *Graph, walk []Vertex) (Cell, error) {
	if len(walk) < 3 {
		return nil, vkerr.New(vkerr.ErrCodeMalformedEmbedding, "cell walk %v has fewer than 3 vertices", walk)
	}
	c := make(Cell, len(walk))
	for i, v := range walk {
		w := walk[(i+1)%len(walk)]
		if !g.HasEdge(v, w) {
			return nil, vkerr.New(vkerr.ErrCodeMalformedEmbedding, "cell walk %v uses missing edge (%d, %d)", walk, v, w)
		}
		c[i] = Edge{From: v, To: w}
	}
	return c, nil
}

// HasVertex reports whether v lies on the boundary.
func (c Cell) HasVertex(v Vertex) bool {
	for _, e := range c {
		if e.From == v {
			return true
		}
	}
	return false
}

// Points returns the boundary positions in walk order.
func (c Cell) Points(l *Layout) []geom.Point {
	out := make([]geom.Point, len(c))
	for i, e := range c {
		out[i] = l.pos[e.From]
	}
	return out
}

// Area returns the signed area enclosed by the walk. Bounded faces traced by
// [ExtractFaces] have positive area.
func (c Cell) Area(l *Layout) float64 { return geom.SignedArea(c.Points(l)) }

// String renders the walk as "0 -> 1 -> 2 -> 0".
func (c Cell) String() string {
	if len(c) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range c {
		fmt.Fprintf(&b, "%d -> ", e.From)
	}
	fmt.Fprintf(&b, "%d", c[len(c)-1].To)
	return b.String()
}

// ExtractFaces traces every face of the embedding, the unbounded outer face
// included. Each directed edge appears in exactly one returned face, so the
// face lengths sum to twice the edge count.
//
// Faces are traced by always taking the smallest clockwise turn measured
// from the incoming edge; this keeps the face on the left of the walk, so
// bounded faces come out counter-clockwise. Ties between collinear
// candidates go to the earliest neighbor in insertion order. A walk that
// reaches a pendant vertex turns back along the edge it arrived on.
//
// Walks start from each edge of [Graph.Edges] in order, first in its stored
// orientation and then reversed.
//
// It fails with MALFORMED_EMBEDDING when a walk does not close within
// 2|E|+1 steps or re-enters a directed edge owned by another face.
func ExtractFaces(l *Layout) ([]Cell, error) {
	g := l.graph
	limit := 2*len(g.edges) + 1
	visited := make(map[Edge]bool, 2*len(g.edges))

	var faces []Cell
	for _, e := range g.edges {
		for _, start := range [2]Edge{e, e.Reverse()} {
			if visited[start] {
				continue
			}
			face, err := l.traceFace(start, visited, limit)
			if err != nil {
				return nil, err
			}
			faces = append(faces, face)
		}
	}
	return faces, nil
}

// ExtractCells returns the bounded faces of the embedding: the faces of
// [ExtractFaces] whose signed area is positive. Faces of zero area, such as
// the walk around a tree, are dropped.
func ExtractCells(l *Layout) ([]Cell, error) {
	faces, err := ExtractFaces(l)
	if err != nil {
		return nil, err
	}
	cells := faces[:0]
	for _, f := range faces {
		if f.Area(l) > 0 {
			cells = append(cells, f)
		}
	}
	return cells, nil
}

func (l *Layout) traceFace(start Edge, visited map[Edge]bool, limit int) (Cell, error) {
	var face Cell
	cur, nxt := start.From, start.To
	for step := 0; ; step++ {
		if step >= limit {
			return nil, vkerr.New(vkerr.ErrCodeMalformedEmbedding,
				"face starting at (%d, %d) did not close within %d steps", start.From, start.To, limit)
		}
		e := Edge{From: cur, To: nxt}
		if visited[e] {
			return nil, vkerr.New(vkerr.ErrCodeMalformedEmbedding,
				"face starting at (%d, %d) re-entered edge (%d, %d)", start.From, start.To, cur, nxt)
		}
		face = append(face, e)
		visited[e] = true

		prev := cur
		cur = nxt
		var ok bool
		nxt, ok = l.nextAround(prev, cur)
		if !ok {
			return nil, vkerr.New(vkerr.ErrCodeMalformedEmbedding, "vertex %d has no neighbors", cur)
		}
		if cur == start.From && nxt == start.To {
			return face, nil
		}
	}
}

// nextAround picks the neighbor of cur reached by the smallest clockwise
// rotation from the direction back to prev.
func (l *Layout) nextAround(prev, cur Vertex) (Vertex, bool) {
	nbrs := l.graph.Neighbors(cur)
	switch len(nbrs) {
	case 0:
		return 0, false
	case 1:
		return nbrs[0], true
	}

	origin := l.pos[cur]
	incoming := r2.Sub(l.pos[prev], origin)
	best, bestAngle := -1, math.Inf(1)
	for _, n := range nbrs {
		if n == prev {
			continue
		}
		a := geom.ClockwiseAngle(incoming, r2.Sub(l.pos[n], origin))
		if a < bestAngle {
			best, bestAngle = n, a
		}
	}
	return best, true
}

// VertexCells maps each vertex in [0, n) to the indices of the cells whose
// boundary passes through it, in ascending order without duplicates.
func VertexCells(n int, cells []Cell) [][]int {
	out := make([][]int, n)
	for i, c := range cells {
		for _, v := range c.Vertices() {
			if v < 0 || v >= n {
				continue
			}
			if k := len(out[v]); k > 0 && out[v][k-1] == i {
				continue
			}
			out[v] = append(out[v], i)
		}
	}
	return out
}
