package planar

import (
	"errors"
	"fmt"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
)

var (
	// ErrUnknownVertex is returned by [Graph.AddEdge] when an endpoint is
	// outside [0, N).
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are equal.
	ErrSelfLoop = errors.New("self-loop")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the undirected edge
	// already exists.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Vertex identifies a vertex in [0, N).
type Vertex = int

// Edge is an edge between two vertices. As an element of [Graph.Edges] it is
// undirected; inside a [Cell] it is directed from From to To.
type Edge struct {
	From Vertex `json:"from"`
	To   Vertex `json:"to"`
}

// Key returns the edge with its endpoints in ascending order. Two edges are
// the same undirected edge when their keys are equal.
func (e Edge) Key() Edge {
	if e.From > e.To {
		return Edge{From: e.To, To: e.From}
	}
	return e
}

// Reverse returns the edge with its direction flipped.
func (e Edge) Reverse() Edge { return Edge{From: e.To, To: e.From} }

// Touches reports whether e and o share at least one endpoint.
func (e Edge) Touches(o Edge) bool {
	return e.From == o.From || e.From == o.To || e.To == o.From || e.To == o.To
}

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v Vertex) bool { return e.From == v || e.To == v }

// Graph is a simple undirected graph over vertices [0, N).
//
// The zero value is an empty graph with no vertices; use [NewGraph] or
// [FromEdges] to create a usable instance.
type Graph struct {
	edges []Edge
	adj   [][]Vertex
	index map[Edge]int // edge key -> position in edges
}

// NewGraph creates a graph with n isolated vertices.
func NewGraph(n int) *Graph {
	if n < 0 {
		n = 0
	}
	return &Graph{
		adj:   make([][]Vertex, n),
		index: make(map[Edge]int),
	}
}

// FromEdges creates a graph whose vertex count is one more than the largest
// endpoint id, with edges added in the given order. Endpoints outside
// [0, vkerr.MaxVertexID] are rejected with [ErrUnknownVertex] before anything
// is allocated.
func FromEdges(edges []Edge) (*Graph, error) {
	n := 0
	for _, e := range edges {
		for _, v := range [2]Vertex{e.From, e.To} {
			if v < 0 || v > vkerr.MaxVertexID {
				return nil, fmt.Errorf("%w: %d", ErrUnknownVertex, v)
			}
		}
		n = max(n, e.From+1, e.To+1)
	}
	g := NewGraph(n)
	for _, e := range edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddEdge inserts the undirected edge {u, v}. The edge keeps its given
// orientation in [Graph.Edges], which determines where face tracing starts.
func (g *Graph) AddEdge(u, v Vertex) error {
	if u < 0 || u >= len(g.adj) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, u)
	}
	if v < 0 || v >= len(g.adj) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, v)
	}
	if u == v {
		return fmt.Errorf("%w: %d", ErrSelfLoop, u)
	}
	e := Edge{From: u, To: v}
	if _, ok := g.index[e.Key()]; ok {
		return fmt.Errorf("%w: (%d, %d)", ErrDuplicateEdge, u, v)
	}
	g.index[e.Key()] = len(g.edges)
	g.edges = append(g.edges, e)
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return nil
}

// VertexCount returns N.
func (g *Graph) VertexCount() int { return len(g.adj) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns the edges in insertion order. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// Neighbors returns the neighbors of v in insertion order, or nil if v is
// out of range. The slice must not be modified.
func (g *Graph) Neighbors(v Vertex) []Vertex {
	if v < 0 || v >= len(g.adj) {
		return nil
	}
	return g.adj[v]
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v Vertex) int { return len(g.Neighbors(v)) }

// HasEdge reports whether the undirected edge {u, v} exists.
func (g *Graph) HasEdge(u, v Vertex) bool {
	_, ok := g.index[Edge{From: u, To: v}.Key()]
	return ok
}

// IncidentEdges returns the edges (v, n) for every neighbor n of v.
func (g *Graph) IncidentEdges(v Vertex) []Edge {
	nbrs := g.Neighbors(v)
	out := make([]Edge, len(nbrs))
	for i, n := range nbrs {
		out[i] = Edge{From: v, To: n}
	}
	return out
}
