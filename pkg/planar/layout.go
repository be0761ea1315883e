package planar

import (
	"slices"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
)

// Thresholds bound the edge lengths considered acceptable.
type Thresholds struct {
	MinEdge float64 // Edges shorter than this are penalized
	MaxEdge float64 // Edges longer than this are penalized
}

// DefaultThresholds returns the window used when none is configured.
func DefaultThresholds() Thresholds {
	return Thresholds{MinEdge: 0.1, MaxEdge: 0.5}
}

// Layout is the mutable drawing of a [Graph]: one coordinate per vertex plus
// the constants that normalize penalties.
//
// The zero value is not usable; create layouts with [NewLayout].
type Layout struct {
	graph      *Graph
	pos        []geom.Point
	thresholds Thresholds
	maxEdge    float64
}

// NewLayout binds positions to g. The positions slice is copied.
//
// It fails with INVALID_INPUT when the position count does not match the vertex
// count or a coordinate is not finite, INVALID_CONFIG for bad thresholds, and
// DEGENERATE_GEOMETRY when the graph has no edges, two adjacent vertices
// coincide, or the longest edge has zero length.
func NewLayout(g *Graph, pos []geom.Point, th Thresholds) (*Layout, error) {
	if len(pos) != g.VertexCount() {
		return nil, vkerr.New(vkerr.ErrCodeInvalidInput, "got %d positions for %d vertices", len(pos), g.VertexCount())
	}
	for v, p := range pos {
		if !geom.IsFinite(p) {
			return nil, vkerr.New(vkerr.ErrCodeInvalidInput, "vertex %d has non-finite position (%g, %g)", v, p.X, p.Y)
		}
	}
	if err := vkerr.ValidateThresholds(th.MinEdge, th.MaxEdge); err != nil {
		return nil, err
	}
	if g.EdgeCount() == 0 {
		return nil, vkerr.New(vkerr.ErrCodeDegenerateGeometry, "graph has no edges")
	}

	l := &Layout{
		graph:      g,
		pos:        slices.Clone(pos),
		thresholds: th,
	}
	for _, e := range g.Edges() {
		length := l.EdgeLength(e)
		if length == 0 {
			return nil, vkerr.New(vkerr.ErrCodeDegenerateGeometry, "adjacent vertices %d and %d coincide", e.From, e.To)
		}
		l.maxEdge = max(l.maxEdge, length)
	}
	return l, nil
}

// Graph returns the underlying graph.
func (l *Layout) Graph() *Graph { return l.graph }

// Thresholds returns the acceptable edge-length window.
func (l *Layout) Thresholds() Thresholds { return l.thresholds }

// MaxObservedEdgeLength returns the longest edge of the initial drawing.
// It is always positive.
func (l *Layout) MaxObservedEdgeLength() float64 { return l.maxEdge }

// Position returns the coordinate of v.
func (l *Layout) Position(v Vertex) geom.Point { return l.pos[v] }

// SetPosition moves v to p.
func (l *Layout) SetPosition(v Vertex, p geom.Point) { l.pos[v] = p }

// Positions returns a copy of all coordinates indexed by vertex.
func (l *Layout) Positions() []geom.Point { return slices.Clone(l.pos) }

// EdgeLength returns the drawn length of e.
func (l *Layout) EdgeLength(e Edge) float64 {
	return geom.SegmentLength(l.pos[e.From], l.pos[e.To])
}

// Centroid returns the mean position over all vertices.
func (l *Layout) Centroid() geom.Point { return geom.Centroid(l.pos) }

// Clone returns an independent copy sharing the immutable graph.
func (l *Layout) Clone() *Layout {
	c := *l
	c.pos = slices.Clone(l.pos)
	return &c
}
