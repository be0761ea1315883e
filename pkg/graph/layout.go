package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// =============================================================================
// Layout - Drawing Serialization Format
// =============================================================================

// Layout is the serialization format for a drawing.
type Layout struct {
	RunID string  `json:"run_id,omitempty"`
	Nodes []Node  `json:"nodes"`
	Edges []Edge  `json:"edges,omitempty"`
	Cells [][]int `json:"cells,omitempty"`
	Stats *Stats  `json:"stats,omitempty"`
}

// Node is a positioned vertex.
type Node struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Edge is an undirected edge between two vertex ids.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Stats records how a layout was refined.
type Stats struct {
	Mode         string  `json:"mode,omitempty"`
	Passes       int     `json:"passes"`
	Steps        int     `json:"steps"`
	Accepted     int     `json:"accepted"`
	Rejected     int     `json:"rejected"`
	NonConverged int     `json:"non_converged"`
	Skipped      int     `json:"skipped"`
	InitialCost  float64 `json:"initial_cost"`
	FinalCost    float64 `json:"final_cost"`
	Crossings    int     `json:"crossings"`
	DurationMS   int64   `json:"duration_ms"`
}

// Export converts a drawing and its cells to the serialization format.
// Cells are written as vertex walks.
func Export(l *planar.Layout, cells []planar.Cell) Layout {
	g := l.Graph()
	out := Layout{
		Nodes: make([]Node, g.VertexCount()),
		Edges: make([]Edge, g.EdgeCount()),
	}
	for v := range out.Nodes {
		p := l.Position(v)
		out.Nodes[v] = Node{ID: v, X: p.X, Y: p.Y}
	}
	for i, e := range g.Edges() {
		out.Edges[i] = Edge{From: e.From, To: e.To}
	}
	for _, c := range cells {
		out.Cells = append(out.Cells, c.Vertices())
	}
	return out
}

// Graph rebuilds the graph from the stored edges. Vertices that appear only
// as nodes are kept.
func (l Layout) Graph() (*planar.Graph, error) {
	if len(l.Nodes) > vkerr.MaxVertexID+1 {
		return nil, vkerr.New(vkerr.ErrCodeInvalidFormat, "layout has %d nodes, limit is %d", len(l.Nodes), vkerr.MaxVertexID+1)
	}
	for _, e := range l.Edges {
		if err := vkerr.ValidateEdge(e.From, e.To); err != nil {
			return nil, vkerr.Wrap(vkerr.ErrCodeInvalidFormat, err, "layout edge (%d, %d)", e.From, e.To)
		}
	}
	g := planar.NewGraph(l.vertexCount())
	for _, e := range l.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, vkerr.Wrap(vkerr.ErrCodeInvalidFormat, err, "layout edge (%d, %d)", e.From, e.To)
		}
	}
	return g, nil
}

func (l Layout) vertexCount() int {
	n := len(l.Nodes)
	for _, e := range l.Edges {
		n = max(n, e.From+1, e.To+1)
	}
	return n
}

// Positions returns the node coordinates indexed by id. Ids must cover
// [0, len(Nodes)) exactly once.
func (l Layout) Positions() ([]geom.Point, error) {
	pos := make([]geom.Point, len(l.Nodes))
	set := make([]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID < 0 || n.ID >= len(l.Nodes) {
			return nil, vkerr.New(vkerr.ErrCodeInvalidFormat, "node id %d out of range [0, %d)", n.ID, len(l.Nodes))
		}
		if set[n.ID] {
			return nil, vkerr.New(vkerr.ErrCodeInvalidFormat, "node id %d listed twice", n.ID)
		}
		set[n.ID] = true
		pos[n.ID] = geom.Point{X: n.X, Y: n.Y}
	}
	return pos, nil
}

// Drawing rebuilds the graph and positions as a planar layout.
func (l Layout) Drawing(th planar.Thresholds) (*planar.Layout, error) {
	g, err := l.Graph()
	if err != nil {
		return nil, err
	}
	pos, err := l.Positions()
	if err != nil {
		return nil, err
	}
	return planar.NewLayout(g, pos, th)
}

// StoredCells rebuilds the cells saved by [Export] against g. It returns nil
// when the layout carries no cells.
func (l Layout) StoredCells(g *planar.Graph) ([]planar.Cell, error) {
	if len(l.Cells) == 0 {
		return nil, nil
	}
	cells := make([]planar.Cell, len(l.Cells))
	for i, walk := range l.Cells {
		c, err := planar.CellFromWalk(g, walk)
		if err != nil {
			return nil, vkerr.Wrap(vkerr.ErrCodeInvalidFormat, err, "cell %d", i)
		}
		cells[i] = c
	}
	return cells, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A layout must contain at least one node.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, vkerr.Wrap(vkerr.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if len(l.Nodes) == 0 {
		return Layout{}, vkerr.New(vkerr.ErrCodeInvalidFormat, "layout must contain nodes")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Layout{}, vkerr.Wrap(vkerr.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
