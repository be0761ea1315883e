package graph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
)

func TestReadEdgeList(t *testing.T) {
	input := `# square
0 1
1	2

2 3
  3 0  
`
	g, err := ReadEdgeList(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []planar.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}}
	if diff := cmp.Diff(want, g.Edges()); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if g.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", g.VertexCount())
	}
}

func TestReadEdgeListErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine string
	}{
		{"one token", "0 1\n2\n", "line 2"},
		{"three tokens", "0 1 2\n", "line 1"},
		{"not a number", "0 1\n1 x\n", "line 2"},
		{"float", "0 1.5\n", "line 1"},
		{"negative", "# c\n0 -1\n", "line 2"},
		{"huge id", "0 1\n1 9223372036854775806\n", "line 2"},
		{"id above limit", "0 16777216\n", "line 1"},
		{"id overflows int", "0 99999999999999999999\n", "line 1"},
		{"self loop", "0 1\n1 1\n", "line 2"},
		{"duplicate", "0 1\n1 2\n1 0\n", "line 3"},
		{"empty", "# nothing\n\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdgeList(strings.NewReader(tt.input))
			if !vkerr.Is(err, vkerr.ErrCodeMalformedInput) {
				t.Fatalf("ReadEdgeList() = %v, want MALFORMED_INPUT", err)
			}
			if !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("error %q does not mention %q", err, tt.wantLine)
			}
		})
	}
}

func TestReadEdgeListFileMissing(t *testing.T) {
	_, err := ReadEdgeListFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !vkerr.Is(err, vkerr.ErrCodeFileNotFound) {
		t.Errorf("ReadEdgeListFile() = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteEdgeListRoundTrip(t *testing.T) {
	g, _ := planar.FromEdges([]planar.Edge{{From: 2, To: 0}, {From: 0, To: 1}})
	var buf bytes.Buffer
	if err := WriteEdgeList(&buf, g); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "2 0\n0 1\n" {
		t.Errorf("WriteEdgeList = %q", buf.String())
	}
	back, err := ReadEdgeList(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(g.Edges(), back.Edges()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func squareLayout(t *testing.T) (*planar.Layout, []planar.Cell) {
	t.Helper()
	g, _ := planar.FromEdges([]planar.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}})
	l, err := planar.NewLayout(g, []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, planar.DefaultThresholds())
	if err != nil {
		t.Fatal(err)
	}
	cells, err := planar.ExtractCells(l)
	if err != nil {
		t.Fatal(err)
	}
	return l, cells
}

func TestExportAndDrawing(t *testing.T) {
	l, cells := squareLayout(t)
	out := Export(l, cells)
	out.RunID = "run-1"
	out.Stats = &Stats{Passes: 2, Accepted: 3}

	if diff := cmp.Diff([][]int{{0, 1, 2, 3}}, out.Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(out, path); err != nil {
		t.Fatal(err)
	}
	back, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(out, back); diff != "" {
		t.Errorf("file round trip mismatch (-want +got):\n%s", diff)
	}

	d, err := back.Drawing(planar.DefaultThresholds())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(l.Positions(), d.Positions()); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(l.Graph().Edges(), d.Graph().Edges()); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutPositions(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		want    []geom.Point
		wantErr bool
	}{
		{"unordered", []Node{{ID: 1, X: 2}, {ID: 0, Y: 3}}, []geom.Point{{Y: 3}, {X: 2}}, false},
		{"gap", []Node{{ID: 0}, {ID: 2}}, nil, true},
		{"duplicate", []Node{{ID: 0}, {ID: 0}}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Layout{Nodes: tt.nodes}.Positions()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Positions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Positions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalLayoutErrors(t *testing.T) {
	for _, data := range []string{`{`, `{"nodes": []}`, `{"edges": [{"from": 0, "to": 1}]}`} {
		if _, err := UnmarshalLayout([]byte(data)); !vkerr.Is(err, vkerr.ErrCodeInvalidFormat) {
			t.Errorf("UnmarshalLayout(%s) = %v, want INVALID_FORMAT", data, err)
		}
	}

	l, err := UnmarshalLayout([]byte(`{"nodes": [{"id": 0}, {"id": 1}], "edges": [{"from": 0, "to": 0}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Graph(); !vkerr.Is(err, vkerr.ErrCodeInvalidFormat) {
		t.Errorf("Graph() with self-loop = %v, want INVALID_FORMAT", err)
	}
}

func TestLayoutGraphRejectsHugeIDs(t *testing.T) {
	for _, l := range []Layout{
		{Nodes: []Node{{ID: 0}, {ID: 1}}, Edges: []Edge{{From: 1, To: 9223372036854775806}}},
		{Nodes: []Node{{ID: 0}}, Edges: []Edge{{From: 0, To: vkerr.MaxVertexID + 1}}},
		{Nodes: []Node{{ID: 0}}, Edges: []Edge{{From: -3, To: 0}}},
	} {
		if _, err := l.Graph(); !vkerr.Is(err, vkerr.ErrCodeInvalidFormat) {
			t.Errorf("Graph() with edges %v = %v, want INVALID_FORMAT", l.Edges, err)
		}
	}
}

func TestReadLayoutFileMissing(t *testing.T) {
	_, err := ReadLayoutFile(filepath.Join(t.TempDir(), "nope.json"))
	if !vkerr.Is(err, vkerr.ErrCodeFileNotFound) {
		t.Errorf("ReadLayoutFile() = %v, want FILE_NOT_FOUND", err)
	}
}

func TestComponents(t *testing.T) {
	g := planar.NewGraph(6)
	for _, e := range []planar.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 3, To: 4}} {
		if err := g.AddEdge(e.From, e.To); err != nil {
			t.Fatal(err)
		}
	}
	want := [][]planar.Vertex{{0, 1, 2}, {3, 4}, {5}}
	if diff := cmp.Diff(want, Components(g)); diff != "" {
		t.Errorf("Components mismatch (-want +got):\n%s", diff)
	}
	if IsConnected(g) {
		t.Error("IsConnected() = true for three components")
	}

	l, _ := squareLayout(t)
	if !IsConnected(l.Graph()) {
		t.Error("square should be connected")
	}
}
