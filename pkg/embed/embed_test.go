package embed

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
)

func mustGraph(t *testing.T, edges ...planar.Edge) *planar.Graph {
	t.Helper()
	g, err := planar.FromEdges(edges)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestFixed(t *testing.T) {
	g := mustGraph(t, planar.Edge{From: 0, To: 1})
	f := Fixed{{X: 0, Y: 0}, {X: 1, Y: 2}}

	got, err := f.Embed(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	got[0] = geom.Point{X: 9, Y: 9}
	if f[0] != (geom.Point{}) {
		t.Error("Embed should return a copy")
	}

	_, err = Fixed{{X: 0, Y: 0}}.Embed(context.Background(), g)
	if !vkerr.Is(err, vkerr.ErrCodeInvalidInput) {
		t.Errorf("short Fixed = %v, want INVALID_INPUT", err)
	}
}

func TestTutteWheel(t *testing.T) {
	g := mustGraph(t,
		planar.Edge{From: 0, To: 1}, planar.Edge{From: 1, To: 2}, planar.Edge{From: 2, To: 3}, planar.Edge{From: 3, To: 0},
		planar.Edge{From: 4, To: 0}, planar.Edge{From: 4, To: 1}, planar.Edge{From: 4, To: 2}, planar.Edge{From: 4, To: 3},
	)
	pos, err := Tutte{Outer: []planar.Vertex{0, 1, 2, 3}}.Embed(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}

	approx := cmpopts.EquateApprox(0, 1e-9)
	want := []geom.Point{{X: 0.5, Y: 0}, {X: 0, Y: 0.5}, {X: -0.5, Y: 0}, {X: 0, Y: -0.5}, {X: 0, Y: 0}}
	if diff := cmp.Diff(want, pos, approx); diff != "" {
		t.Errorf("Tutte wheel mismatch (-want +got):\n%s", diff)
	}
}

func TestTuttePlanar(t *testing.T) {
	edges := []planar.Edge{
		{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 0},
		{From: 3, To: 0}, {From: 3, To: 1}, {From: 3, To: 2},
		{From: 3, To: 4}, {From: 4, To: 1}, {From: 4, To: 2},
	}
	g := mustGraph(t, edges...)
	pos, err := Tutte{Outer: []planar.Vertex{0, 1, 2}, Radius: 2}.Embed(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []planar.Vertex{0, 1, 2} {
		if r := math.Hypot(pos[v].X, pos[v].Y); math.Abs(r-2) > 1e-12 {
			t.Errorf("outer vertex %d at radius %v, want 2", v, r)
		}
	}
	for _, v := range []planar.Vertex{3, 4} {
		var mean geom.Point
		for _, u := range g.Neighbors(v) {
			mean.X += pos[u].X
			mean.Y += pos[u].Y
		}
		d := float64(g.Degree(v))
		if math.Abs(mean.X/d-pos[v].X) > 1e-9 || math.Abs(mean.Y/d-pos[v].Y) > 1e-9 {
			t.Errorf("vertex %d at %v is not the mean of its neighbors", v, pos[v])
		}
	}

	l, err := planar.NewLayout(g, pos, planar.Thresholds{MinEdge: 0.1, MaxEdge: 5})
	if err != nil {
		t.Fatal(err)
	}
	if !l.IsPlanar() {
		t.Error("Tutte embedding has crossings")
	}
	cells, err := planar.ExtractCells(l)
	if err != nil {
		t.Fatal(err)
	}
	if want := len(edges) - g.VertexCount() + 1; len(cells) != want {
		t.Errorf("got %d cells, want %d", len(cells), want)
	}
}

func TestTutteErrors(t *testing.T) {
	square := mustGraph(t,
		planar.Edge{From: 0, To: 1}, planar.Edge{From: 1, To: 2}, planar.Edge{From: 2, To: 3}, planar.Edge{From: 3, To: 0},
	)
	withIsolated := planar.NewGraph(5)
	for _, e := range square.Edges() {
		if err := withIsolated.AddEdge(e.From, e.To); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		g     *planar.Graph
		tutte Tutte
	}{
		{"too short", square, Tutte{Outer: []planar.Vertex{0, 1}}},
		{"missing edge", square, Tutte{Outer: []planar.Vertex{0, 2, 1, 3}}},
		{"repeated vertex", square, Tutte{Outer: []planar.Vertex{0, 1, 0}}},
		{"out of range", square, Tutte{Outer: []planar.Vertex{0, 1, 7}}},
		{"negative radius", square, Tutte{Outer: []planar.Vertex{0, 1, 2, 3}, Radius: -1}},
		{"disconnected interior", withIsolated, Tutte{Outer: []planar.Vertex{0, 1, 2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tutte.Embed(context.Background(), tt.g)
			if !vkerr.Is(err, vkerr.ErrCodeInvalidInput) {
				t.Errorf("Embed() = %v, want INVALID_INPUT", err)
			}
		})
	}
}
