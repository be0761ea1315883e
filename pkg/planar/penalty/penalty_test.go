package penalty

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// polygon builds the cycle 0 -> 1 -> ... -> n-1 -> 0 through pts and returns
// the layout together with that cycle as a cell.
func polygon(t *testing.T, th planar.Thresholds, pts ...geom.Point) (*planar.Layout, planar.Cell) {
	t.Helper()
	var cell planar.Cell
	for i := range pts {
		cell = append(cell, planar.Edge{From: i, To: (i + 1) % len(pts)})
	}
	g, err := planar.FromEdges(cell)
	if err != nil {
		t.Fatal(err)
	}
	l, err := planar.NewLayout(g, pts, th)
	if err != nil {
		t.Fatal(err)
	}
	return l, cell
}

func unitSquare() []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func TestCellPenalties(t *testing.T) {
	rect := []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}}
	dart := []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 2}}
	triangle := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	tests := []struct {
		name string
		kind Kind
		th   planar.Thresholds
		pts  []geom.Point
		want float64
	}{
		{"square min-edge inside window", MinEdge, planar.Thresholds{MinEdge: 0.5, MaxEdge: 2}, unitSquare(), 0},
		{"square max-edge inside window", MaxEdge, planar.Thresholds{MinEdge: 0.5, MaxEdge: 2}, unitSquare(), 0},
		{"square spread", LengthSpread, planar.DefaultThresholds(), unitSquare(), 0},
		{"square convexity", Convexity, planar.DefaultThresholds(), unitSquare(), 0},
		{"square diameter", Diameter, planar.DefaultThresholds(), unitSquare(), 0},
		{"square min-edge too short", MinEdge, planar.Thresholds{MinEdge: 2, MaxEdge: 3}, unitSquare(), 0.5},
		{"rectangle max-edge", MaxEdge, planar.Thresholds{MinEdge: 0.5, MaxEdge: 1.5}, rect, 0.25},
		{"rectangle spread", LengthSpread, planar.DefaultThresholds(), rect, 0.5},
		{"rectangle diameter", Diameter, planar.DefaultThresholds(), rect, 0},
		{"dart convexity", Convexity, planar.DefaultThresholds(), dart, 0.4},
		{"triangle diameter", Diameter, planar.DefaultThresholds(), triangle, 1 - math.Sqrt(2)/math.Sqrt(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, cell := polygon(t, tt.th, tt.pts...)
			got, err := tt.kind.EvalCell(cell, l)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%s = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestSquareScenarioEdgePenalties(t *testing.T) {
	// Side 0.3 sits inside the default [0.1, 0.5] window.
	s := 0.3
	l, _ := polygon(t, planar.DefaultThresholds(),
		geom.Point{X: 0, Y: 0}, geom.Point{X: s, Y: 0}, geom.Point{X: s, Y: s}, geom.Point{X: 0, Y: s})
	cells, err := planar.ExtractCells(l)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 1 || cells[0].Len() != 4 {
		t.Fatalf("ExtractCells() = %v, want one cell of length 4", cells)
	}
	for _, k := range []Kind{MinEdge, MaxEdge, LengthSpread} {
		got, err := k.EvalCell(cells[0], l)
		if err != nil {
			t.Fatal(err)
		}
		if got != 0 {
			t.Errorf("%s = %v, want 0", k, got)
		}
	}
}

func TestMaxEdgeClamped(t *testing.T) {
	l, cell := polygon(t, planar.Thresholds{MinEdge: 0.1, MaxEdge: 0.5}, unitSquare()...)
	// Stretch one edge far beyond the initial longest edge.
	l.SetPosition(1, geom.Point{X: 10, Y: 0})
	got, err := MaxEdge.EvalCell(cell, l)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("MaxEdge = %v, want clamp to 1", got)
	}
}

func TestDiameterDegenerate(t *testing.T) {
	l, cell := polygon(t, planar.DefaultThresholds(), unitSquare()...)
	for v := range 4 {
		l.SetPosition(v, geom.Point{X: 3, Y: 3})
	}
	_, err := Diameter.EvalCell(cell, l)
	if !vkerr.Is(err, vkerr.ErrCodeDegenerateGeometry) {
		t.Errorf("Diameter on collapsed cell = %v, want DEGENERATE_GEOMETRY", err)
	}
}

func TestPlanarityPenalties(t *testing.T) {
	g, err := planar.FromEdges([]planar.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}, {From: 0, To: 2}, {From: 1, To: 3}})
	if err != nil {
		t.Fatal(err)
	}
	l, err := planar.NewLayout(g, unitSquare(), planar.DefaultThresholds())
	if err != nil {
		t.Fatal(err)
	}

	if got := PlanarityEdge.EvalEdge(planar.Edge{From: 0, To: 2}, l); got != 1.0/6 {
		t.Errorf("PlanarityEdge(0-2) = %v, want 1/6", got)
	}
	if got := PlanarityEdge.EvalEdge(planar.Edge{From: 0, To: 1}, l); got != 0 {
		t.Errorf("PlanarityEdge(0-1) = %v, want 0", got)
	}
	// One crossing counted as (0-2, 1-3) and (1-3, 0-2).
	if got := PlanarityGlobal.EvalGraph(l); got != 2.0/36 {
		t.Errorf("PlanarityGlobal = %v, want 2/36", got)
	}
}

func TestScopeMismatch(t *testing.T) {
	l, cell := polygon(t, planar.DefaultThresholds(), unitSquare()...)
	if _, err := PlanarityEdge.EvalCell(cell, l); err == nil {
		t.Error("EvalCell on an edge-scoped kind should fail")
	}
	if got := Convexity.EvalEdge(planar.Edge{From: 0, To: 1}, l); got != 0 {
		t.Errorf("EvalEdge on a cell-scoped kind = %v, want 0", got)
	}
	if got := Convexity.EvalGraph(l); got != 0 {
		t.Errorf("EvalGraph on a cell-scoped kind = %v, want 0", got)
	}
}

func TestCellPenaltiesInRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-1, 1)
	properties.Property("cell penalties stay in [0, 1]", prop.ForAll(
		func(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
			pts := []geom.Point{{X: ax, Y: ay}, {X: bx, Y: by}, {X: cx, Y: cy}, {X: dx, Y: dy}}
			g, _ := planar.FromEdges([]planar.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}})
			l, err := planar.NewLayout(g, pts, planar.Thresholds{MinEdge: 0.2, MaxEdge: 0.8})
			if err != nil {
				return true
			}
			cell := planar.Cell{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}}
			for _, k := range Kinds() {
				if k.Scope() != ScopeCell {
					continue
				}
				p, err := k.EvalCell(cell, l)
				if err != nil {
					continue
				}
				if p < 0 || p > 1 {
					return false
				}
			}
			return true
		},
		coord, coord, coord, coord, coord, coord, coord, coord,
	))

	properties.Property("edge planarity stays in [0, 1]", prop.ForAll(
		func(ax, ay, bx, by float64) bool {
			g, _ := planar.FromEdges([]planar.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}, {From: 0, To: 2}})
			pts := append(unitSquare()[:2:2], geom.Point{X: ax, Y: ay}, geom.Point{X: bx, Y: by})
			l, err := planar.NewLayout(g, pts, planar.DefaultThresholds())
			if err != nil {
				return true
			}
			for _, e := range g.Edges() {
				if p := PlanarityEdge.EvalEdge(e, l); p < 0 || p > 1 {
					return false
				}
			}
			p := PlanarityGlobal.EvalGraph(l)
			return p >= 0 && p <= 1
		},
		coord, coord, coord, coord,
	))

	properties.TestingRun(t)
}
