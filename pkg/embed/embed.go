// Package embed produces initial drawings for the optimizer.
//
// The optimizer only refines a drawing; it needs a planar one to start
// from. A [Provider] supplies it: [Fixed] hands over known coordinates, and
// [Tutte] computes a barycentric embedding that is planar for any
// 3-connected planar graph once its outer face is pinned to a convex polygon.
package embed

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// Provider computes one position per vertex of g.
type Provider interface {
	Embed(ctx context.Context, g *planar.Graph) ([]geom.Point, error)
}

// Fixed is a Provider that returns stored positions indexed by vertex.
type Fixed []geom.Point

// Embed returns a copy of the stored positions. It fails with INVALID_INPUT
// when the count does not match the graph.
func (f Fixed) Embed(_ context.Context, g *planar.Graph) ([]geom.Point, error) {
	if len(f) != g.VertexCount() {
		return nil, vkerr.New(vkerr.ErrCodeInvalidInput, "have %d positions for %d vertices", len(f), g.VertexCount())
	}
	out := make([]geom.Point, len(f))
	copy(out, f)
	return out, nil
}

// DefaultRadius is the circumradius of the outer polygon used by Tutte.
const DefaultRadius = 0.5

// Tutte places the Outer cycle on a regular polygon around the origin and
// every other vertex at the mean of its neighbors.
type Tutte struct {
	Outer  []planar.Vertex // Outer face, counter-clockwise
	Radius float64         // Circumradius of the outer polygon; 0 means DefaultRadius
}

// Embed solves the barycentric system for the interior vertices.
//
// It fails with INVALID_INPUT when Outer is not a simple cycle of g or when
// some interior vertex has no path to the outer cycle.
func (t Tutte) Embed(ctx context.Context, g *planar.Graph) ([]geom.Point, error) {
	if err := t.validate(g); err != nil {
		return nil, err
	}
	radius := t.Radius
	if radius == 0 {
		radius = DefaultRadius
	}

	n := g.VertexCount()
	pos := make([]geom.Point, n)
	fixed := make([]bool, n)
	m := len(t.Outer)
	for k, v := range t.Outer {
		a := 2 * math.Pi * float64(k) / float64(m)
		pos[v] = geom.Point{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
		fixed[v] = true
	}

	// Interior vertices get consecutive rows of the system.
	row := make([]int, n)
	var interior []planar.Vertex
	for v := range n {
		if !fixed[v] {
			row[v] = len(interior)
			interior = append(interior, v)
		}
	}
	if len(interior) == 0 {
		return pos, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k := len(interior)
	a := mat.NewDense(k, k, nil)
	b := mat.NewDense(k, 2, nil)
	for i, v := range interior {
		nbrs := g.Neighbors(v)
		a.Set(i, i, float64(len(nbrs)))
		for _, u := range nbrs {
			if fixed[u] {
				b.Set(i, 0, b.At(i, 0)+pos[u].X)
				b.Set(i, 1, b.At(i, 1)+pos[u].Y)
				continue
			}
			a.Set(i, row[u], a.At(i, row[u])-1)
		}
	}

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return nil, vkerr.Wrap(vkerr.ErrCodeInvalidInput, err, "tutte system is singular; every vertex must connect to the outer cycle")
	}
	for i, v := range interior {
		pos[v] = geom.Point{X: x.At(i, 0), Y: x.At(i, 1)}
	}
	return pos, nil
}

func (t Tutte) validate(g *planar.Graph) error {
	if len(t.Outer) < 3 {
		return vkerr.New(vkerr.ErrCodeInvalidInput, "outer cycle needs at least 3 vertices, got %d", len(t.Outer))
	}
	if t.Radius < 0 || math.IsNaN(t.Radius) || math.IsInf(t.Radius, 0) {
		return vkerr.New(vkerr.ErrCodeInvalidInput, "invalid outer radius %g", t.Radius)
	}
	seen := make(map[planar.Vertex]bool, len(t.Outer))
	for i, v := range t.Outer {
		if v < 0 || v >= g.VertexCount() {
			return vkerr.New(vkerr.ErrCodeInvalidInput, "outer vertex %d out of range", v)
		}
		if seen[v] {
			return vkerr.New(vkerr.ErrCodeInvalidInput, "outer vertex %d repeated", v)
		}
		seen[v] = true
		next := t.Outer[(i+1)%len(t.Outer)]
		if !g.HasEdge(v, next) {
			return vkerr.New(vkerr.ErrCodeInvalidInput, "outer cycle uses missing edge (%d, %d)", v, next)
		}
	}
	return nil
}
