package planar

import (
	"testing"

	"github.com/matzehuels/vankamp/pkg/geom"
)

func TestCrossings(t *testing.T) {
	t.Run("square is planar", func(t *testing.T) {
		l := square(t)
		if got := l.Crossings(); got != 0 {
			t.Errorf("Crossings() = %d, want 0", got)
		}
		if !l.IsPlanar() {
			t.Error("IsPlanar() = false")
		}
	})

	t.Run("both diagonals cross once", func(t *testing.T) {
		l := square(t, Edge{0, 2}, Edge{1, 3})
		if got := l.Crossings(); got != 1 {
			t.Errorf("Crossings() = %d, want 1", got)
		}
		if got := l.EdgeCrossings(Edge{0, 2}); got != 1 {
			t.Errorf("EdgeCrossings(0-2) = %d, want 1", got)
		}
		if got := l.EdgeCrossings(Edge{0, 1}); got != 0 {
			t.Errorf("EdgeCrossings(0-1) = %d, want 0", got)
		}
		if got := l.VertexCrossings(0); got != 1 {
			t.Errorf("VertexCrossings(0) = %d, want 1", got)
		}
	})

	t.Run("moving a vertex across an edge", func(t *testing.T) {
		l := square(t, Edge{0, 2})
		if l.VertexCrossings(3) != 0 {
			t.Fatal("expected no crossings before the move")
		}
		// Vertex 3 jumps past the diagonal; edge 3-0 now crosses 1-2.
		l.SetPosition(3, geom.Point{X: 2, Y: 0.5})
		if l.VertexCrossings(3) == 0 {
			t.Error("expected crossings after the move")
		}
		if l.IsPlanar() {
			t.Error("IsPlanar() = true after the move")
		}
	})
}
