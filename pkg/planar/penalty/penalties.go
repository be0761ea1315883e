package penalty

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/geom"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// edgeRange returns the shortest and longest boundary edge of c.
func edgeRange(c planar.Cell, l *planar.Layout) (shortest, longest float64) {
	shortest = math.Inf(1)
	for _, e := range c {
		d := l.EdgeLength(e)
		shortest = min(shortest, d)
		longest = max(longest, d)
	}
	return shortest, longest
}

func minEdge(c planar.Cell, l *planar.Layout) (float64, error) {
	if len(c) == 0 {
		return 0, nil
	}
	shortest, _ := edgeRange(c, l)
	th := l.Thresholds().MinEdge
	return max(0, (th-shortest)/th), nil
}

func maxEdge(c planar.Cell, l *planar.Layout) (float64, error) {
	if len(c) == 0 {
		return 0, nil
	}
	_, longest := edgeRange(c, l)
	return max(0, (longest-l.Thresholds().MaxEdge)/l.MaxObservedEdgeLength()), nil
}

func lengthSpread(c planar.Cell, l *planar.Layout) (float64, error) {
	if len(c) == 0 {
		return 0, nil
	}
	shortest, longest := edgeRange(c, l)
	return (longest - shortest) / l.MaxObservedEdgeLength(), nil
}

// convexity counts left and right turns between consecutive boundary edges.
// A convex boundary turns one way only.
func convexity(c planar.Cell, l *planar.Layout) (float64, error) {
	if len(c) == 0 {
		return 0, nil
	}
	var left, right int
	for i, e := range c {
		next := c[(i+1)%len(c)]
		u := r2.Sub(l.Position(e.To), l.Position(e.From))
		v := r2.Sub(l.Position(next.To), l.Position(next.From))
		if geom.Cross(u, v) < 0 {
			right++
		} else {
			left++
		}
	}
	return 2 * float64(min(left, right)) / float64(len(c)), nil
}

// diameter compares the nearest and farthest boundary vertex from the
// cell's centroid.
func diameter(c planar.Cell, l *planar.Layout) (float64, error) {
	if len(c) == 0 {
		return 0, nil
	}
	pts := c.Points(l)
	center := geom.Centroid(pts)
	nearest, farthest := math.Inf(1), 0.0
	for _, p := range pts {
		d := geom.SegmentLength(center, p)
		nearest = min(nearest, d)
		farthest = max(farthest, d)
	}
	if farthest == 0 {
		return 0, vkerr.New(vkerr.ErrCodeDegenerateGeometry, "all vertices of cell %v coincide", c)
	}
	return 1 - nearest/farthest, nil
}

// planarityGlobal counts ordered crossing pairs, so each crossing weighs twice,
// over |E|^2.
func planarityGlobal(l *planar.Layout) float64 {
	n := float64(l.Graph().EdgeCount())
	return float64(2*l.Crossings()) / (n * n)
}

func planarityEdge(e planar.Edge, l *planar.Layout) float64 {
	return float64(l.EdgeCrossings(e)) / float64(l.Graph().EdgeCount())
}
