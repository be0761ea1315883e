package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in the plane.
type Point = r2.Vec

// SegmentLength returns the Euclidean distance between a and b.
func SegmentLength(a, b Point) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Orientation reports whether a, b, c are in counter-clockwise order.
// Collinear points are not counter-clockwise.
func Orientation(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsIntersect reports whether segment ab properly crosses segment cd.
//
// The test is symmetric under swapping both segments' endpoints:
// SegmentsIntersect(a, b, c, d) == SegmentsIntersect(b, a, d, c).
func SegmentsIntersect(a, b, c, d Point) bool {
	return Orientation(a, c, d) != Orientation(b, c, d) &&
		Orientation(a, b, c) != Orientation(a, b, d)
}

// Cross returns the z component of the cross product of u and v.
func Cross(u, v Point) float64 {
	return r2.Cross(u, v)
}

// Centroid returns the arithmetic mean of pts.
// It returns the origin for an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range pts {
		sum = r2.Add(sum, p)
	}
	return r2.Scale(1/float64(len(pts)), sum)
}

// SignedArea returns the shoelace area of the closed polygon pts.
// Counter-clockwise polygons have positive area.
func SignedArea(pts []Point) float64 {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	return area / 2
}

// Angle returns the direction of v in radians, in (-π, π].
func Angle(v Point) float64 {
	return math.Atan2(v.Y, v.X)
}

// ClockwiseAngle returns the clockwise rotation in [0, 2π) that takes
// direction from onto direction to.
func ClockwiseAngle(from, to Point) float64 {
	a := math.Mod(Angle(from)-Angle(to), 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		return 0
	}
	return a
}

// IsFinite reports whether both coordinates of p are finite.
func IsFinite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
