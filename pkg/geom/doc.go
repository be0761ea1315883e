// Package geom provides the planar geometry primitives used by the layout
// optimizer: segment length, the counter-clockwise orientation test, and the
// orientation-based segment intersection test.
//
// Points are [gonum.org/v1/gonum/spatial/r2.Vec] values. All functions are
// pure and safe for concurrent use.
//
// # Precision
//
// [Orientation] compares the 2D cross product against zero exactly, with no
// epsilon. Collinear triples are reported as not counter-clockwise, so
// [SegmentsIntersect] is an orientation-based proper-crossing test. Collinear
// overlaps are not detected, and segments that share an endpoint can be
// reported as crossing, so callers skip adjacent segments themselves. This is
// a known limitation of the orientation test and callers must not rely on it
// to detect overlaps.
package geom
