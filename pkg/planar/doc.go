// Package planar holds the combinatorial and geometric state of a planar
// graph drawing that is being refined into a Van Kampen diagram.
//
// # Overview
//
// A [Graph] is a simple undirected graph over the contiguous vertex range
// [0, N). Neighbors are kept in insertion order so that every algorithm that
// iterates them (face tracing, planarity checks) is deterministic.
//
// A [Layout] binds a Graph to a mutable coordinate per vertex together with
// the acceptable edge-length window ([Thresholds]) and the longest edge of the
// initial drawing, which normalizes several penalties. The longest edge is
// computed once in [NewLayout] and never updated.
//
// # Cells
//
// [ExtractFaces] walks every face of the drawing by the rightmost-turn rule:
// arriving at a vertex, the walk leaves along the neighbor with the smallest
// clockwise angle from the reverse of the incoming edge. Every directed edge
// belongs to exactly one face. Bounded faces are traced counter-clockwise and
// the outer face of each component clockwise, so [ExtractCells] keeps the
// faces with positive signed area.
//
// Cells are computed once from the initial drawing. The optimizer only makes
// local moves that keep the drawing planar, so the face structure is treated
// as fixed while vertices move.
//
// # Crossings
//
// [Layout.EdgeCrossings] counts proper crossings between one edge and every
// non-adjacent edge; [Layout.Crossings] counts crossing pairs over the whole
// drawing. Edges sharing an endpoint are never compared.
//
// # Concurrency
//
// Graph is safe for concurrent reads once built. Layout is not safe for
// concurrent use: the optimizer writes candidate coordinates into it while
// scoring them.
package planar
