// Package penalty scores the geometric quality of a planar drawing.
//
// Each penalty [Kind] is one tagged variant of a closed set. A kind has a
// [Scope] that fixes what it is evaluated against:
//
//   - [ScopeCell] kinds take one cell: [MinEdge], [MaxEdge], [LengthSpread],
//     [Convexity] and [Diameter].
//   - [ScopeEdge] kinds take one edge: [PlanarityEdge].
//   - [ScopeGraph] kinds take the whole drawing: [PlanarityGlobal].
//
// Every penalty is 0 when its criterion holds and rises towards 1 as the
// violation worsens. Values are clamped to [0, 1].
//
// A [Terms] list pairs kinds with weights. It is the only configuration
// surface for shaping the objective; [Defaults] returns the standard mix.
//
//	terms, err := penalty.ParseTerms(map[string]float64{"convexity": 1, "planarity-edge": 1000})
//	v, err := penalty.Convexity.EvalCell(cell, layout)
package penalty
