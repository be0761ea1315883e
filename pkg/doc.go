// Package pkg provides the core libraries for vankamp planar-diagram refinement.
//
// # Overview
//
// Vankamp takes a planar straight-line drawing of a Van Kampen diagram and
// moves its vertices so that the cells become round, evenly sized and convex.
// Every move is checked against the drawing: a move that makes two edges
// cross is rolled back. The pkg directory is organized into four areas:
//
//  1. [geom], [planar] - Geometry, graphs, drawings and cell extraction
//  2. [planar/penalty], [planar/objective], [refine] - Scoring and optimization
//  3. [embed], [graph], [render] - Initial positions, file formats and output
//  4. [pipeline], [cache], [observability] - Orchestration (load → embed → refine → render)
//
// # Architecture
//
// The typical data flow through vankamp:
//
//	Edge list (u v per line)
//	         ↓
//	    [graph] package (parse into a planar.Graph)
//	         ↓
//	    [embed] package (positions file or Tutte embedding)
//	         ↓
//	    [planar] package (layout + cells)
//	         ↓
//	    [refine] package (Nelder-Mead moves gated on planarity)
//	         ↓
//	    SVG/DOT/PNG/PDF/JSON output
//
// # Quick Start
//
// Refine a drawing of a 3x3 grid:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/vankamp/pkg/embed"
//	    "github.com/matzehuels/vankamp/pkg/graph"
//	    "github.com/matzehuels/vankamp/pkg/planar"
//	    "github.com/matzehuels/vankamp/pkg/planar/penalty"
//	    "github.com/matzehuels/vankamp/pkg/refine"
//	    "github.com/matzehuels/vankamp/pkg/render"
//	)
//
//	ctx := context.Background()
//
//	// 1. Read the graph
//	g, _ := graph.ReadEdgeListFile("grid.edges")
//
//	// 2. Place the outer cycle on a polygon and solve for the rest
//	pos, _ := embed.Tutte{Outer: []planar.Vertex{0, 1, 2, 5, 8, 7, 6, 3}}.Embed(ctx, g)
//
//	// 3. Refine
//	l, _ := planar.NewLayout(g, pos, planar.DefaultThresholds())
//	r, _ := refine.New(l, penalty.Defaults(), refine.DefaultOptions())
//	report, _ := r.Run(ctx)
//
//	// 4. Render to SVG
//	_ = render.WriteSVG(os.Stdout, l, r.Cells(), render.DefaultOptions())
//
// # Main Packages
//
// [geom] holds the point type and the segment predicates everything else is
// built on. [planar] owns the graph, the drawing and face tracing; its
// [planar/penalty] subpackage defines the seven penalty kinds and
// [planar/objective] aggregates them over the whole drawing, one vertex or
// one cell. [refine] drives the optimizer.
//
// [pipeline] wires these together behind a single Options struct that can be
// read from TOML or YAML, and caches refined layouts and rendered artifacts
// with [cache].
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/planar/...     # Specific package
//	go test -run Example ./...   # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/geom
// [planar]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/planar
// [planar/penalty]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/planar/penalty
// [planar/objective]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/planar/objective
// [refine]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/refine
// [embed]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/embed
// [graph]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/vankamp/pkg/observability
package pkg
