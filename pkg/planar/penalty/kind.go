package penalty

import (
	"fmt"
	"math"
	"slices"
	"strings"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
	"github.com/matzehuels/vankamp/pkg/planar"
)

// Kind identifies a penalty variant.
type Kind int

const (
	MinEdge Kind = iota + 1
	MaxEdge
	LengthSpread
	Convexity
	Diameter
	PlanarityGlobal
	PlanarityEdge
)

// Scope is what a penalty is evaluated against.
type Scope int

const (
	ScopeCell Scope = iota + 1
	ScopeEdge
	ScopeGraph
)

type (
	// CellFunc scores one cell of a layout.
	CellFunc func(planar.Cell, *planar.Layout) (float64, error)
	// EdgeFunc scores one edge of a layout.
	EdgeFunc func(planar.Edge, *planar.Layout) float64
	// GraphFunc scores a whole layout.
	GraphFunc func(*planar.Layout) float64
)

type variant struct {
	name  string
	scope Scope
	cell  CellFunc
	edge  EdgeFunc
	graph GraphFunc
}

var registry = map[Kind]variant{
	MinEdge:         {name: "min-edge", scope: ScopeCell, cell: minEdge},
	MaxEdge:         {name: "max-edge", scope: ScopeCell, cell: maxEdge},
	LengthSpread:    {name: "length-spread", scope: ScopeCell, cell: lengthSpread},
	Convexity:       {name: "convexity", scope: ScopeCell, cell: convexity},
	Diameter:        {name: "diameter", scope: ScopeCell, cell: diameter},
	PlanarityGlobal: {name: "planarity-global", scope: ScopeGraph, graph: planarityGlobal},
	PlanarityEdge:   {name: "planarity-edge", scope: ScopeEdge, edge: planarityEdge},
}

// Kinds returns every registered kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ParseKind resolves a kind by its name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, v := range registry {
		if v.name == name {
			return k, nil
		}
	}
	return 0, vkerr.New(vkerr.ErrCodeInvalidConfig, "unknown penalty %q (valid: %s)", s, strings.Join(kindNames(), ", "))
}

func kindNames() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// String returns the kind's configuration name.
func (k Kind) String() string {
	if v, ok := registry[k]; ok {
		return v.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	_, ok := registry[k]
	return ok
}

// Scope returns what k is evaluated against, or 0 for unknown kinds.
func (k Kind) Scope() Scope { return registry[k].scope }

// EvalCell scores c. It fails for kinds that are not cell-scoped.
func (k Kind) EvalCell(c planar.Cell, l *planar.Layout) (float64, error) {
	v, ok := registry[k]
	if !ok || v.cell == nil {
		return 0, vkerr.New(vkerr.ErrCodeInternal, "penalty %s is not cell-scoped", k)
	}
	p, err := v.cell(c, l)
	if err != nil {
		return 0, err
	}
	return clamp(p), nil
}

// EvalEdge scores e. Kinds that are not edge-scoped score 0.
func (k Kind) EvalEdge(e planar.Edge, l *planar.Layout) float64 {
	v, ok := registry[k]
	if !ok || v.edge == nil {
		return 0
	}
	return clamp(v.edge(e, l))
}

// EvalGraph scores the whole layout. Kinds that are not graph-scoped score 0.
func (k Kind) EvalGraph(l *planar.Layout) float64 {
	v, ok := registry[k]
	if !ok || v.graph == nil {
		return 0
	}
	return clamp(v.graph(l))
}

func clamp(p float64) float64 {
	if math.IsNaN(p) {
		return p
	}
	return min(max(p, 0), 1)
}
