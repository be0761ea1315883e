package penalty

import (
	"maps"
	"math"
	"slices"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
)

// Term is a penalty kind with its weight in the objective.
type Term struct {
	Kind   Kind
	Weight float64
}

// Terms is a weighted penalty list. Order is preserved so objective values
// sum in a reproducible order.
type Terms []Term

// Defaults returns the standard objective mix. Global planarity is not part
// of it.
func Defaults() Terms {
	return Terms{
		{Kind: LengthSpread, Weight: 2},
		{Kind: MinEdge, Weight: 2},
		{Kind: MaxEdge, Weight: 3},
		{Kind: Diameter, Weight: 2},
		{Kind: Convexity, Weight: 1},
		{Kind: PlanarityEdge, Weight: 1000},
	}
}

// ParseTerms builds a term list from kind names to weights. Terms are ordered
// by kind; zero weights are dropped.
func ParseTerms(weights map[string]float64) (Terms, error) {
	var terms Terms
	for _, name := range slices.Sorted(maps.Keys(weights)) {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if w := weights[name]; w != 0 {
			terms = append(terms, Term{Kind: k, Weight: w})
		}
	}
	slices.SortStableFunc(terms, func(a, b Term) int { return int(a.Kind - b.Kind) })
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	return terms, nil
}

// Validate checks that every kind is known, appears once, and carries a
// finite non-negative weight.
func (ts Terms) Validate() error {
	seen := make(map[Kind]bool, len(ts))
	for _, t := range ts {
		if !t.Kind.Valid() {
			return vkerr.New(vkerr.ErrCodeInvalidConfig, "unknown penalty %s", t.Kind)
		}
		if seen[t.Kind] {
			return vkerr.New(vkerr.ErrCodeInvalidConfig, "penalty %s listed twice", t.Kind)
		}
		seen[t.Kind] = true
		if math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) || t.Weight < 0 {
			return vkerr.New(vkerr.ErrCodeInvalidConfig, "penalty %s has invalid weight %g", t.Kind, t.Weight)
		}
	}
	return nil
}

// Scoped returns the terms whose kind has scope s.
func (ts Terms) Scoped(s Scope) Terms {
	var out Terms
	for _, t := range ts {
		if t.Kind.Scope() == s {
			out = append(out, t)
		}
	}
	return out
}

// Weights returns the terms as kind names to weights.
func (ts Terms) Weights() map[string]float64 {
	out := make(map[string]float64, len(ts))
	for _, t := range ts {
		out[t.Kind.String()] = t.Weight
	}
	return out
}
