package penalty

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	vkerr "github.com/matzehuels/vankamp/pkg/errors"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Errorf("ParseKind(%q): %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v", k, got)
		}
	}
	if got, _ := ParseKind(" Convexity "); got != Convexity {
		t.Errorf("ParseKind should trim and ignore case, got %v", got)
	}
	if _, err := ParseKind("curvature"); !vkerr.Is(err, vkerr.ErrCodeInvalidConfig) {
		t.Errorf("ParseKind(curvature) = %v, want INVALID_CONFIG", err)
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("String() of unknown kind = %q", got)
	}
}

func TestParseTerms(t *testing.T) {
	got, err := ParseTerms(map[string]float64{
		"planarity-edge": 1000,
		"convexity":      1,
		"diameter":       0,
		"min-edge":       2,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Terms{
		{Kind: MinEdge, Weight: 2},
		{Kind: Convexity, Weight: 1},
		{Kind: PlanarityEdge, Weight: 1000},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseTerms mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseTerms(map[string]float64{"convexity": -1}); err == nil {
		t.Error("negative weight should fail")
	}
	if _, err := ParseTerms(map[string]float64{"bogus": 1}); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestTermsValidate(t *testing.T) {
	tests := []struct {
		name    string
		terms   Terms
		wantErr bool
	}{
		{"defaults", Defaults(), false},
		{"empty", nil, false},
		{"unknown kind", Terms{{Kind: 42, Weight: 1}}, true},
		{"duplicate", Terms{{Kind: MinEdge, Weight: 1}, {Kind: MinEdge, Weight: 2}}, true},
		{"negative", Terms{{Kind: MinEdge, Weight: -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.terms.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTermsScoped(t *testing.T) {
	d := Defaults()
	if got := len(d.Scoped(ScopeCell)); got != 5 {
		t.Errorf("cell terms = %d, want 5", got)
	}
	if diff := cmp.Diff(Terms{{Kind: PlanarityEdge, Weight: 1000}}, d.Scoped(ScopeEdge)); diff != "" {
		t.Errorf("edge terms mismatch (-want +got):\n%s", diff)
	}
	if got := d.Scoped(ScopeGraph); len(got) != 0 {
		t.Errorf("graph terms = %v, want none", got)
	}
	w := d.Weights()
	if w["max-edge"] != 3 || w["planarity-edge"] != 1000 {
		t.Errorf("Weights() = %v", w)
	}
}
