package domain

import (
	"context"
	"testing"

	"github.com/geosiss/borehole/geoerr"
)

func selectIntervalFixture(t *testing.T) *IntervalDomain {
	t.Helper()

	dom, err := NewIntervalDomain("assay",
		[]float64{0, 1, 2, 3},
		[]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := dom.AddProperty(NewProperty("grade", []float64{0.5, 2.5, 1.5, 3.5})); err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}
	if err := dom.AddProperty(NewCategoricalProperty("rock", []string{"shale", "sand", "shale", "basalt"})); err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}
	return dom
}

func TestIntervalDomainSelect(t *testing.T) {
	dom := selectIntervalFixture(t)
	ctx := context.Background()

	sub, err := dom.Select(ctx, `grade > 1.0 && rock == "shale"`)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sub.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", sub.Size())
	}
	if sub.FromDepths()[0] != 2 || sub.ToDepths()[0] != 3 {
		t.Errorf("interval = (%g, %g), want (2, 3)",
			sub.FromDepths()[0], sub.ToDepths()[0])
	}
	grade, _ := sub.Property("grade")
	if grade == nil || grade.Values[0] != 1.5 {
		t.Errorf("grade = %+v, want [1.5]", grade)
	}
	if sub.Name() != `assay: select grade > 1.0 && rock == "shale"` {
		t.Errorf("Name() = %q", sub.Name())
	}

	// Depth bounds are available as from_depth and to_depth.
	sub, err = dom.Select(ctx, `from_depth >= 2.0`, WithName("deep"))
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sub.Size() != 2 {
		t.Errorf("Size() = %d, want 2", sub.Size())
	}
	if sub.Name() != "deep" {
		t.Errorf("Name() = %q, want %q", sub.Name(), "deep")
	}

	// No matches is a valid empty result.
	sub, err = dom.Select(ctx, `grade > 100.0`)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sub.Size() != 0 {
		t.Errorf("Size() = %d, want 0", sub.Size())
	}

	// Source untouched.
	if dom.Size() != 4 {
		t.Errorf("source domain mutated: Size() = %d", dom.Size())
	}
}

func TestSamplingDomainSelect(t *testing.T) {
	dom, err := NewSamplingDomain("wireline", []float64{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := dom.AddProperty(NewProperty("gamma", []float64{10, 20, 30, 40})); err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}

	sub, err := dom.Select(context.Background(), `depth >= 1.0 && gamma < 40.0`)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sub.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", sub.Size())
	}
	if sub.Depths()[0] != 1 || sub.Depths()[1] != 2 {
		t.Errorf("Depths() = %v, want [1 2]", sub.Depths())
	}
	gamma, _ := sub.Property("gamma")
	if gamma == nil || gamma.Values[0] != 20 || gamma.Values[1] != 30 {
		t.Errorf("gamma = %+v, want [20 30]", gamma)
	}
}

func TestSelectErrors(t *testing.T) {
	dom := selectIntervalFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		expr string
	}{
		{"syntax error", `grade >`},
		{"non-boolean result", `grade + 1.0`},
		{"unknown variable", `porosity > 1.0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dom.Select(ctx, tt.expr)
			gerr := geoErrWithKind(t, err, geoerr.KindQuery)
			if got := gerr.Context["expression"]; got != tt.expr {
				t.Errorf("Context[expression] = %v, want %q", got, tt.expr)
			}
		})
	}
}

func TestSelectSkipsNonIdentifierProperties(t *testing.T) {
	dom := selectIntervalFixture(t)

	// A property whose name is not a valid identifier cannot be bound as a
	// variable, but it must not break selection on other properties.
	if err := dom.AddProperty(NewProperty("total count", []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}

	sub, err := dom.Select(context.Background(), `grade > 1.0`)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sub.Size() != 3 {
		t.Errorf("Size() = %d, want 3", sub.Size())
	}

	// The awkwardly named property is still carried into the result.
	if _, ok := sub.Property("total count"); !ok {
		t.Error("non-identifier property dropped from selection result")
	}
}
