package features

import (
	"errors"
	"math"
	"testing"
)

func TestNamesOrder(t *testing.T) {
	t.Parallel()

	got := Names()
	if len(got) != Len {
		t.Fatalf("Names() len = %d, want %d", len(got), Len)
	}
	if got[0] != "Area" || got[4] != "AspectRation" || got[10] != "roundness" || got[15] != "ShapeFactor4" {
		t.Fatalf("unexpected order: %v", got)
	}
	got[0] = "mutated"
	if Names()[0] != "Area" {
		t.Fatalf("Names() must return a copy")
	}
}

func TestFromValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{name: "zeros", values: make([]float64, Len)},
		{name: "negative accepted", values: append([]float64{-12.5}, make([]float64, Len-1)...)},
		{name: "too short", values: make([]float64, Len-1), wantErr: true},
		{name: "too long", values: make([]float64, Len+1), wantErr: true},
		{name: "empty", values: nil, wantErr: true},
		{name: "nan", values: append([]float64{math.NaN()}, make([]float64, Len-1)...), wantErr: true},
		{name: "inf", values: append(make([]float64, Len-1), math.Inf(1)), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := FromValues(tt.values)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromValues() error = %v", err)
			}
			for i, x := range tt.values {
				if v[i] != x {
					t.Fatalf("v[%d] = %v, want %v", i, v[i], x)
				}
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	m := make(map[string]float64, Len)
	for i, n := range Names() {
		m[n] = float64(i)
	}
	v, err := FromMap(m)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	for i := range v {
		if v[i] != float64(i) {
			t.Fatalf("v[%d] = %v, want %d", i, v[i], i)
		}
	}

	delete(m, "Solidity")
	if _, err := FromMap(m); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected missing feature error, got %v", err)
	}

	m["Solidity"] = 1
	m["Colour"] = 3
	if _, err := FromMap(m); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected unknown feature error, got %v", err)
	}
}

func TestLevelMapping(t *testing.T) {
	t.Parallel()

	want := map[Level]float64{Low: 0.3, Medium: 0.6, High: 0.9}
	for _, l := range Levels() {
		got, ok := l.Value()
		if !ok {
			t.Fatalf("%s has no value", l)
		}
		if got != want[l] {
			t.Fatalf("%s = %v, want %v", l, got, want[l])
		}
	}
	if len(Levels()) != len(want) {
		t.Fatalf("Levels() = %v", Levels())
	}
	if _, ok := Level("Extreme").Value(); ok {
		t.Fatalf("unknown level must not map")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Level{"low": Low, " Medium ": Medium, "HIGH": High} {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseLevel("tall"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
