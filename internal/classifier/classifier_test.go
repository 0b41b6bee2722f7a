package classifier

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/samcharles93/beanclass/internal/features"
)

type stubPredictor struct {
	classID int64
	err     error
	panics  bool
	calls   atomic.Int64
}

func (p *stubPredictor) Predict(ctx context.Context, x features.Vector) (int64, error) {
	p.calls.Add(1)
	if p.panics {
		panic("tensor shape mismatch")
	}
	if p.err != nil {
		return 0, p.err
	}
	return p.classID, nil
}

// sumPredictor buckets the vector sum into one of three classes.
type sumPredictor struct{}

func (sumPredictor) Predict(ctx context.Context, x features.Vector) (int64, error) {
	var s float64
	for _, v := range x {
		s += v
	}
	switch {
	case s < 100:
		return 0, nil
	case s < 1000:
		return 1, nil
	default:
		return 2, nil
	}
}

type stubDecoder []string

func (d stubDecoder) Decode(classID int64) (string, error) {
	if len(d) == 0 {
		return "", errors.New("label encoder is not fitted")
	}
	if classID < 0 || classID >= int64(len(d)) {
		return "", fmt.Errorf("unseen label %d", classID)
	}
	return d[classID], nil
}

type panicDecoder struct{}

func (panicDecoder) Decode(int64) (string, error) {
	panic("boom")
}

var beanClasses = stubDecoder{"SEKER", "BARBUNYA", "BOMBAY", "CALI", "DERMASON", "HOROZ", "SIRA"}

func TestZeroVectorDecodesSeker(t *testing.T) {
	t.Parallel()

	c := New(&stubPredictor{classID: 0}, beanClasses)
	label, err := c.Predict(context.Background(), features.Vector{})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if label != "SEKER" {
		t.Fatalf("Predict() = %q, want SEKER", label)
	}
}

func TestPredictionFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		predictor Predictor
		decoder   LabelDecoder
	}{
		{name: "predictor error", predictor: &stubPredictor{err: errors.New("X has 15 features")}, decoder: beanClasses},
		{name: "predictor panic", predictor: &stubPredictor{panics: true}, decoder: beanClasses},
		{name: "unseen class", predictor: &stubPredictor{classID: 42}, decoder: beanClasses},
		{name: "negative class", predictor: &stubPredictor{classID: -1}, decoder: beanClasses},
		{name: "unfitted decoder", predictor: &stubPredictor{}, decoder: stubDecoder{}},
		{name: "decoder panic", predictor: &stubPredictor{}, decoder: panicDecoder{}},
		{name: "no artifacts", predictor: nil, decoder: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := New(tt.predictor, tt.decoder)
			res := c.Classify(context.Background(), features.Vector{1, 2, 3})
			if res.OK() {
				t.Fatalf("expected failure, got label %q", res.Label)
			}
			if !errors.Is(res.Err, ErrPredictionFailure) {
				t.Fatalf("expected ErrPredictionFailure, got %v", res.Err)
			}
			if res.Label != "" {
				t.Fatalf("failure must not carry a label, got %q", res.Label)
			}
		})
	}
}

func TestPredictValuesWrongLength(t *testing.T) {
	t.Parallel()

	p := &stubPredictor{}
	c := New(p, beanClasses)
	for _, n := range []int{0, 15, 17} {
		_, err := c.PredictValues(context.Background(), make([]float64, n))
		if !errors.Is(err, features.ErrInvalidInput) {
			t.Fatalf("len %d: expected ErrInvalidInput, got %v", n, err)
		}
	}
	if p.calls.Load() != 0 {
		t.Fatalf("predictor must not run on malformed input")
	}

	label, err := c.PredictValues(context.Background(), make([]float64, features.Len))
	if err != nil || label != "SEKER" {
		t.Fatalf("PredictValues() = %q, %v", label, err)
	}
}

func TestLabelsAlwaysKnown(t *testing.T) {
	t.Parallel()

	c := New(sumPredictor{}, beanClasses)
	known := make(map[string]bool, len(beanClasses))
	for _, l := range beanClasses {
		known[l] = true
	}
	for i := range 50 {
		var x features.Vector
		for j := range x {
			x[j] = float64(i*j) - 20
		}
		res := c.Classify(context.Background(), x)
		if !res.OK() {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		if !known[res.Label] {
			t.Fatalf("label %q not in decoder classes", res.Label)
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	t.Parallel()

	c := New(sumPredictor{}, beanClasses)
	x := features.Vector{28395, 610.291, 208.178, 173.888, 1.197, 0.549, 28715, 190.141, 0.763, 0.988, 0.958, 0.913, 0.007, 0.003, 0.834, 0.998}
	first, err := c.Predict(context.Background(), x)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for range 5 {
		again, err := c.Predict(context.Background(), x)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		if again != first {
			t.Fatalf("Predict() = %q, want %q", again, first)
		}
	}
}

func TestMemoSkipsRepeatRuns(t *testing.T) {
	t.Parallel()

	p := &stubPredictor{classID: 3}
	c := New(p, beanClasses, WithMemo(8))
	x := features.Vector{5}
	for range 3 {
		label, err := c.Predict(context.Background(), x)
		if err != nil || label != "CALI" {
			t.Fatalf("Predict() = %q, %v", label, err)
		}
	}
	if got := p.calls.Load(); got != 1 {
		t.Fatalf("predictor calls = %d, want 1", got)
	}
	if c.MemoLen() != 1 {
		t.Fatalf("MemoLen() = %d, want 1", c.MemoLen())
	}
}

func TestMemoDoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	p := &stubPredictor{classID: 99}
	c := New(p, beanClasses, WithMemo(8))
	for range 2 {
		if _, err := c.Predict(context.Background(), features.Vector{}); err == nil {
			t.Fatalf("expected failure")
		}
	}
	if p.calls.Load() != 2 || c.MemoLen() != 0 {
		t.Fatalf("calls=%d memo=%d", p.calls.Load(), c.MemoLen())
	}
}

func TestPredictCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &stubPredictor{}
	if _, err := New(p, beanClasses).Predict(ctx, features.Vector{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if p.calls.Load() != 0 {
		t.Fatalf("predictor ran on a cancelled context")
	}
}

func TestLayoutsPredictIdentically(t *testing.T) {
	t.Parallel()

	c := New(sumPredictor{}, beanClasses)
	lookup := func(form map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := form[k]
			return v, ok
		}
	}
	numericForm := map[string]string{}
	sliderForm := map[string]string{}
	for _, f := range features.SliderLayout().Fields {
		if f.Widget == features.WidgetRadio {
			numericForm[f.Feature] = "0.9"
			sliderForm[f.Feature] = "High"
			continue
		}
		numericForm[f.Feature] = "12.5"
		sliderForm[f.Feature] = "12.5"
	}
	nx, err := features.NumericLayout().Assemble(lookup(numericForm))
	if err != nil {
		t.Fatalf("numeric: %v", err)
	}
	sx, err := features.SliderLayout().Assemble(lookup(sliderForm))
	if err != nil {
		t.Fatalf("slider: %v", err)
	}
	if nx != sx {
		t.Fatalf("vectors differ: %v vs %v", nx, sx)
	}
	a := c.Classify(context.Background(), nx)
	b := c.Classify(context.Background(), sx)
	if a != b {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}
