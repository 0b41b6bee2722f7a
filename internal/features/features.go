// Package features defines the ordered set of bean morphology measurements
// the classifier was trained on and assembles them into model input vectors.
package features

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Len is the number of features the pipeline expects.
const Len = 16

// The column names are spelled exactly as in the training data,
// including "AspectRation" and the lower-case "roundness".
var names = [Len]string{
	"Area",
	"Perimeter",
	"MajorAxisLength",
	"MinorAxisLength",
	"AspectRation",
	"Eccentricity",
	"ConvexArea",
	"EquivDiameter",
	"Extent",
	"Solidity",
	"roundness",
	"Compactness",
	"ShapeFactor1",
	"ShapeFactor2",
	"ShapeFactor3",
	"ShapeFactor4",
}

var ErrInvalidInput = errors.New("invalid_input")

type invalidInputError struct {
	msg string
}

func (e invalidInputError) Error() string {
	return e.msg
}

func (e invalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func invalidInput(format string, args ...any) error {
	return invalidInputError{msg: fmt.Sprintf(format, args...)}
}

// Vector holds one value per feature in training order.
type Vector [Len]float64

// Names returns the feature names in training order.
func Names() []string {
	out := make([]string, Len)
	copy(out, names[:])
	return out
}

// Index returns the position of name in the vector, or -1.
func Index(name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// FromValues builds a Vector from values already in training order.
func FromValues(values []float64) (Vector, error) {
	var v Vector
	if len(values) != Len {
		return v, invalidInput("expected %d feature values, got %d", Len, len(values))
	}
	for i, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return v, invalidInput("%s: value must be finite", names[i])
		}
		v[i] = x
	}
	return v, nil
}

// FromMap builds a Vector from values keyed by feature name. Every feature
// must be present and no other keys are allowed.
func FromMap(values map[string]float64) (Vector, error) {
	var v Vector
	var unknown []string
	for k := range values {
		if Index(k) < 0 {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return v, invalidInput("unknown features: %s", strings.Join(unknown, ", "))
	}
	ordered := make([]float64, Len)
	for i, n := range names {
		x, ok := values[n]
		if !ok {
			return v, invalidInput("missing feature %q", n)
		}
		ordered[i] = x
	}
	return FromValues(ordered)
}

// Slice returns the vector as a fresh slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Len)
	copy(out, v[:])
	return out
}

// Float32 returns the vector converted for float32 model inputs.
func (v Vector) Float32() []float32 {
	out := make([]float32, Len)
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

// Map returns the vector keyed by feature name.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, Len)
	for i, n := range names {
		out[n] = v[i]
	}
	return out
}
