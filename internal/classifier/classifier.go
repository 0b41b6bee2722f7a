// Package classifier turns a bean feature vector into a variety name by
// running a pretrained predictor and decoding its class id.
package classifier

import (
	"context"

	"github.com/samcharles93/beanclass/internal/features"
)

// Predictor maps a feature vector to an encoded class id.
type Predictor interface {
	Predict(ctx context.Context, x features.Vector) (int64, error)
}

// LabelDecoder maps an encoded class id back to its label.
type LabelDecoder interface {
	Decode(classID int64) (string, error)
}

// Result is the display form of a single prediction.
type Result struct {
	Label string
	Err   error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Classifier holds the read-only artifacts shared by every request.
type Classifier struct {
	predictor Predictor
	decoder   LabelDecoder
	memo      *memo
}

type Option func(*Classifier)

// WithMemo remembers the labels of up to size distinct vectors. Predictions
// are deterministic for a loaded pipeline, so a hit returns the same label a
// fresh run would. size <= 0 disables it.
func WithMemo(size int) Option {
	return func(c *Classifier) {
		if size > 0 {
			c.memo = newMemo(size)
		}
	}
}

func New(predictor Predictor, decoder LabelDecoder, opts ...Option) *Classifier {
	c := &Classifier{
		predictor: predictor,
		decoder:   decoder,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predict runs the predictor and decoder on x. Every failure, including a
// panic inside either artifact, is returned as ErrPredictionFailure.
func (c *Classifier) Predict(ctx context.Context, x features.Vector) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.predictor == nil || c.decoder == nil {
		return "", newPredictionError("classifier", "artifacts not loaded")
	}
	if label, ok := c.memo.get(x); ok {
		return label, nil
	}

	classID, err := c.runPredictor(ctx, x)
	if err != nil {
		return "", err
	}
	label, err := c.runDecoder(classID)
	if err != nil {
		return "", err
	}
	c.memo.add(x, label)
	return label, nil
}

// PredictValues assembles values in training order and predicts. A vector
// of the wrong length is rejected before the predictor runs.
func (c *Classifier) PredictValues(ctx context.Context, values []float64) (string, error) {
	x, err := features.FromValues(values)
	if err != nil {
		return "", err
	}
	return c.Predict(ctx, x)
}

// Classify is Predict folded into a Result.
func (c *Classifier) Classify(ctx context.Context, x features.Vector) Result {
	label, err := c.Predict(ctx, x)
	return Result{Label: label, Err: err}
}

func (c *Classifier) runPredictor(ctx context.Context, x features.Vector) (classID int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPredictionError("predict", r)
		}
	}()
	classID, err = c.predictor.Predict(ctx, x)
	if err != nil {
		return 0, newPredictionError("predict", err)
	}
	return classID, nil
}

func (c *Classifier) runDecoder(classID int64) (label string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPredictionError("decode", r)
		}
	}()
	label, err = c.decoder.Decode(classID)
	if err != nil {
		return "", newPredictionError("decode", err)
	}
	return label, nil
}
