package classifier

import (
	"errors"
	"fmt"
)

// ErrPredictionFailure marks any failure raised by the predictor or the
// label decoder. The underlying cause is kept only in the message.
var ErrPredictionFailure = errors.New("prediction_failure")

type predictionError struct {
	msg string
}

func (e predictionError) Error() string {
	return e.msg
}

func (e predictionError) Unwrap() error {
	return ErrPredictionFailure
}

func newPredictionError(stage string, cause any) error {
	return predictionError{msg: fmt.Sprintf("%s: %v", stage, cause)}
}
