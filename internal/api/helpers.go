package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const (
	errTypeInvalidRequest = "invalid_request_error"
	errTypePrediction     = "prediction_error"
	errTypeServer         = "server_error"
)

func writeBadRequest(c *echo.Context, id, msg string) error {
	return writeError(c, http.StatusBadRequest, errTypeInvalidRequest, id, msg)
}

func writeError(c *echo.Context, status int, errType, id, msg string) error {
	return c.JSON(status, map[string]any{
		"error": APIError{
			Message: msg,
			Type:    errType,
			ID:      id,
		},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, errors.New("request body is empty")
		}
		return out, err
	}
	return out, nil
}

func newPredictionID() string {
	return "pred_" + uuid.NewString()
}
