package api

import "github.com/samcharles93/beanclass/internal/features"

// PredictRequest carries the sixteen measurements either by name or as an
// ordered list. Exactly one of the two must be set.
type PredictRequest struct {
	Features map[string]float64 `json:"features,omitempty"`
	Values   []float64          `json:"values,omitempty"`
}

type PredictResponse struct {
	ID       string             `json:"id"`
	Object   string             `json:"object"`
	Created  int64              `json:"created"`
	Label    string             `json:"label"`
	Features map[string]float64 `json:"features"`
}

type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
}

type FeaturesResponse struct {
	Object  string             `json:"object"`
	Names   []string           `json:"names"`
	Levels  map[string]float64 `json:"levels"`
	Layouts []features.Layout  `json:"layouts"`
}

type ClassesResponse struct {
	Object  string   `json:"object"`
	Classes []string `json:"classes"`
}
