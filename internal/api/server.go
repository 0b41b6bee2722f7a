package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/beanclass/internal/classifier"
	"github.com/samcharles93/beanclass/internal/features"
	"github.com/samcharles93/beanclass/internal/logger"
)

// Server exposes the classifier over HTML forms and a JSON API.
type Server struct {
	classifier *classifier.Classifier
	classes    []string
	log        logger.Logger
	clock      func() time.Time
}

func NewServer(c *classifier.Classifier, classes []string, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		classifier: c,
		classes:    classes,
		log:        log,
		clock:      time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	// HTML surfaces
	e.GET("/", s.handleNumericForm)
	e.GET("/sliders", s.handleSliderForm)
	e.POST("/predict", s.handleFormPredict)

	// JSON API
	e.POST("/v1/predict", s.handlePredict)
	e.GET("/v1/features", s.handleFeatures)
	e.GET("/v1/classes", s.handleClasses)

	e.GET("/healthz", func(c *echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (s *Server) handlePredict(c *echo.Context) error {
	id := newPredictionID()
	if s.classifier == nil {
		return writeError(c, http.StatusInternalServerError, errTypeServer, id, "classifier not configured")
	}
	req, err := decodeJSON[PredictRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, id, err.Error())
	}
	x, err := vectorFromRequest(req)
	if err != nil {
		return writeBadRequest(c, id, err.Error())
	}

	label, err := s.classifier.Predict(c.Request().Context(), x)
	if err != nil {
		s.log.Warn("prediction failed", "id", id, "surface", "api", "error", err)
		if errors.Is(err, classifier.ErrPredictionFailure) {
			return writeError(c, http.StatusUnprocessableEntity, errTypePrediction, id, fmt.Sprintf("Prediction error: %v", err))
		}
		return writeError(c, http.StatusInternalServerError, errTypeServer, id, err.Error())
	}
	s.log.Info("prediction", "id", id, "surface", "api", "label", label)

	return c.JSON(http.StatusOK, PredictResponse{
		ID:       id,
		Object:   "prediction",
		Created:  s.clock().Unix(),
		Label:    label,
		Features: x.Map(),
	})
}

func vectorFromRequest(req PredictRequest) (features.Vector, error) {
	switch {
	case req.Features != nil && req.Values != nil:
		return features.Vector{}, errors.New("features and values are mutually exclusive")
	case req.Features != nil:
		return features.FromMap(req.Features)
	case req.Values != nil:
		return features.FromValues(req.Values)
	default:
		return features.Vector{}, errors.New("features or values is required")
	}
}

func (s *Server) handleFeatures(c *echo.Context) error {
	levels := make(map[string]float64, len(features.Levels()))
	for _, l := range features.Levels() {
		levels[string(l)], _ = l.Value()
	}
	return c.JSON(http.StatusOK, FeaturesResponse{
		Object:  "features",
		Names:   features.Names(),
		Levels:  levels,
		Layouts: []features.Layout{features.NumericLayout(), features.SliderLayout()},
	})
}

func (s *Server) handleClasses(c *echo.Context) error {
	classes := s.classes
	if classes == nil {
		classes = []string{}
	}
	return c.JSON(http.StatusOK, ClassesResponse{Object: "list", Classes: classes})
}
