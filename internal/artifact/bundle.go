// Package artifact loads the externally trained pipeline and label encoder
// the classifier runs against. Both are loaded once at start-up and are
// read-only afterwards.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samcharles93/beanclass/internal/features"
)

const (
	DefaultPipelineFile     = "gradient_boosting_pipeline.onnx"
	DefaultLabelEncoderFile = "label_encoder.json"
	DefaultInputName        = "float_input"
	DefaultOutputName       = "label"
)

type Config struct {
	// Dir is joined to relative artifact paths.
	Dir               string
	PipelinePath      string
	LabelEncoderPath  string
	InputName         string
	OutputName        string
	SharedLibraryPath string
}

func (c Config) resolve(path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if c.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.Dir, path)
	}
	return filepath.Clean(path)
}

// Pipeline is what the bundle needs from a loaded predictor.
type Pipeline interface {
	Predict(ctx context.Context, x features.Vector) (int64, error)
	Close() error
}

// openPipeline is swapped out in tests that have no onnxruntime available.
var openPipeline = func(cfg ONNXConfig) (Pipeline, error) {
	return NewONNXPredictor(cfg)
}

// Bundle is the pair of artifacts loaded at start-up.
type Bundle struct {
	Pipeline     Pipeline
	Labels       *LabelEncoder
	PipelinePath string
	LabelsPath   string
}

func Load(cfg Config) (*Bundle, error) {
	pipelinePath := cfg.resolve(cfg.PipelinePath, DefaultPipelineFile)
	labelsPath := cfg.resolve(cfg.LabelEncoderPath, DefaultLabelEncoderFile)

	labels, err := LoadLabelEncoder(labelsPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(pipelinePath); err != nil {
		return nil, fmt.Errorf("pipeline not found: %w", err)
	}
	pipeline, err := openPipeline(ONNXConfig{
		ModelPath:         pipelinePath,
		SharedLibraryPath: cfg.SharedLibraryPath,
		InputName:         cfg.InputName,
		OutputName:        cfg.OutputName,
	})
	if err != nil {
		return nil, err
	}
	return &Bundle{
		Pipeline:     pipeline,
		Labels:       labels,
		PipelinePath: pipelinePath,
		LabelsPath:   labelsPath,
	}, nil
}

func (b *Bundle) Close() error {
	if b == nil || b.Pipeline == nil {
		return nil
	}
	err := b.Pipeline.Close()
	if _, ok := b.Pipeline.(*ONNXPredictor); ok {
		err = errors.Join(err, destroyEnvironment())
	}
	return err
}
