package artifact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/samcharles93/beanclass/internal/features"
)

// ONNXConfig names the exported pipeline and the graph nodes it is bound to.
type ONNXConfig struct {
	ModelPath string
	// SharedLibraryPath overrides the onnxruntime library location.
	SharedLibraryPath string
	InputName         string
	OutputName        string
}

// ONNXPredictor runs an exported classification pipeline whose input is a
// float32 [1,16] tensor and whose label output is an int64 [1] tensor.
type ONNXPredictor struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[int64]
}

// NewONNXPredictor opens the pipeline at cfg.ModelPath. If this call
// initialized the onnxruntime environment and then fails, the environment
// is destroyed again before returning.
func NewONNXPredictor(cfg ONNXConfig) (p *ONNXPredictor, err error) {
	if cfg.InputName == "" {
		cfg.InputName = DefaultInputName
	}
	if cfg.OutputName == "" {
		cfg.OutputName = DefaultOutputName
	}
	if cfg.SharedLibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.SharedLibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
		defer func() {
			if err != nil {
				err = errors.Join(err, ort.DestroyEnvironment())
			}
		}()
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, features.Len))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session for %s: %w", cfg.ModelPath, err)
	}

	return &ONNXPredictor{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

func (p *ONNXPredictor) Predict(ctx context.Context, x features.Vector) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if p.session == nil {
		return 0, fmt.Errorf("ONNX session is closed")
	}

	copy(p.inputTensor.GetData(), x.Float32())
	if err := p.session.Run(); err != nil {
		return 0, fmt.Errorf("inference failed: %w", err)
	}
	out := p.outputTensor.GetData()
	if len(out) == 0 {
		return 0, fmt.Errorf("inference produced no label")
	}
	return out[0], nil
}

// Close releases the session and tensors. The environment itself is
// released by the owning Bundle.
func (p *ONNXPredictor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inputTensor != nil {
		p.inputTensor.Destroy()
		p.inputTensor = nil
	}
	if p.outputTensor != nil {
		p.outputTensor.Destroy()
		p.outputTensor = nil
	}
	if p.session != nil {
		err := p.session.Destroy()
		p.session = nil
		return err
	}
	return nil
}

func destroyEnvironment() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
