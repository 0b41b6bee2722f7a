package artifact

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/samcharles93/beanclass/internal/features"
)

func TestONNXPredictorClosed(t *testing.T) {
	t.Parallel()

	p := &ONNXPredictor{}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	_, err := p.Predict(context.Background(), features.Vector{})
	if err == nil || !strings.Contains(err.Error(), "session is closed") {
		t.Fatalf("expected closed session error, got %v", err)
	}
}

func TestONNXPredictorCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&ONNXPredictor{}).Predict(ctx, features.Vector{}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// Needs a real onnxruntime library; set ONNXRUNTIME_SHARED_LIBRARY_PATH to run.
func TestNewONNXPredictorReleasesEnvironmentOnError(t *testing.T) {
	lib := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")
	if lib == "" {
		t.Skip("ONNXRUNTIME_SHARED_LIBRARY_PATH not set")
	}
	if ort.IsInitialized() {
		t.Skip("onnxruntime environment already initialized")
	}

	model := filepath.Join(t.TempDir(), "broken.onnx")
	mustWriteFile(t, model, "not a model")

	p, err := NewONNXPredictor(ONNXConfig{ModelPath: model, SharedLibraryPath: lib})
	if err == nil {
		_ = p.Close()
		t.Fatal("expected error for a malformed pipeline")
	}
	if !strings.Contains(err.Error(), "failed to create ONNX session") {
		t.Fatalf("unexpected error: %v", err)
	}
	if ort.IsInitialized() {
		_ = ort.DestroyEnvironment()
		t.Fatal("environment left initialized after a failed open")
	}
}
