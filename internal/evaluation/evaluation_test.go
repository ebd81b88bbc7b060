package evaluation

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/diamond-edge/internal/models"
)

func TestEvaluatePerfectPredictions(t *testing.T) {
	probs := []float64{1.0, 0.0, 1.0, 0.0}
	labels := []int{1, 0, 1, 0}

	m, err := Evaluate(models.StageBase, probs, labels)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.BrierScore != 0 {
		t.Errorf("expected Brier score 0, got %v", m.BrierScore)
	}
	if m.Accuracy != 1 {
		t.Errorf("expected accuracy 1, got %v", m.Accuracy)
	}
	if math.IsInf(m.LogLoss, 0) || math.IsNaN(m.LogLoss) {
		t.Errorf("expected finite log loss, got %v", m.LogLoss)
	}
}

func TestEvaluateUninformedPredictions(t *testing.T) {
	probs := []float64{0.5, 0.5, 0.5, 0.5}
	labels := []int{1, 0, 1, 0}

	m, err := Evaluate(models.StageBase, probs, labels)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if math.Abs(m.BrierScore-0.25) > 1e-9 {
		t.Errorf("expected Brier score 0.25, got %v", m.BrierScore)
	}
	if math.Abs(m.LogLoss-math.Ln2) > 1e-9 {
		t.Errorf("expected log loss ln(2), got %v", m.LogLoss)
	}
}

// Exactly 0.5 predicts the negative class, so an all-0.5 column scores
// the base rate of zeros.
func TestEvaluateTieBreaksToNegativeClass(t *testing.T) {
	probs := []float64{0.5, 0.5, 0.5, 0.5}
	labels := []int{1, 0, 0, 0}

	m, err := Evaluate(models.StageBase, probs, labels)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if math.Abs(m.Accuracy-0.75) > 1e-9 {
		t.Errorf("expected accuracy 0.75, got %v", m.Accuracy)
	}
}

func TestEvaluateConfidentMissStaysFinite(t *testing.T) {
	probs := []float64{0.0, 1.0}
	labels := []int{1, 0}

	m, err := Evaluate(models.StageBase, probs, labels)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if math.IsInf(m.LogLoss, 0) || math.IsNaN(m.LogLoss) {
		t.Fatalf("expected finite log loss, got %v", m.LogLoss)
	}
	if m.LogLoss < 10 {
		t.Errorf("expected large penalty for confident misses, got %v", m.LogLoss)
	}
}

func TestEvaluateEmptyInput(t *testing.T) {
	_, err := Evaluate(models.StageBase, nil, nil)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	_, err := Evaluate(models.StageBase, []float64{0.5}, []int{1, 0})
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	probs := []float64{0.7, 0.3, 0.6, 0.2}
	labels := []int{1, 0, 0, 1}

	first, err := Evaluate(models.StageCalibrated, probs, labels)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := Evaluate(models.StageCalibrated, probs, labels)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first != second {
		t.Errorf("expected identical metrics, got %+v vs %+v", first, second)
	}
}
