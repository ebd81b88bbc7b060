// Package estimator fits the linear-in-logit base model over engineered
// feature differentials.
package estimator

import (
	"fmt"
	"math"

	"github.com/yourusername/diamond-edge/internal/models"
)

const (
	defaultLearningRate = 0.1
	defaultIterations   = 2000
	l2Penalty           = 1e-4
)

// LogisticModel is a logistic classifier: p = sigmoid(w·x + b).
// Features are standardized internally; fitted parameters are immutable
// once Fit returns and the model is safe to share across readers.
type LogisticModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`

	LearningRate float64 `json:"learning_rate"`
	Iterations   int     `json:"iterations"`

	means  []float64
	scales []float64
	fitted bool
}

// NewLogisticModel creates an unfitted model with default optimizer settings
func NewLogisticModel() *LogisticModel {
	return &LogisticModel{
		LearningRate: defaultLearningRate,
		Iterations:   defaultIterations,
	}
}

// Fit estimates weights by full-batch gradient ascent on the L2-penalized
// mean log-likelihood. Fails with ErrInsufficientData unless both outcome
// classes are present. A zero-variance column is tolerated: it is given unit
// scale, its centered values are all zero and its weight stays at zero.
func (m *LogisticModel) Fit(features [][]float64, labels []int) error {
	if len(features) == 0 || len(features) != len(labels) {
		return models.ErrInsufficientData
	}
	if !hasBothClasses(labels) {
		return models.ErrInsufficientData
	}

	cols := len(features[0])
	if cols == 0 {
		return models.ErrNumericDegeneracy
	}
	for i, row := range features {
		if len(row) != cols {
			return fmt.Errorf("feature row %d has %d columns, want %d: %w", i, len(row), cols, models.ErrNumericDegeneracy)
		}
	}

	m.means, m.scales = columnStats(features)
	scaled := m.standardize(features)

	weights := make([]float64, cols)
	bias := 0.0
	n := float64(len(scaled))

	for iter := 0; iter < m.Iterations; iter++ {
		gradW := make([]float64, cols)
		gradB := 0.0
		for i, row := range scaled {
			p := sigmoid(dot(weights, row) + bias)
			residual := float64(labels[i]) - p
			for j, x := range row {
				gradW[j] += residual * x
			}
			gradB += residual
		}
		for j := range weights {
			weights[j] += m.LearningRate * (gradW[j]/n - l2Penalty*weights[j])
		}
		bias += m.LearningRate * gradB / n
	}

	m.Weights = weights
	m.Bias = bias
	m.fitted = true
	return nil
}

// Predict returns one probability per feature row
func (m *LogisticModel) Predict(features [][]float64) ([]float64, error) {
	if !m.IsFitted() {
		return nil, models.ErrNotFitted
	}
	probs := make([]float64, len(features))
	for i, row := range features {
		p, err := m.PredictOne(row)
		if err != nil {
			return nil, err
		}
		probs[i] = p
	}
	return probs, nil
}

// PredictOne returns the win probability for a single feature vector
func (m *LogisticModel) PredictOne(row []float64) (float64, error) {
	if !m.IsFitted() {
		return 0, models.ErrNotFitted
	}
	if len(row) != len(m.Weights) {
		return 0, fmt.Errorf("feature vector has %d columns, want %d: %w", len(row), len(m.Weights), models.ErrNumericDegeneracy)
	}
	z := m.Bias
	for j, x := range row {
		z += m.Weights[j] * (x - m.means[j]) / m.scales[j]
	}
	return sigmoid(z), nil
}

// IsFitted reports whether the model holds fitted parameters
func (m *LogisticModel) IsFitted() bool {
	return m.fitted
}

func (m *LogisticModel) standardize(features [][]float64) [][]float64 {
	scaled := make([][]float64, len(features))
	for i, row := range features {
		out := make([]float64, len(row))
		for j, x := range row {
			out[j] = (x - m.means[j]) / m.scales[j]
		}
		scaled[i] = out
	}
	return scaled
}

func columnStats(features [][]float64) (means []float64, scales []float64) {
	cols := len(features[0])
	n := float64(len(features))
	means = make([]float64, cols)
	scales = make([]float64, cols)

	for _, row := range features {
		for j, x := range row {
			means[j] += x
		}
	}
	for j := range means {
		means[j] /= n
	}

	for _, row := range features {
		for j, x := range row {
			diff := x - means[j]
			scales[j] += diff * diff
		}
	}
	for j := range scales {
		scales[j] = math.Sqrt(scales[j] / n)
		if scales[j] == 0 {
			// Degenerate column: unit scale keeps the weight at zero
			// instead of producing NaNs.
			scales[j] = 1
		}
	}
	return means, scales
}

func hasBothClasses(labels []int) bool {
	seenZero := false
	seenOne := false
	for _, y := range labels {
		if y == 0 {
			seenZero = true
		} else {
			seenOne = true
		}
	}
	return seenZero && seenOne
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
