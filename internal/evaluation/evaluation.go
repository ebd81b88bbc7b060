// Package evaluation scores probability columns against realized outcomes.
package evaluation

import (
	"math"

	"github.com/yourusername/diamond-edge/internal/models"
)

// LogLossEpsilon bounds probabilities away from 0 and 1 before taking
// logarithms so a confident miss yields a large finite loss, never +Inf.
const LogLossEpsilon = 1e-15

// StageMetrics is an immutable metric triple for one pipeline stage
type StageMetrics struct {
	Stage      models.Stage `json:"stage"`
	BrierScore float64      `json:"brier_score"`
	LogLoss    float64      `json:"log_loss"`
	Accuracy   float64      `json:"accuracy"`
}

// Evaluate computes Brier score, log-loss and accuracy for a probability
// column against ground truth. Pure: inputs are never mutated, and repeated
// calls on the same inputs yield identical metrics.
func Evaluate(stage models.Stage, probabilities []float64, labels []int) (StageMetrics, error) {
	if len(probabilities) == 0 || len(probabilities) != len(labels) {
		return StageMetrics{}, models.ErrInsufficientData
	}

	n := float64(len(probabilities))
	brier := 0.0
	logLoss := 0.0
	correct := 0

	for i, p := range probabilities {
		y := float64(labels[i])

		diff := p - y
		brier += diff * diff

		clamped := clampProbability(p)
		logLoss += -(y*math.Log(clamped) + (1.0-y)*math.Log(1.0-clamped))

		// A probability of exactly 0.5 resolves to the negative class.
		predicted := 0
		if p > 0.5 {
			predicted = 1
		}
		if predicted == labels[i] {
			correct++
		}
	}

	return StageMetrics{
		Stage:      stage,
		BrierScore: brier / n,
		LogLoss:    logLoss / n,
		Accuracy:   float64(correct) / n,
	}, nil
}

func clampProbability(p float64) float64 {
	if p < LogLossEpsilon {
		return LogLossEpsilon
	}
	if p > 1.0-LogLossEpsilon {
		return 1.0 - LogLossEpsilon
	}
	return p
}
