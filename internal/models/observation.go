package models

import (
	"github.com/google/uuid"
)

// Stage tags a probability estimate with the pipeline step that produced it
type Stage string

// Pipeline stages in execution order
const (
	StageBase       Stage = "base"
	StageCalibrated Stage = "calibrated"
	StageBlended    Stage = "blended"
)

// Stages returns all pipeline stages in execution order
func Stages() []Stage {
	return []Stage{StageBase, StageCalibrated, StageBlended}
}

// Observation represents one resolved or pending contest in a batch
type Observation struct {
	ID        uuid.UUID         `json:"id" validate:"required"`
	Label     string            `json:"label,omitempty"`
	Features  []float64         `json:"features" validate:"required,min=1"`
	Odds      int               `json:"odds" validate:"required"`
	Outcome   *int              `json:"outcome,omitempty" validate:"omitempty,oneof=0 1"`
	Estimates map[Stage]float64 `json:"estimates,omitempty"`
}

// SetEstimate attaches a stage-tagged probability estimate to the observation
func (o *Observation) SetEstimate(stage Stage, p float64) {
	if o.Estimates == nil {
		o.Estimates = make(map[Stage]float64, 3)
	}
	o.Estimates[stage] = p
}

// Estimate retrieves the probability estimate for a stage
func (o *Observation) Estimate(stage Stage) (float64, bool) {
	p, ok := o.Estimates[stage]
	return p, ok
}

// IsResolved reports whether the contest outcome is known
func (o *Observation) IsResolved() bool {
	return o.Outcome != nil
}

// Batch is a complete in-memory observation table processed start-to-finish
type Batch struct {
	ID           uuid.UUID      `json:"id"`
	FeatureNames []string       `json:"feature_names"`
	Observations []*Observation `json:"observations"`
}

// NewBatch creates a batch with a fresh identity
func NewBatch(featureNames []string, observations []*Observation) *Batch {
	return &Batch{
		ID:           uuid.New(),
		FeatureNames: featureNames,
		Observations: observations,
	}
}

// Size returns the number of observations in the batch
func (b *Batch) Size() int {
	return len(b.Observations)
}

// FeatureMatrix returns the feature vectors of all observations, row per observation
func (b *Batch) FeatureMatrix() [][]float64 {
	matrix := make([][]float64, len(b.Observations))
	for i, obs := range b.Observations {
		matrix[i] = obs.Features
	}
	return matrix
}

// Labels returns the realized outcomes for all observations.
// Fails with ErrMissingOutcome when any observation is unresolved.
func (b *Batch) Labels() ([]int, error) {
	labels := make([]int, len(b.Observations))
	for i, obs := range b.Observations {
		if !obs.IsResolved() {
			return nil, ErrMissingOutcome
		}
		labels[i] = *obs.Outcome
	}
	return labels, nil
}

// Estimates collects the stage estimates across the batch
func (b *Batch) Estimates(stage Stage) []float64 {
	probs := make([]float64, len(b.Observations))
	for i, obs := range b.Observations {
		probs[i], _ = obs.Estimate(stage)
	}
	return probs
}
