package pipeline

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/models"
)

func resolvedObservation(odds int, outcome int) *models.Observation {
	return &models.Observation{
		ID:       uuid.New(),
		Features: []float64{0},
		Odds:     odds,
		Outcome:  &outcome,
	}
}

func TestComputePerformanceSettlesBets(t *testing.T) {
	winner := resolvedObservation(-110, 1)
	loser := resolvedObservation(110, 0)
	passed := resolvedObservation(100, 1)
	batch := models.NewBatch([]string{"x"}, []*models.Observation{winner, loser, passed})

	recommendations := []models.StakeRecommendation{
		{ObservationID: winner.ID, Odds: winner.Odds, Stake: decimal.NewFromInt(50), Recommend: true},
		{ObservationID: loser.ID, Odds: loser.Odds, Stake: decimal.NewFromInt(50), Recommend: true},
		{ObservationID: passed.ID, Odds: passed.Odds, Stake: decimal.Zero, Recommend: false},
	}

	perf, err := computePerformance(batch, recommendations)
	require.NoError(t, err)

	assert.Equal(t, 2, perf.RecommendedBets)
	assert.Equal(t, 1, perf.WinningBets)
	assert.InDelta(t, 0.5, perf.HitRate, 1e-9)

	// Winner returns 50 * 1.10, loser forfeits 50: net +5 on 100 staked.
	assert.Equal(t, "100.00", perf.TotalStaked.StringFixed(2))
	assert.Equal(t, "5.00", perf.Profit.StringFixed(2))
	assert.InDelta(t, 0.05, perf.ROI, 1e-9)
}

func TestComputePerformanceNoRecommendations(t *testing.T) {
	obs := resolvedObservation(-110, 1)
	batch := models.NewBatch([]string{"x"}, []*models.Observation{obs})

	recommendations := []models.StakeRecommendation{
		{ObservationID: obs.ID, Odds: obs.Odds, Stake: decimal.Zero, Recommend: false},
	}

	perf, err := computePerformance(batch, recommendations)
	require.NoError(t, err)

	assert.Zero(t, perf.RecommendedBets)
	assert.Zero(t, perf.HitRate)
	assert.Zero(t, perf.ROI)
	assert.True(t, perf.TotalStaked.IsZero())
	assert.True(t, perf.Profit.IsZero())
}

func TestRunPerformanceSummary(t *testing.T) {
	engine, err := NewEngine(testConfig(), testLogger())
	require.NoError(t, err)

	result, err := engine.Run(context.Background(), syntheticBatch(t, 200))
	require.NoError(t, err)

	perf := result.Performance
	assert.Equal(t, result.RecommendedCount(), perf.RecommendedBets)
	assert.LessOrEqual(t, perf.WinningBets, perf.RecommendedBets)
	assert.GreaterOrEqual(t, perf.HitRate, 0.0)
	assert.LessOrEqual(t, perf.HitRate, 1.0)

	if perf.RecommendedBets > 0 {
		assert.True(t, perf.TotalStaked.IsPositive())
		roi, _ := perf.Profit.Div(perf.TotalStaked).Float64()
		assert.InDelta(t, roi, perf.ROI, 1e-9)
	}
}
