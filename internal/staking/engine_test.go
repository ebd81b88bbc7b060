package staking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/models"
)

func testStakingConfig() *config.StakingConfig {
	return &config.StakingConfig{
		Bankroll:         1000,
		KellyMultiplier:  0.25,
		MinExpectedValue: 0.02,
		MaxStakePerBet:   50,
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestEvaluateBetFavorite(t *testing.T) {
	eval, err := EvaluateBet(0.55, -110)
	require.NoError(t, err)

	assert.InDelta(t, 1.10, eval.PayoutMultiplier, 1e-9)
	assert.InDelta(t, 1.10*0.55-0.45, eval.ExpectedValue, 1e-9)
	assert.InDelta(t, (1.10*0.55-0.45)/1.10, eval.KellyFraction, 1e-9)
}

func TestEvaluateBetUnderdog(t *testing.T) {
	eval, err := EvaluateBet(0.60, 110)
	require.NoError(t, err)

	assert.InDelta(t, 1.10, eval.PayoutMultiplier, 1e-9)
	assert.InDelta(t, 0.26, eval.ExpectedValue, 1e-9)
	assert.InDelta(t, 0.26/1.10, eval.KellyFraction, 1e-9)
}

func TestEvaluateBetNegativeEdgeFloorsKelly(t *testing.T) {
	eval, err := EvaluateBet(0.40, -110)
	require.NoError(t, err)

	assert.Negative(t, eval.ExpectedValue)
	assert.Zero(t, eval.KellyFraction)
}

func TestEvaluateBetZeroOdds(t *testing.T) {
	_, err := EvaluateBet(0.5, 0)
	require.ErrorIs(t, err, models.ErrInvalidOdds)
}

func TestRecommendPositiveEdge(t *testing.T) {
	engine := NewEngine(testStakingConfig(), quietLogger())
	obs := &models.Observation{ID: uuid.New(), Label: "Game 001", Odds: 110}

	rec, err := engine.Recommend(obs, 0.60)
	require.NoError(t, err)

	assert.True(t, rec.Recommend)
	assert.Equal(t, "bet", rec.Action())

	// Kelly 0.26/1.1 scaled by 0.25 against a 1000 bankroll, capped at 50.
	assert.Equal(t, decimal.NewFromInt(50).String(), rec.Stake.String())
}

func TestRecommendBelowCutoff(t *testing.T) {
	engine := NewEngine(testStakingConfig(), quietLogger())
	obs := &models.Observation{ID: uuid.New(), Label: "Game 002", Odds: -110}

	// Implied break-even is ~0.524; a hair above it clears zero EV but
	// not the cutoff.
	rec, err := engine.Recommend(obs, 0.53)
	require.NoError(t, err)

	assert.False(t, rec.Recommend)
	assert.Equal(t, "pass", rec.Action())
	assert.True(t, rec.Stake.IsZero())
}

func TestRecommendStakeUncapped(t *testing.T) {
	cfg := testStakingConfig()
	cfg.MaxStakePerBet = 0
	engine := NewEngine(cfg, quietLogger())
	obs := &models.Observation{ID: uuid.New(), Odds: 110}

	rec, err := engine.Recommend(obs, 0.60)
	require.NoError(t, err)

	expected := decimal.NewFromFloat(0.26 / 1.10 * 0.25 * 1000).Round(2)
	assert.Equal(t, expected.String(), rec.Stake.String())
}

func TestRecommendZeroOdds(t *testing.T) {
	engine := NewEngine(testStakingConfig(), quietLogger())
	obs := &models.Observation{ID: uuid.New(), Odds: 0}

	_, err := engine.Recommend(obs, 0.55)
	require.ErrorIs(t, err, models.ErrInvalidOdds)
}
