package pipeline

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "diamond-edge", Environment: "development", LogLevel: "error"},
		Model: config.ModelConfig{
			Seed:         42,
			TestFraction: 0.25,
			BlendAlpha:   0.7,
			LearningRate: 0.1,
			Iterations:   500,
		},
		Staking: config.StakingConfig{
			Bankroll:         1000,
			KellyMultiplier:  0.25,
			MinExpectedValue: 0.02,
			MaxStakePerBet:   50,
		},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func syntheticBatch(t *testing.T, games int) *models.Batch {
	t.Helper()
	batch, err := dataset.NewSyntheticSource(games, 42, testLogger()).Load(context.Background())
	require.NoError(t, err)
	return batch
}

func TestNewEngineRejectsInvalidAlpha(t *testing.T) {
	cfg := testConfig()
	cfg.Model.BlendAlpha = 1.5

	_, err := NewEngine(cfg, testLogger())
	require.Error(t, err)
}

func TestNewEngineRequiresConfig(t *testing.T) {
	_, err := NewEngine(nil, testLogger())
	require.Error(t, err)
}

func TestRunCompletePipeline(t *testing.T) {
	engine, err := NewEngine(testConfig(), testLogger())
	require.NoError(t, err)

	batch := syntheticBatch(t, 200)
	result, err := engine.Run(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, batch.ID, result.BatchID)
	assert.Equal(t, 150, result.TrainSize)
	assert.Equal(t, 50, result.HoldoutSize)
	assert.Len(t, result.Weights, 4)
	assert.Len(t, result.Recommendations, 200)

	// Every observation carries all three stage estimates in [0,1].
	for _, obs := range batch.Observations {
		for _, stage := range models.Stages() {
			p, ok := obs.Estimate(stage)
			require.True(t, ok, "missing %s estimate", stage)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}

	require.Len(t, result.Stages, 3)
	for _, stage := range result.Stages {
		assert.GreaterOrEqual(t, stage.BrierScore, 0.0)
		assert.LessOrEqual(t, stage.BrierScore, 1.0)
		assert.Greater(t, stage.LogLoss, 0.0)
	}

	// Calibration can only improve the in-sample Brier score.
	base, _ := result.StageByName(models.StageBase)
	calibrated, _ := result.StageByName(models.StageCalibrated)
	assert.LessOrEqual(t, calibrated.BrierScore, base.BrierScore+1e-9)
}

func TestRunDeterministic(t *testing.T) {
	first, err := NewEngine(testConfig(), testLogger())
	require.NoError(t, err)
	second, err := NewEngine(testConfig(), testLogger())
	require.NoError(t, err)

	resultA, err := first.Run(context.Background(), syntheticBatch(t, 120))
	require.NoError(t, err)
	resultB, err := second.Run(context.Background(), syntheticBatch(t, 120))
	require.NoError(t, err)

	assert.Equal(t, resultA.Weights, resultB.Weights)
	assert.Equal(t, resultA.Bias, resultB.Bias)
	assert.Equal(t, resultA.Stages, resultB.Stages)
	for i := range resultA.Recommendations {
		assert.Equal(t, resultA.Recommendations[i].ExpectedValue, resultB.Recommendations[i].ExpectedValue)
	}
}

func TestRunEmptyBatch(t *testing.T) {
	engine, err := NewEngine(testConfig(), testLogger())
	require.NoError(t, err)

	_, err = engine.Run(context.Background(), models.NewBatch(nil, nil))
	require.ErrorIs(t, err, models.ErrInsufficientData)

	_, err = engine.Run(context.Background(), nil)
	require.ErrorIs(t, err, models.ErrInsufficientData)
}

func TestRunUnresolvedBatch(t *testing.T) {
	engine, err := NewEngine(testConfig(), testLogger())
	require.NoError(t, err)

	batch := syntheticBatch(t, 20)
	batch.Observations[7].Outcome = nil

	_, err = engine.Run(context.Background(), batch)
	require.ErrorIs(t, err, models.ErrMissingOutcome)
}

func TestRunCancelledContext(t *testing.T) {
	engine, err := NewEngine(testConfig(), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.Run(ctx, syntheticBatch(t, 20))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunWithCalibrationHoldout(t *testing.T) {
	cfg := testConfig()
	cfg.Model.CalibrationHoldout = true

	engine, err := NewEngine(cfg, testLogger())
	require.NoError(t, err)

	result, err := engine.Run(context.Background(), syntheticBatch(t, 200))
	require.NoError(t, err)
	require.Len(t, result.Stages, 3)
}

func TestResultSummaries(t *testing.T) {
	engine, err := NewEngine(testConfig(), testLogger())
	require.NoError(t, err)

	result, err := engine.Run(context.Background(), syntheticBatch(t, 200))
	require.NoError(t, err)

	count := result.RecommendedCount()
	assert.GreaterOrEqual(t, count, 0)
	assert.LessOrEqual(t, count, 200)

	if count > 0 {
		assert.Greater(t, result.AverageExpectedValue(), 0.02)
	}
}
