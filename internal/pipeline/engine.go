// Package pipeline orchestrates the four-stage probability pipeline:
// base estimation, calibration, market blending and stake sizing.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/blend"
	"github.com/yourusername/diamond-edge/internal/calibration"
	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/estimator"
	"github.com/yourusername/diamond-edge/internal/evaluation"
	applogger "github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/odds"
	"github.com/yourusername/diamond-edge/internal/staking"
)

// Engine runs one observation batch through the complete pipeline.
// Each batch owns its own state; engines hold only configuration and are
// safe to reuse across sequential runs.
type Engine struct {
	modelCfg config.ModelConfig
	staker   *staking.Engine
	blender  *blend.Blender
	logger   *logrus.Logger
	plog     *applogger.PipelineLogger
}

// NewEngine creates a pipeline engine from configuration
func NewEngine(cfg *config.Config, log *logrus.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		log = logrus.New()
	}

	blender, err := blend.New(cfg.Model.BlendAlpha)
	if err != nil {
		return nil, err
	}

	return &Engine{
		modelCfg: cfg.Model,
		staker:   staking.NewEngine(&cfg.Staking, log),
		blender:  blender,
		logger:   log,
		plog:     applogger.NewPipelineLogger(log),
	}, nil
}

// Run fits, calibrates, blends and sizes one batch start-to-finish.
// Observations are enriched in place with stage-tagged estimates; metrics
// and recommendations are derived read-only views in the returned Result.
func (e *Engine) Run(ctx context.Context, batch *models.Batch) (*Result, error) {
	started := time.Now()

	result, err := e.run(ctx, batch)
	if err != nil {
		metrics.RecordPipelineFailure()
		return nil, err
	}

	metrics.RecordPipelineRun(time.Since(started).Seconds(), batch.Size())
	return result, nil
}

func (e *Engine) run(ctx context.Context, batch *models.Batch) (*Result, error) {
	if batch == nil || batch.Size() == 0 {
		return nil, models.ErrInsufficientData
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labels, err := batch.Labels()
	if err != nil {
		return nil, fmt.Errorf("batch is not fully resolved: %w", err)
	}

	features := batch.FeatureMatrix()
	trainIdx, holdoutIdx := estimator.TrainTestSplit(batch.Size(), e.modelCfg.TestFraction, e.modelCfg.Seed)

	model, err := e.fitBaseModel(features, labels, trainIdx)
	if err != nil {
		e.plog.LogPipelineError(string(models.StageBase), err.Error())
		return nil, fmt.Errorf("base model fit failed: %w", err)
	}

	rawProbs, err := model.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("base prediction failed: %w", err)
	}
	for i, obs := range batch.Observations {
		obs.SetEstimate(models.StageBase, rawProbs[i])
	}

	calibrator, err := e.fitCalibrator(rawProbs, labels, holdoutIdx)
	if err != nil {
		e.plog.LogPipelineError(string(models.StageCalibrated), err.Error())
		return nil, fmt.Errorf("calibration fit failed: %w", err)
	}
	for _, obs := range batch.Observations {
		raw, _ := obs.Estimate(models.StageBase)
		obs.SetEstimate(models.StageCalibrated, calibrator.Transform(raw))
	}

	if err := e.blendMarket(batch); err != nil {
		e.plog.LogPipelineError(string(models.StageBlended), err.Error())
		return nil, err
	}

	stages, err := e.evaluateStages(batch, labels)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	holdoutBase, err := evaluation.Evaluate(
		models.StageBase,
		selectFloats(rawProbs, holdoutIdx),
		estimator.SelectLabels(labels, holdoutIdx),
	)
	if err != nil {
		return nil, fmt.Errorf("holdout evaluation failed: %w", err)
	}

	recommendations, err := e.recommendStakes(batch)
	if err != nil {
		return nil, fmt.Errorf("stake sizing failed: %w", err)
	}

	performance, err := computePerformance(batch, recommendations)
	if err != nil {
		return nil, fmt.Errorf("performance settlement failed: %w", err)
	}

	return NewResult(batch, e.modelCfg, model, stages, holdoutBase, recommendations, performance, len(trainIdx), len(holdoutIdx)), nil
}

func (e *Engine) fitBaseModel(features [][]float64, labels []int, trainIdx []int) (*estimator.LogisticModel, error) {
	model := estimator.NewLogisticModel()
	model.LearningRate = e.modelCfg.LearningRate
	model.Iterations = e.modelCfg.Iterations

	fitStart := time.Now()
	err := model.Fit(
		estimator.SelectRows(features, trainIdx),
		estimator.SelectLabels(labels, trainIdx),
	)
	if err != nil {
		return nil, err
	}
	fitDuration := time.Since(fitStart)
	metrics.RecordFitDuration(fitDuration.Seconds())

	featureCount := 0
	if len(features) > 0 {
		featureCount = len(features[0])
	}
	e.plog.LogModelFit(len(trainIdx), len(features)-len(trainIdx), featureCount, float64(fitDuration.Milliseconds()))
	return model, nil
}

// fitCalibrator defaults to the single-pass design: the calibration map is
// fit on the same rows the base estimator was scored on. The holdout option
// trades that bias for a smaller calibration sample.
func (e *Engine) fitCalibrator(rawProbs []float64, labels []int, holdoutIdx []int) (*calibration.Isotonic, error) {
	if e.modelCfg.CalibrationHoldout {
		return calibration.Fit(
			selectFloats(rawProbs, holdoutIdx),
			estimator.SelectLabels(labels, holdoutIdx),
		)
	}
	return calibration.Fit(rawProbs, labels)
}

func (e *Engine) blendMarket(batch *models.Batch) error {
	for _, obs := range batch.Observations {
		market, err := odds.ImpliedProbability(obs.Odds)
		if err != nil {
			return fmt.Errorf("observation %s: %w", obs.ID, err)
		}
		calibrated, _ := obs.Estimate(models.StageCalibrated)
		obs.SetEstimate(models.StageBlended, e.blender.Blend(calibrated, market))
	}
	return nil
}

func (e *Engine) evaluateStages(batch *models.Batch, labels []int) ([]evaluation.StageMetrics, error) {
	stages := make([]evaluation.StageMetrics, 0, 3)
	for _, stage := range models.Stages() {
		stageMetrics, err := evaluation.Evaluate(stage, batch.Estimates(stage), labels)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
		stages = append(stages, stageMetrics)

		metrics.UpdateStageMetrics(string(stage), stageMetrics.BrierScore, stageMetrics.LogLoss, stageMetrics.Accuracy)
		e.plog.LogStageMetrics(string(stage), stageMetrics.BrierScore, stageMetrics.LogLoss, stageMetrics.Accuracy)
	}
	return stages, nil
}

func (e *Engine) recommendStakes(batch *models.Batch) ([]models.StakeRecommendation, error) {
	recommendations := make([]models.StakeRecommendation, 0, batch.Size())
	recommended := 0
	totalEV := 0.0

	for _, obs := range batch.Observations {
		final, _ := obs.Estimate(models.StageBlended)
		rec, err := e.staker.Recommend(obs, final)
		if err != nil {
			return nil, fmt.Errorf("observation %s: %w", obs.ID, err)
		}
		if rec.Recommend {
			recommended++
			totalEV += rec.ExpectedValue
			metrics.RecordRecommendation()
		}
		recommendations = append(recommendations, rec)
	}

	averageEV := 0.0
	if recommended > 0 {
		averageEV = totalEV / float64(recommended)
	}
	e.plog.LogRecommendationSummary(batch.Size(), recommended, averageEV)

	return recommendations, nil
}

func selectFloats(values []float64, indices []int) []float64 {
	selected := make([]float64, len(indices))
	for i, idx := range indices {
		selected[i] = values[idx]
	}
	return selected
}
