// Package logger provides pipeline-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PipelineLogger provides dedicated logging for model pipeline runs.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithField("component", "pipeline"),
	}
}

// LogModelFit logs completion of a base model fit.
func (pl *PipelineLogger) LogModelFit(trainSize int, holdoutSize int, featureCount int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"train_size":    trainSize,
		"holdout_size":  holdoutSize,
		"feature_count": featureCount,
		"duration_ms":   durationMs,
	}).Info("Base model fit completed")
}

// LogStageMetrics logs the metric triple for one pipeline stage.
func (pl *PipelineLogger) LogStageMetrics(stage string, brier float64, logLoss float64, accuracy float64) {
	pl.WithFields(logrus.Fields{
		"stage":       stage,
		"brier_score": brier,
		"log_loss":    logLoss,
		"accuracy":    accuracy,
	}).Info("Stage metrics computed")
}

// LogRecommendationSummary logs the staking outcome of a run.
func (pl *PipelineLogger) LogRecommendationSummary(totalObservations int, recommended int, averageEV float64) {
	pl.WithFields(logrus.Fields{
		"total_observations": totalObservations,
		"recommended_bets":   recommended,
		"average_ev":         averageEV,
	}).Info("Stake recommendations computed")
}

// LogPipelineError logs a pipeline stage failure.
func (pl *PipelineLogger) LogPipelineError(stage string, errorReason string) {
	pl.WithFields(logrus.Fields{
		"stage":        stage,
		"error_reason": errorReason,
	}).Error("Pipeline stage failed")
}
