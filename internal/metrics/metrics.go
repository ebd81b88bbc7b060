// Package metrics provides the centralized Prometheus registry for the pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PipelineRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "pipeline_runs_total",
		Help:      "Total number of pipeline runs",
	})
	ObservationsScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "observations_scored_total",
		Help:      "Total number of observations scored by the pipeline",
	})
	BetsRecommendedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "bets_recommended_total",
		Help:      "Total number of positive stake recommendations",
	})
	PipelineFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_edge",
		Name:      "pipeline_failures_total",
		Help:      "Total number of failed pipeline runs",
	})
)

// Gauge metrics
var (
	StageBrierScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "diamond_edge",
		Name:      "stage_brier_score",
		Help:      "Brier score of the latest run per pipeline stage",
	}, []string{"stage"})
	StageLogLoss = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "diamond_edge",
		Name:      "stage_log_loss",
		Help:      "Log-loss of the latest run per pipeline stage",
	}, []string{"stage"})
	StageAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "diamond_edge",
		Name:      "stage_accuracy",
		Help:      "Accuracy of the latest run per pipeline stage",
	}, []string{"stage"})
)

// Histogram metrics
var (
	FitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "diamond_edge",
		Name:      "model_fit_duration_seconds",
		Help:      "Duration of base model fitting in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "diamond_edge",
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of complete pipeline runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PipelineRunsTotal)
		registry.MustRegister(ObservationsScoredTotal)
		registry.MustRegister(BetsRecommendedTotal)
		registry.MustRegister(PipelineFailuresTotal)

		registry.MustRegister(StageBrierScore)
		registry.MustRegister(StageLogLoss)
		registry.MustRegister(StageAccuracy)

		registry.MustRegister(FitDuration)
		registry.MustRegister(PipelineDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPipelineRun records a completed pipeline run.
func RecordPipelineRun(durationSeconds float64, observations int) {
	PipelineRunsTotal.Inc()
	ObservationsScoredTotal.Add(float64(observations))
	PipelineDuration.Observe(durationSeconds)
}

// RecordPipelineFailure records a failed pipeline run.
func RecordPipelineFailure() {
	PipelineFailuresTotal.Inc()
}

// RecordFitDuration records base model fit duration.
func RecordFitDuration(durationSeconds float64) {
	FitDuration.Observe(durationSeconds)
}

// RecordRecommendation records a positive stake recommendation.
func RecordRecommendation() {
	BetsRecommendedTotal.Inc()
}

// UpdateStageMetrics updates the per-stage gauges from the latest run.
func UpdateStageMetrics(stage string, brier float64, logLoss float64, accuracy float64) {
	StageBrierScore.WithLabelValues(stage).Set(brier)
	StageLogLoss.WithLabelValues(stage).Set(logLoss)
	StageAccuracy.WithLabelValues(stage).Set(accuracy)
}
