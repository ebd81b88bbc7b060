// Package helpers provides shared utilities for integration and e2e tests.
package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/models"
)

// QuietLogger returns a logger that only emits on panic.
func QuietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// PipelineTestConfig returns a complete configuration suitable for test runs.
func PipelineTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "diamond-edge",
			Environment: "development",
			LogLevel:    "error",
		},
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
		Data: config.DataConfig{
			Source: "synthetic",
			Games:  200,
			Seed:   42,
		},
		Export: config.ExportConfig{
			OutputDir:           "",
			RecommendationsFile: "bet_recommendations.csv",
			SummaryFile:         "model_summary.csv",
			JSONEnabled:         true,
			JSONFile:            "pipeline_result.json",
		},
		Metrics: config.MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}

// BuildObservation constructs a resolved observation for tests.
func BuildObservation(label string, features []float64, odds int, outcome int) *models.Observation {
	return &models.Observation{
		ID:       uuid.New(),
		Label:    label,
		Features: features,
		Odds:     odds,
		Outcome:  &outcome,
	}
}

// WriteTempBatchCSV writes CSV content to a temp file and returns its path.
func WriteTempBatchCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "batch.csv")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write batch fixture")
	return path
}

// MockBatchServer serves a CSV batch body over HTTP for source testing.
func MockBatchServer(t *testing.T, body string, failures int) *httptest.Server {
	t.Helper()

	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= failures {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})

	return httptest.NewServer(handler)
}

// CreateTestContext creates a context with a timeout for testing.
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
