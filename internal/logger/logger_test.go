package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("warn", "development")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	// Unknown level falls back to info.
	log = NewLogger("nonsense", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerProductionFormatter(t *testing.T) {
	log := NewLogger("info", "production")
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger("info", "development")
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestPipelineLoggerModelFit(t *testing.T) {
	log, buf := setupTestLogger()
	plog := NewPipelineLogger(log)

	plog.LogModelFit(187, 63, 4, 12.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "pipeline", logEntry["component"])
	assert.Equal(t, float64(187), logEntry["train_size"])
	assert.Equal(t, float64(4), logEntry["feature_count"])
}

func TestPipelineLoggerStageMetrics(t *testing.T) {
	log, buf := setupTestLogger()
	plog := NewPipelineLogger(log)

	plog.LogStageMetrics("calibrated", 0.22, 0.63, 0.58)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "calibrated", logEntry["stage"])
	assert.Equal(t, 0.22, logEntry["brier_score"])
}

func TestPipelineLoggerRecommendationSummary(t *testing.T) {
	log, buf := setupTestLogger()
	plog := NewPipelineLogger(log)

	plog.LogRecommendationSummary(250, 41, 0.073)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(250), logEntry["total_observations"])
	assert.Equal(t, float64(41), logEntry["recommended_bets"])
}

func TestPipelineLoggerError(t *testing.T) {
	log, buf := setupTestLogger()
	plog := NewPipelineLogger(log)

	plog.LogPipelineError("base", "insufficient data")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "base", logEntry["stage"])
	assert.Equal(t, "insufficient data", logEntry["error_reason"])
}
