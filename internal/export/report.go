// Package export renders pipeline results as console reports and flat files.
package export

import (
	"fmt"
	"strings"

	"github.com/yourusername/diamond-edge/internal/pipeline"
)

// GenerateConsoleReport formats a pipeline result for terminal output
func GenerateConsoleReport(result *pipeline.Result) string {
	var builder strings.Builder
	builder.WriteString("Model Pipeline Report\n")
	builder.WriteString("=====================\n")
	builder.WriteString(fmt.Sprintf("Observations: %d (train %d / holdout %d)\n",
		result.TrainSize+result.HoldoutSize, result.TrainSize, result.HoldoutSize))
	builder.WriteString(fmt.Sprintf("Blend Alpha: %.2f | Seed: %d\n\n", result.BlendAlpha, result.Seed))

	builder.WriteString(fmt.Sprintf("%-12s %8s %9s %9s\n", "Stage", "Brier", "LogLoss", "Accuracy"))
	for _, stage := range result.Stages {
		builder.WriteString(fmt.Sprintf("%-12s %8.3f %9.3f %9.3f\n",
			stage.Stage, stage.BrierScore, stage.LogLoss, stage.Accuracy))
	}
	builder.WriteString(fmt.Sprintf("%-12s %8.3f %9.3f %9.3f\n",
		"holdout", result.HoldoutBase.BrierScore, result.HoldoutBase.LogLoss, result.HoldoutBase.Accuracy))

	perf := result.Performance
	builder.WriteString(fmt.Sprintf("\nRecommended Bets: %d / %d\n",
		result.RecommendedCount(), len(result.Recommendations)))
	builder.WriteString(fmt.Sprintf("Average EV (recommended): %.3f\n", result.AverageExpectedValue()))
	builder.WriteString(fmt.Sprintf("Winning Bets: %d (hit rate %.1f%%)\n",
		perf.WinningBets, perf.HitRate*100))
	builder.WriteString(fmt.Sprintf("Total Staked: %s | Profit: %s | ROI: %.1f%%\n",
		perf.TotalStaked.StringFixed(2), perf.Profit.StringFixed(2), perf.ROI*100))
	return builder.String()
}
