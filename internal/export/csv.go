package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/pipeline"
)

// WriteRecommendations exports the per-observation probability and staking
// table, one row per observation
func WriteRecommendations(batch *models.Batch, result *pipeline.Result, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create recommendations file: %w", err)
	}
	defer file.Close()

	observations := make(map[uuid.UUID]*models.Observation, batch.Size())
	for _, obs := range batch.Observations {
		observations[obs.ID] = obs
	}

	writer := csv.NewWriter(file)
	header := []string{
		"game", "odds", "p_base", "p_calibrated", "p_blended",
		"expected_value", "kelly_fraction", "stake", "recommendation", "outcome",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range result.Recommendations {
		obs := observations[rec.ObservationID]
		if obs == nil {
			continue
		}
		pBase, _ := obs.Estimate(models.StageBase)
		pCalibrated, _ := obs.Estimate(models.StageCalibrated)
		pBlended, _ := obs.Estimate(models.StageBlended)

		outcome := ""
		if obs.Outcome != nil {
			outcome = strconv.Itoa(*obs.Outcome)
		}

		row := []string{
			rec.Label,
			strconv.Itoa(rec.Odds),
			formatProb(pBase),
			formatProb(pCalibrated),
			formatProb(pBlended),
			fmt.Sprintf("%.4f", rec.ExpectedValue),
			fmt.Sprintf("%.4f", rec.KellyFraction),
			rec.Stake.StringFixed(2),
			rec.Action(),
			outcome,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummary exports the per-stage metrics summary, one row per stage
func WriteSummary(result *pipeline.Result, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := "stage,brier_score,log_loss,accuracy\n"
	for _, stage := range result.Stages {
		summary += fmt.Sprintf("%s,%.4f,%.4f,%.4f\n",
			stage.Stage, stage.BrierScore, stage.LogLoss, stage.Accuracy)
	}
	summary += fmt.Sprintf("holdout_base,%.4f,%.4f,%.4f\n",
		result.HoldoutBase.BrierScore, result.HoldoutBase.LogLoss, result.HoldoutBase.Accuracy)

	perf := result.Performance
	summary += "\nmetric,value\n"
	summary += fmt.Sprintf("recommended_bets,%d\n", perf.RecommendedBets)
	summary += fmt.Sprintf("winning_bets,%d\n", perf.WinningBets)
	summary += fmt.Sprintf("hit_rate,%.4f\n", perf.HitRate)
	summary += fmt.Sprintf("total_staked,%s\n", perf.TotalStaked.StringFixed(2))
	summary += fmt.Sprintf("profit,%s\n", perf.Profit.StringFixed(2))
	summary += fmt.Sprintf("roi,%.4f\n", perf.ROI)

	return os.WriteFile(outputPath, []byte(summary), 0o644)
}

func formatProb(p float64) string {
	return fmt.Sprintf("%.4f", p)
}
