package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/estimator"
	"github.com/yourusername/diamond-edge/internal/evaluation"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/odds"
)

// Result is the immutable outcome of one pipeline run
type Result struct {
	RunID           uuid.UUID                    `json:"run_id"`
	BatchID         uuid.UUID                    `json:"batch_id"`
	Seed            int64                        `json:"seed"`
	BlendAlpha      float64                      `json:"blend_alpha"`
	TrainSize       int                          `json:"train_size"`
	HoldoutSize     int                          `json:"holdout_size"`
	Weights         []float64                    `json:"weights"`
	Bias            float64                      `json:"bias"`
	Stages          []evaluation.StageMetrics    `json:"stages"`
	HoldoutBase     evaluation.StageMetrics      `json:"holdout_base"`
	Recommendations []models.StakeRecommendation `json:"recommendations"`
	Performance     Performance                  `json:"performance"`
	CompletedAt     time.Time                    `json:"completed_at"`
}

// Performance settles the recommended stakes against realized outcomes
type Performance struct {
	RecommendedBets int             `json:"recommended_bets"`
	WinningBets     int             `json:"winning_bets"`
	HitRate         float64         `json:"hit_rate"`
	TotalStaked     decimal.Decimal `json:"total_staked"`
	Profit          decimal.Decimal `json:"profit"`
	ROI             float64         `json:"roi"`
}

// computePerformance simulates placing every recommended stake: a winner
// collects stake times the payout multiplier, a loser forfeits the stake.
// ROI is net profit over total amount staked.
func computePerformance(batch *models.Batch, recommendations []models.StakeRecommendation) (Performance, error) {
	observations := make(map[uuid.UUID]*models.Observation, batch.Size())
	for _, obs := range batch.Observations {
		observations[obs.ID] = obs
	}

	perf := Performance{TotalStaked: decimal.Zero, Profit: decimal.Zero}
	for _, rec := range recommendations {
		if !rec.Recommend {
			continue
		}
		obs := observations[rec.ObservationID]
		if obs == nil || !obs.IsResolved() {
			continue
		}
		payout, err := odds.PayoutMultiplier(rec.Odds)
		if err != nil {
			return Performance{}, err
		}

		perf.RecommendedBets++
		perf.TotalStaked = perf.TotalStaked.Add(rec.Stake)
		if *obs.Outcome == 1 {
			perf.WinningBets++
			perf.Profit = perf.Profit.Add(rec.Stake.Mul(decimal.NewFromFloat(payout)))
		} else {
			perf.Profit = perf.Profit.Sub(rec.Stake)
		}
	}

	if perf.RecommendedBets > 0 {
		perf.HitRate = float64(perf.WinningBets) / float64(perf.RecommendedBets)
	}
	if perf.TotalStaked.IsPositive() {
		perf.ROI, _ = perf.Profit.Div(perf.TotalStaked).Float64()
	}
	return perf, nil
}

// NewResult assembles the run result
func NewResult(
	batch *models.Batch,
	modelCfg config.ModelConfig,
	model *estimator.LogisticModel,
	stages []evaluation.StageMetrics,
	holdoutBase evaluation.StageMetrics,
	recommendations []models.StakeRecommendation,
	performance Performance,
	trainSize int,
	holdoutSize int,
) *Result {
	return &Result{
		RunID:           uuid.New(),
		BatchID:         batch.ID,
		Seed:            modelCfg.Seed,
		BlendAlpha:      modelCfg.BlendAlpha,
		TrainSize:       trainSize,
		HoldoutSize:     holdoutSize,
		Weights:         model.Weights,
		Bias:            model.Bias,
		Stages:          stages,
		HoldoutBase:     holdoutBase,
		Recommendations: recommendations,
		Performance:     performance,
		CompletedAt:     time.Now().UTC(),
	}
}

// RecommendedCount returns the number of positive recommendations
func (r *Result) RecommendedCount() int {
	count := 0
	for _, rec := range r.Recommendations {
		if rec.Recommend {
			count++
		}
	}
	return count
}

// AverageExpectedValue returns the mean EV across positive recommendations
func (r *Result) AverageExpectedValue() float64 {
	count := 0
	total := 0.0
	for _, rec := range r.Recommendations {
		if rec.Recommend {
			count++
			total += rec.ExpectedValue
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// StageByName returns the metrics for a stage, if present
func (r *Result) StageByName(stage models.Stage) (evaluation.StageMetrics, bool) {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s, true
		}
	}
	return evaluation.StageMetrics{}, false
}
