// Package staking converts final probabilities into risk-sized stake recommendations.
package staking

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/odds"
)

// BetEvaluation holds the per-unit economics of one bet
type BetEvaluation struct {
	PayoutMultiplier float64 `json:"payout_multiplier"`
	ExpectedValue    float64 `json:"expected_value"`
	KellyFraction    float64 `json:"kelly_fraction"`
}

// EvaluateBet computes expected value per unit staked and the Kelly-optimal
// bankroll fraction for a probability and moneyline pair. Fails fast with
// ErrInvalidOdds on zero odds; never silently produces a stake.
func EvaluateBet(p float64, moneyline int) (BetEvaluation, error) {
	b, err := odds.PayoutMultiplier(moneyline)
	if err != nil {
		return BetEvaluation{}, err
	}

	edge := b*p - (1.0 - p)

	kelly := 0.0
	if b > 0 {
		kelly = math.Max(0, edge/b)
	}

	return BetEvaluation{
		PayoutMultiplier: b,
		ExpectedValue:    edge,
		KellyFraction:    kelly,
	}, nil
}

// Engine sizes stakes with fractional Kelly against a fixed bankroll
type Engine struct {
	bankroll        decimal.Decimal
	maxStakePerBet  decimal.Decimal
	kellyMultiplier float64
	minEV           float64
	logger          *logrus.Logger
}

// NewEngine creates a staking engine from configuration
func NewEngine(cfg *config.StakingConfig, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		bankroll:        decimal.NewFromFloat(cfg.Bankroll),
		maxStakePerBet:  decimal.NewFromFloat(cfg.MaxStakePerBet),
		kellyMultiplier: cfg.KellyMultiplier,
		minEV:           cfg.MinExpectedValue,
		logger:          logger,
	}
}

// Recommend derives the staking view for one observation from its final
// probability. The recommendation is a read-only value, recomputed on demand.
func (e *Engine) Recommend(obs *models.Observation, p float64) (models.StakeRecommendation, error) {
	eval, err := EvaluateBet(p, obs.Odds)
	if err != nil {
		return models.StakeRecommendation{}, err
	}

	recommend := eval.ExpectedValue > e.minEV
	stake := decimal.Zero
	if recommend && eval.KellyFraction > 0 {
		stake = e.bankroll.
			Mul(decimal.NewFromFloat(eval.KellyFraction * e.kellyMultiplier)).
			Round(2)
		if e.maxStakePerBet.IsPositive() && stake.GreaterThan(e.maxStakePerBet) {
			stake = e.maxStakePerBet
		}
	}

	e.logger.WithFields(logrus.Fields{
		"observation_id": obs.ID,
		"odds":           obs.Odds,
		"probability":    p,
		"expected_value": eval.ExpectedValue,
		"kelly_fraction": eval.KellyFraction,
		"stake":          stake.String(),
		"recommend":      recommend,
	}).Debug("Stake recommendation computed")

	return models.StakeRecommendation{
		ObservationID: obs.ID,
		Label:         obs.Label,
		Odds:          obs.Odds,
		Probability:   p,
		ExpectedValue: eval.ExpectedValue,
		KellyFraction: eval.KellyFraction,
		Stake:         stake,
		Recommend:     recommend,
	}, nil
}
