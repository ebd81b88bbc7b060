package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StakeRecommendation is the derived staking view for one observation.
// It is recomputed on demand and never mutated after construction.
type StakeRecommendation struct {
	ObservationID uuid.UUID       `json:"observation_id" validate:"required"`
	Label         string          `json:"label,omitempty"`
	Odds          int             `json:"odds" validate:"required"`
	Probability   float64         `json:"probability" validate:"gte=0,lte=1"`
	ExpectedValue float64         `json:"expected_value"`
	KellyFraction float64         `json:"kelly_fraction" validate:"gte=0"`
	Stake         decimal.Decimal `json:"stake"`
	Recommend     bool            `json:"recommend"`
}

// Action returns the recommendation label for tabular export
func (r StakeRecommendation) Action() string {
	if r.Recommend {
		return "bet"
	}
	return "pass"
}
