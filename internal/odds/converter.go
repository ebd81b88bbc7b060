// Package odds converts American moneyline odds to implied probabilities and back.
package odds

import (
	"math"

	"github.com/yourusername/diamond-edge/internal/models"
)

// ImpliedProbability converts a signed American moneyline to an implied win probability.
// Positive odds are the payout per 100 staked on the underdog; negative odds are the
// stake required to win 100 on the favorite. Zero odds have no sign convention and
// fail with ErrInvalidOdds.
func ImpliedProbability(moneyline int) (float64, error) {
	if moneyline == 0 {
		return 0, models.ErrInvalidOdds
	}
	o := float64(moneyline)
	if moneyline > 0 {
		return 100.0 / (o + 100.0), nil
	}
	return -o / (-o + 100.0), nil
}

// FromProbability converts a probability in (0,1) back to the nearest American moneyline.
// Probabilities at or outside the open interval fail with ErrInvalidOdds because no
// finite moneyline represents them.
func FromProbability(p float64) (int, error) {
	if p <= 0 || p >= 1 {
		return 0, models.ErrInvalidOdds
	}
	if p >= 0.5 {
		return -int(math.Round(p / (1.0 - p) * 100.0)), nil
	}
	return int(math.Round((1.0 - p) / p * 100.0)), nil
}

// PayoutMultiplier converts a moneyline to the amount won per unit staked on a win.
func PayoutMultiplier(moneyline int) (float64, error) {
	if moneyline == 0 {
		return 0, models.ErrInvalidOdds
	}
	if moneyline < 0 {
		return float64(-moneyline) / 100.0, nil
	}
	return float64(moneyline) / 100.0, nil
}
