// Package blend mixes model and market probabilities under a fixed weight.
package blend

import (
	"fmt"
)

// Blender combines a calibrated model probability with the market-implied
// probability as a convex combination. Alpha is configuration, not learned:
// alpha=1 is pure model, alpha=0 is pure market.
type Blender struct {
	Alpha float64
}

// New creates a blender, rejecting weights outside [0,1]
func New(alpha float64) (*Blender, error) {
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("blend weight must be in [0,1], got %v", alpha)
	}
	return &Blender{Alpha: alpha}, nil
}

// Blend returns alpha*pModel + (1-alpha)*pMarket, clamped to [0,1]
func (b *Blender) Blend(pModel, pMarket float64) float64 {
	p := b.Alpha*pModel + (1.0-b.Alpha)*pMarket
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
