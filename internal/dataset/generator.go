package dataset

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/models"
)

// Feature differentials of the simulated historical batch: away minus home
// starter xFIP, strikeout-minus-walk rate, lineup wRC+ versus pitcher hand,
// and park factor relative to neutral.
var syntheticFeatureNames = []string{"delta_xfip", "delta_kbb", "delta_wrc", "delta_park"}

var moneylineChoices = []int{-120, -130, -110, 100, 110}

// SyntheticSource generates a seeded simulated historical batch
type SyntheticSource struct {
	games  int
	seed   int64
	logger *logrus.Logger
}

// NewSyntheticSource creates a synthetic batch source
func NewSyntheticSource(games int, seed int64, logger *logrus.Logger) *SyntheticSource {
	return &SyntheticSource{games: games, seed: seed, logger: logger}
}

// Name returns the source name
func (s *SyntheticSource) Name() string {
	return "synthetic"
}

// Load generates the batch. The generator is seeded per call, so identical
// configuration reproduces the identical batch.
func (s *SyntheticSource) Load(ctx context.Context) (*models.Batch, error) {
	_ = ctx
	rng := rand.New(rand.NewSource(s.seed))

	observations := make([]*models.Observation, s.games)
	for i := 0; i < s.games; i++ {
		awayXFIP := rng.NormFloat64()*0.4 + 3.8
		homeXFIP := rng.NormFloat64()*0.4 + 3.9
		awayKBB := rng.NormFloat64()*2.5 + 18
		homeKBB := rng.NormFloat64()*2.5 + 17
		awayWRC := rng.NormFloat64()*10 + 108
		homeWRC := rng.NormFloat64()*10 + 104
		park := rng.NormFloat64()*3 + 100

		outcome := 0
		if rng.Float64() > 0.47 {
			outcome = 1
		}

		observations[i] = &models.Observation{
			ID:    uuid.New(),
			Label: fmt.Sprintf("Game %03d", i+1),
			Features: []float64{
				awayXFIP - homeXFIP,
				awayKBB - homeKBB,
				awayWRC - homeWRC,
				park - 100,
			},
			Odds:    moneylineChoices[rng.Intn(len(moneylineChoices))],
			Outcome: &outcome,
		}
	}

	s.logger.WithFields(logrus.Fields{
		"games": s.games,
		"seed":  s.seed,
	}).Info("Synthetic batch generated")

	return models.NewBatch(syntheticFeatureNames, observations), nil
}
