// Package dataset acquires observation batches for the pipeline.
package dataset

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/models"
)

// Source supplies a complete observation batch
type Source interface {
	Name() string
	Load(ctx context.Context) (*models.Batch, error)
}

// NewSource builds the batch source selected by configuration
func NewSource(cfg *config.DataConfig, logger *logrus.Logger) (Source, error) {
	if logger == nil {
		logger = logrus.New()
	}
	switch cfg.Source {
	case "synthetic":
		return NewSyntheticSource(cfg.Games, cfg.Seed, logger), nil
	case "csv":
		return NewFileSource(cfg.Path, logger), nil
	case "http":
		return NewHTTPSource(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Source)
	}
}
