package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/models"
)

var validate = validator.New()

// FileSource loads an observation batch from a delimited file on disk
type FileSource struct {
	path   string
	logger *logrus.Logger
}

// NewFileSource creates a CSV file batch source
func NewFileSource(path string, logger *logrus.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Name returns the source name
func (s *FileSource) Name() string {
	return "csv"
}

// Load reads and parses the batch file
func (s *FileSource) Load(ctx context.Context) (*models.Batch, error) {
	_ = ctx
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer file.Close()

	batch, err := ParseBatchCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", s.path, err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":         s.path,
		"observations": batch.Size(),
		"features":     len(batch.FeatureNames),
	}).Info("Batch file loaded")

	return batch, nil
}

// ParseBatchCSV parses an observation batch from CSV. Column naming is
// flexible, semantics fixed: an "odds" column is required, "outcome" and a
// text "label"/"game" column are optional, every remaining column is read as
// a numeric feature differential.
func ParseBatchCSV(r io.Reader) (*models.Batch, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	oddsCol := -1
	outcomeCol := -1
	labelCol := -1
	var featureCols []int
	var featureNames []string

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "odds", "moneyline":
			oddsCol = i
		case "outcome", "result":
			outcomeCol = i
		case "label", "game", "matchup":
			labelCol = i
		case "id":
			// Row identities are assigned fresh on load.
		default:
			featureCols = append(featureCols, i)
			featureNames = append(featureNames, strings.TrimSpace(name))
		}
	}

	if oddsCol < 0 {
		return nil, fmt.Errorf("batch is missing an odds column")
	}
	if len(featureCols) == 0 {
		return nil, fmt.Errorf("batch has no feature columns")
	}

	var observations []*models.Observation
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		obs, err := parseObservation(record, oddsCol, outcomeCol, labelCol, featureCols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if err := validate.Struct(obs); err != nil {
			return nil, fmt.Errorf("row %d failed validation: %w", row, err)
		}
		observations = append(observations, obs)
		row++
	}

	if len(observations) == 0 {
		return nil, models.ErrInsufficientData
	}

	return models.NewBatch(featureNames, observations), nil
}

func parseObservation(record []string, oddsCol, outcomeCol, labelCol int, featureCols []int) (*models.Observation, error) {
	oddsValue, err := strconv.Atoi(strings.TrimSpace(record[oddsCol]))
	if err != nil {
		return nil, fmt.Errorf("invalid odds value %q: %w", record[oddsCol], err)
	}
	if oddsValue == 0 {
		return nil, models.ErrInvalidOdds
	}

	features := make([]float64, len(featureCols))
	for i, col := range featureCols {
		value, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid feature value %q: %w", record[col], err)
		}
		features[i] = value
	}

	obs := &models.Observation{
		ID:       uuid.New(),
		Features: features,
		Odds:     oddsValue,
	}

	if labelCol >= 0 {
		obs.Label = strings.TrimSpace(record[labelCol])
	}

	if outcomeCol >= 0 {
		raw := strings.TrimSpace(record[outcomeCol])
		if raw != "" {
			outcome, err := strconv.Atoi(raw)
			if err != nil || (outcome != 0 && outcome != 1) {
				return nil, fmt.Errorf("invalid outcome value %q", raw)
			}
			obs.Outcome = &outcome
		}
	}

	return obs, nil
}
