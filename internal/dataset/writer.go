package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/yourusername/diamond-edge/internal/models"
)

// WriteBatchCSV writes a batch to disk in the layout ParseBatchCSV reads back
func WriteBatchCSV(batch *models.Batch, outputPath string) error {
	if batch == nil || batch.Size() == 0 {
		return models.ErrInsufficientData
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create batch file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := append([]string{"label"}, batch.FeatureNames...)
	header = append(header, "odds", "outcome")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, obs := range batch.Observations {
		row := make([]string, 0, len(header))
		row = append(row, obs.Label)
		for _, feature := range obs.Features {
			row = append(row, strconv.FormatFloat(feature, 'f', 4, 64))
		}
		row = append(row, strconv.Itoa(obs.Odds))
		if obs.Outcome != nil {
			row = append(row, strconv.Itoa(*obs.Outcome))
		} else {
			row = append(row, "")
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
