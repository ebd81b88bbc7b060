// Package main provides the synthetic batch simulation CLI.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/export"
	applogger "github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/pipeline"
)

var (
	configFile string
	games      int
	seed       int64
	outputPath string
	logger     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().IntVarP(&games, "games", "g", 0, "Number of games to simulate (0 uses config)")
	rootCmd.PersistentFlags().Int64VarP(&seed, "seed", "s", -1, "Generator seed (-1 uses config)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "./output/synthetic_batch.csv", "Batch CSV output path")
}

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the probability pipeline against simulated game batches",
	Long:  `Generate seeded synthetic game batches and run them through base estimation, calibration, market blending and stake sizing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg.Data.Source = "synthetic"
		if games > 0 {
			cfg.Data.Games = games
		}
		if seed >= 0 {
			cfg.Data.Seed = seed
			cfg.Model.Seed = seed
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulated batch through the full pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return runSimulation(ctx)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a simulated batch to CSV without running the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return generateBatch(ctx)
	},
}

func main() {
	rootCmd.AddCommand(runCmd, generateCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runSimulation(ctx context.Context) error {
	metrics.InitRegistry()

	source := dataset.NewSyntheticSource(cfg.Data.Games, cfg.Data.Seed, logger)
	batch, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate batch: %w", err)
	}

	engine, err := pipeline.NewEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline engine: %w", err)
	}

	result, err := engine.Run(ctx, batch)
	if err != nil {
		logger.WithError(err).Error("Simulation run failed")
		return err
	}

	fmt.Print(export.GenerateConsoleReport(result))
	return nil
}

func generateBatch(ctx context.Context) error {
	source := dataset.NewSyntheticSource(cfg.Data.Games, cfg.Data.Seed, logger)
	batch, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate batch: %w", err)
	}

	if err := dataset.WriteBatchCSV(batch, outputPath); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}

	fmt.Printf("Wrote %d simulated games to %s\n", batch.Size(), outputPath)
	return nil
}
