// Package main provides the entry point for the probability pipeline CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/export"
	applogger "github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/pipeline"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		input      = flag.String("input", "", "Override batch CSV path (implies csv source)")
		outputDir  = flag.String("output", "", "Override export output directory")
		alpha      = flag.Float64("alpha", -1, "Override market blend weight (0..1)")
		seed       = flag.Int64("seed", -1, "Override split and generator seed")
		jsonExport = flag.Bool("json-export", false, "Enable full-result JSON export")
	)
	flag.Parse()

	cfg := loadConfigWithSecrets(*configPath)
	applyOverrides(cfg, *input, *outputDir, *alpha, *seed, *jsonExport)

	logger := applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	metrics.InitRegistry()
	if cfg.Metrics.Enabled {
		serveMetrics(cfg, logger)
	}

	ctx := context.Background()

	source, err := dataset.NewSource(&cfg.Data, logger)
	if err != nil {
		logger.Fatalf("Failed to build data source: %v", err)
	}
	batch, err := source.Load(ctx)
	if err != nil {
		logger.Fatalf("Failed to load batch from %s source: %v", source.Name(), err)
	}

	engine, err := pipeline.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create pipeline engine: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"source":       source.Name(),
		"observations": batch.Size(),
		"blend_alpha":  cfg.Model.BlendAlpha,
	}).Info("Starting pipeline run")

	result, err := engine.Run(ctx, batch)
	if err != nil {
		logger.Fatalf("Pipeline run failed: %v", err)
	}

	fmt.Print(export.GenerateConsoleReport(result))

	if err := export.WriteRecommendations(batch, result, cfg.RecommendationsPath()); err != nil {
		logger.Fatalf("Failed to export recommendations: %v", err)
	}
	if err := export.WriteSummary(result, cfg.SummaryPath()); err != nil {
		logger.Fatalf("Failed to export metrics summary: %v", err)
	}
	if cfg.Export.JSONEnabled {
		if err := export.WriteJSON(result, cfg.JSONPath()); err != nil {
			logger.Fatalf("Failed to export JSON result: %v", err)
		}
	}

	logger.WithFields(logrus.Fields{
		"run_id":          result.RunID,
		"recommendations": result.RecommendedCount(),
		"output_dir":      cfg.Export.OutputDir,
	}).Info("Pipeline run completed")
}

func loadConfigWithSecrets(path string) *config.Config {
	bootstrap := logrus.New()

	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		bootstrap.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			bootstrap.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			bootstrap.Fatalf("Failed to load secrets: %v", err)
		}
	}
	return cfg
}

func applyOverrides(cfg *config.Config, input string, outputDir string, alpha float64, seed int64, jsonExport bool) {
	if input != "" {
		cfg.Data.Source = "csv"
		cfg.Data.Path = input
	}
	if outputDir != "" {
		cfg.Export.OutputDir = outputDir
	}
	if alpha >= 0 {
		cfg.Model.BlendAlpha = alpha
	}
	if seed >= 0 {
		cfg.Model.Seed = seed
		cfg.Data.Seed = seed
	}
	if jsonExport {
		cfg.Export.JSONEnabled = true
	}
}

func serveMetrics(cfg *config.Config, logger *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)

	go func() {
		logger.WithField("addr", addr).Info("Metrics endpoint listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.WithError(err).Error("Metrics endpoint stopped")
		}
	}()
}
