// Package config provides configuration management for the Diamond Edge pipeline.
package config

import (
	"path/filepath"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Model   ModelConfig   `mapstructure:"model" validate:"required"`
	Staking StakingConfig `mapstructure:"staking" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Export  ExportConfig  `mapstructure:"export" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ModelConfig represents probability model configuration
type ModelConfig struct {
	Seed               int64   `mapstructure:"seed"`
	TestFraction       float64 `mapstructure:"test_fraction" validate:"required,gt=0,lt=1"`
	BlendAlpha         float64 `mapstructure:"blend_alpha" validate:"gte=0,lte=1"`
	LearningRate       float64 `mapstructure:"learning_rate" validate:"required,gt=0"`
	Iterations         int     `mapstructure:"iterations" validate:"required,gt=0"`
	CalibrationHoldout bool    `mapstructure:"calibration_holdout"`
}

// StakingConfig represents stake sizing and risk configuration
type StakingConfig struct {
	Bankroll         float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	KellyMultiplier  float64 `mapstructure:"kelly_multiplier" validate:"required,gt=0,lte=1"`
	MinExpectedValue float64 `mapstructure:"min_expected_value" validate:"gte=0"`
	MaxStakePerBet   float64 `mapstructure:"max_stake_per_bet" validate:"gte=0"`
}

// DataConfig represents observation batch source configuration
type DataConfig struct {
	Source         string  `mapstructure:"source" validate:"required,oneof=synthetic csv http"`
	Path           string  `mapstructure:"path"`
	URL            string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	Games          int     `mapstructure:"games" validate:"omitempty,gt=0"`
	Seed           int64   `mapstructure:"seed"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"omitempty,gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
}

// ExportConfig represents flat tabular export configuration
type ExportConfig struct {
	OutputDir           string `mapstructure:"output_dir" validate:"required"`
	RecommendationsFile string `mapstructure:"recommendations_file" validate:"required"`
	SummaryFile         string `mapstructure:"summary_file" validate:"required"`
	JSONEnabled         bool   `mapstructure:"json_enabled"`
	JSONFile            string `mapstructure:"json_file"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// RecommendationsPath returns the full path of the recommendations export
func (c *Config) RecommendationsPath() string {
	return filepath.Join(c.Export.OutputDir, c.Export.RecommendationsFile)
}

// SummaryPath returns the full path of the metrics summary export
func (c *Config) SummaryPath() string {
	return filepath.Join(c.Export.OutputDir, c.Export.SummaryFile)
}

// JSONPath returns the full path of the JSON result export
func (c *Config) JSONPath() string {
	return filepath.Join(c.Export.OutputDir, c.Export.JSONFile)
}
