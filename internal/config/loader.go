// Package config provides configuration management for the Diamond Edge pipeline.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "DIAMOND_EDGE"

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration, falling back to pipeline defaults for
// any field the file or environment does not set. A missing file is not an
// error; defaults plus environment variables are enough to run the demo.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "diamond-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Model defaults match the reference batch: 25% holdout, seed 42,
	// market blend weight 0.7.
	v.SetDefault("model.seed", 42)
	v.SetDefault("model.test_fraction", 0.25)
	v.SetDefault("model.blend_alpha", 0.7)
	v.SetDefault("model.learning_rate", 0.1)
	v.SetDefault("model.iterations", 2000)
	v.SetDefault("model.calibration_holdout", false)

	v.SetDefault("staking.bankroll", 1000)
	v.SetDefault("staking.kelly_multiplier", 0.25)
	v.SetDefault("staking.min_expected_value", 0.02)
	v.SetDefault("staking.max_stake_per_bet", 50)

	v.SetDefault("data.source", "synthetic")
	v.SetDefault("data.games", 250)
	v.SetDefault("data.seed", 42)
	v.SetDefault("data.timeout_seconds", 30)
	v.SetDefault("data.max_retries", 5)
	v.SetDefault("data.rate_limit", 10.0)

	v.SetDefault("export.output_dir", "./output")
	v.SetDefault("export.recommendations_file", "bet_recommendations.csv")
	v.SetDefault("export.summary_file", "model_summary.csv")
	v.SetDefault("export.json_enabled", false)
	v.SetDefault("export.json_file", "pipeline_result.json")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
