package config

import (
	"os"
	"strconv"

	"hypotest/adapters/stats/varcov"
	"hypotest/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Stats    StatsConfig
}

// DatabaseConfig holds database connection settings. URL may be empty,
// in which case the application runs without persistence.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds data ingestion settings
type DataConfig struct {
	InputFile string
}

// StatsConfig holds the statistical defaults applied when a request
// does not specify its own.
type StatsConfig struct {
	Algorithm    varcov.Algorithm
	Correction   varcov.Correction
	Alpha        float64
	SweepWorkers int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	statsConfig, err := loadStatsConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stats configuration")
	}

	config := &Config{
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			InputFile: getEnvOrDefault("INPUT_FILE", ""),
		},
		Stats: *statsConfig,
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadStatsConfig() (*StatsConfig, error) {
	algo, err := varcov.ParseAlgorithm(getEnvOrDefault("STATS_ALGORITHM", string(varcov.AlgorithmTwoPass)))
	if err != nil {
		return nil, errors.ConfigInvalid("STATS_ALGORITHM is not a known algorithm")
	}

	mode, err := varcov.ParseCorrection(getEnvOrDefault("STATS_CORRECTION", string(varcov.CorrectionSample)))
	if err != nil {
		return nil, errors.ConfigInvalid("STATS_CORRECTION must be 'sample' or 'population'")
	}

	return &StatsConfig{
		Algorithm:    algo,
		Correction:   mode,
		Alpha:        getEnvFloatOrDefault("STATS_ALPHA", 0.05),
		SweepWorkers: int64(getEnvIntOrDefault("SWEEP_WORKERS", 4)),
	}, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Stats.Alpha <= 0 || config.Stats.Alpha >= 1 {
		return errors.ConfigInvalid("STATS_ALPHA must be between 0 and 1 exclusive")
	}
	if config.Stats.SweepWorkers < 1 {
		return errors.ConfigInvalid("SWEEP_WORKERS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
