package config

import (
	"os"
	"strconv"

	"statscope/domain/analysis"
	"statscope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analyzer analysis.AnalyzerConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds report store settings. The database is optional:
// with no URL configured reports are kept in memory only.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Analyzer: loadAnalyzerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// loadAnalyzerConfig reads analysis thresholds, falling back to the
// engine defaults for anything unset.
func loadAnalyzerConfig() analysis.AnalyzerConfig {
	cfg := analysis.DefaultAnalyzerConfig()

	if mode := os.Getenv("EXPLAIN_MODE"); mode != "" {
		cfg.ExplainMode = analysis.ExplainMode(mode)
	}
	cfg.MissingnessThreshold = getEnvFloatOrDefault("MISSINGNESS_THRESHOLD", cfg.MissingnessThreshold)
	cfg.StrongCorrelationThreshold = getEnvFloatOrDefault("STRONG_CORRELATION_THRESHOLD", cfg.StrongCorrelationThreshold)
	cfg.ModerateCorrelationThreshold = getEnvFloatOrDefault("MODERATE_CORRELATION_THRESHOLD", cfg.ModerateCorrelationThreshold)
	cfg.OutlierFenceMultiplier = getEnvFloatOrDefault("OUTLIER_FENCE_MULTIPLIER", cfg.OutlierFenceMultiplier)
	cfg.IdentifierUniquenessRatio = getEnvFloatOrDefault("IDENTIFIER_UNIQUENESS_RATIO", cfg.IdentifierUniquenessRatio)
	cfg.TypeParseThreshold = getEnvFloatOrDefault("TYPE_PARSE_THRESHOLD", cfg.TypeParseThreshold)
	cfg.MinOutlierSample = getEnvIntOrDefault("MIN_OUTLIER_SAMPLE", cfg.MinOutlierSample)
	cfg.MinCorrelationSample = getEnvIntOrDefault("MIN_CORRELATION_SAMPLE", cfg.MinCorrelationSample)

	// Stage constructors normalize; invalid modes are rejected by validateConfig
	return cfg
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	mode := config.Analyzer.ExplainMode
	if mode != analysis.ExplainTechnical && mode != analysis.ExplainPlain {
		return errors.ConfigInvalid("EXPLAIN_MODE must be technical or plain")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
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
