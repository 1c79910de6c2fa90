package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"adsopt/internal/errors"
	"adsopt/internal/logging"
	"adsopt/internal/strategies"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Limits     LimitsConfig
	Strategies StrategyConfig
	LogLevel   logging.LogLevel
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port              string
	GinMode           string
	MaxConcurrentRuns int
}

// LimitsConfig holds the in-memory ceilings applied to every run
type LimitsConfig struct {
	MaxRows       int
	MaxFileSizeMB int
}

// StrategyConfig holds strategy targets and the default selection
type StrategyConfig struct {
	TargetPortfolioID string
	TopPortfolioID    string
	Default           []string
}

// MaxFileSizeBytes converts the megabyte limit to bytes
func (l LimitsConfig) MaxFileSizeBytes() int64 {
	return int64(l.MaxFileSizeMB) << 20
}

// Options returns the strategy factory options
func (s StrategyConfig) Options() strategies.Options {
	return strategies.Options{
		TargetPortfolioID: s.TargetPortfolioID,
		TopPortfolioID:    s.TopPortfolioID,
	}
}

// Load reads a .env file when present, then configuration from the
// environment, and validates it
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables only
func FromEnv() (*Config, error) {
	config := &Config{
		Server:     loadServerConfig(),
		Limits:     loadLimitsConfig(),
		Strategies: loadStrategyConfig(),
		LogLevel:   logging.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:              getEnvOrDefault("PORT", "8080"),
		GinMode:           getEnvOrDefault("GIN_MODE", "release"),
		MaxConcurrentRuns: getEnvIntOrDefault("MAX_CONCURRENT_RUNS", 2),
	}
}

func loadLimitsConfig() LimitsConfig {
	return LimitsConfig{
		MaxRows:       getEnvIntOrDefault("MAX_ROWS", 200000),
		MaxFileSizeMB: getEnvIntOrDefault("MAX_FILE_SIZE_MB", 50),
	}
}

func loadStrategyConfig() StrategyConfig {
	return StrategyConfig{
		TargetPortfolioID: getEnvOrDefault("TARGET_PORTFOLIO_ID", strategies.DefaultTargetPortfolioID),
		TopPortfolioID:    getEnvOrDefault("TOP_PORTFOLIO_ID", strategies.DefaultTopPortfolioID),
		Default:           strategies.ParseNames(getEnvOrDefault("DEFAULT_STRATEGIES", "")),
	}
}

func validateConfig(config *Config) error {
	if config.Limits.MaxRows <= 0 {
		return errors.ConfigInvalid("MAX_ROWS must be positive")
	}
	if config.Limits.MaxFileSizeMB <= 0 {
		return errors.ConfigInvalid("MAX_FILE_SIZE_MB must be positive")
	}
	if config.Server.MaxConcurrentRuns <= 0 {
		return errors.ConfigInvalid("MAX_CONCURRENT_RUNS must be positive")
	}
	if strings.TrimSpace(config.Strategies.TargetPortfolioID) == "" {
		return errors.ConfigInvalid("TARGET_PORTFOLIO_ID is required")
	}
	if strings.TrimSpace(config.Strategies.TopPortfolioID) == "" {
		return errors.ConfigInvalid("TOP_PORTFOLIO_ID is required")
	}
	for _, name := range config.Strategies.Default {
		if _, err := strategies.GetStrategy(name, config.Strategies.Options()); err != nil {
			return errors.ConfigInvalid("DEFAULT_STRATEGIES: " + err.Error())
		}
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
