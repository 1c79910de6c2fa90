package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsopt/internal/errors"
	"adsopt/internal/logging"
	"adsopt/internal/strategies"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "LOG_LEVEL", "MAX_ROWS", "MAX_FILE_SIZE_MB",
		"MAX_CONCURRENT_RUNS", "TARGET_PORTFOLIO_ID", "TOP_PORTFOLIO_ID", "DEFAULT_STRATEGIES"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 200000, cfg.Limits.MaxRows)
	assert.Equal(t, int64(50<<20), cfg.Limits.MaxFileSizeBytes())
	assert.Equal(t, strategies.DefaultTargetPortfolioID, cfg.Strategies.TargetPortfolioID)
	assert.Equal(t, strategies.DefaultTopPortfolioID, cfg.Strategies.TopPortfolioID)
	assert.Empty(t, cfg.Strategies.Default)
	assert.Equal(t, logging.LogLevelInfo, cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MAX_ROWS", "10")
	t.Setenv("TARGET_PORTFOLIO_ID", "111")
	t.Setenv("DEFAULT_STRATEGIES", "empty_portfolios, top_campaigns")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Limits.MaxRows)
	assert.Equal(t, "111", cfg.Strategies.Options().TargetPortfolioID)
	assert.Equal(t, []string{"empty_portfolios", "top_campaigns"}, cfg.Strategies.Default)
	assert.Equal(t, logging.LogLevelDebug, cfg.LogLevel)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"negative rows", "MAX_ROWS", "-1"},
		{"zero runs", "MAX_CONCURRENT_RUNS", "0"},
		{"unknown default strategy", "DEFAULT_STRATEGIES", "does_not_exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
