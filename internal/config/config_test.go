package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/adapters/stats/varcov"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, varcov.AlgorithmTwoPass, cfg.Stats.Algorithm)
	assert.Equal(t, varcov.CorrectionSample, cfg.Stats.Correction)
	assert.Equal(t, 0.05, cfg.Stats.Alpha)
	assert.Equal(t, int64(4), cfg.Stats.SweepWorkers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STATS_ALGORITHM", "welford")
	t.Setenv("STATS_CORRECTION", "population")
	t.Setenv("STATS_ALPHA", "0.01")
	t.Setenv("SWEEP_WORKERS", "8")
	t.Setenv("INPUT_FILE", "data.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, varcov.AlgorithmWelford, cfg.Stats.Algorithm)
	assert.Equal(t, varcov.CorrectionPopulation, cfg.Stats.Correction)
	assert.Equal(t, 0.01, cfg.Stats.Alpha)
	assert.Equal(t, int64(8), cfg.Stats.SweepWorkers)
	assert.Equal(t, "data.xlsx", cfg.Data.InputFile)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STATS_ALGORITHM", "kahan")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidAlpha(t *testing.T) {
	t.Setenv("STATS_ALPHA", "1.2")
	_, err := Load()
	assert.Error(t, err)
}
