package hypothesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/sample"
)

func TestMannWhitney_SalaryExample(t *testing.T) {
	res, err := MannWhitney(salaryA, salaryB, MannWhitneyConfig{Continuity: true})
	require.NoError(t, err)

	assert.Equal(t, 10.0, res.U)
	assert.Equal(t, 13.0, res.MeanRank)
	assert.InDelta(t, 4.7871355387816905, res.Sigma, 1e-10)
	assert.InDelta(t, 0.6266795614405122, res.Z, 1e-10)
	assert.InDelta(t, 0.5308693039685082, res.PValue, 1e-10)
	assert.InDelta(t, 0.19817347772274488, res.EffectSize, 1e-10)

	// n1=n2=5 is inside the table coverage, so the decision is exact.
	require.NotNil(t, res.CriticalValue)
	assert.Equal(t, 2.0, *res.CriticalValue)
	assert.False(t, res.Reject)
}

func TestMannWhitney_WithoutContinuity(t *testing.T) {
	res, err := MannWhitney(salaryA, salaryB, MannWhitneyConfig{})
	require.NoError(t, err)
	assert.Equal(t, 12.5, res.MeanRank)
}

func TestMannWhitney_SeparatedSamples(t *testing.T) {
	low := sample.Sample{1, 2, 3, 4, 5, 6, 7, 8}
	high := sample.Sample{101, 102, 103, 104, 105, 106, 107, 108}

	res, err := MannWhitney(low, high, MannWhitneyConfig{Continuity: true})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.U)
	require.NotNil(t, res.CriticalValue)
	assert.True(t, res.Reject)
}

func TestWilcoxonPaired_SalaryExample(t *testing.T) {
	res, err := WilcoxonPaired(salaryA, salaryB, WilcoxonConfig{})
	require.NoError(t, err)

	assert.Equal(t, 6.0, res.V)
	assert.Equal(t, 5, res.N)
	assert.InDelta(t, -0.40451991747794525, res.Z, 1e-10)
	assert.InDelta(t, 0.6858304344516057, res.PValue, 1e-10)

	// n=5 has no two-tailed rejection region at 0.05.
	assert.Nil(t, res.CriticalValue)
	assert.False(t, res.Reject)
}

func TestWilcoxonSignedRank_OneSample(t *testing.T) {
	xs := sample.Sample{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

	res, err := WilcoxonSignedRank(xs, WilcoxonConfig{Mu: 10})
	require.NoError(t, err)

	// Every difference is positive, so V is the full rank sum.
	assert.Equal(t, 55.0, res.V)
	require.NotNil(t, res.CriticalValue)
	assert.Equal(t, 8.0, *res.CriticalValue)
	assert.True(t, res.Reject)
}

func TestWilcoxonSignedRank_DropsZeroDifferences(t *testing.T) {
	xs := sample.Sample{10, 10, 11, 12, 9}

	res, err := WilcoxonSignedRank(xs, WilcoxonConfig{Mu: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, res.N)
}

func TestWilcoxonSignedRank_AllZero(t *testing.T) {
	xs := sample.Sample{10, 10, 10}
	_, err := WilcoxonSignedRank(xs, WilcoxonConfig{Mu: 10})
	assert.Error(t, err)
}

func TestKruskalWallis_PlantGrowthSubset(t *testing.T) {
	groups := []sample.Group{
		{Label: "ctrl", Values: sample.Sample{4.17, 5.58, 5.18}},
		{Label: "trt1", Values: sample.Sample{4.81, 4.17, 4.41}},
		{Label: "trt2", Values: sample.Sample{5.31, 5.12, 5.54}},
	}

	res, err := KruskalWallis(groups, KruskalConfig{})
	require.NoError(t, err)

	assert.InDelta(t, 3.1148459383753497, res.Statistic, 1e-10)
	assert.Equal(t, 2.0, res.DF)
	assert.InDelta(t, 0.21067829669685478, res.PValue, 1e-9)
	assert.InDelta(t, 2.4469118487916806, res.TCritical, 1e-6)
	assert.InDelta(t, 4.916428084371546, res.LeastSignificantDifference, 1e-6)
	assert.False(t, res.Reject)
	require.NotNil(t, res.CriticalValue)
	assert.InDelta(t, 5.991, *res.CriticalValue, 1e-3)
}

func TestKruskalWallis_FullPlantGrowth(t *testing.T) {
	groups := []sample.Group{
		{Label: "ctrl", Values: sample.Sample{4.17, 5.58, 5.18, 6.11, 4.50, 4.61, 5.17, 4.53, 5.33, 5.14}},
		{Label: "trt1", Values: sample.Sample{4.81, 4.17, 4.41, 3.59, 5.87, 3.83, 6.03, 4.89, 4.32, 4.69}},
		{Label: "trt2", Values: sample.Sample{6.31, 5.12, 5.54, 5.50, 5.37, 5.29, 4.92, 6.15, 5.80, 5.26}},
	}

	res, err := KruskalWallis(groups, KruskalConfig{})
	require.NoError(t, err)

	assert.InDelta(t, 7.988228749443715, res.Statistic, 1e-9)
	assert.True(t, res.Reject)
}

func TestKruskalWallis_TwoGroupsMatchesRankSum(t *testing.T) {
	groups := []sample.Group{
		{Label: "a", Values: salaryA},
		{Label: "b", Values: salaryB},
	}

	res, err := KruskalWallis(groups, KruskalConfig{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.DF)
	assert.False(t, res.Reject)
}

func TestKruskalWallis_Errors(t *testing.T) {
	_, err := KruskalWallis([]sample.Group{{Label: "only", Values: sample.Sample{1, 2}}}, KruskalConfig{})
	assert.Error(t, err)

	groups := []sample.Group{
		{Label: "a", Values: sample.Sample{1, 1}},
		{Label: "b", Values: sample.Sample{1, 1}},
	}
	_, err = KruskalWallis(groups, KruskalConfig{})
	assert.Error(t, err)
}
