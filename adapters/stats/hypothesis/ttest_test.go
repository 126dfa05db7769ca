package hypothesis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/sample"
)

var (
	salaryA = sample.Sample{139750, 173200, 79750, 11500, 141500}
	salaryB = sample.Sample{103450, 124750, 137000, 89565, 102580}
)

func TestTwoSampleTTest_Welch(t *testing.T) {
	res, err := TwoSampleTTest(salaryA, salaryB, TTestConfig{})
	require.NoError(t, err)

	assert.InDelta(t, -0.0777706596927502, res.Statistic, 1e-10)
	assert.InDelta(t, 4.6988869947024385, res.DF, 1e-10)
	assert.InDelta(t, 0.9412124846808521, res.PValue, 1e-9)
	assert.InDelta(t, -80817.976, res.ConfidenceLow, 1e-2)
	assert.InDelta(t, 76159.976, res.ConfidenceHigh, 1e-2)
	assert.False(t, res.Reject)
	assert.Equal(t, "two-sample Welch t-test", res.Method)
	assert.NotEmpty(t, res.ID)
}

func TestTwoSampleTTest_Pooled(t *testing.T) {
	res, err := TwoSampleTTest(salaryA, salaryB, TTestConfig{EqualVar: true})
	require.NoError(t, err)

	// Equal sample sizes make the pooled statistic match Welch.
	assert.InDelta(t, -0.0777706596927502, res.Statistic, 1e-10)
	assert.Equal(t, 8.0, res.DF)
	assert.InDelta(t, 0.9399204496559004, res.PValue, 1e-9)
}

func TestOneSampleTTest(t *testing.T) {
	res, err := OneSampleTTest(salaryA, TTestConfig{Mu: 100000})
	require.NoError(t, err)

	assert.InDelta(t, 0.31835708394701717, res.Statistic, 1e-10)
	assert.Equal(t, 4.0, res.DF)
	assert.InDelta(t, 0.7661431476893892, res.PValue, 1e-9)
	assert.InDelta(t, 109140.0, res.Mean1, 1e-9)
}

func TestPairedTTest(t *testing.T) {
	res, err := PairedTTest(salaryA, salaryB, TTestConfig{})
	require.NoError(t, err)

	assert.InDelta(t, -0.08642407139570316, res.Statistic, 1e-10)
	assert.Equal(t, 4.0, res.DF)
	assert.InDelta(t, 0.93528261030923, res.PValue, 1e-9)
	assert.Equal(t, "paired t-test", res.Test)
}

func TestTTest_OneSidedPValuesSum(t *testing.T) {
	greater, err := TwoSampleTTest(salaryA, salaryB, TTestConfig{Alternative: Greater})
	require.NoError(t, err)
	less, err := TwoSampleTTest(salaryA, salaryB, TTestConfig{Alternative: Less})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, greater.PValue+less.PValue, 1e-12)
	assert.True(t, math.IsInf(greater.ConfidenceHigh, 1))
	assert.True(t, math.IsInf(less.ConfidenceLow, -1))
}

func TestTTest_Errors(t *testing.T) {
	_, err := OneSampleTTest(sample.Sample{1}, TTestConfig{})
	assert.Error(t, err)

	_, err = TwoSampleTTest(sample.Sample{1, 2, 3}, sample.Sample{}, TTestConfig{})
	assert.Error(t, err)

	_, err = PairedTTest(sample.Sample{1, 2, 3}, sample.Sample{1, 2}, TTestConfig{})
	assert.Error(t, err)

	_, err = OneSampleTTest(salaryA, TTestConfig{Alternative: "sideways"})
	assert.Error(t, err)

	_, err = OneSampleTTest(salaryA, TTestConfig{Alpha: 1.5})
	assert.Error(t, err)

	_, err = TwoSampleTTest(sample.Sample{2, 2, 2}, sample.Sample{3, 3, 3}, TTestConfig{})
	assert.Error(t, err)
}
