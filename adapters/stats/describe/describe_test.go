package describe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"hypotest/adapters/stats/varcov"
	"hypotest/domain/sample"
)

func TestSummarize_Basic(t *testing.T) {
	xs := sample.Sample{2, 4, 4, 4, 5, 5, 7, 9}

	s, err := Summarize(xs, varcov.CorrectionPopulation)
	assert.NoError(t, err)

	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 4.0, s.Variance, 1e-12)
	assert.InDelta(t, 2.0, s.StdDev, 1e-12)
	assert.InDelta(t, 2.0/math.Sqrt(8), s.StdErr, 1e-12)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 4.5, s.Median, 1e-12)
}

func TestSummarize_SampleCorrection(t *testing.T) {
	xs := sample.Sample{1, 2, 3, 4, 5}

	s, err := Summarize(xs, varcov.CorrectionSample)
	assert.NoError(t, err)
	assert.InDelta(t, 2.5, s.Variance, 1e-12)
}

func TestSummarize_SymmetricSkewness(t *testing.T) {
	xs := sample.Sample{1, 2, 3, 4, 5, 6, 7}

	s, err := Summarize(xs, varcov.CorrectionPopulation)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, s.Skewness, 1e-12)
}

func TestSummarize_RightSkew(t *testing.T) {
	xs := sample.Sample{1, 1, 1, 1, 1, 1, 1, 1, 1, 10}

	s, err := Summarize(xs, varcov.CorrectionPopulation)
	assert.NoError(t, err)
	assert.Greater(t, s.Skewness, 1.0)
}

func TestSummarize_ConstantSample(t *testing.T) {
	xs := sample.Sample{3, 3, 3, 3}

	s, err := Summarize(xs, varcov.CorrectionPopulation)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, s.Variance)
	assert.Equal(t, 0.0, s.Skewness)
	assert.Equal(t, 0.0, s.Kurtosis)
}

func TestSummarize_Invalid(t *testing.T) {
	_, err := Summarize(sample.Sample{}, varcov.CorrectionSample)
	assert.Error(t, err)

	_, err = Summarize(sample.Sample{1, math.NaN()}, varcov.CorrectionSample)
	assert.Error(t, err)
}
