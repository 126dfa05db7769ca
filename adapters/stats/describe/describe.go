// Package describe computes univariate summary statistics for samples.
package describe

import (
	"math"

	"github.com/montanaflynn/stats"

	"hypotest/adapters/stats/varcov"
	"hypotest/domain/sample"
)

// Summary holds the descriptive statistics for a single sample.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	StdErr   float64 `json:"std_err"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// Summarize computes the full descriptive summary of one sample.
// The variance follows the requested correction mode; quantiles and
// extremes come from montanaflynn/stats.
func Summarize(xs sample.Sample, mode varcov.Correction) (Summary, error) {
	if err := xs.Validate("sample"); err != nil {
		return Summary{}, err
	}

	variance, err := varcov.Variance(xs, varcov.AlgorithmTwoPass, mode)
	if err != nil {
		return Summary{}, err
	}

	data := stats.Float64Data(xs)

	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, err
	}

	min, err := stats.Min(data)
	if err != nil {
		return Summary{}, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return Summary{}, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, err
	}

	q25, err := stats.Percentile(data, 25)
	if err != nil {
		return Summary{}, err
	}

	q75, err := stats.Percentile(data, 75)
	if err != nil {
		return Summary{}, err
	}

	stdDev := math.Sqrt(variance)
	n := len(xs)

	return Summary{
		Count:    n,
		Mean:     mean,
		Variance: variance,
		StdDev:   stdDev,
		StdErr:   stdDev / math.Sqrt(float64(n)),
		Min:      min,
		Max:      max,
		Median:   median,
		Q25:      q25,
		Q75:      q75,
		Skewness: skewness(xs, mean, stdDev),
		Kurtosis: kurtosis(xs, mean, stdDev),
	}, nil
}

// skewness is the third standardized moment of the sample.
func skewness(xs []float64, mean, stdDev float64) float64 {
	if stdDev == 0 || len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		z := (x - mean) / stdDev
		sum += z * z * z
	}
	return sum / float64(len(xs))
}

// kurtosis is the excess kurtosis, zero for a normal distribution.
func kurtosis(xs []float64, mean, stdDev float64) float64 {
	if stdDev == 0 || len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		z := (x - mean) / stdDev
		sum += z * z * z * z
	}
	return sum/float64(len(xs)) - 3
}
