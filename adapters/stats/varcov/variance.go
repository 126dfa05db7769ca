package varcov

import (
	"math"

	"hypotest/domain/core"
	"hypotest/domain/sample"
)

// pairwiseBase is the partition size below which the pairwise recursion
// switches to a direct Welford pass.
const pairwiseBase = 128

// Variance computes the variance of xs using the selected algorithm and
// correction mode.
func Variance(xs []float64, algo Algorithm, mode Correction) (float64, error) {
	if err := sample.Sample(xs).Validate("sample"); err != nil {
		return 0, err
	}
	if _, err := divisor(len(xs), mode); err != nil {
		return 0, err
	}

	switch algo {
	case AlgorithmNaive:
		return varianceNaive(xs, mode)
	case AlgorithmTwoPass:
		return varianceTwoPass(xs, mode)
	case AlgorithmWelford:
		return varianceWelford(xs, mode)
	case AlgorithmPairwise:
		return variancePairwise(xs, mode)
	default:
		return 0, core.NewUnsupportedAlgorithmError("variance algorithm", string(algo))
	}
}

// StdDev is the square root of Variance.
func StdDev(xs []float64, algo Algorithm, mode Correction) (float64, error) {
	v, err := Variance(xs, algo, mode)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Mean computes the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if err := sample.Sample(xs).Validate("sample"); err != nil {
		return 0, err
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), nil
}

func varianceNaive(xs []float64, mode Correction) (float64, error) {
	var sum, sumSq float64
	for _, x := range xs {
		sum += x
		sumSq += x * x
	}

	n := float64(len(xs))
	div, err := divisor(len(xs), mode)
	if err != nil {
		return 0, err
	}
	return (sumSq - sum*sum/n) / div, nil
}

func varianceTwoPass(xs []float64, mode Correction) (float64, error) {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}

	div, err := divisor(len(xs), mode)
	if err != nil {
		return 0, err
	}
	return ss / div, nil
}

func varianceWelford(xs []float64, mode Correction) (float64, error) {
	return Summarize(xs).Variance(mode)
}

func variancePairwise(xs []float64, mode Correction) (float64, error) {
	return pairwiseMoments(xs).Variance(mode)
}

// pairwiseMoments recursively halves xs and combines the per-half
// summaries. Correctness does not depend on where the splits fall.
func pairwiseMoments(xs []float64) Moments {
	if len(xs) <= pairwiseBase {
		return Summarize(xs)
	}
	mid := len(xs) / 2
	return pairwiseMoments(xs[:mid]).Merge(pairwiseMoments(xs[mid:]))
}
