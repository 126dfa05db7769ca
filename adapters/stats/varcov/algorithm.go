// Package varcov computes variances, covariances, and covariance
// matrices using selectable numerical strategies with different
// stability and performance trade-offs.
package varcov

import (
	"hypotest/domain/core"
)

// Algorithm selects the numerical strategy used for variance and
// covariance accumulation. The set is closed; each variant dispatches to
// one dedicated computation function.
type Algorithm string

const (
	// AlgorithmNaive accumulates sums and sums of squares in one pass.
	// Fastest, but suffers catastrophic cancellation when the mean is
	// large relative to the spread.
	AlgorithmNaive Algorithm = "naive"

	// AlgorithmTwoPass computes the mean first, then accumulates squared
	// deviations in a second traversal.
	AlgorithmTwoPass Algorithm = "two-pass"

	// AlgorithmWelford maintains a running mean and running sum of
	// squared deviations, stable in a single pass regardless of input
	// ordering.
	AlgorithmWelford Algorithm = "welford"

	// AlgorithmPairwise recursively splits the input, summarizes each
	// half independently, and combines the partial summaries. Suited to
	// chunked or parallel reduction; stability comparable to two-pass.
	AlgorithmPairwise Algorithm = "pairwise"
)

// Algorithms lists every supported algorithm in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmNaive, AlgorithmTwoPass, AlgorithmWelford, AlgorithmPairwise}
}

// ParseAlgorithm maps a configuration string onto an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmNaive, AlgorithmTwoPass, AlgorithmWelford, AlgorithmPairwise:
		return Algorithm(s), nil
	default:
		return "", core.NewUnsupportedAlgorithmError("variance algorithm", s)
	}
}

// Correction selects the variance denominator.
type Correction string

const (
	// CorrectionSample divides by n-1 (Bessel's correction), the default
	// unbiased sample estimator. Requires n >= 2.
	CorrectionSample Correction = "sample"

	// CorrectionPopulation divides by n.
	CorrectionPopulation Correction = "population"
)

// ParseCorrection maps a configuration string onto a Correction mode.
func ParseCorrection(s string) (Correction, error) {
	switch Correction(s) {
	case CorrectionSample, CorrectionPopulation:
		return Correction(s), nil
	default:
		return "", core.NewUnsupportedAlgorithmError("correction mode", s)
	}
}

// divisor returns the denominator for the given mode, or an
// insufficient-data error when the sample is too small for it.
func divisor(n int, mode Correction) (float64, error) {
	switch mode {
	case CorrectionPopulation:
		if n < 1 {
			return 0, core.NewInsufficientDataError("sample", n, 1)
		}
		return float64(n), nil
	case CorrectionSample:
		if n < 2 {
			return 0, core.NewInsufficientDataError("sample", n, 2)
		}
		return float64(n - 1), nil
	default:
		return 0, core.NewUnsupportedAlgorithmError("correction mode", string(mode))
	}
}
