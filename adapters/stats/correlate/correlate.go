// Package correlate computes Pearson and Spearman correlation
// coefficients on top of the variance/covariance and rank engines.
package correlate

import (
	"math"

	"hypotest/adapters/stats/rank"
	"hypotest/adapters/stats/varcov"
	"hypotest/domain/core"
)

// Method selects the correlation coefficient.
type Method string

const (
	MethodPearson  Method = "pearson"
	MethodSpearman Method = "spearman"
)

// ParseMethod maps a configuration string onto a Method.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodPearson, MethodSpearman:
		return Method(s), nil
	default:
		return "", core.NewUnsupportedAlgorithmError("correlation method", s)
	}
}

// Correlation dispatches to Pearson or Spearman by method.
func Correlation(xs, ys []float64, method Method, algo varcov.Algorithm) (float64, error) {
	switch method {
	case MethodPearson:
		return Pearson(xs, ys, algo)
	case MethodSpearman:
		return Spearman(xs, ys, algo)
	default:
		return 0, core.NewUnsupportedAlgorithmError("correlation method", string(method))
	}
}

// Pearson computes the product-moment correlation
// cov(x,y) / sqrt(var(x) var(y)), using the same variance algorithm for
// all three moments so the numerical behavior is consistent. A sample
// with zero variance makes the coefficient undefined and is reported as
// an error rather than a silent zero.
func Pearson(xs, ys []float64, algo varcov.Algorithm) (float64, error) {
	cov, err := varcov.Covariance(xs, ys, algo, varcov.CorrectionSample)
	if err != nil {
		return 0, err
	}
	varX, err := varcov.Variance(xs, algo, varcov.CorrectionSample)
	if err != nil {
		return 0, err
	}
	varY, err := varcov.Variance(ys, algo, varcov.CorrectionSample)
	if err != nil {
		return 0, err
	}

	if varX == 0 || varY == 0 {
		return 0, core.NewUndefinedResultError("correlation over zero-variance sample")
	}

	r := cov / math.Sqrt(varX*varY)
	// Rounding can push the ratio a hair outside [-1, 1].
	return clamp(r), nil
}

// Spearman computes the rank correlation: both samples are converted to
// average ranks and the Pearson coefficient is taken over the rank
// sequences. Tie handling follows the rank engine's average-rank policy.
func Spearman(xs, ys []float64, algo varcov.Algorithm) (float64, error) {
	if len(xs) != len(ys) {
		return 0, core.NewShapeMismatchError("correlation samples", len(xs), len(ys))
	}

	rx, err := rank.Ranks(xs)
	if err != nil {
		return 0, err
	}
	ry, err := rank.Ranks(ys)
	if err != nil {
		return 0, err
	}

	return Pearson(rx, ry, algo)
}

func clamp(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}
