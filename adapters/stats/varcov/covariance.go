package varcov

import (
	"gonum.org/v1/gonum/mat"

	"hypotest/domain/core"
	"hypotest/domain/sample"
)

// Covariance computes the covariance of two aligned samples using the
// selected algorithm and correction mode. Covariance(x, x, ...) equals
// Variance(x, ...) for every algorithm family.
func Covariance(xs, ys []float64, algo Algorithm, mode Correction) (float64, error) {
	if len(xs) != len(ys) {
		return 0, core.NewShapeMismatchError("covariance samples", len(xs), len(ys))
	}
	if err := sample.Sample(xs).Validate("x"); err != nil {
		return 0, err
	}
	if err := sample.Sample(ys).Validate("y"); err != nil {
		return 0, err
	}
	if _, err := divisor(len(xs), mode); err != nil {
		return 0, err
	}

	switch algo {
	case AlgorithmNaive:
		return covarianceNaive(xs, ys, mode)
	case AlgorithmTwoPass:
		return covarianceTwoPass(xs, ys, mode)
	case AlgorithmWelford:
		return covarianceWelford(xs, ys, mode)
	case AlgorithmPairwise:
		return covariancePairwise(xs, ys, mode)
	default:
		return 0, core.NewUnsupportedAlgorithmError("covariance algorithm", string(algo))
	}
}

// MatrixResult pairs a covariance matrix with the variable keys naming
// its rows and columns.
type MatrixResult struct {
	Keys   []core.VariableKey `json:"keys"`
	Matrix *mat.SymDense      `json:"-"`
}

// Matrix assembles the covariance matrix over a set of equally long
// variables. The upper triangle (including the diagonal) is computed and
// mirrored, so the result is symmetric by construction, with diagonal
// entries equal to the per-variable variance of the same algorithm
// family.
func Matrix(vars [][]float64, algo Algorithm, mode Correction) (*mat.SymDense, error) {
	if len(vars) == 0 {
		return nil, core.NewInsufficientDataError("variable set", 0, 1)
	}
	n := len(vars[0])
	for i, v := range vars {
		if len(v) != n {
			return nil, core.NewShapeMismatchError("matrix variables", n, len(vars[i]))
		}
	}

	k := len(vars)
	m := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			c, err := Covariance(vars[i], vars[j], algo, mode)
			if err != nil {
				return nil, err
			}
			// SetSym writes both (i,j) and (j,i).
			m.SetSym(i, j, c)
		}
	}
	return m, nil
}

func covarianceNaive(xs, ys []float64, mode Correction) (float64, error) {
	var sumX, sumY, sumXY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
	}

	n := float64(len(xs))
	div, err := divisor(len(xs), mode)
	if err != nil {
		return 0, err
	}
	return (sumXY - sumX*sumY/n) / div, nil
}

func covarianceTwoPass(xs, ys []float64, mode Correction) (float64, error) {
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	n := float64(len(xs))
	meanX, meanY := sumX/n, sumY/n

	var cross float64
	for i := range xs {
		cross += (xs[i] - meanX) * (ys[i] - meanY)
	}

	div, err := divisor(len(xs), mode)
	if err != nil {
		return 0, err
	}
	return cross / div, nil
}

func covarianceWelford(xs, ys []float64, mode Correction) (float64, error) {
	return SummarizePairs(xs, ys).Covariance(mode)
}

func covariancePairwise(xs, ys []float64, mode Correction) (float64, error) {
	return pairwiseCoMoments(xs, ys).Covariance(mode)
}

func pairwiseCoMoments(xs, ys []float64) CoMoments {
	if len(xs) <= pairwiseBase {
		return SummarizePairs(xs, ys)
	}
	mid := len(xs) / 2
	return pairwiseCoMoments(xs[:mid], ys[:mid]).Merge(pairwiseCoMoments(xs[mid:], ys[mid:]))
}
