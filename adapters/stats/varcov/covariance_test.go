package varcov

import (
	"math"
	"math/rand"
	"testing"

	"hypotest/domain/core"
)

func TestCovariance_AlgorithmsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n := 2000
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64() * 2
		ys[i] = 0.5*xs[i] + rng.NormFloat64()
	}

	ref, err := Covariance(xs, ys, AlgorithmTwoPass, CorrectionSample)
	if err != nil {
		t.Fatalf("two-pass: %v", err)
	}

	for _, algo := range Algorithms() {
		got, err := Covariance(xs, ys, algo, CorrectionSample)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		if re := relErr(got, ref); re > 1e-9 {
			t.Errorf("%s covariance = %v, two-pass = %v (relative error %v)", algo, got, ref, re)
		}
	}
}

func TestCovariance_SelfEqualsVariance(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	xs := make([]float64, 500)
	for i := range xs {
		xs[i] = rng.ExpFloat64() * 40
	}

	for _, algo := range Algorithms() {
		v, err := Variance(xs, algo, CorrectionSample)
		if err != nil {
			t.Fatalf("%s variance: %v", algo, err)
		}
		c, err := Covariance(xs, xs, algo, CorrectionSample)
		if err != nil {
			t.Fatalf("%s covariance: %v", algo, err)
		}
		if re := relErr(c, v); re > 1e-12 {
			t.Errorf("%s: cov(x,x) = %v, var(x) = %v", algo, c, v)
		}
	}
}

func TestCovariance_ShapeMismatch(t *testing.T) {
	_, err := Covariance([]float64{1, 2, 3}, []float64{1, 2}, AlgorithmWelford, CorrectionSample)
	if !core.IsShapeMismatchError(err) {
		t.Errorf("got %v, want shape-mismatch error", err)
	}
}

func TestMatrix_SymmetricWithVarianceDiagonal(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	n := 300
	vars := make([][]float64, 4)
	for v := range vars {
		vars[v] = make([]float64, n)
		for i := range vars[v] {
			vars[v][i] = rng.NormFloat64()*float64(v+1) + float64(v)*10
		}
	}

	for _, algo := range Algorithms() {
		m, err := Matrix(vars, algo, CorrectionSample)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}

		k := len(vars)
		if r, c := m.Dims(); r != k || c != k {
			t.Fatalf("%s: matrix dims %dx%d, want %dx%d", algo, r, c, k, k)
		}

		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				if m.At(i, j) != m.At(j, i) {
					t.Errorf("%s: matrix not symmetric at (%d,%d)", algo, i, j)
				}
			}
			v, err := Variance(vars[i], algo, CorrectionSample)
			if err != nil {
				t.Fatalf("%s variance: %v", algo, err)
			}
			if re := relErr(m.At(i, i), v); re > 1e-12 {
				t.Errorf("%s: diagonal[%d] = %v, variance = %v", algo, i, m.At(i, i), v)
			}
		}
	}
}

func TestMatrix_SingleVariable(t *testing.T) {
	xs := []float64{2, 4, 6, 8}
	m, err := Matrix([][]float64{xs}, AlgorithmWelford, CorrectionSample)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	v, _ := Variance(xs, AlgorithmWelford, CorrectionSample)
	if math.Abs(m.At(0, 0)-v) > 1e-12 {
		t.Errorf("1x1 matrix = %v, want variance %v", m.At(0, 0), v)
	}
}

func TestCoMoments_MergeMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	n := 333
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64() * 4
		ys[i] = rng.NormFloat64() - 2*xs[i]
	}

	direct := SummarizePairs(xs, ys)
	ref, err := direct.Covariance(CorrectionSample)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}

	for _, cut := range []int{0, 1, 100, n / 2, n - 1, n} {
		merged := SummarizePairs(xs[:cut], ys[:cut]).Merge(SummarizePairs(xs[cut:], ys[cut:]))
		got, err := merged.Covariance(CorrectionSample)
		if err != nil {
			t.Fatalf("cut %d: %v", cut, err)
		}
		if re := relErr(got, ref); re > 1e-12 {
			t.Errorf("cut %d: merged covariance %v vs direct %v", cut, got, ref)
		}
	}
}
