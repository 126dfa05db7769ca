package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"hypotest/adapters/stats/critical"
	"hypotest/adapters/stats/rank"
	"hypotest/domain/core"
	"hypotest/domain/sample"
)

// WilcoxonConfig configures the Wilcoxon signed rank test. Mu shifts
// the one-sample null hypothesis.
type WilcoxonConfig struct {
	Mu          float64
	Alpha       float64
	Alternative Alternative
}

// WilcoxonResult reports the signed rank statistic V, the sum of the
// ranks of the positive differences. Zero differences are dropped
// before ranking.
type WilcoxonResult struct {
	Result
	V float64 `json:"v"`
	N int     `json:"n"`
	Z float64 `json:"z"`
}

// WilcoxonSignedRank runs the one-sample signed rank test against
// cfg.Mu.
func WilcoxonSignedRank(xs sample.Sample, cfg WilcoxonConfig) (*WilcoxonResult, error) {
	if err := xs.Validate("sample"); err != nil {
		return nil, err
	}
	diffs := make([]float64, len(xs))
	for i, x := range xs {
		diffs[i] = x - cfg.Mu
	}
	return wilcoxon(diffs, cfg)
}

// WilcoxonPaired runs the paired signed rank test on the differences
// x[i]-y[i].
func WilcoxonPaired(x, y sample.Sample, cfg WilcoxonConfig) (*WilcoxonResult, error) {
	p, err := sample.NewPaired(x, y)
	if err != nil {
		return nil, err
	}
	diffs := p.Differences()
	shifted := make([]float64, len(diffs))
	for i, d := range diffs {
		shifted[i] = d - cfg.Mu
	}
	return wilcoxon(shifted, cfg)
}

func wilcoxon(diffs []float64, cfg WilcoxonConfig) (*WilcoxonResult, error) {
	if cfg.Alpha == 0 {
		cfg.Alpha = DefaultAlpha
	}
	if cfg.Alternative == "" {
		cfg.Alternative = TwoSided
	}
	if _, err := ParseAlternative(string(cfg.Alternative)); err != nil {
		return nil, err
	}
	if err := validAlpha(cfg.Alpha); err != nil {
		return nil, err
	}

	nonzero := diffs[:0:0]
	for _, d := range diffs {
		if d != 0 {
			nonzero = append(nonzero, d)
		}
	}
	n := len(nonzero)
	if n == 0 {
		return nil, core.NewUndefinedResultError("all differences are zero")
	}

	abs := make([]float64, n)
	for i, d := range nonzero {
		abs[i] = math.Abs(d)
	}
	ranks, err := rank.Ranks(abs)
	if err != nil {
		return nil, err
	}

	signs := rank.Signs(nonzero)
	var v float64
	for i, r := range ranks {
		v += signs[i] * r
	}

	nf := float64(n)
	mean := nf * (nf + 1) / 4
	sigma := math.Sqrt(nf * (nf + 1) * (2*nf + 1) / 24)
	z := (v - mean) / sigma

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	var p float64
	switch cfg.Alternative {
	case Greater:
		p = norm.Survival(z)
	case Less:
		p = norm.CDF(z)
	default:
		p = 2 * norm.Survival(math.Abs(z))
	}

	res := &WilcoxonResult{
		Result: newResult("Wilcoxon signed rank test", v, p, cfg.Alpha, cfg.Alternative),
		V:      v,
		N:      n,
		Z:      z,
	}
	res.EffectSize = math.Abs(z) / math.Sqrt(nf)

	// Small samples decide on the exact table: W is the smaller of
	// the positive and negative rank sums.
	tail := critical.TwoTail
	if cfg.Alternative != TwoSided {
		tail = critical.OneTail
	}
	if crit, err := critical.WilcoxonW(n, cfg.Alpha, tail); err == nil {
		w := math.Min(v, nf*(nf+1)/2-v)
		res.CriticalValue = &crit
		res.Reject = w <= crit
	}
	return res, nil
}
