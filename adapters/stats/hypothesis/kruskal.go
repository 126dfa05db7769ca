package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"hypotest/adapters/stats/critical"
	"hypotest/adapters/stats/rank"
	"hypotest/adapters/stats/varcov"
	"hypotest/domain/core"
	"hypotest/domain/sample"
)

// KruskalConfig configures the Kruskal-Wallis rank sum test.
type KruskalConfig struct {
	Alpha float64
}

// KruskalResult reports the tie-corrected H statistic with the
// chi-square approximation and Fisher's least significant difference
// over the ranks.
type KruskalResult struct {
	Result
	Groups                     int     `json:"groups"`
	N                          int     `json:"n"`
	TCritical                  float64 `json:"t_critical"`
	LeastSignificantDifference float64 `json:"least_significant_difference"`
}

// KruskalWallis runs the rank sum test across two or more groups.
func KruskalWallis(groups []sample.Group, cfg KruskalConfig) (*KruskalResult, error) {
	if cfg.Alpha == 0 {
		cfg.Alpha = DefaultAlpha
	}
	if err := validAlpha(cfg.Alpha); err != nil {
		return nil, err
	}
	if len(groups) < 2 {
		return nil, core.NewInsufficientDataError("groups", len(groups), 2)
	}

	var n int
	for _, g := range groups {
		if err := g.Values.Validate(g.Label); err != nil {
			return nil, err
		}
		n += len(g.Values)
	}

	pooled := make([]float64, 0, n)
	for _, g := range groups {
		pooled = append(pooled, g.Values...)
	}
	ranks, err := rank.Ranks(pooled)
	if err != nil {
		return nil, err
	}

	nf := float64(n)
	k := len(groups)

	var h float64
	offset := 0
	groupRanks := make([][]float64, k)
	for i, g := range groups {
		gr := ranks[offset : offset+len(g.Values)]
		groupRanks[i] = gr
		offset += len(g.Values)

		var sum float64
		for _, r := range gr {
			sum += r
		}
		h += sum * sum / float64(len(g.Values))
	}
	h = 12/(nf*(nf+1))*h - 3*(nf+1)

	tc := rank.TieCorrection(ranks)
	if tc == 0 {
		return nil, core.NewUndefinedResultError("all observations are tied")
	}
	h /= tc

	df := float64(k - 1)
	p := distuv.ChiSquared{K: df}.Survival(h)

	// Fisher's LSD over the ranks uses the pooled within-group rank
	// variance as the mean squared error.
	var sse float64
	for _, gr := range groupRanks {
		if len(gr) < 2 {
			continue
		}
		v, err := varcov.Variance(gr, varcov.AlgorithmTwoPass, varcov.CorrectionSample)
		if err != nil {
			return nil, err
		}
		sse += float64(len(gr)-1) * v
	}
	mse := sse / (nf - float64(k))
	tcrit := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nf - float64(k)}.Quantile(1 - cfg.Alpha/2)
	lsd := tcrit * math.Sqrt(mse*2/(nf/float64(k)))

	res := &KruskalResult{
		Result:                     newResult("Kruskal-Wallis rank sum test", h, p, cfg.Alpha, TwoSided),
		Groups:                     k,
		N:                          n,
		TCritical:                  tcrit,
		LeastSignificantDifference: lsd,
	}
	res.DF = df

	if crit, err := critical.ChiSquare(k-1, cfg.Alpha); err == nil {
		res.CriticalValue = &crit
		res.Reject = h > crit
	}
	return res, nil
}
