package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"hypotest/domain/core"
)

// BinomialConfig configures the exact binomial test. P is the
// hypothesized probability of success; zero means 0.5.
type BinomialConfig struct {
	P           float64
	Alpha       float64
	Alternative Alternative
	Continuity  bool
}

// Interval is a two-sided confidence interval for the probability of
// success.
type Interval struct {
	Estimate float64 `json:"estimate"`
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
}

// BinomialResult reports the exact test together with four interval
// estimates of the success probability.
type BinomialResult struct {
	Result
	Trials         int      `json:"trials"`
	Successes      int      `json:"successes"`
	P              float64  `json:"p"`
	ClopperPearson Interval `json:"clopper_pearson"`
	WilsonScore    Interval `json:"wilson_score"`
	AgrestiCoull   Interval `json:"agresti_coull"`
	Arcsine        Interval `json:"arcsine"`
}

// BinomialTest runs the exact binomial test of x successes in n
// trials against cfg.P.
func BinomialTest(n, x int, cfg BinomialConfig) (*BinomialResult, error) {
	if n <= 0 {
		return nil, core.NewInsufficientDataError("trials", n, 1)
	}
	if x < 0 || x > n {
		return nil, core.NewInvalidValueError("successes", -1, float64(x))
	}
	if cfg.P == 0 {
		cfg.P = 0.5
	}
	if cfg.P < 0 || cfg.P > 1 {
		return nil, core.NewInvalidValueError("probability", -1, cfg.P)
	}
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

	dist := distuv.Binomial{N: float64(n), P: cfg.P}
	p := binomialPValue(dist, n, x, cfg.Alternative)

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - cfg.Alpha/2)
	phat := float64(x) / float64(n)

	res := &BinomialResult{
		Result:         newResult("binomial test", float64(x), p, cfg.Alpha, cfg.Alternative),
		Trials:         n,
		Successes:      x,
		P:              cfg.P,
		ClopperPearson: clopperPearson(n, x, cfg.Alpha),
		WilsonScore:    wilsonScore(n, phat, z, cfg.Continuity),
		AgrestiCoull:   agrestiCoull(n, x, z),
		Arcsine:        arcsineInterval(n, phat, z),
	}
	return res, nil
}

// binomialPValue sums the exact tail probabilities. The two-sided
// p-value counts every outcome no more likely than the observed one.
func binomialPValue(dist distuv.Binomial, n, x int, alt Alternative) float64 {
	switch alt {
	case Greater:
		if x == 0 {
			return 1
		}
		return dist.Survival(float64(x - 1))
	case Less:
		return dist.CDF(float64(x))
	default:
		observed := dist.Prob(float64(x))
		// Relative tolerance absorbs rounding in the pmf.
		cutoff := observed * (1 + 1e-7)
		var p float64
		for k := 0; k <= n; k++ {
			if pk := dist.Prob(float64(k)); pk <= cutoff {
				p += pk
			}
		}
		return math.Min(p, 1)
	}
}

func clopperPearson(n, x int, alpha float64) Interval {
	iv := Interval{Estimate: float64(x) / float64(n), Low: 0, High: 1}
	if x > 0 {
		iv.Low = distuv.Beta{Alpha: float64(x), Beta: float64(n - x + 1)}.Quantile(alpha / 2)
	}
	if x < n {
		iv.High = distuv.Beta{Alpha: float64(x + 1), Beta: float64(n - x)}.Quantile(1 - alpha/2)
	}
	return iv
}

func wilsonScore(n int, phat, z float64, continuity bool) Interval {
	nf := float64(n)
	center := (phat + z*z/(2*nf)) / (1 + z*z/nf)

	if continuity {
		low := (2*nf*phat + z*z - 1 - z*math.Sqrt(z*z-2-1/nf+4*phat*(nf*(1-phat)+1))) / (2 * (nf + z*z))
		high := (2*nf*phat + z*z + 1 + z*math.Sqrt(z*z+2-1/nf+4*phat*(nf*(1-phat)-1))) / (2 * (nf + z*z))
		return Interval{Estimate: center, Low: math.Max(0, low), High: math.Min(1, high)}
	}

	bound := z / (1 + z*z/nf) * math.Sqrt(phat*(1-phat)/nf+z*z/(4*nf*nf))
	return Interval{Estimate: center, Low: center - bound, High: center + bound}
}

func agrestiCoull(n, x int, z float64) Interval {
	nbar := float64(n) + z*z
	p := (float64(x) + z*z/2) / nbar
	bound := z * math.Sqrt(p*(1-p)/nbar)
	return Interval{Estimate: p, Low: p - bound, High: p + bound}
}

func arcsineInterval(n int, phat, z float64) Interval {
	half := z / (2 * math.Sqrt(float64(n)))
	low := math.Sin(math.Asin(math.Sqrt(phat)) - half)
	high := math.Sin(math.Asin(math.Sqrt(phat)) + half)
	return Interval{Estimate: phat, Low: low * low, High: high * high}
}
