package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"hypotest/adapters/stats/varcov"
	"hypotest/domain/core"
	"hypotest/domain/sample"
)

// TTestConfig configures a one-sample, two-sample, or paired t-test.
// Zero values mean: mu of 0, DefaultAlpha, a two-sided alternative,
// and the Welch (unequal variance) form for two samples.
type TTestConfig struct {
	Mu          float64
	Alpha       float64
	Alternative Alternative
	EqualVar    bool
}

func (c *TTestConfig) normalize() error {
	if c.Alpha == 0 {
		c.Alpha = DefaultAlpha
	}
	if c.Alternative == "" {
		c.Alternative = TwoSided
	}
	if _, err := ParseAlternative(string(c.Alternative)); err != nil {
		return err
	}
	return validAlpha(c.Alpha)
}

// TTestResult extends Result with the interval and per-sample means.
type TTestResult struct {
	Result
	Method         string     `json:"method"`
	Mean1          float64    `json:"mean1"`
	Mean2          float64    `json:"mean2,omitempty"`
	StdErr         float64    `json:"std_err"`
	ConfidenceLow  float64    `json:"confidence_low"`
	ConfidenceHigh float64    `json:"confidence_high"`
}

type tSummary struct {
	n    float64
	mean float64
	vari float64
}

func summarizeT(xs sample.Sample, name string) (tSummary, error) {
	if err := xs.Validate(name); err != nil {
		return tSummary{}, err
	}
	if len(xs) < 2 {
		return tSummary{}, core.NewInsufficientDataError(name, len(xs), 2)
	}
	v, err := varcov.Variance(xs, varcov.AlgorithmTwoPass, varcov.CorrectionSample)
	if err != nil {
		return tSummary{}, err
	}
	mean, err := varcov.Mean(xs)
	if err != nil {
		return tSummary{}, err
	}
	return tSummary{n: float64(len(xs)), mean: mean, vari: v}, nil
}

// OneSampleTTest tests whether the mean of xs differs from cfg.Mu.
func OneSampleTTest(xs sample.Sample, cfg TTestConfig) (*TTestResult, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	s, err := summarizeT(xs, "sample")
	if err != nil {
		return nil, err
	}

	se := math.Sqrt(s.vari / s.n)
	tval := (s.mean - cfg.Mu) / se
	df := s.n - 1

	return finishTTest("one-sample t-test", tval, df, se, s.mean-cfg.Mu, s.mean, 0, cfg)
}

// PairedTTest tests whether the mean of the pairwise differences
// between x and y differs from cfg.Mu.
func PairedTTest(x, y sample.Sample, cfg TTestConfig) (*TTestResult, error) {
	p, err := sample.NewPaired(x, y)
	if err != nil {
		return nil, err
	}
	res, err := OneSampleTTest(p.Differences(), cfg)
	if err != nil {
		return nil, err
	}
	res.Test = "paired t-test"
	res.Method = "paired t-test"
	return res, nil
}

// TwoSampleTTest compares the means of two independent samples. The
// Welch form with the Welch-Satterthwaite degrees of freedom is the
// default; set cfg.EqualVar for the pooled Student form.
func TwoSampleTTest(x, y sample.Sample, cfg TTestConfig) (*TTestResult, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	s1, err := summarizeT(x, "sample 1")
	if err != nil {
		return nil, err
	}
	s2, err := summarizeT(y, "sample 2")
	if err != nil {
		return nil, err
	}

	var (
		se     float64
		df     float64
		method string
	)
	if cfg.EqualVar {
		pooled := ((s1.n-1)*s1.vari + (s2.n-1)*s2.vari) / (s1.n + s2.n - 2)
		se = math.Sqrt(pooled) * math.Sqrt(1/s1.n+1/s2.n)
		df = s1.n + s2.n - 2
		method = "two-sample Student t-test"
	} else {
		a, b := s1.vari/s1.n, s2.vari/s2.n
		se = math.Sqrt(a + b)
		df = (a + b) * (a + b) / (a*a/(s1.n-1) + b*b/(s2.n-1))
		method = "two-sample Welch t-test"
	}

	if se == 0 {
		return nil, core.NewUndefinedResultError("both samples have zero variance")
	}

	tval := (s1.mean - s2.mean) / se
	res, err := finishTTest(method, tval, df, se, s1.mean-s2.mean, s1.mean, s2.mean, cfg)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func finishTTest(method string, tval, df, se, estimate, mean1, mean2 float64, cfg TTestConfig) (*TTestResult, error) {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	var (
		p        float64
		low, high float64
	)
	switch cfg.Alternative {
	case Greater:
		p = dist.Survival(tval)
		low = estimate - dist.Quantile(1-cfg.Alpha)*se
		high = math.Inf(1)
	case Less:
		p = dist.CDF(tval)
		low = math.Inf(-1)
		high = estimate + dist.Quantile(1-cfg.Alpha)*se
	default:
		p = 2 * dist.Survival(math.Abs(tval))
		q := dist.Quantile(1 - cfg.Alpha/2)
		low, high = estimate-q*se, estimate+q*se
	}

	res := &TTestResult{
		Result:         newResult(method, tval, p, cfg.Alpha, cfg.Alternative),
		Method:         method,
		Mean1:          mean1,
		Mean2:          mean2,
		StdErr:         se,
		ConfidenceLow:  low,
		ConfidenceHigh: high,
	}
	res.DF = df
	return res, nil
}
