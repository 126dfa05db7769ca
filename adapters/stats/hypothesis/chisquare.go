package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"hypotest/adapters/stats/critical"
	"hypotest/domain/core"
	"hypotest/domain/sample"
)

// ChiSquareConfig configures the one-sample goodness-of-fit test.
// Expected may be nil, in which case a uniform expectation at the
// observed mean is used. Continuity applies the Yates correction.
type ChiSquareConfig struct {
	Expected   sample.Sample
	Continuity bool
	Alpha      float64
}

// ChiSquareResult reports the goodness-of-fit statistic. DF is the
// number of categories minus one.
type ChiSquareResult struct {
	Result
	Observed sample.Sample `json:"observed"`
	Expected sample.Sample `json:"expected"`
}

// ChiSquareGoodnessOfFit tests whether the observed counts follow the
// expected counts.
func ChiSquareGoodnessOfFit(observed sample.Sample, cfg ChiSquareConfig) (*ChiSquareResult, error) {
	if cfg.Alpha == 0 {
		cfg.Alpha = DefaultAlpha
	}
	if err := validAlpha(cfg.Alpha); err != nil {
		return nil, err
	}
	if err := observed.Validate("observed"); err != nil {
		return nil, err
	}
	if len(observed) < 2 {
		return nil, core.NewInsufficientDataError("observed", len(observed), 2)
	}

	expected := cfg.Expected
	if expected == nil {
		mean := 0.0
		for _, o := range observed {
			mean += o
		}
		mean /= float64(len(observed))
		expected = make(sample.Sample, len(observed))
		for i := range expected {
			expected[i] = mean
		}
	} else {
		if err := expected.Validate("expected"); err != nil {
			return nil, err
		}
		if len(observed) != len(expected) {
			return nil, core.NewShapeMismatchError("observed vs expected", len(observed), len(expected))
		}
	}

	var yates float64
	if cfg.Continuity {
		yates = 0.5
	}

	var x2 float64
	for i, o := range observed {
		e := expected[i]
		if e <= 0 {
			return nil, core.NewInvalidValueError("expected", i, e)
		}
		d := math.Abs(o-e) - yates
		x2 += d * d / e
	}

	df := len(observed) - 1
	p := distuv.ChiSquared{K: float64(df)}.Survival(x2)

	res := &ChiSquareResult{
		Result:   newResult("chi-square goodness-of-fit test", x2, p, cfg.Alpha, TwoSided),
		Observed: observed,
		Expected: expected,
	}
	res.DF = float64(df)

	if crit, err := critical.ChiSquare(df, cfg.Alpha); err == nil {
		res.CriticalValue = &crit
		res.Reject = x2 > crit
	}
	return res, nil
}
