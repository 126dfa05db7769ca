// Package hypothesis implements the statistical tests exposed by the
// application layer. Each test consumes validated samples, computes its
// statistic with the shared variance and rank kernels, and reports a
// Result carrying the decision at the configured alpha level.
package hypothesis

import (
	"fmt"

	"hypotest/domain/core"
)

// Alternative selects the direction of the alternative hypothesis.
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Greater  Alternative = "greater"
	Less     Alternative = "less"
)

// ParseAlternative maps a request string onto an Alternative.
func ParseAlternative(s string) (Alternative, error) {
	switch Alternative(s) {
	case TwoSided, Greater, Less:
		return Alternative(s), nil
	default:
		return "", core.NewUnsupportedAlgorithmError("alternative", s)
	}
}

// DefaultAlpha is the significance level used when a request does not
// specify one.
const DefaultAlpha = 0.05

// Result is the common shape every test reports. CriticalValue is nil
// when the test decides on the p-value alone or when the tabulated
// grid does not cover the sample size.
type Result struct {
	ID            core.ResultID `json:"id"`
	Test          string        `json:"test"`
	Statistic     float64       `json:"statistic"`
	DF            float64       `json:"df,omitempty"`
	PValue        float64       `json:"p_value"`
	Alpha         float64       `json:"alpha"`
	Alternative   Alternative   `json:"alternative"`
	CriticalValue *float64      `json:"critical_value,omitempty"`
	Reject        bool          `json:"reject"`
	EffectSize    float64       `json:"effect_size,omitempty"`
	CreatedAt     core.Timestamp `json:"created_at"`
}

func newResult(test string, statistic, pValue, alpha float64, alt Alternative) Result {
	return Result{
		ID:          core.ResultID(core.NewID()),
		Test:        test,
		Statistic:   statistic,
		PValue:      pValue,
		Alpha:       alpha,
		Alternative: alt,
		Reject:      pValue < alpha,
		CreatedAt:   core.Now(),
	}
}

// String renders a short human-readable verdict line.
func (r Result) String() string {
	verdict := "fail to reject H0"
	if r.Reject {
		verdict = "reject H0"
	}
	return fmt.Sprintf("%s: statistic=%.6g p=%.6g alpha=%g (%s)", r.Test, r.Statistic, r.PValue, r.Alpha, verdict)
}

func validAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 {
		return core.NewInvalidValueError("alpha", -1, alpha)
	}
	return nil
}
