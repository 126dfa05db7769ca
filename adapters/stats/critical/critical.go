// Package critical supplies the tabulated critical values hypothesis
// tests compare their statistics against: chi-square (by degrees of
// freedom and alpha), Mann-Whitney U (by the two sample sizes), and
// Wilcoxon W (by sample size). The tables are process-wide immutable
// constants built once at package initialization; lookups are pure
// functions and safe for unsynchronized concurrent reads. Keys outside
// the tabulated coverage report a lookup miss - there is no
// interpolation or extrapolation, because a guessed critical value would
// silently corrupt significance decisions.
package critical

import (
	"fmt"

	"hypotest/domain/core"
)

// Tail distinguishes one- and two-tailed lookups.
type Tail string

const (
	OneTail Tail = "one-tail"
	TwoTail Tail = "two-tail"
)

// ParseTail maps a configuration string onto a Tail.
func ParseTail(s string) (Tail, error) {
	switch Tail(s) {
	case OneTail, TwoTail:
		return Tail(s), nil
	default:
		return "", core.NewUnsupportedAlgorithmError("tail type", s)
	}
}

// Coverage of the tables.
const (
	ChiSquareMaxDF = 30

	uMinN = 3
	uMaxN = 20

	wMinN = 5
	wMaxN = 30
)

// ChiSquare returns the chi-square critical value for the given degrees
// of freedom and upper-tail alpha level.
func ChiSquare(df int, alpha float64) (float64, error) {
	row, ok := chiSquareTable[df]
	if !ok {
		return 0, core.NewLookupMissError("chi-square", fmt.Sprintf("df=%d", df))
	}
	v, ok := row[alpha]
	if !ok {
		return 0, core.NewLookupMissError("chi-square", fmt.Sprintf("df=%d alpha=%v", df, alpha))
	}
	return v, nil
}

// MannWhitneyU returns the critical U value for two sample sizes. The
// null hypothesis is rejected when the observed U is less than or equal
// to the returned value. Combinations whose exact distribution admits no
// rejection region at the requested level are lookup misses.
func MannWhitneyU(n1, n2 int, alpha float64, tail Tail) (float64, error) {
	v, ok := uTable[uKey{n1: n1, n2: n2, alpha: alpha, tail: tail}]
	if !ok {
		return 0, core.NewLookupMissError("mann-whitney-u",
			fmt.Sprintf("n1=%d n2=%d alpha=%v %s", n1, n2, alpha, tail))
	}
	return v, nil
}

// WilcoxonW returns the critical W value for a signed-rank test of n
// non-zero differences; rejection is W less than or equal to the
// returned value.
func WilcoxonW(n int, alpha float64, tail Tail) (float64, error) {
	v, ok := wTable[wKey{n: n, alpha: alpha, tail: tail}]
	if !ok {
		return 0, core.NewLookupMissError("wilcoxon-w",
			fmt.Sprintf("n=%d alpha=%v %s", n, alpha, tail))
	}
	return v, nil
}
