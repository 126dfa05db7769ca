package critical

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Alpha grids. Published tables cover a fixed grid of levels; requests
// off the grid are misses rather than interpolations.
var (
	chiSquareAlphas = []float64{0.995, 0.99, 0.975, 0.95, 0.90, 0.10, 0.05, 0.025, 0.01, 0.005}
	uAlphas         = []float64{0.01, 0.05, 0.10}
	wAlphas         = []float64{0.01, 0.02, 0.05, 0.10}
)

type uKey struct {
	n1, n2 int
	alpha  float64
	tail   Tail
}

type wKey struct {
	n     int
	alpha float64
	tail  Tail
}

// The tables are populated once here and never written again.
var (
	chiSquareTable = buildChiSquareTable()
	uTable         = buildUTable()
	wTable         = buildWTable()
)

// buildChiSquareTable tabulates upper-tail chi-square quantiles for
// df 1..30 over the standard alpha grid.
func buildChiSquareTable() map[int]map[float64]float64 {
	table := make(map[int]map[float64]float64, ChiSquareMaxDF)
	for df := 1; df <= ChiSquareMaxDF; df++ {
		dist := distuv.ChiSquared{K: float64(df)}
		row := make(map[float64]float64, len(chiSquareAlphas))
		for _, alpha := range chiSquareAlphas {
			row[alpha] = dist.Quantile(1 - alpha)
		}
		table[df] = row
	}
	return table
}

// buildUTable tabulates Mann-Whitney U critical values from the exact
// null distribution of U for sample sizes 3..20. The critical value is
// the largest u with P(U <= u) <= alpha (half alpha for two-tailed
// lookups); combinations with no such u have no entry.
func buildUTable() map[uKey]float64 {
	table := make(map[uKey]float64)
	for n1 := uMinN; n1 <= uMaxN; n1++ {
		for n2 := uMinN; n2 <= uMaxN; n2++ {
			counts := uCounts(n1, n2)
			var total float64
			for _, c := range counts {
				total += c
			}

			for _, alpha := range uAlphas {
				for _, tail := range []Tail{OneTail, TwoTail} {
					bound := alpha
					if tail == TwoTail {
						bound = alpha / 2
					}
					crit, ok := criticalFromCounts(counts, total, bound)
					if ok {
						table[uKey{n1: n1, n2: n2, alpha: alpha, tail: tail}] = crit
					}
				}
			}
		}
	}
	return table
}

// buildWTable tabulates Wilcoxon signed-rank critical values from the
// exact distribution of the rank sum over subsets of {1..n}.
func buildWTable() map[wKey]float64 {
	table := make(map[wKey]float64)
	for n := wMinN; n <= wMaxN; n++ {
		counts := wCounts(n)
		var total float64
		for _, c := range counts {
			total += c
		}

		for _, alpha := range wAlphas {
			for _, tail := range []Tail{OneTail, TwoTail} {
				bound := alpha
				if tail == TwoTail {
					bound = alpha / 2
				}
				crit, ok := criticalFromCounts(counts, total, bound)
				if ok {
					table[wKey{n: n, alpha: alpha, tail: tail}] = crit
				}
			}
		}
	}
	return table
}

// criticalFromCounts walks the lower tail of an exact statistic
// distribution and returns the largest value whose cumulative
// probability stays within bound.
func criticalFromCounts(counts []float64, total, bound float64) (float64, bool) {
	var cum float64
	crit, found := 0, false
	for v, c := range counts {
		cum += c
		if cum/total <= bound {
			crit, found = v, true
			continue
		}
		break
	}
	if !found {
		return 0, false
	}
	return float64(crit), true
}

// uCounts returns the exact count of arrangements yielding each U value
// for samples of size n1 and n2, indexed by u in [0, n1*n2]. Uses the
// standard recurrence
//
//	c(u; n1, n2) = c(u - n2; n1 - 1, n2) + c(u; n1, n2 - 1)
//
// computed iteratively. Counts stay below 2^53 for the covered sizes, so
// float64 arithmetic is exact.
func uCounts(n1, n2 int) []float64 {
	maxU := n1 * n2
	// counts[u] for the current (i, j) prefix, built up over j then i.
	prev := make([][]float64, n1+1)
	for i := 0; i <= n1; i++ {
		prev[i] = make([]float64, maxU+1)
		// Empty second sample: U is 0 in the single arrangement.
		prev[i][0] = 1
	}

	for j := 1; j <= n2; j++ {
		cur := make([][]float64, n1+1)
		cur[0] = make([]float64, maxU+1)
		cur[0][0] = 1
		for i := 1; i <= n1; i++ {
			cur[i] = make([]float64, maxU+1)
			for u := 0; u <= maxU; u++ {
				// Either the largest observation belongs to sample 2
				// (reduce j), or to sample 1 (reduce i, shifting u by j).
				c := prev[i][u]
				if u >= j {
					c += cur[i-1][u-j]
				}
				cur[i][u] = c
			}
		}
		prev = cur
	}
	return prev[n1][:maxU+1]
}

// wCounts returns the number of subsets of {1..n} summing to each value
// w in [0, n(n+1)/2], the exact null distribution of the signed-rank sum.
func wCounts(n int) []float64 {
	maxW := n * (n + 1) / 2
	counts := make([]float64, maxW+1)
	counts[0] = 1
	for i := 1; i <= n; i++ {
		for w := maxW; w >= i; w-- {
			counts[w] += counts[w-i]
		}
	}
	return counts
}
