// Package rank assigns average ranks to observation vectors. Every
// nonparametric test in the system (Mann-Whitney, Wilcoxon,
// Kruskal-Wallis) and the Spearman correlation are built on it.
package rank

import (
	"math"
	"sort"

	"hypotest/domain/core"
)

// Ranks assigns 1-based ranks to xs with tied values receiving the mean
// of the ranks they would occupy under a strict ordering. The result is
// aligned to the input order and always sums to n(n+1)/2. Non-finite
// observations are rejected rather than silently ranked.
func Ranks(xs []float64) ([]float64, error) {
	n := len(xs)
	if n == 0 {
		return nil, core.NewInsufficientDataError("rank input", 0, 1)
	}
	for i, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, core.NewInvalidValueError("rank input", i, v)
		}
	}

	// Sort indices by value, keeping the original position for the
	// rank-back mapping. The sort is stable so equal values keep input
	// order, though tie averaging makes the result identical either way.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return xs[order[a]] < xs[order[b]]
	})

	ranks := make([]float64, n)

	// Walk the sorted order grouping exact-equal values into tie groups
	// and assign each group the mean of its positions.
	i := 0
	for i < n {
		j := i + 1
		for j < n && xs[order[j]] == xs[order[i]] {
			j++
		}
		// Positions i+1..j occupy the group; their mean is the shared rank.
		avg := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}

	return ranks, nil
}

// Signs returns the signed-rank indicator vector: 1 where xs[i] > 0 and
// 0 otherwise. Used by the Wilcoxon signed-rank statistic.
func Signs(xs []float64) []float64 {
	signs := make([]float64, len(xs))
	for i, v := range xs {
		if v > 0 {
			signs[i] = 1
		}
	}
	return signs
}

// TieCorrection computes the correction factor
//
//	1 - sum(t^3 - t) / (n^3 - n)
//
// over the tie groups of a rank vector, as used in the Mann-Whitney and
// Kruskal-Wallis statistics. A rank vector without ties yields 1.
func TieCorrection(ranks []float64) float64 {
	n := len(ranks)
	if n < 2 {
		return 1
	}

	counts := make(map[float64]int, n)
	for _, r := range ranks {
		counts[r]++
	}

	var tieSum float64
	for _, t := range counts {
		if t > 1 {
			tf := float64(t)
			tieSum += tf*tf*tf - tf
		}
	}

	nf := float64(n)
	return 1 - tieSum/(nf*nf*nf-nf)
}
