package varcov

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"hypotest/domain/sample"
)

// ParallelVariance computes the pairwise-algorithm variance with
// bounded-concurrency chunk reduction. The sample is cut into contiguous
// chunks, each summarized independently, and the partial summaries are
// merged. Because the combine step is associative and order-independent
// (up to rounding), the result does not depend on chunk boundaries.
//
// workers bounds the number of chunk summaries in flight; values below 1
// fall back to the sequential pairwise computation.
func ParallelVariance(ctx context.Context, xs []float64, mode Correction, workers int64) (float64, error) {
	if err := sample.Sample(xs).Validate("sample"); err != nil {
		return 0, err
	}
	if _, err := divisor(len(xs), mode); err != nil {
		return 0, err
	}
	if workers < 1 || len(xs) <= pairwiseBase {
		return variancePairwise(xs, mode)
	}

	chunks := splitChunks(len(xs), int(workers))
	parts := make([]Moments, len(chunks))

	sem := semaphore.NewWeighted(workers)
	var wg sync.WaitGroup
	for i, ch := range chunks {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return 0, err
		}
		wg.Add(1)
		go func(i int, lo, hi int) {
			defer wg.Done()
			defer sem.Release(1)
			parts[i] = pairwiseMoments(xs[lo:hi])
		}(i, ch[0], ch[1])
	}
	wg.Wait()

	var m Moments
	for _, p := range parts {
		m = m.Merge(p)
	}
	return m.Variance(mode)
}

// splitChunks cuts [0,n) into at most k near-equal contiguous ranges.
func splitChunks(n, k int) [][2]int {
	if k > n {
		k = n
	}
	chunks := make([][2]int, 0, k)
	size := n / k
	rem := n % k
	lo := 0
	for i := 0; i < k; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		chunks = append(chunks, [2]int{lo, hi})
		lo = hi
	}
	return chunks
}
