package varcov

// Moments is a mergeable running summary of one variable: observation
// count, running mean, and sum of squared deviations from the mean (M2).
// Add implements Welford's update; Merge implements Chan's pairwise
// combine. The combine is commutative and associative up to
// floating-point rounding, so partial summaries may be produced over
// arbitrary disjoint partitions and merged in any order.
type Moments struct {
	Count int
	Mean  float64
	M2    float64
}

// Add folds one observation into the summary.
func (m *Moments) Add(x float64) {
	m.Count++
	delta := x - m.Mean
	m.Mean += delta / float64(m.Count)
	m.M2 += delta * (x - m.Mean)
}

// Merge combines two partial summaries over disjoint partitions.
func (m Moments) Merge(o Moments) Moments {
	if m.Count == 0 {
		return o
	}
	if o.Count == 0 {
		return m
	}

	n := m.Count + o.Count
	na, nb := float64(m.Count), float64(o.Count)
	delta := o.Mean - m.Mean

	return Moments{
		Count: n,
		Mean:  m.Mean + delta*nb/float64(n),
		M2:    m.M2 + o.M2 + delta*delta*na*nb/float64(n),
	}
}

// Variance finalizes the summary under the given correction mode.
func (m Moments) Variance(mode Correction) (float64, error) {
	div, err := divisor(m.Count, mode)
	if err != nil {
		return 0, err
	}
	return m.M2 / div, nil
}

// Summarize builds a Moments over a slice in one Welford pass.
func Summarize(xs []float64) Moments {
	var m Moments
	for _, x := range xs {
		m.Add(x)
	}
	return m
}

// CoMoments is the bivariate counterpart of Moments: it tracks both
// means and the running sum of cross-products C2 = sum((x-meanX)(y-meanY)).
type CoMoments struct {
	Count int
	MeanX float64
	MeanY float64
	C2    float64
}

// Add folds one observation pair into the summary.
func (c *CoMoments) Add(x, y float64) {
	c.Count++
	n := float64(c.Count)
	dx := x - c.MeanX
	c.MeanX += dx / n
	c.MeanY += (y - c.MeanY) / n
	// dx is the deviation from the previous mean of x, paired with the
	// deviation of y from the updated mean; this keeps the update exact
	// in the same sense as the univariate Welford rule.
	c.C2 += dx * (y - c.MeanY)
}

// Merge combines two partial bivariate summaries over disjoint partitions.
func (c CoMoments) Merge(o CoMoments) CoMoments {
	if c.Count == 0 {
		return o
	}
	if o.Count == 0 {
		return c
	}

	n := c.Count + o.Count
	na, nb := float64(c.Count), float64(o.Count)
	dx := o.MeanX - c.MeanX
	dy := o.MeanY - c.MeanY

	return CoMoments{
		Count: n,
		MeanX: c.MeanX + dx*nb/float64(n),
		MeanY: c.MeanY + dy*nb/float64(n),
		C2:    c.C2 + o.C2 + dx*dy*na*nb/float64(n),
	}
}

// Covariance finalizes the summary under the given correction mode.
func (c CoMoments) Covariance(mode Correction) (float64, error) {
	div, err := divisor(c.Count, mode)
	if err != nil {
		return 0, err
	}
	return c.C2 / div, nil
}

// SummarizePairs builds a CoMoments over two aligned slices in one pass.
// Lengths must already be validated by the caller.
func SummarizePairs(xs, ys []float64) CoMoments {
	var c CoMoments
	for i := range xs {
		c.Add(xs[i], ys[i])
	}
	return c
}
