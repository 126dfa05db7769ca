// Package testkit generates deterministic synthetic samples for tests.
package testkit

import (
	"math"
	"math/rand"
	"sort"

	"hypotest/domain/core"
	"hypotest/domain/sample"
)

// Kit produces reproducible synthetic data from a fixed seed.
type Kit struct {
	rng *rand.Rand
}

// NewKit creates a test kit seeded for reproducibility.
func NewKit(seed int64) *Kit {
	return &Kit{rng: rand.New(rand.NewSource(seed))}
}

// Normal draws n observations from N(mu, sigma^2).
func (k *Kit) Normal(n int, mu, sigma float64) sample.Sample {
	out := make(sample.Sample, n)
	for i := range out {
		out[i] = mu + sigma*k.rng.NormFloat64()
	}
	return out
}

// Uniform draws n observations from U(low, high).
func (k *Kit) Uniform(n int, low, high float64) sample.Sample {
	out := make(sample.Sample, n)
	for i := range out {
		out[i] = low + (high-low)*k.rng.Float64()
	}
	return out
}

// CorrelatedPair draws two standard normal samples with population
// correlation rho.
func (k *Kit) CorrelatedPair(n int, rho float64) (sample.Sample, sample.Sample) {
	x := make(sample.Sample, n)
	y := make(sample.Sample, n)
	c := math.Sqrt(1 - rho*rho)
	for i := 0; i < n; i++ {
		a := k.rng.NormFloat64()
		b := k.rng.NormFloat64()
		x[i] = a
		y[i] = rho*a + c*b
	}
	return x, y
}

// Coarse draws n observations quantized to the given number of levels,
// guaranteeing heavy ties for rank tests.
func (k *Kit) Coarse(n, levels int) sample.Sample {
	out := make(sample.Sample, n)
	for i := range out {
		out[i] = float64(k.rng.Intn(levels))
	}
	return out
}

// Table assembles named columns into a table for sweep tests.
func (k *Kit) Table(name string, cols map[string]sample.Sample) *sample.Table {
	table := &sample.Table{
		ID:   core.DatasetID(core.NewID()),
		Name: name,
	}
	keys := make([]string, 0, len(cols))
	for key := range cols {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		values := cols[key]
		if table.Rows < len(values) {
			table.Rows = len(values)
		}
		table.Columns = append(table.Columns, sample.Column{
			Key:    core.VariableKey(key),
			Values: values,
		})
	}
	return table
}
