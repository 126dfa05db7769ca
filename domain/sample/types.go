package sample

import (
	"math"

	"hypotest/domain/core"
)

// Sample is an ordered sequence of real-valued observations. The engines
// require samples to be non-empty and finite; validation is explicit so
// callers decide when to pay for it.
type Sample []float64

// Validate checks that the sample is non-empty and every observation is
// finite. The returned error identifies the first offending index.
func (s Sample) Validate(name string) error {
	if len(s) == 0 {
		return core.NewInsufficientDataError(name, 0, 1)
	}
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewInvalidValueError(name, i, v)
		}
	}
	return nil
}

// Len returns the number of observations.
func (s Sample) Len() int {
	return len(s)
}

// Paired associates two samples of equal length by index. The association
// is fixed at construction time.
type Paired struct {
	X Sample
	Y Sample
}

// NewPaired forms a paired sample set, rejecting unequal lengths and
// non-finite observations.
func NewPaired(x, y []float64) (Paired, error) {
	if len(x) != len(y) {
		return Paired{}, core.NewShapeMismatchError("paired samples", len(x), len(y))
	}
	p := Paired{X: Sample(x), Y: Sample(y)}
	if err := p.X.Validate("x"); err != nil {
		return Paired{}, err
	}
	if err := p.Y.Validate("y"); err != nil {
		return Paired{}, err
	}
	return p, nil
}

// Len returns the common length of the pair.
func (p Paired) Len() int {
	return len(p.X)
}

// Differences returns the index-wise differences X[i] - Y[i], used by
// paired t-tests and the paired Wilcoxon signed-rank test.
func (p Paired) Differences() Sample {
	d := make(Sample, len(p.X))
	for i := range p.X {
		d[i] = p.X[i] - p.Y[i]
	}
	return d
}

// Column is a named observation vector, the unit an ingested table is
// made of.
type Column struct {
	Key    core.VariableKey `json:"key"`
	Values Sample           `json:"values"`
}

// Table is an in-memory tabular structure of equally long columns.
type Table struct {
	ID      core.DatasetID `json:"id"`
	Name    string         `json:"name"`
	Columns []Column       `json:"columns"`
	Rows    int            `json:"rows"`
}

// Column returns the column with the given key.
func (t *Table) Column(key core.VariableKey) (Column, bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Keys lists the column keys in table order.
func (t *Table) Keys() []core.VariableKey {
	keys := make([]core.VariableKey, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Clean returns the column values with missing observations removed.
// Ingested tables mark unparsable cells as NaN.
func (c Column) Clean() Sample {
	out := make(Sample, 0, len(c.Values))
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// AlignedPair returns the row-aligned values of two columns, dropping
// every row where either observation is missing.
func (t *Table) AlignedPair(xKey, yKey core.VariableKey) (Paired, error) {
	xc, ok := t.Column(xKey)
	if !ok {
		return Paired{}, core.NewLookupMissError("column", string(xKey))
	}
	yc, ok := t.Column(yKey)
	if !ok {
		return Paired{}, core.NewLookupMissError("column", string(yKey))
	}

	x := make(Sample, 0, len(xc.Values))
	y := make(Sample, 0, len(yc.Values))
	for i := range xc.Values {
		if math.IsNaN(xc.Values[i]) || math.IsNaN(yc.Values[i]) {
			continue
		}
		x = append(x, xc.Values[i])
		y = append(y, yc.Values[i])
	}
	return NewPaired(x, y)
}
