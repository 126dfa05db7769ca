package app

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"hypotest/adapters/stats/correlate"
	"hypotest/adapters/stats/varcov"
	"hypotest/domain/core"
	"hypotest/domain/sample"
	"hypotest/internal"
)

// SweepService computes the pairwise correlation structure of a table.
type SweepService struct {
	logger *internal.ComponentLogger
}

// NewSweepService creates a sweep service.
func NewSweepService(logger *internal.Logger) *SweepService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &SweepService{logger: logger.Component("sweep")}
}

// SweepRequest configures a correlation sweep over a table. Zero
// values mean Pearson over the two-pass kernel with 4 workers and a
// minimum pairwise overlap of 3 rows.
type SweepRequest struct {
	Table      *sample.Table
	Method     correlate.Method
	Algorithm  varcov.Algorithm
	MinOverlap int
	Workers    int64
}

// PairResult is one correlated column pair. Skipped pairs carry the
// reason instead of a coefficient.
type PairResult struct {
	X           core.VariableKey `json:"x"`
	Y           core.VariableKey `json:"y"`
	Correlation float64          `json:"correlation"`
	N           int              `json:"n"`
	Skipped     string           `json:"skipped,omitempty"`
}

// SweepResult holds every evaluated pair ordered by absolute
// correlation strength, strongest first.
type SweepResult struct {
	SweepID   core.ID      `json:"sweep_id"`
	Pairs     []PairResult `json:"pairs"`
	Evaluated int          `json:"evaluated"`
	SkipCount int          `json:"skip_count"`
	RuntimeMs int64        `json:"runtime_ms"`
}

func (r *SweepRequest) normalize() error {
	if r.Table == nil || len(r.Table.Columns) < 2 {
		n := 0
		if r.Table != nil {
			n = len(r.Table.Columns)
		}
		return core.NewInsufficientDataError("table columns", n, 2)
	}
	if r.Method == "" {
		r.Method = correlate.MethodPearson
	}
	if _, err := correlate.ParseMethod(string(r.Method)); err != nil {
		return err
	}
	if r.Algorithm == "" {
		r.Algorithm = varcov.AlgorithmTwoPass
	}
	if _, err := varcov.ParseAlgorithm(string(r.Algorithm)); err != nil {
		return err
	}
	if r.MinOverlap <= 0 {
		r.MinOverlap = 3
	}
	if r.Workers <= 0 {
		r.Workers = 4
	}
	return nil
}

// Run evaluates every column pair concurrently. Pairs whose aligned
// overlap is too small or whose correlation is undefined are reported
// as skipped rather than failing the sweep.
func (s *SweepService) Run(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	start := time.Now()
	if err := req.normalize(); err != nil {
		return nil, err
	}

	type pairJob struct {
		i, j int
	}
	cols := req.Table.Columns
	jobs := make([]pairJob, 0, len(cols)*(len(cols)-1)/2)
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			jobs = append(jobs, pairJob{i, j})
		}
	}

	s.logger.Info("starting correlation sweep: %d columns, %d pairs, method=%s", len(cols), len(jobs), req.Method)

	sem := semaphore.NewWeighted(req.Workers)
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		pairs = make([]PairResult, 0, len(jobs))
	)

	for _, job := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(job pairJob) {
			defer sem.Release(1)
			defer wg.Done()

			res := s.evaluatePair(req, cols[job.i], cols[job.j])
			mu.Lock()
			pairs = append(pairs, res)
			mu.Unlock()
		}(job)
	}
	wg.Wait()

	sort.Slice(pairs, func(a, b int) bool {
		pa, pb := pairs[a], pairs[b]
		if (pa.Skipped == "") != (pb.Skipped == "") {
			return pa.Skipped == ""
		}
		if math.Abs(pa.Correlation) != math.Abs(pb.Correlation) {
			return math.Abs(pa.Correlation) > math.Abs(pb.Correlation)
		}
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})

	result := &SweepResult{
		SweepID:   core.NewID(),
		Pairs:     pairs,
		Evaluated: len(jobs),
		RuntimeMs: time.Since(start).Milliseconds(),
	}
	for _, p := range pairs {
		if p.Skipped != "" {
			result.SkipCount++
		}
	}

	s.logger.Info("correlation sweep %s done: %d pairs, %d skipped, %dms",
		result.SweepID, result.Evaluated, result.SkipCount, result.RuntimeMs)
	return result, nil
}

func (s *SweepService) evaluatePair(req SweepRequest, x, y sample.Column) PairResult {
	res := PairResult{X: x.Key, Y: y.Key}

	pair, err := req.Table.AlignedPair(x.Key, y.Key)
	if err != nil {
		res.Skipped = err.Error()
		return res
	}
	res.N = pair.Len()
	if pair.Len() < req.MinOverlap {
		res.Skipped = "insufficient overlap"
		return res
	}

	r, err := correlate.Correlation(pair.X, pair.Y, req.Method, req.Algorithm)
	if err != nil {
		res.Skipped = err.Error()
		return res
	}
	res.Correlation = r
	return res
}

// CovarianceMatrix computes the covariance matrix of the table's
// columns over rows where every column is present.
func (s *SweepService) CovarianceMatrix(table *sample.Table, algo varcov.Algorithm, mode varcov.Correction) (*varcov.MatrixResult, error) {
	if table == nil || len(table.Columns) == 0 {
		return nil, core.NewInsufficientDataError("table columns", 0, 1)
	}

	complete := completeRows(table)
	if len(complete) == 0 || len(complete[0]) < 2 {
		n := 0
		if len(complete) > 0 {
			n = len(complete[0])
		}
		return nil, core.NewInsufficientDataError("complete rows", n, 2)
	}

	m, err := varcov.Matrix(complete, algo, mode)
	if err != nil {
		return nil, err
	}
	return &varcov.MatrixResult{Keys: table.Keys(), Matrix: m}, nil
}

// completeRows extracts the column vectors restricted to rows with no
// missing observations.
func completeRows(table *sample.Table) [][]float64 {
	k := len(table.Columns)
	vars := make([][]float64, k)
	for i := range vars {
		vars[i] = make([]float64, 0, table.Rows)
	}

	for row := 0; row < table.Rows; row++ {
		ok := true
		for _, c := range table.Columns {
			if row >= len(c.Values) || math.IsNaN(c.Values[row]) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for i, c := range table.Columns {
			vars[i] = append(vars[i], c.Values[row])
		}
	}
	return vars
}
