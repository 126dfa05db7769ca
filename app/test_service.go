package app

import (
	"context"

	"hypotest/adapters/stats/hypothesis"
	"hypotest/domain/core"
	"hypotest/domain/sample"
	"hypotest/internal"
	"hypotest/ports"
)

// TestKind names a runnable hypothesis test.
type TestKind string

const (
	TestOneSampleT     TestKind = "t-test"
	TestTwoSampleT     TestKind = "two-sample-t-test"
	TestPairedT        TestKind = "paired-t-test"
	TestBinomial       TestKind = "binomial"
	TestChiSquare      TestKind = "chi-square"
	TestMannWhitney    TestKind = "mann-whitney"
	TestWilcoxon       TestKind = "wilcoxon"
	TestKruskalWallis  TestKind = "kruskal-wallis"
)

// TestService dispatches hypothesis test requests and persists results
// when a repository is configured.
type TestService struct {
	repo   ports.ResultRepository
	logger *internal.ComponentLogger
}

// NewTestService creates a test service. The repository may be nil, in
// which case results are computed but not stored.
func NewTestService(repo ports.ResultRepository, logger *internal.Logger) *TestService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &TestService{repo: repo, logger: logger.Component("tests")}
}

// TestRequest carries the inputs of a single test run. Which fields
// are consumed depends on the kind: two-sample kinds use X and Y,
// grouped kinds use Values+Labels, the binomial test uses Trials and
// Successes.
type TestRequest struct {
	Kind        TestKind             `json:"kind"`
	X           sample.Sample        `json:"x,omitempty"`
	Y           sample.Sample        `json:"y,omitempty"`
	Values      []float64            `json:"values,omitempty"`
	Labels      []string             `json:"labels,omitempty"`
	Expected    sample.Sample        `json:"expected,omitempty"`
	Trials      int                  `json:"trials,omitempty"`
	Successes   int                  `json:"successes,omitempty"`
	Mu          float64              `json:"mu,omitempty"`
	P           float64              `json:"p,omitempty"`
	Alpha       float64              `json:"alpha,omitempty"`
	Alternative hypothesis.Alternative `json:"alternative,omitempty"`
	EqualVar    bool                 `json:"equal_var,omitempty"`
	Continuity  bool                 `json:"continuity,omitempty"`
}

// TestResponse is the generic result together with the test-specific
// payload.
type TestResponse struct {
	Result  hypothesis.Result `json:"result"`
	Payload any               `json:"payload"`
}

// Run executes the requested test and stores the outcome.
func (s *TestService) Run(ctx context.Context, req TestRequest) (*TestResponse, error) {
	result, payload, err := s.dispatch(req)
	if err != nil {
		s.logger.Warn("test %s failed: %v", req.Kind, err)
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.SaveResult(ctx, result, payload); err != nil {
			return nil, err
		}
	}

	s.logger.Info("test %s: %s", req.Kind, result)
	return &TestResponse{Result: *result, Payload: payload}, nil
}

func (s *TestService) dispatch(req TestRequest) (*hypothesis.Result, any, error) {
	switch req.Kind {
	case TestOneSampleT:
		cfg := hypothesis.TTestConfig{Mu: req.Mu, Alpha: req.Alpha, Alternative: req.Alternative}
		res, err := hypothesis.OneSampleTTest(req.X, cfg)
		if err != nil {
			return nil, nil, err
		}
		return &res.Result, res, nil

	case TestTwoSampleT:
		cfg := hypothesis.TTestConfig{Alpha: req.Alpha, Alternative: req.Alternative, EqualVar: req.EqualVar}
		x, y, err := s.twoSamples(req)
		if err != nil {
			return nil, nil, err
		}
		res, err := hypothesis.TwoSampleTTest(x, y, cfg)
		if err != nil {
			return nil, nil, err
		}
		return &res.Result, res, nil

	case TestPairedT:
		cfg := hypothesis.TTestConfig{Mu: req.Mu, Alpha: req.Alpha, Alternative: req.Alternative}
		res, err := hypothesis.PairedTTest(req.X, req.Y, cfg)
		if err != nil {
			return nil, nil, err
		}
		return &res.Result, res, nil

	case TestBinomial:
		cfg := hypothesis.BinomialConfig{P: req.P, Alpha: req.Alpha, Alternative: req.Alternative, Continuity: req.Continuity}
		res, err := hypothesis.BinomialTest(req.Trials, req.Successes, cfg)
		if err != nil {
			return nil, nil, err
		}
		return &res.Result, res, nil

	case TestChiSquare:
		cfg := hypothesis.ChiSquareConfig{Expected: req.Expected, Continuity: req.Continuity, Alpha: req.Alpha}
		res, err := hypothesis.ChiSquareGoodnessOfFit(req.X, cfg)
		if err != nil {
			return nil, nil, err
		}
		return &res.Result, res, nil

	case TestMannWhitney:
		cfg := hypothesis.MannWhitneyConfig{Alpha: req.Alpha, Continuity: req.Continuity}
		x, y, err := s.twoSamples(req)
		if err != nil {
			return nil, nil, err
		}
		res, err := hypothesis.MannWhitney(x, y, cfg)
		if err != nil {
			return nil, nil, err
		}
		return &res.Result, res, nil

	case TestWilcoxon:
		cfg := hypothesis.WilcoxonConfig{Mu: req.Mu, Alpha: req.Alpha, Alternative: req.Alternative}
		if len(req.Y) > 0 {
			res, err := hypothesis.WilcoxonPaired(req.X, req.Y, cfg)
			if err != nil {
				return nil, nil, err
			}
			return &res.Result, res, nil
		}
		res, err := hypothesis.WilcoxonSignedRank(req.X, cfg)
		if err != nil {
			return nil, nil, err
		}
		return &res.Result, res, nil

	case TestKruskalWallis:
		groups, err := s.groups(req)
		if err != nil {
			return nil, nil, err
		}
		res, err := hypothesis.KruskalWallis(groups, hypothesis.KruskalConfig{Alpha: req.Alpha})
		if err != nil {
			return nil, nil, err
		}
		return &res.Result, res, nil

	default:
		return nil, nil, core.NewUnsupportedAlgorithmError("test", string(req.Kind))
	}
}

// twoSamples resolves the two observation vectors either from X/Y
// directly or by splitting Values on a two-level Labels vector.
func (s *TestService) twoSamples(req TestRequest) (sample.Sample, sample.Sample, error) {
	if len(req.Labels) > 0 {
		g1, g2, err := sample.SplitTwoGroups(req.Values, req.Labels)
		if err != nil {
			return nil, nil, err
		}
		return g1.Values, g2.Values, nil
	}
	return req.X, req.Y, nil
}

func (s *TestService) groups(req TestRequest) ([]sample.Group, error) {
	if len(req.Labels) > 0 {
		return sample.SplitGroups(req.Values, req.Labels)
	}
	// X/Y fallback keeps the two-group call sites uniform.
	return []sample.Group{
		{Label: "sample 1", Values: req.X},
		{Label: "sample 2", Values: req.Y},
	}, nil
}
