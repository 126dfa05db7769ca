package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hypotest/adapters/stats/hypothesis"
	"hypotest/domain/core"
	"hypotest/domain/sample"
	"hypotest/ports"
)

type mockResultRepository struct {
	mock.Mock
}

func (m *mockResultRepository) SaveResult(ctx context.Context, result *hypothesis.Result, payload any) error {
	args := m.Called(ctx, result, payload)
	return args.Error(0)
}

func (m *mockResultRepository) GetResult(ctx context.Context, id core.ResultID) (*ports.StoredResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.StoredResult), args.Error(1)
}

func (m *mockResultRepository) ListResults(ctx context.Context, limit int) ([]*ports.StoredResult, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ports.StoredResult), args.Error(1)
}

func TestTestService_RunTwoSampleT(t *testing.T) {
	svc := NewTestService(nil, nil)

	resp, err := svc.Run(context.Background(), TestRequest{
		Kind: TestTwoSampleT,
		X:    sample.Sample{139750, 173200, 79750, 11500, 141500},
		Y:    sample.Sample{103450, 124750, 137000, 89565, 102580},
	})
	require.NoError(t, err)

	assert.Equal(t, "two-sample Welch t-test", resp.Result.Test)
	assert.InDelta(t, -0.0777706596927502, resp.Result.Statistic, 1e-10)

	payload, ok := resp.Payload.(*hypothesis.TTestResult)
	require.True(t, ok)
	assert.InDelta(t, 109140.0, payload.Mean1, 1e-9)
}

func TestTestService_RunGroupedKruskal(t *testing.T) {
	svc := NewTestService(nil, nil)

	resp, err := svc.Run(context.Background(), TestRequest{
		Kind:   TestKruskalWallis,
		Values: []float64{4.17, 5.58, 5.18, 4.81, 4.17, 4.41, 5.31, 5.12, 5.54},
		Labels: []string{"ctrl", "ctrl", "ctrl", "trt1", "trt1", "trt1", "trt2", "trt2", "trt2"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.1148459383753497, resp.Result.Statistic, 1e-10)
}

func TestTestService_SplitsLabelledTwoSamples(t *testing.T) {
	svc := NewTestService(nil, nil)

	resp, err := svc.Run(context.Background(), TestRequest{
		Kind:       TestMannWhitney,
		Values:     []float64{139750, 173200, 79750, 11500, 141500, 103450, 124750, 137000, 89565, 102580},
		Labels:     []string{"A", "A", "A", "A", "A", "B", "B", "B", "B", "B"},
		Continuity: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.Result.Statistic)
}

func TestTestService_PersistsResult(t *testing.T) {
	repo := new(mockResultRepository)
	repo.On("SaveResult", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewTestService(repo, nil)
	_, err := svc.Run(context.Background(), TestRequest{
		Kind:      TestBinomial,
		Trials:    20,
		Successes: 12,
	})
	require.NoError(t, err)

	repo.AssertCalled(t, "SaveResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestTestService_UnknownKind(t *testing.T) {
	svc := NewTestService(nil, nil)
	_, err := svc.Run(context.Background(), TestRequest{Kind: "anova"})
	assert.Error(t, err)
}
