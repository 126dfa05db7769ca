package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/adapters/stats/varcov"
	"hypotest/app"
	"hypotest/internal/config"
)

func testServer() *Server {
	cfg := config.StatsConfig{
		Algorithm:    varcov.AlgorithmTwoPass,
		Correction:   varcov.CorrectionSample,
		Alpha:        0.05,
		SweepWorkers: 2,
	}
	return NewServer(app.NewTestService(nil, nil), app.NewSweepService(nil), nil, cfg, nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRunTest_TwoSampleT(t *testing.T) {
	body := map[string]any{
		"kind": "two-sample-t-test",
		"x":    []float64{139750, 173200, 79750, 11500, 141500},
		"y":    []float64{103450, 124750, 137000, 89565, 102580},
	}
	rec := doJSON(t, testServer(), http.MethodPost, "/api/tests", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Result struct {
			Test      string  `json:"test"`
			Statistic float64 `json:"statistic"`
			PValue    float64 `json:"p_value"`
			Alpha     float64 `json:"alpha"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "two-sample Welch t-test", resp.Result.Test)
	assert.InDelta(t, -0.07777, resp.Result.Statistic, 1e-4)
	assert.Equal(t, 0.05, resp.Result.Alpha)
}

func TestRunTest_BadRequests(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodPost, "/api/tests", map[string]any{"kind": "anova"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, testServer(), http.MethodPost, "/api/tests", map[string]any{
		"kind": "t-test",
		"x":    []float64{1},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResults_WithoutRepository(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodGet, "/api/results", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSweep(t *testing.T) {
	body := map[string]any{
		"columns": []map[string]any{
			{"key": "a", "values": []float64{1, 2, 3, 4, 5}},
			{"key": "b", "values": []float64{2, 4, 6, 8, 10}},
			{"key": "c", "values": []float64{5, 3, 4, 1, 2}},
		},
	}
	rec := doJSON(t, testServer(), http.MethodPost, "/api/sweep", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Pairs []struct {
			X           string  `json:"x"`
			Y           string  `json:"y"`
			Correlation float64 `json:"correlation"`
		} `json:"pairs"`
		Evaluated int `json:"evaluated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Evaluated)
	require.NotEmpty(t, resp.Pairs)
	assert.InDelta(t, 1.0, resp.Pairs[0].Correlation, 1e-12)
}

func TestDescribe(t *testing.T) {
	body := map[string]any{"values": []float64{2, 4, 4, 4, 5, 5, 7, 9}, "correction": "population"}
	rec := doJSON(t, testServer(), http.MethodPost, "/api/describe", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary struct {
		Mean     float64 `json:"mean"`
		Variance float64 `json:"variance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.InDelta(t, 5.0, summary.Mean, 1e-12)
	assert.InDelta(t, 4.0, summary.Variance, 1e-12)
}

func TestCriticalEndpoints(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodGet, "/api/critical/chi-square?df=2&alpha=0.05", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chi struct {
		CriticalValue float64 `json:"critical_value"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chi))
	assert.InDelta(t, 5.991, chi.CriticalValue, 1e-3)

	rec = doJSON(t, testServer(), http.MethodGet, "/api/critical/mann-whitney?n1=5&n2=5&alpha=0.05&tail=two-tail", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var u struct {
		CriticalValue float64 `json:"critical_value"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, 2.0, u.CriticalValue)

	rec = doJSON(t, testServer(), http.MethodGet, "/api/critical/wilcoxon?n=10&alpha=0.05&tail=two-tail", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var wv struct {
		CriticalValue float64 `json:"critical_value"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wv))
	assert.Equal(t, 8.0, wv.CriticalValue)

	// Off-grid lookups are 404, malformed input is 400.
	rec = doJSON(t, testServer(), http.MethodGet, "/api/critical/chi-square?df=31", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, testServer(), http.MethodGet, "/api/critical/chi-square?df=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
