package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hypotest/adapters/stats/correlate"
	"hypotest/adapters/stats/critical"
	"hypotest/adapters/stats/describe"
	"hypotest/adapters/stats/varcov"
	"hypotest/app"
	"hypotest/domain/core"
	"hypotest/domain/sample"
)

func (s *Server) handleRunTest(w http.ResponseWriter, r *http.Request) {
	var req app.TestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Alpha == 0 {
		req.Alpha = s.cfg.Alpha
	}

	resp, err := s.tests.Run(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "result storage is not configured")
		return
	}

	id, err := core.ParseResultID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid result id")
		return
	}

	stored, err := s.repo.GetResult(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "result storage is not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}

	results, err := s.repo.ListResults(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// sweepRequest carries an inline table. Columns preserve request
// order.
type sweepRequest struct {
	Columns    []sweepColumn `json:"columns"`
	Method     string        `json:"method,omitempty"`
	Algorithm  string        `json:"algorithm,omitempty"`
	MinOverlap int           `json:"min_overlap,omitempty"`
}

type sweepColumn struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	table := &sample.Table{ID: core.DatasetID(core.NewID()), Name: "inline"}
	for _, c := range req.Columns {
		table.Columns = append(table.Columns, sample.Column{
			Key:    core.VariableKey(c.Key),
			Values: sample.Sample(c.Values),
		})
		if table.Rows < len(c.Values) {
			table.Rows = len(c.Values)
		}
	}

	sweep := app.SweepRequest{
		Table:      table,
		MinOverlap: req.MinOverlap,
		Workers:    s.cfg.SweepWorkers,
	}
	if req.Method != "" {
		sweep.Method = correlate.Method(req.Method)
	}
	if req.Algorithm == "" {
		sweep.Algorithm = s.cfg.Algorithm
	} else {
		sweep.Algorithm = varcov.Algorithm(req.Algorithm)
	}

	res, err := s.sweeps.Run(r.Context(), sweep)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type describeRequest struct {
	Values     []float64 `json:"values"`
	Correction string    `json:"correction,omitempty"`
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode := s.cfg.Correction
	if req.Correction != "" {
		parsed, err := varcov.ParseCorrection(req.Correction)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		mode = parsed
	}

	summary, err := describe.Summarize(sample.Sample(req.Values), mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleChiSquareCritical(w http.ResponseWriter, r *http.Request) {
	df, err := strconv.Atoi(r.URL.Query().Get("df"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "df must be an integer")
		return
	}
	alpha, err := queryAlpha(r, s.cfg.Alpha)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	value, err := critical.ChiSquare(df, alpha)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"df": df, "alpha": alpha, "critical_value": value})
}

func (s *Server) handleUCritical(w http.ResponseWriter, r *http.Request) {
	n1, err1 := strconv.Atoi(r.URL.Query().Get("n1"))
	n2, err2 := strconv.Atoi(r.URL.Query().Get("n2"))
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "n1 and n2 must be integers")
		return
	}
	alpha, err := queryAlpha(r, s.cfg.Alpha)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tail, err := queryTail(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	value, err := critical.MannWhitneyU(n1, n2, alpha, tail)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"n1": n1, "n2": n2, "alpha": alpha, "tail": tail, "critical_value": value,
	})
}

func (s *Server) handleWCritical(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "n must be an integer")
		return
	}
	alpha, err := queryAlpha(r, s.cfg.Alpha)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tail, err := queryTail(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	value, err := critical.WilcoxonW(n, alpha, tail)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"n": n, "alpha": alpha, "tail": tail, "critical_value": value,
	})
}
