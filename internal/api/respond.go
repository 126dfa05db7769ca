package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"hypotest/adapters/stats/critical"
	"hypotest/domain/core"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: bad
// inputs are 400, lookup misses 404, everything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case core.IsLookupMissError(err):
		writeError(w, http.StatusNotFound, err.Error())
	case core.IsInputError(err) || errors.Is(err, core.ErrUnsupportedAlgorithm) || errors.Is(err, core.ErrUndefinedResult):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func queryAlpha(r *http.Request, fallback float64) (float64, error) {
	raw := r.URL.Query().Get("alpha")
	if raw == "" {
		return fallback, nil
	}
	var alpha float64
	if _, err := fmt.Sscanf(raw, "%g", &alpha); err != nil {
		return 0, fmt.Errorf("alpha must be a number")
	}
	return alpha, nil
}

func queryTail(r *http.Request) (critical.Tail, error) {
	raw := r.URL.Query().Get("tail")
	if raw == "" {
		return critical.TwoTail, nil
	}
	return critical.ParseTail(raw)
}
