package ports

import (
	"context"

	"hypotest/adapters/stats/hypothesis"
	"hypotest/domain/core"
)

// ResultRepository persists test results and serves them back for
// later inspection.
type ResultRepository interface {
	// SaveResult stores a test result together with its full payload.
	SaveResult(ctx context.Context, result *hypothesis.Result, payload any) error

	// GetResult retrieves a result by ID.
	GetResult(ctx context.Context, id core.ResultID) (*StoredResult, error)

	// ListResults returns the most recent results, newest first.
	ListResults(ctx context.Context, limit int) ([]*StoredResult, error)
}

// StoredResult is a persisted result with its raw payload, which holds
// the test-specific fields as JSON.
type StoredResult struct {
	Result  hypothesis.Result `json:"result"`
	Payload []byte            `json:"payload"`
}
