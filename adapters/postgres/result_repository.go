// Package postgres persists test results behind the
// ports.ResultRepository interface.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hypotest/adapters/stats/hypothesis"
	"hypotest/domain/core"
	"hypotest/ports"
)

// resultRepository implements ports.ResultRepository on PostgreSQL.
type resultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository.
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &resultRepository{db: db}
}

// Migrate creates the results table if it does not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		test TEXT NOT NULL,
		statistic DOUBLE PRECISION NOT NULL,
		df DOUBLE PRECISION,
		p_value DOUBLE PRECISION NOT NULL,
		alpha DOUBLE PRECISION NOT NULL,
		alternative TEXT NOT NULL,
		critical_value DOUBLE PRECISION,
		reject BOOLEAN NOT NULL,
		effect_size DOUBLE PRECISION,
		payload JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate results table: %w", err)
	}
	return nil
}

// SaveResult stores a test result and its test-specific payload.
func (r *resultRepository) SaveResult(ctx context.Context, result *hypothesis.Result, payload any) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal result payload: %w", err)
	}

	query := `INSERT INTO results (
		id, test, statistic, df, p_value, alpha, alternative,
		critical_value, reject, effect_size, payload, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.ExecContext(ctx, query,
		result.ID.String(), result.Test, result.Statistic, result.DF, result.PValue,
		result.Alpha, string(result.Alternative), result.CriticalValue, result.Reject,
		result.EffectSize, payloadJSON, result.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetResult retrieves a result by ID.
func (r *resultRepository) GetResult(ctx context.Context, id core.ResultID) (*ports.StoredResult, error) {
	query := `SELECT id, test, statistic, COALESCE(df, 0) as df, p_value, alpha, alternative,
		critical_value, reject, COALESCE(effect_size, 0) as effect_size, payload, created_at
	FROM results WHERE id = $1`

	stored, err := scanResult(r.db.QueryRowxContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewLookupMissError("result", id.String())
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return stored, nil
}

// ListResults returns the most recent results, newest first.
func (r *resultRepository) ListResults(ctx context.Context, limit int) ([]*ports.StoredResult, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, test, statistic, COALESCE(df, 0) as df, p_value, alpha, alternative,
		critical_value, reject, COALESCE(effect_size, 0) as effect_size, payload, created_at
	FROM results ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []*ports.StoredResult
	for rows.Next() {
		stored, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, stored)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*ports.StoredResult, error) {
	var (
		stored    ports.StoredResult
		id        string
		alt       string
		critical  sql.NullFloat64
		createdAt time.Time
	)

	err := row.Scan(
		&id, &stored.Result.Test, &stored.Result.Statistic, &stored.Result.DF,
		&stored.Result.PValue, &stored.Result.Alpha, &alt, &critical,
		&stored.Result.Reject, &stored.Result.EffectSize, &stored.Payload, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	stored.Result.ID = core.ResultID(id)
	stored.Result.Alternative = hypothesis.Alternative(alt)
	if critical.Valid {
		stored.Result.CriticalValue = &critical.Float64
	}
	stored.Result.CreatedAt = core.NewTimestamp(createdAt)
	return &stored, nil
}
