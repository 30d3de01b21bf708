package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/recruitflow/internal/flow"
)

// PostgresStore keeps one row per flow in flow_snapshots, upserted on every
// save so the row always reflects the latest state.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// SaveSnapshot upserts the flow's full state keyed by flow_id
func (s *PostgresStore) SaveSnapshot(ctx context.Context, fc *flow.Context) error {
	jsonBytes, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO flow_snapshots (flow_id, candidate_id, job_id, stage, status, context, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (flow_id) DO UPDATE SET
		   candidate_id = $2, job_id = $3, stage = $4, status = $5, context = $6, updated_at = NOW()`,
		fc.FlowID, fc.CandidateID, fc.JobID, string(fc.Stage), string(fc.Status), jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", fc.FlowID, err)
	}
	return nil
}

// LoadAll returns the stored state of every flow, oldest first
func (s *PostgresStore) LoadAll(ctx context.Context) ([]*flow.Context, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT context FROM flow_snapshots ORDER BY updated_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []*flow.Context
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		var fc flow.Context
		if err := json.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		out = append(out, &fc)
	}
	return out, nil
}
