// Package store persists flow snapshots. Two backends are provided: an
// append-only JSONL file for single-host setups and PostgreSQL for shared
// deployments. Both satisfy the orchestrator's Store interface.
package store

import (
	"context"

	"github.com/jonathan/recruitflow/internal/flow"
)

// Store persists and replays flow snapshots
type Store interface {
	// SaveSnapshot records the flow's current state
	SaveSnapshot(ctx context.Context, fc *flow.Context) error
	// LoadAll returns the latest snapshot of every known flow
	LoadAll(ctx context.Context) ([]*flow.Context, error)
	// Close releases the backend's resources
	Close() error
}
