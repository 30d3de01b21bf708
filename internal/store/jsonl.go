package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/recruitflow/internal/flow"
)

// JSONLStore appends one snapshot per line to a JSONL file. The file is
// never rewritten; replay applies lines in order so the last line per
// flow_id wins. Suits a single process on a single host.
type JSONLStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONLStore creates the store, making parent directories as needed
func NewJSONLStore(path string) (*JSONLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	return &JSONLStore{path: path}, nil
}

// SaveSnapshot appends the flow state as one JSON line
func (s *JSONLStore) SaveSnapshot(_ context.Context, fc *flow.Context) error {
	line, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append snapshot: %w", err)
	}
	return nil
}

// LoadAll replays the file and returns the latest snapshot per flow, in
// first-seen flow order. A missing file yields an empty result. Corrupt
// lines are skipped rather than failing the whole replay.
func (s *JSONLStore) LoadAll(_ context.Context) ([]*flow.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	latest := make(map[string]*flow.Context)
	var order []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var fc flow.Context
		if err := json.Unmarshal(line, &fc); err != nil || fc.FlowID == "" {
			continue
		}
		if _, seen := latest[fc.FlowID]; !seen {
			order = append(order, fc.FlowID)
		}
		latest[fc.FlowID] = &fc
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	out := make([]*flow.Context, 0, len(order))
	for _, id := range order {
		out = append(out, latest[id])
	}
	return out, nil
}

// Close is a no-op; the file is opened per append
func (s *JSONLStore) Close() error { return nil }
