package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/recruitflow/internal/flow"
)

func TestJSONLStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots", "flows.jsonl")
	s, err := NewJSONLStore(path)
	require.NoError(t, err)

	fc := &flow.Context{
		FlowID:      "flow-1",
		CandidateID: "a",
		JobID:       "job-1",
		Stage:       flow.StageParse,
		Status:      flow.StatusInProgress,
	}
	require.NoError(t, s.SaveSnapshot(context.Background(), fc))

	loaded, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "flow-1", loaded[0].FlowID)
	assert.Equal(t, flow.StageParse, loaded[0].Stage)
}

func TestJSONLStoreLastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flows.jsonl")
	s, err := NewJSONLStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.SaveSnapshot(ctx, &flow.Context{FlowID: "flow-1", Stage: flow.StageParse, Status: flow.StatusInProgress}))
	require.NoError(t, s.SaveSnapshot(ctx, &flow.Context{FlowID: "flow-2", Stage: flow.StageParse, Status: flow.StatusInProgress}))
	require.NoError(t, s.SaveSnapshot(ctx, &flow.Context{FlowID: "flow-1", Stage: flow.StageComplete, Status: flow.StatusSuccess}))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "flow-1", loaded[0].FlowID)
	assert.Equal(t, flow.StatusSuccess, loaded[0].Status)
	assert.Equal(t, "flow-2", loaded[1].FlowID)
}

func TestJSONLStoreMissingFile(t *testing.T) {
	s, err := NewJSONLStore(filepath.Join(t.TempDir(), "never-written.jsonl"))
	require.NoError(t, err)

	loaded, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONLStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flows.jsonl")
	s, err := NewJSONLStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.SaveSnapshot(ctx, &flow.Context{FlowID: "flow-1", Status: flow.StatusSuccess}))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json\n\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, s.SaveSnapshot(ctx, &flow.Context{FlowID: "flow-2", Status: flow.StatusPaused}))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "flow-1", loaded[0].FlowID)
	assert.Equal(t, "flow-2", loaded[1].FlowID)
}
