// Package intake feeds resumes into the orchestrator. The directory watcher
// polls a drop folder for new files; the Gmail intake downloads resume
// attachments into that folder.
package intake

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/recruitflow/internal/flow"
)

// startConcurrency caps parallel flow starts per scan
const startConcurrency = 4

// FlowStarter starts a flow for a resume file
type FlowStarter interface {
	StartFlow(ctx context.Context, flowID, resumePath, jobID string) (*flow.Context, error)
}

// DirectoryWatcher polls a drop directory and starts a flow for every new
// resume file it finds. Files already seen are skipped, so the watcher can
// run indefinitely over the same folder.
type DirectoryWatcher struct {
	dir      string
	jobID    string
	starter  FlowStarter
	interval time.Duration

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDirectoryWatcher creates a watcher for dir, starting flows for jobID
func NewDirectoryWatcher(dir, jobID string, starter FlowStarter, interval time.Duration) *DirectoryWatcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &DirectoryWatcher{
		dir:      dir,
		jobID:    jobID,
		starter:  starter,
		interval: interval,
		seen:     make(map[string]struct{}),
	}
}

// Run polls until the context is cancelled
func (w *DirectoryWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.ScanOnce(ctx); err != nil {
			log.Printf("[intake] scan failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ScanOnce processes every unseen resume file in the directory, starting
// flows concurrently, and returns how many flows were started. Individual
// start failures are logged without failing the scan.
func (w *DirectoryWatcher) ScanOnce(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read intake directory: %w", err)
	}

	var fresh []string
	w.mu.Lock()
	for _, entry := range entries {
		if entry.IsDir() || !supportedResume(entry.Name()) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if _, ok := w.seen[path]; ok {
			continue
		}
		w.seen[path] = struct{}{}
		fresh = append(fresh, path)
	}
	w.mu.Unlock()

	if len(fresh) == 0 {
		return 0, nil
	}

	var (
		countMu sync.Mutex
		started int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(startConcurrency)
	for _, path := range fresh {
		g.Go(func() error {
			flowID := "flow-" + uuid.NewString()
			fc, err := w.starter.StartFlow(gctx, flowID, path, w.jobID)
			if err != nil {
				log.Printf("[intake] failed to start flow for %s: %v", path, err)
				return nil
			}
			log.Printf("[intake] %s: started for %s (status=%s)", fc.FlowID, path, fc.Status)
			countMu.Lock()
			started++
			countMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return started, err
	}
	return started, nil
}

// supportedResume reports whether the file extension is one the parser accepts
func supportedResume(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".html", ".htm":
		return true
	default:
		return false
	}
}
