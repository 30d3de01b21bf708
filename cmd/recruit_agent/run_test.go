package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_MissingResume(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run", "--job", "job-1")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--resume is required")
}

func TestRunCommand_MissingJob(t *testing.T) {
	binaryPath := getBinaryPath(t)

	resume := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Jane Doe\njane@example.com"), 0o644))

	cmd := exec.Command(binaryPath, "run", "--resume", resume)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--job is required")
}

func TestRunCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	resume := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Jane Doe\njane@example.com"), 0o644))

	cmd := exec.Command(binaryPath, "run", "--resume", resume, "--job", "job-1")

	// Clear environment to ensure no API key
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "GEMINI_API_KEY=") {
			env = append(env, e)
		}
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY environment variable or --api-key flag is required")
}

func TestHashPasswordCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "hash-password", "hunter2")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(output)), "$2"), "expected a bcrypt hash, got %q", output)
}

func TestExportCommand_MissingStore(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "export")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --snapshot or --db-url is required")
}

func TestExportCommand_JSONL(t *testing.T) {
	binaryPath := getBinaryPath(t)

	dir := t.TempDir()
	snapshot := filepath.Join(dir, "flows.jsonl")
	require.NoError(t, os.WriteFile(snapshot, []byte(
		`{"flow_id":"flow-1","candidate_id":"jane","job_id":"job-1","stage":"complete","status":"success","created_at":"2024-03-01T00:00:00Z","updated_at":"2024-03-01T00:00:00Z"}`+"\n",
	), 0o644))
	out := filepath.Join(dir, "report.xlsx")

	cmd := exec.Command(binaryPath, "export", "--snapshot", snapshot, "--output", out)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Exported 1 flows")
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestServeCommand_MissingJWTSecret(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "serve")
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "JWT_SECRET=") {
			env = append(env, e)
		}
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "JWT_SECRET")
}
