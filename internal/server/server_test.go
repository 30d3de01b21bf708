package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/recruitflow/internal/config"
	"github.com/jonathan/recruitflow/internal/flow"
	"github.com/jonathan/recruitflow/internal/server/ratelimit"
	"github.com/jonathan/recruitflow/internal/types"
)

type stubParser struct{ resume *types.ParsedResume }

func (s *stubParser) Parse(_ context.Context, _ string) (*types.ParsedResume, error) {
	return s.resume, nil
}

type stubAnalyzer struct{}

func (s *stubAnalyzer) Analyze(_ context.Context, _ *types.ParsedResume, _ *types.EnrichedProfile, _ string) (*types.Analysis, error) {
	return &types.Analysis{Summary: "strong fit"}, nil
}

type stubScorer struct{ score float64 }

func (s *stubScorer) Score(_ context.Context, _ *types.ParsedResume, _ *types.Analysis, _ string) (float64, error) {
	return s.score, nil
}

type stubNotifier struct{}

func (s *stubNotifier) Notify(_ context.Context, _ types.Notification) error { return nil }

func testOrchestrator(score float64) *flow.Orchestrator {
	return flow.NewOrchestrator(flow.Deps{
		Parser: &stubParser{resume: &types.ParsedResume{
			Name:        "Sample Candidate",
			ContactInfo: types.ContactInfo{Email: "a@b.com"},
		}},
		Analyzer:  &stubAnalyzer{},
		Scorer:    &stubScorer{score: score},
		Notifier:  &stubNotifier{},
		Reviewers: []string{"alice"},
	})
}

func testServer(t *testing.T, score float64) *Server {
	t.Helper()

	hash, err := (&config.PasswordConfig{BcryptCost: 10}).HashPassword("hunter2")
	require.NoError(t, err)

	s, err := New(testOrchestrator(score), Config{
		JWTSecret: "test-secret",
		Reviewers: []config.ReviewerCredential{{Name: "alice", PasswordHash: hash}},
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeFlow(t *testing.T, w *httptest.ResponseRecorder) *flow.Context {
	t.Helper()
	var fc flow.Context
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fc))
	return &fc
}

func loginToken(t *testing.T, s *Server, name, password string) string {
	t.Helper()
	w := doJSON(t, s, "POST", "/auth/login", LoginRequest{Name: name, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	s := testServer(t, 0.9)
	w := doJSON(t, s, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestStartFlow(t *testing.T) {
	s := testServer(t, 0.9)

	w := doJSON(t, s, "POST", "/flows", StartFlowRequest{
		FlowID:     "flow-1",
		ResumePath: "/tmp/resume.txt",
		JobID:      "job-1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	fc := decodeFlow(t, w)
	assert.Equal(t, "flow-1", fc.FlowID)
	assert.Equal(t, flow.StatusSuccess, fc.Status)
	assert.Equal(t, flow.StageComplete, fc.Stage)
}

func TestStartFlowGeneratesID(t *testing.T) {
	s := testServer(t, 0.9)

	w := doJSON(t, s, "POST", "/flows", StartFlowRequest{
		ResumePath: "/tmp/resume.txt",
		JobID:      "job-1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decodeFlow(t, w).FlowID)
}

func TestStartFlowValidation(t *testing.T) {
	s := testServer(t, 0.9)

	w := doJSON(t, s, "POST", "/flows", StartFlowRequest{JobID: "job-1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

func TestStartFlowDuplicate(t *testing.T) {
	s := testServer(t, 0.9)
	req := StartFlowRequest{FlowID: "flow-1", ResumePath: "/tmp/r.txt", JobID: "job-1"}

	require.Equal(t, http.StatusCreated, doJSON(t, s, "POST", "/flows", req, "").Code)
	assert.Equal(t, http.StatusConflict, doJSON(t, s, "POST", "/flows", req, "").Code)
}

func TestGetFlow(t *testing.T) {
	s := testServer(t, 0.9)
	doJSON(t, s, "POST", "/flows", StartFlowRequest{FlowID: "flow-1", ResumePath: "/tmp/r.txt", JobID: "job-1"}, "")

	w := doJSON(t, s, "GET", "/flows/flow-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "flow-1", decodeFlow(t, w).FlowID)

	assert.Equal(t, http.StatusNotFound, doJSON(t, s, "GET", "/flows/missing", nil, "").Code)
}

func TestListFlows(t *testing.T) {
	s := testServer(t, 0.9)
	for i := 0; i < 3; i++ {
		doJSON(t, s, "POST", "/flows", StartFlowRequest{
			FlowID:     fmt.Sprintf("flow-%d", i),
			ResumePath: "/tmp/r.txt",
			JobID:      "job-1",
		}, "")
	}

	w := doJSON(t, s, "GET", "/flows", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var flows []*flow.Context
	require.NoError(t, json.NewDecoder(w.Body).Decode(&flows))
	assert.Len(t, flows, 3)
}

func TestLogin(t *testing.T) {
	s := testServer(t, 0.9)

	token := loginToken(t, s, "alice", "hunter2")
	assert.NotEmpty(t, token)

	w := doJSON(t, s, "POST", "/auth/login", LoginRequest{Name: "alice", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, "POST", "/auth/login", LoginRequest{Name: "mallory", Password: "hunter2"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, "POST", "/auth/login", LoginRequest{Name: "alice"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func approvedBody(approved bool) ReviewRequest {
	return ReviewRequest{Approved: &approved}
}

func TestReviewApproved(t *testing.T) {
	s := testServer(t, 0.4) // low score pauses for manual review

	w := doJSON(t, s, "POST", "/flows", StartFlowRequest{FlowID: "flow-1", ResumePath: "/tmp/r.txt", JobID: "job-1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, flow.StatusPaused, decodeFlow(t, w).Status)

	token := loginToken(t, s, "alice", "hunter2")
	w = doJSON(t, s, "POST", "/flows/flow-1/review", approvedBody(true), token)
	require.Equal(t, http.StatusOK, w.Code)

	fc := decodeFlow(t, w)
	assert.Equal(t, flow.StatusSuccess, fc.Status)
	assert.Equal(t, flow.StageComplete, fc.Stage)
}

func TestReviewRejected(t *testing.T) {
	s := testServer(t, 0.4)
	doJSON(t, s, "POST", "/flows", StartFlowRequest{FlowID: "flow-1", ResumePath: "/tmp/r.txt", JobID: "job-1"}, "")

	token := loginToken(t, s, "alice", "hunter2")
	w := doJSON(t, s, "POST", "/flows/flow-1/review", approvedBody(false), token)
	require.Equal(t, http.StatusOK, w.Code)

	fc := decodeFlow(t, w)
	assert.Equal(t, flow.StatusFailed, fc.Status)
	assert.Contains(t, fc.Errors, "Rejected during manual review")
}

func TestReviewRequiresToken(t *testing.T) {
	s := testServer(t, 0.4)
	doJSON(t, s, "POST", "/flows", StartFlowRequest{FlowID: "flow-1", ResumePath: "/tmp/r.txt", JobID: "job-1"}, "")

	w := doJSON(t, s, "POST", "/flows/flow-1/review", approvedBody(true), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, "POST", "/flows/flow-1/review", approvedBody(true), "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewUnauthorizedReviewer(t *testing.T) {
	s := testServer(t, 0.4)
	doJSON(t, s, "POST", "/flows", StartFlowRequest{FlowID: "flow-1", ResumePath: "/tmp/r.txt", JobID: "job-1"}, "")

	// Valid token for a reviewer the gate does not know.
	token, err := s.jwtService.GenerateToken("mallory")
	require.NoError(t, err)

	w := doJSON(t, s, "POST", "/flows/flow-1/review", approvedBody(true), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewFlowNotPaused(t *testing.T) {
	s := testServer(t, 0.9) // high score never pauses
	doJSON(t, s, "POST", "/flows", StartFlowRequest{FlowID: "flow-1", ResumePath: "/tmp/r.txt", JobID: "job-1"}, "")

	token := loginToken(t, s, "alice", "hunter2")
	w := doJSON(t, s, "POST", "/flows/flow-1/review", approvedBody(true), token)
	assert.Equal(t, http.StatusNotFound, w.Code) // no pending review for the flow
}

func TestReviewValidation(t *testing.T) {
	s := testServer(t, 0.4)
	doJSON(t, s, "POST", "/flows", StartFlowRequest{FlowID: "flow-1", ResumePath: "/tmp/r.txt", JobID: "job-1"}, "")

	token := loginToken(t, s, "alice", "hunter2")
	w := doJSON(t, s, "POST", "/flows/flow-1/review", ReviewRequest{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit(t *testing.T) {
	hash, err := (&config.PasswordConfig{BcryptCost: 10}).HashPassword("hunter2")
	require.NoError(t, err)

	s, err := New(testOrchestrator(0.9), Config{
		JWTSecret: "test-secret",
		Reviewers: []config.ReviewerCredential{{Name: "alice", PasswordHash: hash}},
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			Endpoints: []ratelimit.EndpointConfig{
				{Path: "/health", Method: "GET", Limit: 2, Window: time.Hour, Burst: 2},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doJSON(t, s, "GET", "/health", nil, "").Code)
	assert.Equal(t, http.StatusOK, doJSON(t, s, "GET", "/health", nil, "").Code)

	w := doJSON(t, s, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
}

func TestCORSPreflight(t *testing.T) {
	s := testServer(t, 0.9)

	req := httptest.NewRequest("OPTIONS", "/flows", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
