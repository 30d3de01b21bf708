package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/recruitflow/internal/server/middleware"
)

// StartFlowRequest starts a new recruiting flow. FlowID is optional; when
// empty the server generates one.
type StartFlowRequest struct {
	FlowID     string `json:"flow_id"`
	ResumePath string `json:"resume_path" validate:"required"`
	JobID      string `json:"job_id" validate:"required"`
}

// ReviewRequest carries a manual review decision for a paused flow.
// Approved is a pointer so a missing field fails validation instead of
// silently rejecting.
type ReviewRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Comments string `json:"comments"`
}

// LoginRequest authenticates a reviewer.
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the reviewer's bearer token.
type LoginResponse struct {
	Reviewer string `json:"reviewer"`
	Token    string `json:"token"`
}

// handleStartFlow starts a flow and returns its context once it reaches a
// stopping point (success, failure, or review pause).
func (s *Server) handleStartFlow(w http.ResponseWriter, r *http.Request) {
	var req StartFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	flowID := req.FlowID
	if flowID == "" {
		flowID = "flow-" + uuid.NewString()
	}

	fc, err := s.orch.StartFlow(r.Context(), flowID, req.ResumePath, req.JobID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, fc)
}

// handleListFlows returns all registered flows.
func (s *Server) handleListFlows(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.orch.ListFlows())
}

// handleGetFlow returns the current state of one flow.
func (s *Server) handleGetFlow(w http.ResponseWriter, r *http.Request) {
	fc, err := s.orch.GetFlow(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, fc)
}

// handleReview records a reviewer decision on a paused flow and resumes it.
// The reviewer identity comes from the validated JWT, not the request body.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	reviewer, err := middleware.GetReviewer(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	flowID := r.PathValue("id")
	approved := *req.Approved

	gate := s.orch.ManualGate()
	if gate == nil {
		s.errorResponse(w, http.StatusConflict, "flow does not use manual review")
		return
	}

	if _, err := gate.SubmitReview(flowID, reviewer, approved, req.Comments); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	fc, err := s.orch.ResumeFlow(r.Context(), flowID, approved)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, fc)
}

// handleLogin verifies reviewer credentials and issues a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	hash, ok := s.reviewers[req.Name]
	if !ok || hash == "" || !s.passwords.VerifyPassword(req.Password, hash) {
		err := &ErrInvalidCredentials{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(req.Name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, LoginResponse{Reviewer: req.Name, Token: token})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
