package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/recruitflow/internal/flow"
	"github.com/jonathan/recruitflow/internal/gates"
)

// ErrInvalidCredentials indicates a failed login attempt. The message is
// deliberately vague so callers cannot probe for valid reviewer names.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid reviewer name or password"
}

// HTTPStatus maps domain errors to HTTP status codes.
func HTTPStatus(err error) int {
	var (
		notFound     *flow.ErrFlowNotFound
		duplicate    *flow.ErrDuplicateFlow
		invalidState *flow.ErrInvalidState
		unauthorized *gates.ErrUnauthorizedReviewer
		noPending    *gates.ErrNoPendingReview
		badLogin     *ErrInvalidCredentials
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &invalidState):
		return http.StatusConflict
	case errors.As(err, &unauthorized):
		return http.StatusForbidden
	case errors.As(err, &noPending):
		return http.StatusNotFound
	case errors.As(err, &badLogin):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
