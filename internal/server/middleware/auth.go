// Package middleware provides HTTP middleware for reviewer authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// reviewerKey is the context key for storing the authenticated reviewer name.
const reviewerKey ContextKey = "reviewer"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (ReviewerGetter, error)
}

// ReviewerGetter is an interface for extracting the reviewer name from token claims.
type ReviewerGetter interface {
	GetReviewer() string
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the
// reviewer name to the request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), reviewerKey, claims.GetReviewer())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetReviewer extracts the authenticated reviewer name from the request context.
func GetReviewer(r *http.Request) (string, error) {
	reviewer, ok := r.Context().Value(reviewerKey).(string)
	if !ok || reviewer == "" {
		return "", fmt.Errorf("reviewer not found in request context")
	}
	return reviewer, nil
}

// ReviewerKey returns the context key for the reviewer name (for testing purposes).
func ReviewerKey() ContextKey {
	return reviewerKey
}
