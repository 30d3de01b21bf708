package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", 0)
	require.NoError(t, err)

	token, err := svc.GenerateToken("alice")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.GetReviewer())
}

func TestJWTRequiresSecret(t *testing.T) {
	_, err := NewJWTService("", 0)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	svc, err := NewJWTService("test-secret", 0)
	require.NoError(t, err)
	other, err := NewJWTService("other-secret", 0)
	require.NoError(t, err)

	token, err := svc.GenerateToken("alice")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Millisecond)
	require.NoError(t, err)

	token, err := svc.GenerateToken("alice")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTMalformed(t *testing.T) {
	svc, err := NewJWTService("test-secret", 0)
	require.NoError(t, err)

	_, err = svc.ValidateToken("")
	require.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
