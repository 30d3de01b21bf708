package notify

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/recruitflow/internal/types"
)

func sampleNotification() types.Notification {
	return types.Notification{
		CandidateID: "jane.doe",
		JobID:       "job-42",
		Score:       0.83,
		Summary:     "Strong backend candidate.",
	}
}

func TestLogNotifier(t *testing.T) {
	err := NewLogNotifier().Notify(context.Background(), sampleNotification())
	assert.NoError(t, err)
}

func TestFormatSubject(t *testing.T) {
	subject := FormatSubject(sampleNotification())
	assert.Equal(t, "Candidate jane.doe cleared review for job-42 (score 0.83)", subject)
}

func TestFormatBody(t *testing.T) {
	body := FormatBody(sampleNotification())
	assert.Contains(t, body, "jane.doe")
	assert.Contains(t, body, "job-42")
	assert.Contains(t, body, "0.83")
	assert.Contains(t, body, "Strong backend candidate.")
}

func TestFormatBodyWithoutSummary(t *testing.T) {
	n := sampleNotification()
	n.Summary = ""
	body := FormatBody(n)
	assert.NotContains(t, body, "Assessment:")
}

func TestBuildMessage(t *testing.T) {
	raw := buildMessage([]string{"team@example.com", "lead@example.com"}, "Subject line", "Body text")

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)

	msg := string(decoded)
	assert.Contains(t, msg, "To: team@example.com, lead@example.com\r\n")
	assert.Contains(t, msg, "Subject: Subject line\r\n")
	assert.Contains(t, msg, "\r\n\r\nBody text")
}
