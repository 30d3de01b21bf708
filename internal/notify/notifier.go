// Package notify delivers the final candidate summary after a flow clears
// review. The log notifier is the default; the Gmail notifier emails the
// hiring team when OAuth credentials are configured.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/recruitflow/internal/types"
)

// LogNotifier writes notifications to the process log. Used by default and
// in any environment without email credentials.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the candidate summary
func (n *LogNotifier) Notify(_ context.Context, notification types.Notification) error {
	log.Printf("[NOTIFY] candidate=%s job=%s score=%.2f summary=%q",
		notification.CandidateID, notification.JobID, notification.Score, notification.Summary)
	return nil
}

// FormatSubject builds the email subject line for a notification
func FormatSubject(n types.Notification) string {
	return fmt.Sprintf("Candidate %s cleared review for %s (score %.2f)", n.CandidateID, n.JobID, n.Score)
}

// FormatBody builds the plain-text email body for a notification
func FormatBody(n types.Notification) string {
	body := fmt.Sprintf("Candidate %s has cleared review for job %s.\n\nScore: %.2f\n",
		n.CandidateID, n.JobID, n.Score)
	if n.Summary != "" {
		body += fmt.Sprintf("\nAssessment:\n%s\n", n.Summary)
	}
	return body
}
