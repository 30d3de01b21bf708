package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/recruitflow/internal/googleauth"
	"github.com/jonathan/recruitflow/internal/types"
)

// GmailNotifier emails candidate summaries to the hiring team
type GmailNotifier struct {
	service    *gmail.Service
	recipients []string
}

// NewGmailNotifier builds a notifier from OAuth credential and token files
func NewGmailNotifier(ctx context.Context, credentialsPath, tokenPath string, recipients []string) (*GmailNotifier, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no notification recipients configured")
	}

	config, err := googleauth.LoadConfig(credentialsPath, gmail.GmailSendScope)
	if err != nil {
		return nil, err
	}

	client, err := googleauth.Client(ctx, config, tokenPath)
	if err != nil {
		return nil, err
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailNotifier{service: srv, recipients: recipients}, nil
}

// Notify sends the candidate summary email
func (n *GmailNotifier) Notify(_ context.Context, notification types.Notification) error {
	raw := buildMessage(n.recipients, FormatSubject(notification), FormatBody(notification))

	_, err := n.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

// buildMessage assembles an RFC 2822 message and base64url-encodes it the
// way the Gmail API expects.
func buildMessage(to []string, subject, body string) string {
	var sb strings.Builder
	sb.WriteString("To: ")
	sb.WriteString(strings.Join(to, ", "))
	sb.WriteString("\r\n")
	sb.WriteString("Subject: ")
	sb.WriteString(subject)
	sb.WriteString("\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(sb.String()))
}
