package intake

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/recruitflow/internal/googleauth"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// GmailIntake downloads resume attachments from a Gmail inbox into the
// intake drop directory, where the directory watcher picks them up.
type GmailIntake struct {
	service *gmail.Service
	dropDir string
}

// NewGmailIntake builds an intake from OAuth credential and token files
func NewGmailIntake(ctx context.Context, credentialsPath, tokenPath, dropDir string) (*GmailIntake, error) {
	config, err := googleauth.LoadConfig(credentialsPath, gmail.GmailReadonlyScope)
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

	return &GmailIntake{service: srv, dropDir: dropDir}, nil
}

// FetchAttachments downloads attachments from messages matching the subject
// into the drop directory and returns the saved file paths. Failures on
// individual messages are logged and skipped.
func (g *GmailIntake) FetchAttachments(ctx context.Context, subject string) ([]string, error) {
	if err := os.MkdirAll(g.dropDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create drop directory: %w", err)
	}

	const user = "me"
	query := fmt.Sprintf("subject:%s has:attachment", subject)

	list, err := g.service.Users.Messages.List(user).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve messages: %w", err)
	}
	if len(list.Messages) == 0 {
		return nil, nil
	}

	var saved []string
	for _, msg := range list.Messages {
		message, err := g.service.Users.Messages.Get(user, msg.Id).Context(ctx).Do()
		if err != nil {
			log.Printf("[intake] unable to retrieve message %s: %v", msg.Id, err)
			continue
		}

		sender := senderName(message)
		for _, part := range message.Payload.Parts {
			if part.Filename == "" || part.Body == nil || part.Body.AttachmentId == "" {
				continue
			}
			if !supportedResume(part.Filename) {
				continue
			}

			attachment, err := g.service.Users.Messages.Attachments.Get(user, msg.Id, part.Body.AttachmentId).Context(ctx).Do()
			if err != nil {
				log.Printf("[intake] unable to retrieve attachment: %v", err)
				continue
			}

			data, err := base64.URLEncoding.DecodeString(attachment.Data)
			if err != nil {
				log.Printf("[intake] unable to decode attachment: %v", err)
				continue
			}

			name := attachmentFileName(sender, part.Filename)
			path := filepath.Join(g.dropDir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				log.Printf("[intake] unable to write file %s: %v", path, err)
				continue
			}
			saved = append(saved, path)
		}
	}

	return saved, nil
}

// attachmentFileName prefixes the sanitized sender onto the attachment name
// so resumes from different candidates cannot collide.
func attachmentFileName(sender, filename string) string {
	base := unsafeChars.ReplaceAllString(filename, "_")
	if sender == "" {
		return base
	}
	return fmt.Sprintf("%s_%s", unsafeChars.ReplaceAllString(sender, ""), base)
}

// senderName extracts the sender's name from the From header
func senderName(message *gmail.Message) string {
	if message.Payload == nil {
		return ""
	}
	for _, header := range message.Payload.Headers {
		if header.Name != "From" {
			continue
		}
		from := header.Value
		if idx := strings.Index(from, "<"); idx > 0 {
			return strings.ReplaceAll(strings.TrimSpace(from[:idx]), " ", "")
		}
		if idx := strings.Index(from, "@"); idx > 0 {
			return from[:idx]
		}
		return ""
	}
	return ""
}
