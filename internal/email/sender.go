package email

import "context"

// EmailSender delivers one plain-text message. SESClient is the production
// implementation; tests use in-memory fakes.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
