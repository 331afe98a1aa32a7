package email

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	dbgen "github.com/codr1/Gatehouse/internal/db/generated"
	"github.com/codr1/Gatehouse/internal/metrics"
)

const (
	defaultSendTimeout = 5 * time.Second

	KindConfirmation = "booking_confirmation"
	KindCancellation = "booking_cancellation"
	KindReminder     = "booking_reminder"
)

// ErrNoRecipient means the member has no email address on file.
var ErrNoRecipient = errors.New("member has no email address")

// Notifier sends booking emails to society members. A nil Notifier or one
// without a sender does nothing.
type Notifier struct {
	queries *dbgen.Queries
	sender  EmailSender
	timeout time.Duration
}

func NewNotifier(q *dbgen.Queries, sender EmailSender) *Notifier {
	return &Notifier{queries: q, sender: sender, timeout: defaultSendTimeout}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil && n.queries != nil
}

// Deliver looks up the member's email in the society and sends message.
func (n *Notifier) Deliver(ctx context.Context, societyID, userID, kind string, message Message) error {
	if !n.Enabled() {
		return nil
	}
	if message.Subject == "" || message.Body == "" {
		return nil
	}

	recipient, err := n.recipient(ctx, societyID, userID)
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := n.sender.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
		metrics.RecordEmail(kind, "failed")
		return fmt.Errorf("send %s: %w", kind, err)
	}
	metrics.RecordEmail(kind, "sent")
	return nil
}

// DeliverAsync runs Deliver in the background. The send outlives the caller's
// cancellation but keeps its values, including the request logger.
func (n *Notifier) DeliverAsync(ctx context.Context, societyID, userID, kind string, message Message) {
	if !n.Enabled() {
		return
	}
	logger := log.Ctx(ctx)

	go func() {
		sendCtx, cancel := detachedSendContext(ctx, n.timeout)
		defer cancel()
		if err := n.Deliver(sendCtx, societyID, userID, kind, message); err != nil {
			if errors.Is(err, ErrNoRecipient) {
				logger.Debug().Str("user_id", userID).Str("kind", kind).Msg("Email skipped: no address")
				return
			}
			logger.Error().Err(err).Str("user_id", userID).Str("kind", kind).Msg("Failed to send email")
		}
	}()
}

func (n *Notifier) recipient(ctx context.Context, societyID, userID string) (string, error) {
	address, err := n.queries.GetMemberEmail(ctx, dbgen.GetMemberEmailParams{SocietyID: societyID, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoRecipient
		}
		return "", fmt.Errorf("load member email: %w", err)
	}
	recipient := strings.TrimSpace(address.String)
	if !address.Valid || recipient == "" {
		return "", ErrNoRecipient
	}
	return recipient, nil
}

// detachedSendContext keeps ctx's values but not its cancellation, so a
// request that finishes does not abort the send.
func detachedSendContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
