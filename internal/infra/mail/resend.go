package mail

import (
	"context"
	"fmt"

	"birthday_reminder/internal/domain/notification"

	"github.com/resend/resend-go/v2"
)

// ResendMailer delivers messages through the Resend HTTP API. The stored app
// password is ignored; the sender address must belong to a verified domain.
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer returns nil when apiKey is empty.
func NewResendMailer(apiKey string) *ResendMailer {
	if apiKey == "" {
		return nil
	}
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) SendMail(ctx context.Context, cfg *notification.Config, msg *notification.Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipient specified")
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
