package mail

import (
	"context"
	"fmt"
	"time"

	"birthday_reminder/internal/domain/notification"

	gomail "github.com/wneessen/go-mail"
)

const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
	sendTimeout     = 30 * time.Second
)

// SMTPMailer delivers messages through an authenticated SMTP relay using the
// sender address and app password stored in the notification config.
type SMTPMailer struct {
	host string
	port int
}

func NewSMTPMailer(host string, port int) *SMTPMailer {
	if host == "" {
		host = DefaultSMTPHost
	}
	if port == 0 {
		port = DefaultSMTPPort
	}
	return &SMTPMailer{host: host, port: port}
}

func (m *SMTPMailer) SendMail(ctx context.Context, cfg *notification.Config, msg *notification.Message) error {
	em, err := buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SenderAddress),
		gomail.WithPassword(cfg.AppPassword),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(sendTimeout),
	)
	if err != nil {
		return fmt.Errorf("error creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, em); err != nil {
		return fmt.Errorf("error sending mail via %s:%d: %w", m.host, m.port, err)
	}
	return nil
}

func buildMessage(msg *notification.Message) (*gomail.Msg, error) {
	em := gomail.NewMsg()
	if err := em.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", msg.From, err)
	}
	if err := em.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient list: %w", err)
	}
	em.Subject(msg.Subject)
	em.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return em, nil
}
