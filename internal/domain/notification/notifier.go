package notification

import (
	"context"

	"birthday_reminder/internal/domain/birthday"
)

// Message is a rendered email ready for delivery.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers a message through an external relay. Implementations make a
// single attempt and return its error.
type Mailer interface {
	SendMail(ctx context.Context, cfg *Config, msg *Message) error
}

// Notifier sends the reminder for one birthday. It reports whether the relay
// accepted the message and never returns delivery errors to the caller.
type Notifier interface {
	Send(ctx context.Context, b *birthday.Birthday, cfg *Config) bool
}
