package app

import (
	"context"

	"birthday_reminder/internal/domain/birthday"
	"birthday_reminder/internal/domain/notification"
	domainTelegram "birthday_reminder/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// EmailNotifier implements notification.Notifier on top of a Mailer, optionally
// mirroring delivered reminders to a Telegram chat.
type EmailNotifier struct {
	mailer         notification.Mailer
	telegramClient domainTelegram.Client
	adminChatID    int64
	logger         logrus.FieldLogger
	now            Clock
}

func NewEmailNotifier(mailer notification.Mailer, logger logrus.FieldLogger, now Clock) *EmailNotifier {
	return &EmailNotifier{
		mailer: mailer,
		logger: logger,
		now:    now,
	}
}

// WithTelegramMirror posts a copy of every delivered reminder to chatID.
func (n *EmailNotifier) WithTelegramMirror(client domainTelegram.Client, chatID int64) *EmailNotifier {
	n.telegramClient = client
	n.adminChatID = chatID
	return n
}

// Send makes one delivery attempt. Missing credentials, rendering and transport
// errors are logged and reported as false.
func (n *EmailNotifier) Send(ctx context.Context, b *birthday.Birthday, cfg *notification.Config) bool {
	logCtx := n.logger.WithFields(logrus.Fields{
		"birthday_id": b.ID,
		"name":        b.Name,
	})

	if !cfg.HasCredentials() {
		logCtx.Warn("Email settings not configured, reminder not sent")
		return false
	}

	now := n.now()
	msg, err := notification.RenderBirthdayMessage(b, cfg, now)
	if err != nil {
		logCtx.WithError(err).Error("Failed to render birthday reminder")
		return false
	}

	if err := n.mailer.SendMail(ctx, cfg, msg); err != nil {
		logCtx.WithError(err).Error("Failed to send birthday reminder")
		return false
	}
	logCtx.WithField("recipients", len(msg.To)).Info("Birthday reminder sent")

	if n.telegramClient != nil && n.adminChatID != 0 {
		if err := n.telegramClient.SendReminder(n.adminChatID, notification.RenderBirthdayText(b, now), b.ID); err != nil {
			logCtx.WithError(err).Warn("Failed to mirror reminder to Telegram")
		}
	}
	return true
}
