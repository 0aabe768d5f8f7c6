package telegram

import (
	"context"
	"errors"
	"fmt"

	"birthday_reminder/internal/app"
	idb "birthday_reminder/internal/infra/database"

	"gopkg.in/telebot.v3"
)

// RegisterCallbackHandlers handles the "Resend email" button attached to
// mirrored reminders.
func RegisterCallbackHandlers(ctx context.Context, b *telebot.Bot, reminders ReminderActions, adminTelegramID int64) {
	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := c.Callback().Data

		if c.Sender().ID != adminTelegramID {
			return c.Respond(&telebot.CallbackResponse{Text: unauthorizedReply})
		}

		id, ok := parseResendCallback(data)
		if !ok {
			c.Bot().OnError(fmt.Errorf("unhandled callback data: %s", data), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown action."})
		}

		err := reminders.SendReminder(ctx, id)
		switch {
		case err == nil:
			return c.Respond(&telebot.CallbackResponse{Text: "Reminder sent successfully!"})
		case errors.Is(err, idb.ErrBirthdayNotFound):
			return c.Respond(&telebot.CallbackResponse{Text: "Birthday not found."})
		case errors.Is(err, app.ErrConfigMissing):
			return c.Respond(&telebot.CallbackResponse{Text: "Email settings not configured."})
		default:
			c.Bot().OnError(fmt.Errorf("error resending reminder for birthday %s: %w", id, err), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Failed to send reminder."})
		}
	})
}
