package telegram

import (
	"context"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/birthday"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// BirthdayQueries is the read side of the birthday service used by the bot.
type BirthdayQueries interface {
	List(ctx context.Context) ([]*birthday.Birthday, error)
	Upcoming(ctx context.Context, days int) ([]birthday.UpcomingBirthday, error)
}

// ReminderActions triggers reminder deliveries from the bot.
type ReminderActions interface {
	CheckBirthdays(ctx context.Context) (app.CheckResult, error)
	SendReminder(ctx context.Context, id string) error
}

const unauthorizedReply = "Error: you are not allowed to use this command."

// RegisterAdminHandlers registers handlers for admin commands.
// Every command is restricted to the configured admin Telegram ID.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, birthdays BirthdayQueries, reminders ReminderActions, adminTelegramID int64, baseLogger *logrus.Entry) {
	b.Handle("/birthdays", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/birthdays",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorizedReply)
		}

		list, err := birthdays.List(ctx)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to list birthdays")
			return c.Send("An error occurred while loading birthdays.")
		}
		return c.Send(formatBirthdayList(list))
	})

	b.Handle("/upcoming", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/upcoming",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorizedReply)
		}

		days, err := parseUpcomingDays(c.Args())
		if err != nil {
			handlerLogger.WithError(err).Warn("Invalid command format")
			return c.Send("Invalid command format. Use: /upcoming [days]")
		}

		upcoming, err := birthdays.Upcoming(ctx, days)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to compute upcoming birthdays")
			return c.Send("An error occurred while loading upcoming birthdays.")
		}
		return c.Send(formatUpcoming(upcoming, days))
	})

	b.Handle("/check", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/check",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorizedReply)
		}

		result, err := reminders.CheckBirthdays(ctx)
		if err != nil {
			handlerLogger.WithError(err).Error("Birthday check failed")
			return c.Send("An error occurred during the birthday check.")
		}
		return c.Send(formatCheckResult(result))
	})
}
