package main

import (
	"context"

	"birthday_reminder/internal/infra/config"
	"birthday_reminder/internal/infra/logger"
	"birthday_reminder/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

type telegramBot struct {
	*telebot.Bot
}

func newTelegramBot(cfg *config.AppConfig) (*telegramBot, error) {
	b, err := telegram.NewBot(cfg.TelegramToken, logger.Component("telebot"))
	if err != nil {
		return nil, err
	}
	return &telegramBot{Bot: b}, nil
}

// register wires every command and callback handler.
func (b *telegramBot) register(ctx context.Context, cfg *config.AppConfig, birthdays telegram.BirthdayQueries, reminders telegram.ReminderActions) {
	baseLogger := logger.Component("telegram")
	telegram.RegisterBotCommands(b.Bot, cfg.AdminTelegramID, baseLogger)
	telegram.RegisterAdminHandlers(ctx, b.Bot, birthdays, reminders, cfg.AdminTelegramID, baseLogger)
	telegram.RegisterCallbackHandlers(ctx, b.Bot, reminders, cfg.AdminTelegramID)
}
