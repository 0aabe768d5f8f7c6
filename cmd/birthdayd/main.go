package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/notification"
	"birthday_reminder/internal/infra/config"
	idb "birthday_reminder/internal/infra/database"
	"birthday_reminder/internal/infra/httpapi"
	"birthday_reminder/internal/infra/logger"
	"birthday_reminder/internal/infra/mail"
	"birthday_reminder/internal/infra/scheduler"
	"birthday_reminder/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("Birthday Reminder starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	log := logger.Init(cfg.LogLevel, cfg.Environment)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"driver":      cfg.DatabaseDriver,
		"timezone":    cfg.Location.String(),
	}).Info("Configuration loaded")

	// Initialize Database Connection
	db, err := idb.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully")

	// Initialize Repositories
	birthdayRepo := idb.NewSQLBirthdayRepository(db)
	settingsRepo := idb.NewSQLSettingsRepository(db)
	templateRepo := idb.NewSQLTemplateRepository(db)

	clock := app.SystemClock(cfg.Location)

	var mailer notification.Mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort)
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(cfg.ResendAPIKey)
		mainLogger.Info("Reminder emails will be delivered through Resend")
	}
	notifier := app.NewEmailNotifier(mailer, logger.Component("notifier"), clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Telegram Bot (optional); reminders are mirrored to the admin chat
	var bot *telegramBot
	if cfg.TelegramEnabled() {
		bot, err = newTelegramBot(cfg)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not create Telegram bot")
		}
		notifier.WithTelegramMirror(telegram.NewTelebotAdapter(bot.Bot), cfg.AdminTelegramID)
	}

	// Initialize Services
	birthdayService := app.NewBirthdayService(birthdayRepo, logger.Component("birthdays"), clock)
	reminderService := app.NewReminderService(birthdayRepo, settingsRepo, notifier, logger.Component("reminders"), clock)
	settingsService := app.NewSettingsService(settingsRepo, logger.Component("settings"))
	templateService := app.NewTemplateService(templateRepo, logger.Component("templates"))

	if bot != nil {
		bot.register(ctx, cfg, birthdayService, reminderService)
		go bot.Start()
		mainLogger.Info("Telegram bot started")
	}

	// Initialize BirthdayScheduler
	birthdayScheduler := scheduler.NewBirthdayScheduler(reminderService, log, cfg.CronSpecBirthdayCheck, cfg.Location)
	if err := birthdayScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start scheduler")
	}

	server := httpapi.NewServer(httpapi.Services{
		Birthdays: birthdayService,
		Reminders: reminderService,
		Settings:  settingsService,
		Templates: templateService,
		DB:        db,
	}, logger.Component("http"), cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Listen(cfg.HTTPPort)
	}()

	mainLogger.Info("Application setup complete. HTTP server and scheduler are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		mainLogger.WithError(err).Error("HTTP server stopped unexpectedly")
	}

	mainLogger.Info("Shutting down application...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		mainLogger.WithError(err).Warn("HTTP server shutdown error")
	}
	birthdayScheduler.Stop()
	if bot != nil {
		bot.Stop()
	}
	// db.Close() is handled by defer
	mainLogger.Info("Application shut down gracefully")
}
