package httpapi

import (
	"context"
	"fmt"
	"time"

	"birthday_reminder/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

const maxUploadSize = 10 * 1024 * 1024

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Birthdays *app.BirthdayService
	Reminders *app.ReminderService
	Settings  *app.SettingsService
	Templates *app.TemplateService
	DB        Pinger
}

type Server struct {
	app    *fiber.App
	svc    Services
	logger logrus.FieldLogger
}

func NewServer(svc Services, logger logrus.FieldLogger, corsOrigins string) *Server {
	s := &Server{svc: svc, logger: logger}
	s.app = fiber.New(fiber.Config{
		AppName:               "Birthday Reminder API",
		BodyLimit:             maxUploadSize,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	s.app.Use(recover.New())
	s.app.Use(requestLogger(logger))
	s.app.Use(cors.New(cors.Config{AllowOrigins: corsOrigins}))

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	api.Get("/", s.root)
	api.Get("/health", s.health)

	api.Post("/birthdays", s.createBirthday)
	api.Get("/birthdays", s.listBirthdays)
	api.Get("/birthdays/upcoming/list", s.upcomingBirthdays)
	api.Get("/birthdays/:id", s.getBirthday)
	api.Put("/birthdays/:id", s.updateBirthday)
	api.Delete("/birthdays/:id", s.deleteBirthday)
	api.Post("/birthdays/:id/send-reminder", s.sendReminder)
	api.Post("/check-birthdays", s.checkBirthdays)
	api.Post("/upload-photo", s.uploadPhoto)

	api.Get("/settings/email", s.getEmailSettings)
	api.Post("/settings/email", s.saveEmailSettings)
	api.Put("/settings/email", s.updateEmailSettings)
	api.Post("/settings/email/add-recipient", s.addRecipient)
	api.Post("/settings/email/remove-recipient", s.removeRecipient)
	api.Post("/settings/email/test", s.sendTestEmail)

	api.Get("/templates", s.listTemplates)
	api.Post("/templates", s.createTemplate)
	api.Delete("/templates/:id", s.deleteTemplate)
}

// App exposes the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(port int) error {
	s.logger.WithField("port", port).Info("Starting HTTP server")
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Birthday Reminder API"})
}

func (s *Server) health(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if s.svc.DB != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := s.svc.DB.PingContext(ctx); err != nil {
			s.logger.WithError(err).Warn("Health check: database unreachable")
			body["status"] = "unhealthy"
			body["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		body["database"] = "ok"
	}
	return c.JSON(body)
}

func message(text string) fiber.Map {
	return fiber.Map{"message": text}
}

func requestLogger(logger logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		entry := logger.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   status,
			"duration": time.Since(start).String(),
		})
		if status >= fiber.StatusInternalServerError {
			entry.Warn("HTTP request")
		} else {
			entry.Debug("HTTP request")
		}
		return nil
	}
}
