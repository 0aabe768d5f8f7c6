package httpapi

import (
	"errors"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/notification"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) getEmailSettings(c *fiber.Ctx) error {
	view, err := s.svc.Settings.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (s *Server) saveEmailSettings(c *fiber.Ctx) error {
	var cfg notification.Config
	if err := c.BodyParser(&cfg); err != nil {
		return errInvalidBody
	}
	if err := s.svc.Settings.Save(c.UserContext(), cfg); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Email settings saved", "is_configured": true})
}

func (s *Server) updateEmailSettings(c *fiber.Ctx) error {
	var u notification.ConfigUpdate
	if err := c.BodyParser(&u); err != nil {
		return errInvalidBody
	}
	if err := s.svc.Settings.Update(c.UserContext(), u); err != nil {
		return err
	}
	return c.JSON(message("Email settings updated"))
}

func (s *Server) addRecipient(c *fiber.Ctx) error {
	if err := s.svc.Settings.AddRecipient(c.UserContext(), c.Query("email")); err != nil {
		return err
	}
	return c.JSON(message("Recipient added"))
}

func (s *Server) removeRecipient(c *fiber.Ctx) error {
	if err := s.svc.Settings.RemoveRecipient(c.UserContext(), c.Query("email")); err != nil {
		return err
	}
	return c.JSON(message("Recipient removed"))
}

func (s *Server) sendTestEmail(c *fiber.Ctx) error {
	err := s.svc.Reminders.SendTest(c.UserContext())
	if errors.Is(err, app.ErrDeliveryFailed) {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send test email. Check your credentials.")
	}
	if err != nil {
		return err
	}
	return c.JSON(message("Test email sent successfully!"))
}
