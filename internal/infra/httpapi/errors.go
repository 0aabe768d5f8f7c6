package httpapi

import (
	"errors"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/birthday"
	"birthday_reminder/internal/domain/template"
	idb "birthday_reminder/internal/infra/database"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var errInvalidBody = fiber.NewError(fiber.StatusBadRequest, "Invalid request body")

// errorHandler renders every error as {"detail": ...}.
func errorHandler(logger logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, detail := classify(err)
		if code >= fiber.StatusInternalServerError {
			logger.WithError(err).WithField("path", c.Path()).Error("Request failed")
		}
		return c.Status(code).JSON(fiber.Map{"detail": detail})
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, idb.ErrBirthdayNotFound):
		return fiber.StatusNotFound, "Birthday not found"
	case errors.Is(err, idb.ErrTemplateNotFound):
		return fiber.StatusNotFound, "Template not found"
	case errors.Is(err, app.ErrNoUpdateData):
		return fiber.StatusBadRequest, "No update data provided"
	case errors.Is(err, app.ErrConfigMissing):
		if err == app.ErrConfigMissing {
			return fiber.StatusBadRequest, "Email settings not configured"
		}
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, birthday.ErrInvalidBirthDate),
		errors.Is(err, birthday.ErrRequiredField),
		errors.Is(err, template.ErrRequiredField),
		errors.Is(err, app.ErrInvalidRecipient):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, app.ErrDeliveryFailed):
		return fiber.StatusInternalServerError, "Failed to send reminder"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
