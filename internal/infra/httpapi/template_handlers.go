package httpapi

import (
	"birthday_reminder/internal/domain/template"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) listTemplates(c *fiber.Ctx) error {
	list, err := s.svc.Templates.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (s *Server) createTemplate(c *fiber.Ctx) error {
	var req template.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	t, err := s.svc.Templates.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (s *Server) deleteTemplate(c *fiber.Ctx) error {
	if err := s.svc.Templates.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("Template deleted"))
}
