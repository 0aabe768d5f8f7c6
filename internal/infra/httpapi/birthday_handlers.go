package httpapi

import (
	"fmt"
	"io"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/birthday"

	"github.com/gofiber/fiber/v2"
)

const defaultUpcomingDays = 30

func (s *Server) createBirthday(c *fiber.Ctx) error {
	var req birthday.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	b, err := s.svc.Birthdays.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(b)
}

func (s *Server) listBirthdays(c *fiber.Ctx) error {
	list, err := s.svc.Birthdays.List(c.UserContext())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*birthday.Birthday{}
	}
	return c.JSON(list)
}

func (s *Server) getBirthday(c *fiber.Ctx) error {
	b, err := s.svc.Birthdays.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(b)
}

func (s *Server) updateBirthday(c *fiber.Ctx) error {
	var req birthday.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	b, err := s.svc.Birthdays.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(b)
}

func (s *Server) deleteBirthday(c *fiber.Ctx) error {
	if err := s.svc.Birthdays.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("Birthday deleted successfully"))
}

func (s *Server) upcomingBirthdays(c *fiber.Ctx) error {
	days := c.QueryInt("days", defaultUpcomingDays)
	if days < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "days must not be negative")
	}
	upcoming, err := s.svc.Birthdays.Upcoming(c.UserContext(), days)
	if err != nil {
		return err
	}
	if upcoming == nil {
		upcoming = []birthday.UpcomingBirthday{}
	}
	return c.JSON(upcoming)
}

func (s *Server) sendReminder(c *fiber.Ctx) error {
	if err := s.svc.Reminders.SendReminder(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("Reminder sent successfully!"))
}

func (s *Server) checkBirthdays(c *fiber.Ctx) error {
	result, err := s.svc.Reminders.CheckBirthdays(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Birthday check completed",
		"checked": result.Checked,
		"due":     result.Due,
		"sent":    result.Sent,
		"failed":  result.Failed,
		"skipped": result.Skipped,
	})
}

func (s *Server) uploadPhoto(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	return c.JSON(fiber.Map{
		"photo_url": app.EncodePhotoDataURI(fh.Header.Get(fiber.HeaderContentType), data),
	})
}
