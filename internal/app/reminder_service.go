// internal/app/reminder_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"birthday_reminder/internal/domain/birthday"
	"birthday_reminder/internal/domain/notification"
	idb "birthday_reminder/internal/infra/database"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// lookAhead is added to "now" before taking the calendar date, so an hourly
// timer reaches a birthday a few hours before local midnight.
const lookAhead = 6 * time.Hour

// BirthdayChecker runs one reminder evaluation. The scheduler depends on this
// interface only.
type BirthdayChecker interface {
	CheckBirthdays(ctx context.Context) (CheckResult, error)
}

// CheckResult summarizes one evaluation tick.
type CheckResult struct {
	Checked int `json:"checked"`
	Due     int `json:"due"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ReminderService decides which birthdays are due and delivers their reminders.
type ReminderService struct {
	birthdayRepo birthday.Repository
	settingsRepo notification.ConfigRepository
	notifier     notification.Notifier
	logger       logrus.FieldLogger
	now          Clock

	group singleflight.Group
}

func NewReminderService(
	br birthday.Repository,
	sr notification.ConfigRepository,
	notifier notification.Notifier,
	logger logrus.FieldLogger,
	now Clock,
) *ReminderService {
	return &ReminderService{
		birthdayRepo: br,
		settingsRepo: sr,
		notifier:     notifier,
		logger:       logger,
		now:          now,
	}
}

// CheckBirthdays evaluates all records once. Concurrent callers share a single
// in-flight evaluation and receive its result.
func (s *ReminderService) CheckBirthdays(ctx context.Context) (CheckResult, error) {
	v, err, shared := s.group.Do("check-birthdays", func() (interface{}, error) {
		return s.evaluate(ctx, s.now())
	})
	if shared {
		s.logger.Debug("Joined an evaluation that was already running")
	}
	if err != nil {
		return CheckResult{}, err
	}
	return v.(CheckResult), nil
}

// evaluate sends the reminder for every record that is due at now and has not
// been notified this year. A failure on one record never stops the others.
func (s *ReminderService) evaluate(ctx context.Context, now time.Time) (CheckResult, error) {
	var result CheckResult
	s.logger.Info("Checking for upcoming birthdays...")

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, idb.ErrSettingsNotFound) {
			s.logger.Info("No email settings configured, skipping birthday check")
			return result, nil
		}
		return result, fmt.Errorf("failed to load email settings: %w", err)
	}

	checkDate := now.Add(lookAhead)
	currentYear := now.Year()

	birthdays, err := s.birthdayRepo.List(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list birthdays: %w", err)
	}

	for _, b := range birthdays {
		result.Checked++
		logCtx := s.logger.WithFields(logrus.Fields{"birthday_id": b.ID, "name": b.Name})

		bd, err := b.ParsedBirthDate()
		if err != nil {
			logCtx.WithError(err).Error("Error processing birthday, skipping")
			result.Skipped++
			continue
		}
		if !bd.ObservedOn(checkDate) {
			continue
		}
		result.Due++

		if b.LastNotifiedYear.Equal(currentYear) {
			logCtx.Debug("Reminder already sent this year")
			continue
		}

		if !s.notifier.Send(ctx, b, cfg) {
			// Marker stays unset so the next tick retries.
			result.Failed++
			continue
		}

		if err := s.birthdayRepo.SetLastNotifiedYear(ctx, b.ID, currentYear); err != nil {
			logCtx.WithError(err).Error("Reminder sent but failed to record year marker")
			continue
		}
		result.Sent++
	}

	s.logger.WithFields(logrus.Fields{
		"checked": result.Checked,
		"due":     result.Due,
		"sent":    result.Sent,
		"failed":  result.Failed,
		"skipped": result.Skipped,
	}).Info("Birthday check completed")
	return result, nil
}

// SendReminder sends the reminder for one record right away. The year marker is
// left untouched.
func (s *ReminderService) SendReminder(ctx context.Context, id string) error {
	b, err := s.birthdayRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return err
	}

	if !s.notifier.Send(ctx, b, cfg) {
		return ErrDeliveryFailed
	}
	return nil
}

// SendTest sends a reminder for a made-up record whose birthday is today.
func (s *ReminderService) SendTest(ctx context.Context) error {
	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return err
	}

	test := &birthday.Birthday{
		Name:          "Test Person",
		BirthDate:     s.now().Format("2006-01-02"),
		Relation:      "Test",
		CustomMessage: "This is a test email from your Birthday Reminder App!",
	}
	if !s.notifier.Send(ctx, test, cfg) {
		return ErrDeliveryFailed
	}
	return nil
}

func (s *ReminderService) loadConfig(ctx context.Context) (*notification.Config, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, idb.ErrSettingsNotFound) {
			return nil, ErrConfigMissing
		}
		return nil, fmt.Errorf("failed to load email settings: %w", err)
	}
	return cfg, nil
}
