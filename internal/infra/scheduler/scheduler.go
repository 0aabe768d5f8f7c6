package scheduler

import (
	"context"
	"fmt"
	"time"

	"birthday_reminder/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const checkTimeout = 5 * time.Minute

// BirthdayScheduler triggers the reminder evaluation on a cron schedule.
// Overlapping ticks are delayed rather than run concurrently.
type BirthdayScheduler struct {
	cronEngine *cron.Cron
	checker    app.BirthdayChecker
	logger     logrus.FieldLogger
	cronSpec   string
}

func NewBirthdayScheduler(
	checker app.BirthdayChecker,
	logger *logrus.Logger,
	cronSpec string, // e.g., "0 * * * *" (top of every hour)
	loc *time.Location,
) *BirthdayScheduler {
	if loc == nil {
		loc = time.Local
	}
	cronLogger := cron.PrintfLogger(logger)
	return &BirthdayScheduler{
		cronEngine: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLogger), cron.DelayIfStillRunning(cronLogger)),
		),
		checker:  checker,
		logger:   logger.WithField("component", "scheduler"),
		cronSpec: cronSpec,
	}
}

// Start registers the birthday check job and starts the cron engine.
func (s *BirthdayScheduler) Start() error {
	s.logger.Info("Starting birthday scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.runCheck); err != nil {
		return fmt.Errorf("could not add birthday check cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Birthday scheduler started")
	return nil
}

func (s *BirthdayScheduler) runCheck() {
	s.logger.Debug("Cron job triggered for birthday check")
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	result, err := s.checker.CheckBirthdays(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Error during birthday check")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"checked": result.Checked,
		"due":     result.Due,
		"sent":    result.Sent,
		"failed":  result.Failed,
		"skipped": result.Skipped,
	}).Info("Birthday check finished")
}

func (s *BirthdayScheduler) Stop() {
	s.logger.Info("Stopping birthday scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Birthday scheduler gracefully stopped")
}
