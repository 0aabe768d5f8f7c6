package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"birthday_reminder/internal/domain/notification"
	idb "birthday_reminder/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// SettingsService manages the notification config. The stored secret is never
// returned by Get.
type SettingsService struct {
	settingsRepo notification.ConfigRepository
	logger       logrus.FieldLogger
}

func NewSettingsService(sr notification.ConfigRepository, logger logrus.FieldLogger) *SettingsService {
	return &SettingsService{settingsRepo: sr, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (notification.PublicConfig, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, idb.ErrSettingsNotFound) {
			return (*notification.Config)(nil).Public(), nil
		}
		return notification.PublicConfig{}, err
	}
	return cfg.Public(), nil
}

// Save replaces the stored config.
func (s *SettingsService) Save(ctx context.Context, cfg notification.Config) error {
	cfg.SenderAddress = strings.TrimSpace(cfg.SenderAddress)
	if !cfg.HasCredentials() {
		return fmt.Errorf("%w: gmail_address and app_password are required", ErrConfigMissing)
	}
	if err := s.settingsRepo.Save(ctx, &cfg); err != nil {
		return err
	}
	s.logger.WithField("recipients", len(cfg.Recipients)).Info("Email settings saved")
	return nil
}

func (s *SettingsService) Update(ctx context.Context, u notification.ConfigUpdate) error {
	if u.IsEmpty() {
		return ErrNoUpdateData
	}
	if err := s.settingsRepo.Update(ctx, u); err != nil {
		return err
	}
	s.logger.Info("Email settings updated")
	return nil
}

func (s *SettingsService) AddRecipient(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidRecipient
	}
	return s.mapMissing(s.settingsRepo.AddRecipient(ctx, email))
}

func (s *SettingsService) RemoveRecipient(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidRecipient
	}
	return s.mapMissing(s.settingsRepo.RemoveRecipient(ctx, email))
}

func (s *SettingsService) mapMissing(err error) error {
	if errors.Is(err, idb.ErrSettingsNotFound) {
		return ErrConfigMissing
	}
	return err
}
