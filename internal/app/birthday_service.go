package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"birthday_reminder/internal/domain/birthday"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultPhotoContentType = "image/jpeg"

type BirthdayService struct {
	birthdayRepo birthday.Repository
	logger       logrus.FieldLogger
	now          Clock
}

func NewBirthdayService(br birthday.Repository, logger logrus.FieldLogger, now Clock) *BirthdayService {
	return &BirthdayService{
		birthdayRepo: br,
		logger:       logger,
		now:          now,
	}
}

func (s *BirthdayService) Create(ctx context.Context, req birthday.CreateRequest) (*birthday.Birthday, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b := &birthday.Birthday{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		BirthDate:     strings.TrimSpace(req.BirthDate),
		Relation:      strings.TrimSpace(req.Relation),
		PhotoURL:      req.PhotoURL,
		CustomMessage: req.CustomMessage,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.birthdayRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create birthday: %w", err)
	}

	s.logger.WithField("birthday_id", b.ID).Info("Birthday created")
	return b, nil
}

func (s *BirthdayService) Get(ctx context.Context, id string) (*birthday.Birthday, error) {
	return s.birthdayRepo.GetByID(ctx, id)
}

func (s *BirthdayService) List(ctx context.Context) ([]*birthday.Birthday, error) {
	return s.birthdayRepo.List(ctx)
}

// Update applies a partial update and returns the stored record.
func (s *BirthdayService) Update(ctx context.Context, id string, req birthday.UpdateRequest) (*birthday.Birthday, error) {
	if req.IsEmpty() {
		return nil, ErrNoUpdateData
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.birthdayRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Apply(req)
	if err := s.birthdayRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BirthdayService) Delete(ctx context.Context, id string) error {
	if err := s.birthdayRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("birthday_id", id).Info("Birthday deleted")
	return nil
}

// Upcoming lists the birthdays occurring within the next days days, nearest first.
func (s *BirthdayService) Upcoming(ctx context.Context, days int) ([]birthday.UpcomingBirthday, error) {
	records, err := s.birthdayRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	upcoming, skipped := birthday.Upcoming(records, days, s.now())
	for _, sk := range skipped {
		s.logger.WithError(sk.Err).WithField("birthday_id", sk.Birthday.ID).Error("Error calculating upcoming birthday")
	}
	return upcoming, nil
}

// EncodePhotoDataURI turns an uploaded image into a data URI suitable for PhotoURL.
func EncodePhotoDataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = defaultPhotoContentType
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
