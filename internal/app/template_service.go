package app

import (
	"context"
	"fmt"

	"birthday_reminder/internal/domain/template"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TemplateService struct {
	templateRepo template.Repository
	logger       logrus.FieldLogger
}

func NewTemplateService(tr template.Repository, logger logrus.FieldLogger) *TemplateService {
	return &TemplateService{templateRepo: tr, logger: logger}
}

// List returns all templates, seeding the built-in ones the first time the store
// is found empty.
func (s *TemplateService) List(ctx context.Context) ([]*template.Template, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(templates) > 0 {
		return templates, nil
	}

	defaults := template.Defaults()
	for _, t := range defaults {
		t.ID = uuid.NewString()
	}
	if err := s.templateRepo.CreateMany(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to seed default templates: %w", err)
	}
	s.logger.WithField("count", len(defaults)).Info("Seeded default message templates")
	return defaults, nil
}

func (s *TemplateService) Create(ctx context.Context, req template.CreateRequest) (*template.Template, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t := &template.Template{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Subject:   req.Subject,
		Body:      req.Body,
		IsDefault: req.IsDefault,
	}
	if err := s.templateRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.templateRepo.Delete(ctx, id)
}
