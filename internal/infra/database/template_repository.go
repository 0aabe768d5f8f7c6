package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"birthday_reminder/internal/domain/template"
)

var ErrTemplateNotFound = fmt.Errorf("template not found")

type SQLTemplateRepository struct {
	db *sql.DB
}

func NewSQLTemplateRepository(db *sql.DB) *SQLTemplateRepository {
	return &SQLTemplateRepository{db: db}
}

func (r *SQLTemplateRepository) List(ctx context.Context) ([]*template.Template, error) {
	query := `SELECT id, name, subject, body, is_default
               FROM message_templates ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*template.Template, 0)
	for rows.Next() {
		t := &template.Template{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.IsDefault); err != nil {
			return nil, fmt.Errorf("error scanning template: %w", err)
		}
		templates = append(templates, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}
	return templates, nil
}

func (r *SQLTemplateRepository) Create(ctx context.Context, t *template.Template) error {
	return insertTemplate(ctx, r.db, t, time.Now().UTC())
}

func (r *SQLTemplateRepository) CreateMany(ctx context.Context, ts []*template.Template) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// Offsets keep the insertion order stable under ORDER BY created_at.
	base := time.Now().UTC().Add(-time.Duration(len(ts)) * time.Millisecond)
	for i, t := range ts {
		if err := insertTemplate(ctx, tx, t, base.Add(time.Duration(i)*time.Millisecond)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing templates: %w", err)
	}
	return nil
}

func (r *SQLTemplateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM message_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting template: %w", err)
	}
	return requireAffected(res, ErrTemplateNotFound)
}

func insertTemplate(ctx context.Context, ex execer, t *template.Template, createdAt time.Time) error {
	query := `INSERT INTO message_templates (id, name, subject, body, is_default, created_at)
               VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := ex.ExecContext(ctx, query, t.ID, t.Name, t.Subject, t.Body, t.IsDefault, createdAt); err != nil {
		return fmt.Errorf("error creating template: %w", err)
	}
	return nil
}
