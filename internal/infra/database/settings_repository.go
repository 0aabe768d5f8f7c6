package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"birthday_reminder/internal/domain/notification"

	"github.com/google/uuid"
)

var ErrSettingsNotFound = fmt.Errorf("notification settings not found")

// SQLSettingsRepository stores the single notification config row. Writes are
// last-writer-wins.
type SQLSettingsRepository struct {
	db *sql.DB
}

func NewSQLSettingsRepository(db *sql.DB) *SQLSettingsRepository {
	return &SQLSettingsRepository{db: db}
}

func (r *SQLSettingsRepository) Get(ctx context.Context) (*notification.Config, error) {
	cfg, err := getSettings(ctx, r.db)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("error getting notification settings: %w", err)
	}
	return cfg, nil
}

// Save replaces whatever config is stored with cfg.
func (r *SQLSettingsRepository) Save(ctx context.Context, cfg *notification.Config) error {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	recipients, err := encodeRecipients(cfg.Recipients)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notification_settings`); err != nil {
		return fmt.Errorf("error clearing notification settings: %w", err)
	}

	query := `INSERT INTO notification_settings (id, gmail_address, app_password, recipient_emails, updated_at)
               VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, query, cfg.ID, cfg.SenderAddress, cfg.AppPassword, recipients, time.Now().UTC()); err != nil {
		return fmt.Errorf("error saving notification settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing notification settings: %w", err)
	}
	return nil
}

// Update applies the set fields of u. When no config exists a new one is created
// from u.
func (r *SQLSettingsRepository) Update(ctx context.Context, u notification.ConfigUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	cfg, err := getSettings(ctx, tx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		cfg = &notification.Config{ID: uuid.NewString()}
	case err != nil:
		return fmt.Errorf("error getting notification settings: %w", err)
	}

	if u.SenderAddress != nil {
		cfg.SenderAddress = *u.SenderAddress
	}
	if u.AppPassword != nil {
		cfg.AppPassword = *u.AppPassword
	}
	if u.Recipients != nil {
		cfg.Recipients = *u.Recipients
	}

	if err := upsertSettings(ctx, tx, cfg); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing notification settings: %w", err)
	}
	return nil
}

// AddRecipient appends email unless it is already present.
func (r *SQLSettingsRepository) AddRecipient(ctx context.Context, email string) error {
	return r.mutateRecipients(ctx, func(recipients []string) []string {
		for _, existing := range recipients {
			if strings.EqualFold(existing, email) {
				return recipients
			}
		}
		return append(recipients, email)
	})
}

// RemoveRecipient drops every occurrence of email.
func (r *SQLSettingsRepository) RemoveRecipient(ctx context.Context, email string) error {
	return r.mutateRecipients(ctx, func(recipients []string) []string {
		kept := make([]string, 0, len(recipients))
		for _, existing := range recipients {
			if !strings.EqualFold(existing, email) {
				kept = append(kept, existing)
			}
		}
		return kept
	})
}

func (r *SQLSettingsRepository) mutateRecipients(ctx context.Context, mutate func([]string) []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	cfg, err := getSettings(ctx, tx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSettingsNotFound
		}
		return fmt.Errorf("error getting notification settings: %w", err)
	}

	cfg.Recipients = mutate(cfg.Recipients)
	if err := upsertSettings(ctx, tx, cfg); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing notification settings: %w", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getSettings(ctx context.Context, q queryer) (*notification.Config, error) {
	query := `SELECT id, gmail_address, app_password, recipient_emails
               FROM notification_settings ORDER BY updated_at DESC LIMIT 1`

	cfg := &notification.Config{}
	var recipients string
	if err := q.QueryRowContext(ctx, query).Scan(&cfg.ID, &cfg.SenderAddress, &cfg.AppPassword, &recipients); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(recipients), &cfg.Recipients); err != nil {
		return nil, fmt.Errorf("error decoding recipient list: %w", err)
	}
	return cfg, nil
}

func upsertSettings(ctx context.Context, ex execer, cfg *notification.Config) error {
	recipients, err := encodeRecipients(cfg.Recipients)
	if err != nil {
		return err
	}

	query := `INSERT INTO notification_settings (id, gmail_address, app_password, recipient_emails, updated_at)
               VALUES ($1, $2, $3, $4, $5)
               ON CONFLICT (id) DO UPDATE SET
                   gmail_address = excluded.gmail_address,
                   app_password = excluded.app_password,
                   recipient_emails = excluded.recipient_emails,
                   updated_at = excluded.updated_at`
	if _, err := ex.ExecContext(ctx, query, cfg.ID, cfg.SenderAddress, cfg.AppPassword, recipients, time.Now().UTC()); err != nil {
		return fmt.Errorf("error writing notification settings: %w", err)
	}
	return nil
}

func encodeRecipients(recipients []string) (string, error) {
	if recipients == nil {
		recipients = []string{}
	}
	data, err := json.Marshal(recipients)
	if err != nil {
		return "", fmt.Errorf("error encoding recipient list: %w", err)
	}
	return string(data), nil
}
