package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The statements are valid for both PostgreSQL and SQLite.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS birthdays (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		birth_date         TEXT NOT NULL,
		relation           TEXT NOT NULL,
		photo_url          TEXT NOT NULL DEFAULT '',
		custom_message     TEXT NOT NULL DEFAULT '',
		created_at         TIMESTAMP NOT NULL,
		last_notified_year INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS notification_settings (
		id               TEXT PRIMARY KEY,
		gmail_address    TEXT NOT NULL,
		app_password     TEXT NOT NULL,
		recipient_emails TEXT NOT NULL DEFAULT '[]',
		updated_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS message_templates (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		subject    TEXT NOT NULL,
		body       TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
