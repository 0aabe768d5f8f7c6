package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"birthday_reminder/internal/domain/birthday"
)

// Custom errors
var ErrBirthdayNotFound = fmt.Errorf("birthday not found")

const birthdayColumns = `id, name, birth_date, relation, photo_url, custom_message, created_at, last_notified_year`

type SQLBirthdayRepository struct {
	db *sql.DB
}

func NewSQLBirthdayRepository(db *sql.DB) *SQLBirthdayRepository {
	return &SQLBirthdayRepository{db: db}
}

func (r *SQLBirthdayRepository) Create(ctx context.Context, b *birthday.Birthday) error {
	query := `INSERT INTO birthdays (` + birthdayColumns + `)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.BirthDate, b.Relation, b.PhotoURL, b.CustomMessage, b.CreatedAt.UTC(), b.LastNotifiedYear)
	if err != nil {
		return fmt.Errorf("error creating birthday: %w", err)
	}
	return nil
}

func (r *SQLBirthdayRepository) GetByID(ctx context.Context, id string) (*birthday.Birthday, error) {
	query := `SELECT ` + birthdayColumns + ` FROM birthdays WHERE id = $1`

	b, err := scanBirthday(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBirthdayNotFound
		}
		return nil, fmt.Errorf("error getting birthday by ID: %w", err)
	}
	return b, nil
}

func (r *SQLBirthdayRepository) List(ctx context.Context) ([]*birthday.Birthday, error) {
	query := `SELECT ` + birthdayColumns + ` FROM birthdays ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing birthdays: %w", err)
	}
	defer rows.Close()

	birthdays := make([]*birthday.Birthday, 0)
	for rows.Next() {
		b, err := scanBirthday(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning birthday: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating birthdays: %w", err)
	}
	return birthdays, nil
}

func (r *SQLBirthdayRepository) Update(ctx context.Context, b *birthday.Birthday) error {
	query := `UPDATE birthdays
               SET name = $1, birth_date = $2, relation = $3, photo_url = $4, custom_message = $5
               WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query, b.Name, b.BirthDate, b.Relation, b.PhotoURL, b.CustomMessage, b.ID)
	if err != nil {
		return fmt.Errorf("error updating birthday: %w", err)
	}
	return requireAffected(res, ErrBirthdayNotFound)
}

func (r *SQLBirthdayRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM birthdays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting birthday: %w", err)
	}
	return requireAffected(res, ErrBirthdayNotFound)
}

// SetLastNotifiedYear records that the reminder for year was delivered. An
// existing marker for a later year is left alone.
func (r *SQLBirthdayRepository) SetLastNotifiedYear(ctx context.Context, id string, year int) error {
	query := `UPDATE birthdays
               SET last_notified_year = $1
               WHERE id = $2 AND (last_notified_year IS NULL OR last_notified_year <= $3)`

	res, err := r.db.ExecContext(ctx, query, year, id, year)
	if err != nil {
		return fmt.Errorf("error setting last notified year: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		// Either the record is gone or it already carries a later year.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBirthday(row rowScanner) (*birthday.Birthday, error) {
	b := &birthday.Birthday{}
	err := row.Scan(&b.ID, &b.Name, &b.BirthDate, &b.Relation, &b.PhotoURL, &b.CustomMessage, &b.CreatedAt, &b.LastNotifiedYear)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
