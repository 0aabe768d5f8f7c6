package birthday

import (
	"errors"
	"strings"
	"time"
)

// ErrRequiredField is returned when a create request lacks a mandatory field.
var ErrRequiredField = errors.New("required field is missing")

// Birthday is a stored person whose birthday should be remembered.
type Birthday struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	BirthDate        string    `json:"birth_date"` // YYYY-MM-DD or MM-DD
	Relation         string    `json:"relation"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	CustomMessage    string    `json:"custom_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	LastNotifiedYear NullYear  `json:"last_reminder_sent"`
}

// ParsedBirthDate parses the stored birth date.
func (b *Birthday) ParsedBirthDate() (BirthDate, error) {
	return ParseBirthDate(b.BirthDate)
}

// Apply copies every set field of u onto b. The year marker is never touched.
func (b *Birthday) Apply(u UpdateRequest) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.BirthDate != nil {
		b.BirthDate = strings.TrimSpace(*u.BirthDate)
	}
	if u.Relation != nil {
		b.Relation = *u.Relation
	}
	if u.PhotoURL != nil {
		b.PhotoURL = *u.PhotoURL
	}
	if u.CustomMessage != nil {
		b.CustomMessage = *u.CustomMessage
	}
}

type CreateRequest struct {
	Name          string `json:"name"`
	BirthDate     string `json:"birth_date"`
	Relation      string `json:"relation"`
	PhotoURL      string `json:"photo_url"`
	CustomMessage string `json:"custom_message"`
}

// Validate checks required fields and the birth date format.
func (r CreateRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return fieldError("name")
	case strings.TrimSpace(r.BirthDate) == "":
		return fieldError("birth_date")
	case strings.TrimSpace(r.Relation) == "":
		return fieldError("relation")
	}
	_, err := ParseBirthDate(r.BirthDate)
	return err
}

// UpdateRequest is a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Name          *string `json:"name"`
	BirthDate     *string `json:"birth_date"`
	Relation      *string `json:"relation"`
	PhotoURL      *string `json:"photo_url"`
	CustomMessage *string `json:"custom_message"`
}

// IsEmpty reports whether no recognized field is set.
func (u UpdateRequest) IsEmpty() bool {
	return u.Name == nil && u.BirthDate == nil && u.Relation == nil && u.PhotoURL == nil && u.CustomMessage == nil
}

// Validate checks the fields that are set.
func (u UpdateRequest) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fieldError("name")
	}
	if u.Relation != nil && strings.TrimSpace(*u.Relation) == "" {
		return fieldError("relation")
	}
	if u.BirthDate != nil {
		if _, err := ParseBirthDate(*u.BirthDate); err != nil {
			return err
		}
	}
	return nil
}

type fieldErr struct {
	field string
}

func fieldError(field string) error {
	return &fieldErr{field: field}
}

func (e *fieldErr) Error() string {
	return e.field + ": " + ErrRequiredField.Error()
}

func (e *fieldErr) Unwrap() error {
	return ErrRequiredField
}
