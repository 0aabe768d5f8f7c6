package template

import (
	"errors"
	"strings"
)

// ErrRequiredField is returned when a template lacks a name, subject or body.
var ErrRequiredField = errors.New("template name, subject and body are required")

// Template is a reusable greeting. Subject may contain a {name} placeholder.
type Template struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	IsDefault bool   `json:"is_default"`
}

type CreateRequest struct {
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	IsDefault bool   `json:"is_default"`
}

func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Subject) == "" || strings.TrimSpace(r.Body) == "" {
		return ErrRequiredField
	}
	return nil
}

// Defaults returns the built-in templates seeded into an empty store. IDs are left
// for the caller to assign.
func Defaults() []*Template {
	return []*Template{
		{
			Name:      "Classic Birthday",
			Subject:   "🎂 Happy Birthday {name}!",
			Body:      "Wishing you a wonderful birthday filled with joy and happiness! May all your dreams come true. 🎉",
			IsDefault: true,
		},
		{
			Name:    "Professional",
			Subject: "Birthday Wishes for {name}",
			Body:    "Warmest birthday wishes to you! May this special day bring you success and happiness.",
		},
		{
			Name:    "Fun & Casual",
			Subject: "🎈 Party Time! It's {name}'s Birthday!",
			Body:    "Let's celebrate! Another year of being awesome. Time to party! 🥳🎊",
		},
	}
}
