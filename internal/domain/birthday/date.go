// internal/domain/birthday/date.go
package birthday

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidBirthDate is returned when a birth date is neither YYYY-MM-DD nor MM-DD.
var ErrInvalidBirthDate = errors.New("invalid birth date")

const (
	dateLayout = "2006-01-02"
	// leapReferenceYear lets year-less dates such as 02-29 parse.
	leapReferenceYear = "2000-"
)

// BirthDate is the recurring part of a stored birth date. Year is 0 when unknown.
type BirthDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseBirthDate accepts "YYYY-MM-DD" or the year-less "MM-DD" form.
func ParseBirthDate(value string) (BirthDate, error) {
	value = strings.TrimSpace(value)

	if len(value) == len("01-02") {
		t, err := time.Parse(dateLayout, leapReferenceYear+value)
		if err != nil {
			return BirthDate{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, value)
		}
		return BirthDate{Month: t.Month(), Day: t.Day()}, nil
	}

	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return BirthDate{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, value)
	}
	return BirthDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// HasYear reports whether the birth year is known.
func (d BirthDate) HasYear() bool {
	return d.Year > 0
}

// OccurrenceIn returns midnight of the day the birthday is observed on in year.
// Feb 29 birthdays are observed on Feb 28 in non-leap years.
func (d BirthDate) OccurrenceIn(year int, loc *time.Location) time.Time {
	day := d.Day
	if d.Month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, d.Month, day, 0, 0, 0, 0, loc)
}

// ObservedOn reports whether the birthday falls on the calendar date of t.
func (d BirthDate) ObservedOn(t time.Time) bool {
	occ := d.OccurrenceIn(t.Year(), t.Location())
	return occ.Month() == t.Month() && occ.Day() == t.Day()
}

// AgeIn returns the age reached in year. ok is false when the birth year is unknown.
func (d BirthDate) AgeIn(year int) (age int, ok bool) {
	if !d.HasYear() {
		return 0, false
	}
	return year - d.Year, true
}

func (d BirthDate) String() string {
	if !d.HasYear() {
		return fmt.Sprintf("%02d-%02d", int(d.Month), d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// NullYear is the per-record "already notified this year" marker.
type NullYear struct {
	Year  int
	Valid bool
}

// YearOf returns a set marker for year.
func YearOf(year int) NullYear {
	return NullYear{Year: year, Valid: true}
}

// Equal reports whether the marker is set to year.
func (n NullYear) Equal(year int) bool {
	return n.Valid && n.Year == year
}

// Scan implements sql.Scanner. Text values are accepted for rows written by older
// deployments that stored the year as a string.
func (n *NullYear) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*n = NullYear{}
		return nil
	case int64:
		*n = YearOf(int(v))
		return nil
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into NullYear", value)
	}
}

func (n *NullYear) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = NullYear{}
		return nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid year %q: %w", s, err)
	}
	*n = YearOf(y)
	return nil
}

// Value implements driver.Valuer.
func (n NullYear) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return int64(n.Year), nil
}

// MarshalJSON renders the marker as a year string ("2024") or null.
func (n NullYear) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(strconv.Itoa(n.Year))
}

// UnmarshalJSON accepts null, "2024" or 2024.
func (n *NullYear) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullYear{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return n.parse(s)
	}
	var y int
	if err := json.Unmarshal(data, &y); err != nil {
		return fmt.Errorf("invalid year marker %s: %w", data, err)
	}
	*n = YearOf(y)
	return nil
}
