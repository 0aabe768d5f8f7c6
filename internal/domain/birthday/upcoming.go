package birthday

import (
	"sort"
	"time"
)

// UpcomingBirthday is a record annotated with its next occurrence.
type UpcomingBirthday struct {
	Birthday
	DaysUntil    int    `json:"days_until"`
	UpcomingDate string `json:"upcoming_date"`
	Age          *int   `json:"age"`
}

// Skipped is a record left out of a computation because its birth date is malformed.
type Skipped struct {
	Birthday *Birthday
	Err      error
}

// Upcoming returns the records whose next occurrence on or after today is at most
// withinDays away, sorted by DaysUntil. Records with equal DaysUntil keep their
// input order.
func Upcoming(records []*Birthday, withinDays int, today time.Time) ([]UpcomingBirthday, []Skipped) {
	start := truncateDate(today)

	upcoming := make([]UpcomingBirthday, 0)
	var skipped []Skipped
	for _, b := range records {
		bd, err := b.ParsedBirthDate()
		if err != nil {
			skipped = append(skipped, Skipped{Birthday: b, Err: err})
			continue
		}

		next := bd.OccurrenceIn(start.Year(), time.UTC)
		if next.Before(start) {
			next = bd.OccurrenceIn(start.Year()+1, time.UTC)
		}

		days := daysBetween(start, next)
		if days < 0 || days > withinDays {
			continue
		}

		entry := UpcomingBirthday{
			Birthday:     *b,
			DaysUntil:    days,
			UpcomingDate: next.Format(dateLayout),
		}
		if age, ok := bd.AgeIn(next.Year()); ok {
			entry.Age = &age
		}
		upcoming = append(upcoming, entry)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})
	return upcoming, skipped
}

// truncateDate keeps the calendar date of t and moves it to UTC midnight so day
// arithmetic is not affected by DST transitions.
func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
