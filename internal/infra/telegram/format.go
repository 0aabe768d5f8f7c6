package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/birthday"
)

const (
	defaultUpcomingDays = 30
	maxListedBirthdays  = 50
)

func formatBirthdayList(list []*birthday.Birthday) string {
	if len(list) == 0 {
		return "No birthdays saved yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎂 Saved birthdays (%d):\n", len(list))
	for i, b := range list {
		if i == maxListedBirthdays {
			fmt.Fprintf(&sb, "\n...and %d more", len(list)-maxListedBirthdays)
			break
		}
		fmt.Fprintf(&sb, "\n• %s (%s): %s", b.Name, b.Relation, b.BirthDate)
	}
	return sb.String()
}

func formatUpcoming(list []birthday.UpcomingBirthday, days int) string {
	if len(list) == 0 {
		return fmt.Sprintf("No birthdays in the next %d days.", days)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Upcoming birthdays (next %d days):\n", days)
	for i, u := range list {
		if i == maxListedBirthdays {
			fmt.Fprintf(&sb, "\n...and %d more", len(list)-maxListedBirthdays)
			break
		}
		when := fmt.Sprintf("in %d days", u.DaysUntil)
		switch u.DaysUntil {
		case 0:
			when = "today"
		case 1:
			when = "tomorrow"
		}
		fmt.Fprintf(&sb, "\n• %s (%s): %s, %s", u.Name, u.Relation, u.UpcomingDate, when)
		if u.Age != nil {
			fmt.Fprintf(&sb, ", turning %d", *u.Age)
		}
	}
	return sb.String()
}

func formatCheckResult(r app.CheckResult) string {
	return fmt.Sprintf("✅ Birthday check completed.\nChecked: %d\nDue: %d\nSent: %d\nFailed: %d\nSkipped: %d",
		r.Checked, r.Due, r.Sent, r.Failed, r.Skipped)
}

// parseUpcomingDays reads the optional day window of /upcoming.
func parseUpcomingDays(args []string) (int, error) {
	if len(args) == 0 {
		return defaultUpcomingDays, nil
	}
	days, err := strconv.Atoi(args[0])
	if err != nil || days < 0 {
		return 0, fmt.Errorf("invalid day count %q", args[0])
	}
	return days, nil
}

// parseResendCallback extracts the birthday ID from "send_<id>" callback data.
func parseResendCallback(data string) (string, bool) {
	if !strings.HasPrefix(data, resendCallbackPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(data, resendCallbackPrefix)
	return id, id != ""
}
