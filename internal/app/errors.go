package app

import (
	"fmt"
	"time"
)

// Application-level errors shared by the HTTP and Telegram surfaces.
var ErrConfigMissing = fmt.Errorf("email settings not configured")
var ErrDeliveryFailed = fmt.Errorf("failed to send reminder")
var ErrNoUpdateData = fmt.Errorf("no update data provided")
var ErrInvalidRecipient = fmt.Errorf("recipient email is required")

// Clock returns the current instant. Services take a Clock so tests can pin "now".
type Clock func() time.Time

// SystemClock returns wall-clock time in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}
