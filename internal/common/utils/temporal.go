// internal/common/utils/temporal.go
// Composite date+time instant handling. Activities store a calendar date and
// a wall-clock time; every temporal comparison is made on the composed
// instant, never on the date alone.

package utils

import (
	"fmt"
	"time"
)

// Wire formats for the date and time halves of an instant
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04:05"
)

// ComposeInstant parses a date string and a time string into one instant.
// An empty time means midnight; an empty date is an error.
func ComposeInstant(date, clock string) (time.Time, error) {
	if date == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if clock == "" {
		clock = "00:00:00"
	}

	t, err := time.Parse(DateFormat+" "+TimeFormat, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// CutoffOrNow composes a cutoff instant from optional date/time parameters,
// defaulting to the current moment when the date is absent.
func CutoffOrNow(date, clock string, now time.Time) (time.Time, error) {
	if date == "" {
		return now, nil
	}
	return ComposeInstant(date, clock)
}

// SplitInstant renders an instant back into its date and time halves
func SplitInstant(t time.Time) (date, clock string) {
	return t.Format(DateFormat), t.Format(TimeFormat)
}
