package utils

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// MonthWindow returns the first and last instant of a "YYYY-MM" month in UTC.
func MonthWindow(month string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("month must look like 2006-01: %w", err)
	}
	m := now.With(t)
	return m.BeginningOfMonth(), m.EndOfMonth(), nil
}

// DayWindow returns the start and end of the UTC day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	d := now.With(t.UTC())
	return d.BeginningOfDay(), d.EndOfDay()
}

// FormatEventDate renders an event's dates for display, e.g. "Sun, 21 Jun 2026" or
// "Sun, 21 Jun 2026 to Tue, 23 Jun 2026".
func FormatEventDate(startsAt time.Time, endsAt *time.Time) string {
	const layout = "Mon, 02 Jan 2006"
	start := startsAt.Format(layout)
	if endsAt == nil || now.With(*endsAt).BeginningOfDay().Equal(now.With(startsAt).BeginningOfDay()) {
		return start
	}
	return start + " to " + endsAt.Format(layout)
}
