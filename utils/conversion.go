package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar-date wire format ("YYYY-MM-DD").
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day wire format ("HH:MM", 24-hour).
	ClockLayout = "15:04"
)

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// MinuteOfDay converts an "HH:MM" clock string to minutes from midnight.
func MinuteOfDay(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (want HH:MM): %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinute converts minutes from midnight back to an "HH:MM" string.
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
