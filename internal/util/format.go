// Package util holds small formatting helpers shared by the TUI and CLI.
package util

import (
	"fmt"
	"time"
)

// FormatClock renders a second count as M:SS, or H:MM:SS once an hour
// is reached.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// DayLabel names a day relative to today: "Today", "Tomorrow", or the
// weekday name.
func DayLabel(day, today time.Time) string {
	d := midnight(day)
	t := midnight(today)
	switch diff := int(d.Sub(t).Hours() / 24); diff {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return d.Weekday().String()
	}
}

// FormatHour renders an hour as a 12-hour clock label, e.g. "9:00 AM".
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12:00 AM"
	case hour < 12:
		return fmt.Sprintf("%d:00 AM", hour)
	case hour == 12:
		return "12:00 PM"
	default:
		return fmt.Sprintf("%d:00 PM", hour-12)
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
