// Package schedule implements the scheduling engine: day bucketing,
// per-day ordering and hour-slot assignment.
package schedule

import (
	"time"

	"dayflow/internal/task"
)

// DayKey is the canonical "YYYY-MM-DD" string for one calendar day.
// Two tasks share a bucket iff their effective dates yield the same key.
type DayKey string

const dayKeyLayout = "2006-01-02"

// Layouts accepted for a scheduled-start date-time. The wall-clock
// components are used as written; nothing is converted through UTC.
var scheduledStartLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// NewDayKey derives the key for the calendar day containing t.
func NewDayKey(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// Valid reports whether k parses as a calendar date.
func (k DayKey) Valid() bool {
	_, err := k.Date()
	return err == nil
}

// Date returns midnight local time on the key's day. The key is parsed
// as a local calendar date, never built from an instant, so a key can
// never shift across midnight through a UTC round trip.
func (k DayKey) Date() (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, string(k), time.Local)
}

// ParseScheduledStart parses an ISO 8601 scheduled-start string.
func ParseScheduledStart(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range scheduledStartLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// DayKeyOf classifies a task into its day bucket. Effective date
// precedence: due date, then scheduled-start date. A task with neither
// is unscheduled (ok == false) and belongs to no bucket.
func DayKeyOf(t *task.Task) (DayKey, bool) {
	if t.DueDate != "" {
		k := DayKey(t.DueDate)
		if k.Valid() {
			return k, true
		}
		return "", false
	}
	if t.ScheduledStart != "" {
		start, err := ParseScheduledStart(t.ScheduledStart)
		if err != nil {
			return "", false
		}
		return NewDayKey(start), true
	}
	return "", false
}

// EnumerateDays returns count consecutive day keys starting at the
// reference date. The sequence is re-derivable from any reference.
func EnumerateDays(ref time.Time, count int) []DayKey {
	keys := make([]DayKey, 0, count)
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	for i := 0; i < count; i++ {
		keys = append(keys, NewDayKey(day.AddDate(0, 0, i)))
	}
	return keys
}
