package gcal

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"dayflow/internal/schedule"
	"dayflow/internal/task"
)

// EventForTask converts a scheduled task into a calendar event. An
// unscheduled task yields nil: only slot-assigned tasks are mirrored.
func EventForTask(t *task.Task) (*calendar.Event, error) {
	if t.ScheduledStart == "" {
		return nil, nil
	}
	start, err := schedule.ParseScheduledStart(t.ScheduledStart)
	if err != nil {
		return nil, fmt.Errorf("task %d has unparsable scheduled start: %w", t.ID, err)
	}

	duration := t.ScheduledDuration
	if duration <= 0 {
		duration = schedule.DefaultDuration
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	description := ""
	if t.Category != "" {
		description = "Category: " + t.Category
	}

	return &calendar.Event{
		Summary:     t.Text,
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				taskIDProperty: fmt.Sprintf("%d", t.ID),
			},
		},
	}, nil
}
