package schedule

import (
	"fmt"
	"time"

	"dayflow/internal/task"
)

// DefaultDuration is the scheduled duration, in minutes, given to a
// task dropped into a slot with no recorded duration.
const DefaultDuration = 60

// SlotRange is the inclusive range of schedulable hours in a day.
type SlotRange struct {
	StartHour int
	EndHour   int
}

// DefaultSlotRange covers 08:00 through 20:00.
func DefaultSlotRange() SlotRange {
	return SlotRange{StartHour: 8, EndHour: 20}
}

// Contains reports whether hour falls inside the range.
func (r SlotRange) Contains(hour int) bool {
	return hour >= r.StartHour && hour <= r.EndHour
}

// Hours enumerates the schedulable hours in order.
func (r SlotRange) Hours() []int {
	var hours []int
	for h := r.StartHour; h <= r.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Slots assigns tasks to fixed one-hour time slots. Occupancy is
// derived from scheduled-start on every query, never stored separately,
// so it can not go stale against the task list.
type Slots struct {
	store task.Store
	rng   SlotRange
}

// NewSlots creates a slot assigner over the given store.
func NewSlots(store task.Store, rng SlotRange) *Slots {
	return &Slots{store: store, rng: rng}
}

// Range returns the configured slot range.
func (s *Slots) Range() SlotRange {
	return s.rng
}

// slotOf extracts the (day, hour) a task occupies, if any.
func slotOf(t *task.Task) (DayKey, int, bool) {
	if t.ScheduledStart == "" {
		return "", 0, false
	}
	start, err := ParseScheduledStart(t.ScheduledStart)
	if err != nil {
		return "", 0, false
	}
	return NewDayKey(start), start.Hour(), true
}

// OccupantAt returns the non-completed task scheduled at (dayKey, hour),
// or nil. Completed tasks vacate their slot.
func (s *Slots) OccupantAt(dayKey DayKey, hour int) (*task.Task, error) {
	all, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	for _, t := range all {
		if t.Completed {
			continue
		}
		day, h, ok := slotOf(t)
		if ok && day == dayKey && h == hour {
			return t, nil
		}
	}
	return nil, nil
}

// Schedule puts the task into the slot at (dayKey, hour), setting its
// scheduled-start to hour:00 local time on that day and defaulting the
// duration to DefaultDuration when none is recorded. A non-completed
// occupant other than the task itself means ErrSlotOccupied and no
// mutation.
func (s *Slots) Schedule(taskID int64, dayKey DayKey, hour int) (*task.Task, error) {
	if !s.rng.Contains(hour) {
		return nil, ErrInvalidInput
	}
	day, err := dayKey.Date()
	if err != nil {
		return nil, ErrInvalidInput
	}

	t, err := s.store.Get(taskID)
	if err != nil {
		return nil, ErrUnknownBucketOrIndex
	}

	occupant, err := s.OccupantAt(dayKey, hour)
	if err != nil {
		return nil, err
	}
	if occupant != nil && occupant.ID != taskID {
		return nil, ErrSlotOccupied
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location()).
		Format(time.RFC3339)
	fields := task.Fields{ScheduledStart: &start}
	if t.ScheduledDuration == 0 {
		duration := DefaultDuration
		fields.ScheduledDuration = &duration
	}
	if err := s.store.Update(taskID, fields); err != nil {
		return nil, fmt.Errorf("failed to schedule task %d: %w", taskID, err)
	}
	return s.store.Get(taskID)
}

// Unschedule clears the task's scheduled start and duration. The due
// date is untouched. Unscheduling an unscheduled task is a no-op, so
// calling it twice ends in the same state as once.
func (s *Slots) Unschedule(taskID int64) (*task.Task, error) {
	t, err := s.store.Get(taskID)
	if err != nil {
		return nil, ErrUnknownBucketOrIndex
	}
	if t.ScheduledStart == "" && t.ScheduledDuration == 0 {
		return t, nil
	}

	var empty string
	var zero int
	if err := s.store.Update(taskID, task.Fields{
		ScheduledStart:    &empty,
		ScheduledDuration: &zero,
	}); err != nil {
		return nil, fmt.Errorf("failed to unschedule task %d: %w", taskID, err)
	}
	return s.store.Get(taskID)
}

// Unscheduled returns the non-completed tasks with no scheduled start,
// ordered by id. These are the candidates for slot assignment.
func (s *Slots) Unscheduled() ([]*task.Task, error) {
	all, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	var out []*task.Task
	for _, t := range all {
		if !t.Completed && t.ScheduledStart == "" {
			out = append(out, t)
		}
	}
	return out, nil
}
