// Package task defines the task model and the store contract every other
// component mutates tasks through.
package task

// Priority level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Pomodoro mode constants, persisted on the task between focus sessions.
const (
	PomodoroWork  = "work"
	PomodoroBreak = "break"
)

// Task is a single task. Date fields use local calendar formats:
// DueDate is "YYYY-MM-DD", DueTime is "HH:MM", ScheduledStart is an
// ISO 8601 date-time. Empty string means absent.
type Task struct {
	ID                int64    `json:"id"`
	Text              string   `json:"text"`
	Completed         bool     `json:"completed"`
	Priority          Priority `json:"priority"`
	Category          string   `json:"category,omitempty"`
	DueDate           string   `json:"dueDate,omitempty"`
	DueTime           string   `json:"dueTime,omitempty"`
	ScheduledStart    string   `json:"scheduledStart,omitempty"`
	ScheduledDuration int      `json:"scheduledDuration,omitempty"` // minutes
	SortOrder         int      `json:"sortOrder"`

	// Session-timing fields, owned by the focus session while one is open.
	TimeSpent      int    `json:"timeSpent,omitempty"` // seconds
	IsTracking     bool   `json:"isTracking,omitempty"`
	PomodoroActive bool   `json:"pomodoroActive,omitempty"`
	PomodoroTime   int    `json:"pomodoroTime,omitempty"` // seconds remaining
	PomodoroMode   string `json:"pomodoroMode,omitempty"`

	// Seq is the store's write sequence for this record. Stamped by the
	// store on every write; a write carrying an older sequence loses.
	Seq uint64 `json:"seq,omitempty"`
}

// Fields is a partial update. Nil pointers leave the field untouched;
// a pointer to the zero value clears it.
type Fields struct {
	Text              *string
	Completed         *bool
	Priority          *Priority
	Category          *string
	DueDate           *string
	DueTime           *string
	ScheduledStart    *string
	ScheduledDuration *int
	SortOrder         *int

	TimeSpent      *int
	IsTracking     *bool
	PomodoroActive *bool
	PomodoroTime   *int
	PomodoroMode   *string
}

// apply copies the set fields onto t.
func (f Fields) apply(t *Task) {
	if f.Text != nil {
		t.Text = *f.Text
	}
	if f.Completed != nil {
		t.Completed = *f.Completed
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
	if f.Category != nil {
		t.Category = *f.Category
	}
	if f.DueDate != nil {
		t.DueDate = *f.DueDate
	}
	if f.DueTime != nil {
		t.DueTime = *f.DueTime
	}
	if f.ScheduledStart != nil {
		t.ScheduledStart = *f.ScheduledStart
	}
	if f.ScheduledDuration != nil {
		t.ScheduledDuration = *f.ScheduledDuration
	}
	if f.SortOrder != nil {
		t.SortOrder = *f.SortOrder
	}
	if f.TimeSpent != nil {
		t.TimeSpent = *f.TimeSpent
	}
	if f.IsTracking != nil {
		t.IsTracking = *f.IsTracking
	}
	if f.PomodoroActive != nil {
		t.PomodoroActive = *f.PomodoroActive
	}
	if f.PomodoroTime != nil {
		t.PomodoroTime = *f.PomodoroTime
	}
	if f.PomodoroMode != nil {
		t.PomodoroMode = *f.PomodoroMode
	}
}

// String helpers for building Fields literals.

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// PriorityPtr returns a pointer to p.
func PriorityPtr(p Priority) *Priority { return &p }
