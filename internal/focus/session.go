// Package focus implements the session timer: a per-task stopwatch and
// pomodoro work/break cycle driven by 1-second ticks from the host.
//
// The session owns the authoritative elapsed-time counter while it is
// open; the task store only learns about it through the persistence
// callback on externally visible transitions and on close.
package focus

import (
	"dayflow/internal/task"
)

// Pomodoro interval lengths in seconds.
const (
	WorkDuration  = 25 * 60
	BreakDuration = 5 * 60
)

// State of the session timer.
type State int

const (
	// StateStopped means no timer is ticking.
	StateStopped State = iota
	// StateRunning means the free-running stopwatch is ticking.
	StateRunning
	// StatePomodoroWork means a pomodoro work interval is ticking.
	StatePomodoroWork
	// StatePomodoroBreak means a pomodoro break interval is ticking.
	StatePomodoroBreak
)

// UpdateFunc persists the given fields for a task. The session invokes
// it on every transition relevant to resuming later; periodic ticks do
// not each persist.
type UpdateFunc func(id int64, f task.Fields) error

// Session is the timer state machine bound to one task. It is
// single-threaded: the host delivers ticks and user actions from one
// event loop, and is responsible for calling Close on teardown.
type Session struct {
	taskID int64
	update UpdateFunc

	elapsed  int // authoritative cumulative work seconds
	tracking bool

	pomodoroView      bool // pomodoro display currently shown
	pomodoroRunning   bool
	pomodoroMode      string // task.PomodoroWork or task.PomodoroBreak
	pomodoroRemaining int

	closed bool
}

// Open reconstructs a session from the task's persisted timing fields.
func Open(t *task.Task, update UpdateFunc) *Session {
	s := &Session{
		taskID:            t.ID,
		update:            update,
		elapsed:           t.TimeSpent,
		tracking:          t.IsTracking,
		pomodoroView:      t.PomodoroActive,
		pomodoroMode:      t.PomodoroMode,
		pomodoroRemaining: t.PomodoroTime,
	}
	if s.pomodoroMode == "" {
		s.pomodoroMode = task.PomodoroWork
	}
	if s.pomodoroRemaining <= 0 {
		s.pomodoroRemaining = WorkDuration
	}
	return s
}

// TaskID returns the bound task's id.
func (s *Session) TaskID() int64 { return s.taskID }

// Elapsed returns the authoritative cumulative elapsed seconds. This is
// the value Close persists, so callers reading it at teardown can never
// see a stale snapshot.
func (s *Session) Elapsed() int { return s.elapsed }

// PomodoroRemaining returns the seconds left in the current interval.
func (s *Session) PomodoroRemaining() int { return s.pomodoroRemaining }

// PomodoroMode returns task.PomodoroWork or task.PomodoroBreak.
func (s *Session) PomodoroMode() string { return s.pomodoroMode }

// PomodoroViewActive reports whether the pomodoro display is shown.
func (s *Session) PomodoroViewActive() bool { return s.pomodoroView }

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool { return s.closed }

// State derives the machine state. At most one timer drives elapsed
// time: a running pomodoro takes precedence over the stopwatch.
func (s *Session) State() State {
	switch {
	case s.closed:
		return StateStopped
	case s.pomodoroRunning && s.pomodoroMode == task.PomodoroBreak:
		return StatePomodoroBreak
	case s.pomodoroRunning:
		return StatePomodoroWork
	case s.tracking:
		return StateRunning
	default:
		return StateStopped
	}
}

// TickerActive reports whether the host should keep delivering ticks.
// When it turns false the host must cancel its ticker; a ticker that
// outlives the session would keep mutating closed state.
func (s *Session) TickerActive() bool {
	return !s.closed && (s.tracking || s.pomodoroRunning)
}

// Tick advances the active timer by one second. Work time counts toward
// cumulative elapsed time; break time does not. Reaching zero flips the
// pomodoro interval and persists the mode switch.
func (s *Session) Tick() error {
	if s.closed {
		return nil
	}
	switch s.State() {
	case StateRunning:
		s.elapsed++
	case StatePomodoroWork:
		s.elapsed++
		if s.pomodoroRemaining <= 1 {
			s.pomodoroMode = task.PomodoroBreak
			s.pomodoroRemaining = BreakDuration
			return s.persistPomodoro()
		}
		s.pomodoroRemaining--
	case StatePomodoroBreak:
		if s.pomodoroRemaining <= 1 {
			s.pomodoroMode = task.PomodoroWork
			s.pomodoroRemaining = WorkDuration
			return s.persistPomodoro()
		}
		s.pomodoroRemaining--
	}
	return nil
}

// StartTracking starts the stopwatch. Starting an already running
// stopwatch is a no-op.
func (s *Session) StartTracking() error {
	if s.closed || s.tracking {
		return nil
	}
	s.tracking = true
	return s.update(s.taskID, task.Fields{IsTracking: task.BoolPtr(true)})
}

// StopTracking stops the stopwatch and persists the elapsed time
// immediately. Stopping a stopped stopwatch is a no-op.
func (s *Session) StopTracking() error {
	if !s.tracking {
		return nil
	}
	s.tracking = false
	return s.update(s.taskID, task.Fields{
		TimeSpent:  task.IntPtr(s.elapsed),
		IsTracking: task.BoolPtr(false),
	})
}

// ToggleTracking flips the stopwatch between stopped and running.
func (s *Session) ToggleTracking() error {
	if s.tracking {
		return s.StopTracking()
	}
	return s.StartTracking()
}

// ResetTracking stops the stopwatch and zeroes the elapsed time.
func (s *Session) ResetTracking() error {
	if s.closed {
		return nil
	}
	s.tracking = false
	s.elapsed = 0
	return s.update(s.taskID, task.Fields{
		TimeSpent:  task.IntPtr(0),
		IsTracking: task.BoolPtr(false),
	})
}

// StartPomodoro starts the cycle from wherever it stopped, without
// resetting the remaining time. Idempotent.
func (s *Session) StartPomodoro() {
	if s.closed {
		return
	}
	s.pomodoroRunning = true
}

// StopPomodoro pauses the cycle, keeping the remaining time. Idempotent.
func (s *Session) StopPomodoro() {
	s.pomodoroRunning = false
}

// TogglePomodoro starts or stops the cycle ticking.
func (s *Session) TogglePomodoro() {
	if s.pomodoroRunning {
		s.StopPomodoro()
	} else {
		s.StartPomodoro()
	}
}

// ResetPomodoro restores a full work interval regardless of the current
// mode, and persists the restored mode.
func (s *Session) ResetPomodoro() error {
	if s.closed {
		return nil
	}
	s.pomodoroRunning = false
	s.pomodoroMode = task.PomodoroWork
	s.pomodoroRemaining = WorkDuration
	return s.persistPomodoro()
}

// TogglePomodoroView switches between the stopwatch display and the
// pomodoro display. Turning the pomodoro display off stops a running
// cycle; merely showing the other display never stops a timer.
func (s *Session) TogglePomodoroView() {
	if s.closed {
		return
	}
	if s.pomodoroView {
		s.StopPomodoro()
	}
	s.pomodoroView = !s.pomodoroView
}

// Complete stops a running stopwatch, persists the elapsed time, marks
// the task completed and closes the session.
func (s *Session) Complete() error {
	if s.closed {
		return nil
	}
	s.tracking = false
	s.pomodoroRunning = false
	s.closed = true
	return s.update(s.taskID, task.Fields{
		TimeSpent:  task.IntPtr(s.elapsed),
		IsTracking: task.BoolPtr(false),
		Completed:  task.BoolPtr(true),
	})
}

// Close tears the session down: both timers stop and a final snapshot
// is persisted. Elapsed time is always written from the session's own
// counter; pomodoro remaining/mode survive only if the pomodoro display
// was the one the user last saw, otherwise they are cleared so a later
// session can't resume into a mode the user never chose. Idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.tracking = false
	s.pomodoroRunning = false
	s.closed = true

	fields := task.Fields{
		TimeSpent:      task.IntPtr(s.elapsed),
		IsTracking:     task.BoolPtr(false),
		PomodoroActive: task.BoolPtr(s.pomodoroView),
	}
	if s.pomodoroView {
		fields.PomodoroTime = task.IntPtr(s.pomodoroRemaining)
		fields.PomodoroMode = task.StringPtr(s.pomodoroMode)
	} else {
		fields.PomodoroTime = task.IntPtr(0)
		fields.PomodoroMode = task.StringPtr("")
	}
	return s.update(s.taskID, fields)
}

// persistPomodoro writes the interval state after a mode switch or
// reset, along with the elapsed time the work interval accumulated.
func (s *Session) persistPomodoro() error {
	return s.update(s.taskID, task.Fields{
		TimeSpent:    task.IntPtr(s.elapsed),
		PomodoroTime: task.IntPtr(s.pomodoroRemaining),
		PomodoroMode: task.StringPtr(s.pomodoroMode),
	})
}
