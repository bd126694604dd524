// Package msgs defines shared message types for TUI view transitions.
package msgs

// View transition messages

// GoToUpcomingMsg signals transition to the upcoming board view.
type GoToUpcomingMsg struct{}

// GoToTimeBlocksMsg signals transition to the time blocks view for a day.
type GoToTimeBlocksMsg struct {
	Day string // "YYYY-MM-DD"
}

// OpenFocusMsg is sent when the user opens a task in the focus view.
type OpenFocusMsg struct {
	TaskID int64
}

// CloseFocusMsg signals that the focus view has been closed and its
// session state persisted.
type CloseFocusMsg struct{}

// TasksChangedMsg signals that the store changed and views holding
// cached buckets should reload.
type TasksChangedMsg struct{}

// ErrorMsg carries a non-fatal error for display in the active view.
type ErrorMsg struct {
	Err error
}
