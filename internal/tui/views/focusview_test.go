package views

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayflow/internal/focus"
	"dayflow/internal/task"
	"dayflow/internal/tui/msgs"
)

func focusFixture(t *testing.T) (FocusModel, *focus.Session, task.Store, int64) {
	t.Helper()
	store := task.NewMemStore()
	tk, err := store.Create(task.Fields{Text: task.StringPtr("ship release")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	session := focus.Open(tk, store.Update)
	m := NewFocusModel(session, tk.Text)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, session, store, tk.ID
}

func tick() tea.Msg {
	return focusTickMsg(time.Now())
}

func TestFocusModel_InitIdleHasNoTicker(t *testing.T) {
	m, _, _, _ := focusFixture(t)
	if m.Init() != nil {
		t.Error("idle session should not start a ticker")
	}
}

func TestFocusModel_SpaceStartsStopwatch(t *testing.T) {
	m, session, _, _ := focusFixture(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatal("starting the stopwatch should schedule a tick")
	}
	if session.State() != focus.StateRunning {
		t.Fatalf("state = %v, want StateRunning", session.State())
	}

	for i := 0; i < 3; i++ {
		m, _ = m.Update(tick())
	}
	if session.Elapsed() != 3 {
		t.Errorf("elapsed = %d, want 3", session.Elapsed())
	}
}

func TestFocusModel_TickWhileIdleDoesNotAccumulate(t *testing.T) {
	m, session, _, _ := focusFixture(t)

	m, cmd := m.Update(tick())
	if cmd != nil {
		t.Error("idle tick should not reschedule")
	}
	if session.Elapsed() != 0 {
		t.Errorf("elapsed = %d, want 0", session.Elapsed())
	}
}

func TestFocusModel_PomodoroCycle(t *testing.T) {
	m, session, _, _ := focusFixture(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !session.PomodoroViewActive() {
		t.Fatal("p should bring up the pomodoro display")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd == nil {
		t.Fatal("starting the pomodoro should schedule a tick")
	}
	m, _ = m.Update(tick())

	if session.State() != focus.StatePomodoroWork {
		t.Fatalf("state = %v, want StatePomodoroWork", session.State())
	}
	if session.PomodoroRemaining() != focus.WorkDuration-1 {
		t.Errorf("remaining = %d, want %d", session.PomodoroRemaining(), focus.WorkDuration-1)
	}
	// Work ticks feed the running total too.
	if session.Elapsed() != 1 {
		t.Errorf("elapsed = %d, want 1", session.Elapsed())
	}
}

func TestFocusModel_EscClosesAndPersists(t *testing.T) {
	m, session, store, id := focusFixture(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tick())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected close command")
	}
	if _, ok := cmd().(msgs.CloseFocusMsg); !ok {
		t.Fatalf("expected CloseFocusMsg, got %T", cmd())
	}
	if !session.Closed() {
		t.Error("session should be closed")
	}

	saved, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if saved.TimeSpent != 5 {
		t.Errorf("TimeSpent = %d, want 5", saved.TimeSpent)
	}
	if saved.IsTracking {
		t.Error("IsTracking should be cleared on close")
	}
}

func TestFocusModel_CtrlCClosesAndPersists(t *testing.T) {
	m, session, store, id := focusFixture(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tick())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
	if !session.Closed() {
		t.Error("session should be closed before quitting")
	}

	saved, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if saved.TimeSpent != 5 {
		t.Errorf("TimeSpent = %d, want 5", saved.TimeSpent)
	}
	if saved.IsTracking {
		t.Error("IsTracking should be cleared on quit")
	}
}

func TestFocusModel_CycleKeyNeedsPomodoroDisplay(t *testing.T) {
	m, session, _, _ := focusFixture(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd != nil {
		t.Error("s without the pomodoro display should not start a ticker")
	}
	if session.State() != focus.StateStopped {
		t.Errorf("state = %v, want StateStopped", session.State())
	}

	// With the display up the same key starts the cycle.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd == nil {
		t.Fatal("expected a tick command once the display is active")
	}
	if session.State() != focus.StatePomodoroWork {
		t.Errorf("state = %v, want StatePomodoroWork", session.State())
	}
}

func TestFocusModel_TickAfterCloseIsInert(t *testing.T) {
	m, session, _, _ := focusFixture(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(tick())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	m, cmd := m.Update(tick())
	if cmd != nil {
		t.Error("tick after close should not reschedule")
	}
	if session.Elapsed() != 1 {
		t.Errorf("elapsed = %d, want 1", session.Elapsed())
	}
}

func TestFocusModel_CompleteMarksTaskDone(t *testing.T) {
	m, _, store, id := focusFixture(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(tick())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if cmd == nil {
		t.Fatal("expected close command from complete")
	}
	if _, ok := cmd().(msgs.CloseFocusMsg); !ok {
		t.Fatalf("expected CloseFocusMsg, got %T", cmd())
	}

	saved, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !saved.Completed {
		t.Error("task should be completed")
	}
	if saved.TimeSpent != 1 {
		t.Errorf("TimeSpent = %d, want 1", saved.TimeSpent)
	}
}

func TestFocusModel_ResetFollowsActiveDisplay(t *testing.T) {
	m, session, _, _ := focusFixture(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(tick())
	m, _ = m.Update(tick())

	// Stopwatch display: r clears the running total.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if session.Elapsed() != 0 {
		t.Errorf("elapsed = %d, want 0 after reset", session.Elapsed())
	}

	// Pomodoro display: r resets the countdown instead.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m, _ = m.Update(tick())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if session.PomodoroRemaining() != focus.WorkDuration {
		t.Errorf("remaining = %d, want %d after reset", session.PomodoroRemaining(), focus.WorkDuration)
	}
}

func TestFocusModel_ViewShowsTaskAndClock(t *testing.T) {
	m, _, _, _ := focusFixture(t)

	view := m.View()
	if !strings.Contains(view, "ship release") {
		t.Error("expected view to contain the task text")
	}
	if !strings.Contains(view, "0:00") {
		t.Error("expected view to contain the zero clock")
	}
}
