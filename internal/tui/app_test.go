package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayflow/internal/config"
	"dayflow/internal/schedule"
	"dayflow/internal/task"
	"dayflow/internal/tui/msgs"
)

func appFixture(t *testing.T) (Model, task.Store) {
	t.Helper()
	store := task.NewMemStore()
	ref := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	board := schedule.NewBoard(store)
	if _, err := board.InsertNew(schedule.NewDayKey(ref), "write brief"); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	cfg := &config.Config{DaysShown: 3, DayStartHour: 8, DayEndHour: 20}
	m, err := NewModel(store, cfg, ref)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return model.(Model), store
}

func TestModel_StartsOnUpcoming(t *testing.T) {
	m, _ := appFixture(t)

	if m.currentView != ViewUpcoming {
		t.Errorf("currentView = %v, want ViewUpcoming", m.currentView)
	}
	if !strings.Contains(m.View(), "write brief") {
		t.Error("expected the board to render the seeded task")
	}
}

func TestModel_RoutesToTimeBlocks(t *testing.T) {
	m, _ := appFixture(t)

	model, _ := m.Update(msgs.GoToTimeBlocksMsg{Day: "2024-03-10"})
	m = model.(Model)

	if m.currentView != ViewTimeBlocks {
		t.Fatalf("currentView = %v, want ViewTimeBlocks", m.currentView)
	}
	if !strings.Contains(m.View(), "Time Blocks") {
		t.Error("expected the time blocks view to render")
	}

	model, _ = m.Update(msgs.GoToUpcomingMsg{})
	m = model.(Model)
	if m.currentView != ViewUpcoming {
		t.Errorf("currentView = %v, want ViewUpcoming after going back", m.currentView)
	}
}

func TestModel_BadDayFallsBackToToday(t *testing.T) {
	m, _ := appFixture(t)

	model, _ := m.Update(msgs.GoToTimeBlocksMsg{Day: "not-a-day"})
	m = model.(Model)

	if m.currentView != ViewTimeBlocks {
		t.Fatalf("currentView = %v, want ViewTimeBlocks", m.currentView)
	}
	if m.timeBlocks.Day() != schedule.NewDayKey(time.Now()) {
		t.Errorf("day = %s, want today", m.timeBlocks.Day())
	}
}

func TestModel_FocusRoundTrip(t *testing.T) {
	m, store := appFixture(t)

	tasks, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	id := tasks[0].ID

	model, _ := m.Update(msgs.OpenFocusMsg{TaskID: id})
	m = model.(Model)
	if m.currentView != ViewFocus {
		t.Fatalf("currentView = %v, want ViewFocus", m.currentView)
	}
	if !strings.Contains(m.View(), "write brief") {
		t.Error("expected the focus view to show the task text")
	}

	model, _ = m.Update(msgs.CloseFocusMsg{})
	m = model.(Model)
	if m.currentView != ViewUpcoming {
		t.Errorf("currentView = %v, want ViewUpcoming after close", m.currentView)
	}
}

func TestModel_OpenFocusMissingTaskStays(t *testing.T) {
	m, _ := appFixture(t)

	model, _ := m.Update(msgs.OpenFocusMsg{TaskID: 999})
	m = model.(Model)
	if m.currentView != ViewUpcoming {
		t.Errorf("currentView = %v, want ViewUpcoming for missing task", m.currentView)
	}
}

func TestModel_FocusReturnsToTimeBlocks(t *testing.T) {
	m, store := appFixture(t)

	tasks, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	model, _ := m.Update(msgs.GoToTimeBlocksMsg{Day: "2024-03-10"})
	m = model.(Model)
	model, _ = m.Update(msgs.OpenFocusMsg{TaskID: tasks[0].ID})
	m = model.(Model)
	model, _ = m.Update(msgs.CloseFocusMsg{})
	m = model.(Model)

	if m.currentView != ViewTimeBlocks {
		t.Errorf("currentView = %v, want ViewTimeBlocks", m.currentView)
	}
}
