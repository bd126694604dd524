package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayflow/internal/config"
	"dayflow/internal/focus"
	"dayflow/internal/schedule"
	"dayflow/internal/task"
	"dayflow/internal/tui/msgs"
	"dayflow/internal/tui/views"
)

// View represents the different screens in the TUI.
type View int

const (
	ViewUpcoming View = iota
	ViewTimeBlocks
	ViewFocus
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	store task.Store
	board *schedule.Board
	slots *schedule.Slots

	upcoming   views.UpcomingModel
	timeBlocks views.TimeBlocksModel
	focusView  views.FocusModel

	// returnView is where closing the focus view goes back to.
	returnView View
}

// Run starts the TUI application.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := task.OpenDiskStore(cfg.DataPath)
	if err != nil {
		return err
	}

	m, err := NewModel(store, cfg, time.Now())
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

// NewModel builds the root model over an already-open store.
func NewModel(store task.Store, cfg *config.Config, ref time.Time) (Model, error) {
	board := schedule.NewBoard(store)
	slots := schedule.NewSlots(store, schedule.SlotRange{
		StartHour: cfg.DayStartHour,
		EndHour:   cfg.DayEndHour,
	})

	upcoming, err := views.NewUpcomingModel(board, ref, cfg.DaysShown)
	if err != nil {
		return Model{}, fmt.Errorf("failed to load board: %w", err)
	}
	timeBlocks, err := views.NewTimeBlocksModel(slots, schedule.NewDayKey(ref))
	if err != nil {
		return Model{}, fmt.Errorf("failed to load time blocks: %w", err)
	}

	return Model{
		currentView: ViewUpcoming,
		store:       store,
		board:       board,
		slots:       slots,
		upcoming:    upcoming,
		timeBlocks:  timeBlocks,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Every view tracks its own size so switches render correctly.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.upcoming, cmd = m.upcoming.Update(msg)
		cmds = append(cmds, cmd)
		m.timeBlocks, cmd = m.timeBlocks.Update(msg)
		cmds = append(cmds, cmd)
		m.focusView, cmd = m.focusView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case msgs.GoToUpcomingMsg:
		m.currentView = ViewUpcoming
		var cmd tea.Cmd
		m.upcoming, cmd = m.upcoming.Update(msgs.TasksChangedMsg{})
		return m, cmd

	case msgs.GoToTimeBlocksMsg:
		day := schedule.DayKey(msg.Day)
		if !day.Valid() {
			day = schedule.NewDayKey(time.Now())
		}
		timeBlocks, err := views.NewTimeBlocksModel(m.slots, day)
		if err != nil {
			return m, nil
		}
		m.timeBlocks = timeBlocks
		m.currentView = ViewTimeBlocks
		var cmd tea.Cmd
		m.timeBlocks, cmd = m.timeBlocks.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, cmd

	case msgs.OpenFocusMsg:
		return m.openFocus(msg.TaskID)

	case msgs.CloseFocusMsg:
		m.currentView = m.returnView
		var cmd tea.Cmd
		switch m.currentView {
		case ViewTimeBlocks:
			m.timeBlocks, cmd = m.timeBlocks.Update(msgs.TasksChangedMsg{})
		default:
			m.upcoming, cmd = m.upcoming.Update(msgs.TasksChangedMsg{})
		}
		return m, cmd
	}

	// Everything else goes to the active view only.
	var cmd tea.Cmd
	switch m.currentView {
	case ViewUpcoming:
		m.upcoming, cmd = m.upcoming.Update(msg)
	case ViewTimeBlocks:
		m.timeBlocks, cmd = m.timeBlocks.Update(msg)
	case ViewFocus:
		m.focusView, cmd = m.focusView.Update(msg)
	}
	return m, cmd
}

// openFocus loads the task and switches into a fresh focus session.
func (m Model) openFocus(taskID int64) (tea.Model, tea.Cmd) {
	t, err := m.store.Get(taskID)
	if err != nil {
		return m, nil
	}
	session := focus.Open(t, m.store.Update)

	m.returnView = m.currentView
	m.focusView = views.NewFocusModel(session, t.Text)
	m.currentView = ViewFocus

	var sizeCmd tea.Cmd
	m.focusView, sizeCmd = m.focusView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return m, tea.Batch(m.focusView.Init(), sizeCmd)
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.currentView {
	case ViewTimeBlocks:
		return m.timeBlocks.View()
	case ViewFocus:
		return m.focusView.View()
	default:
		return m.upcoming.View()
	}
}
