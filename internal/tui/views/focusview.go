package views

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dayflow/internal/focus"
	"dayflow/internal/tui/components"
	"dayflow/internal/tui/msgs"
	"dayflow/internal/tui/styles"
	"dayflow/internal/util"
)

// focusTickMsg drives the once-per-second session tick.
type focusTickMsg time.Time

// FocusModel is the single-task focus view wrapping a timer session.
// One ticker serves both the stopwatch and the pomodoro; which display
// the tick feeds is the session's business, not the view's.
type FocusModel struct {
	session  *focus.Session
	taskText string

	width    int
	height   int
	errorMsg string
}

// NewFocusModel opens a focus session for the given task.
func NewFocusModel(session *focus.Session, taskText string) FocusModel {
	return FocusModel{session: session, taskText: taskText}
}

// Init implements tea.Model.
func (m FocusModel) Init() tea.Cmd {
	if m.session.TickerActive() {
		return m.tickCmd()
	}
	return nil
}

// tickCmd returns a command that sends tick messages for timer updates.
func (m FocusModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return focusTickMsg(t)
	})
}

// Update implements tea.Model.
func (m FocusModel) Update(msg tea.Msg) (FocusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case focusTickMsg:
		if m.session.Closed() || !m.session.TickerActive() {
			return m, nil
		}
		if err := m.session.Tick(); err != nil {
			m.errorMsg = err.Error()
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m FocusModel) updateKeys(msg tea.KeyMsg) (FocusModel, tea.Cmd) {
	m.errorMsg = ""

	switch msg.String() {
	case "ctrl+c":
		// Abrupt quit still persists the final snapshot; Close is
		// idempotent so a prior esc makes this a no-op.
		if err := m.session.Close(); err != nil {
			m.errorMsg = err.Error()
		}
		return m, tea.Quit

	case " ":
		wasIdle := !m.session.TickerActive()
		if err := m.session.ToggleTracking(); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		if wasIdle && m.session.TickerActive() {
			return m, m.tickCmd()
		}
		return m, nil

	case "p":
		m.session.TogglePomodoroView()
		return m, nil

	case "s":
		// The cycle toggle only exists inside the pomodoro display;
		// otherwise it would silently switch which timer is counting.
		if !m.session.PomodoroViewActive() {
			return m, nil
		}
		wasIdle := !m.session.TickerActive()
		m.session.TogglePomodoro()
		if wasIdle && m.session.TickerActive() {
			return m, m.tickCmd()
		}
		return m, nil

	case "r":
		var err error
		if m.session.PomodoroViewActive() {
			err = m.session.ResetPomodoro()
		} else {
			err = m.session.ResetTracking()
		}
		if err != nil {
			m.errorMsg = err.Error()
		}
		return m, nil

	case "c":
		if err := m.session.Complete(); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return msgs.CloseFocusMsg{} }

	case "esc", "q":
		if err := m.session.Close(); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return msgs.CloseFocusMsg{} }
	}
	return m, nil
}

// View implements tea.Model.
func (m FocusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render(m.taskText)
	clock, stateLine := m.renderClock()

	lines := []string{
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, clock),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, stateLine),
	}
	// With the pomodoro display up the main clock shows the countdown,
	// so the running total moves to a line underneath.
	if m.session.PomodoroViewActive() {
		total := styles.SubtleStyle.Render("total " + util.FormatClock(m.session.Elapsed()))
		lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, total))
	}
	if m.errorMsg != "" {
		lines = append(lines, "", lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.ErrorStyle.Render(m.errorMsg)))
	}

	content := strings.Join(lines, "\n")
	contentHeight := len(lines)
	statusBarHeight := 1
	topPadding := (m.height - statusBarHeight - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	bottomPadding := m.height - statusBarHeight - topPadding - contentHeight
	if bottomPadding < 0 {
		bottomPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(content)
	b.WriteString(strings.Repeat("\n", bottomPadding))

	statusItems := []string{"Space Start/Stop", "p Pomodoro", "s Cycle", "r Reset", "c Complete", "Esc Close"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))
	return b.String()
}

// renderClock picks the readout for whichever display is active.
func (m FocusModel) renderClock() (clock, stateLine string) {
	if m.session.PomodoroViewActive() {
		remaining := util.FormatClock(m.session.PomodoroRemaining())
		switch m.session.State() {
		case focus.StatePomodoroBreak:
			return styles.BreakStyle.Render(remaining), styles.SuccessStyle.Render("break")
		case focus.StatePomodoroWork:
			return styles.ClockStyle.Render(remaining), styles.SelectedStyle.Render("focus")
		default:
			return styles.SubtleStyle.Render(remaining), styles.SubtleStyle.Render("pomodoro paused")
		}
	}

	elapsed := util.FormatClock(m.session.Elapsed())
	if m.session.State() == focus.StateRunning {
		return styles.ClockStyle.Render(elapsed), styles.SelectedStyle.Render("tracking")
	}
	return styles.SubtleStyle.Render(elapsed), styles.SubtleStyle.Render("paused")
}
