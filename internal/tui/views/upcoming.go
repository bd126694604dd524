package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dayflow/internal/drag"
	"dayflow/internal/schedule"
	"dayflow/internal/task"
	"dayflow/internal/tui/components"
	"dayflow/internal/tui/msgs"
	"dayflow/internal/tui/styles"
	"dayflow/internal/util"
)

// boardHeaderLines is the title line plus the blank line under it. The
// mouse hit-test replays the View layout, so both sides share these
// constants.
const boardHeaderLines = 2

// UpcomingModel is the multi-day board view. Each visible day renders
// as a header followed by its ordered task rows; tasks move within and
// across days either by keyboard or by mouse drag.
type UpcomingModel struct {
	board      *schedule.Board
	controller *drag.Controller

	days    []schedule.DayKey
	buckets map[schedule.DayKey][]*task.Task
	refDate time.Time

	cursorDay int
	cursorRow int

	composing bool
	input     textinput.Model

	width    int
	height   int
	errorMsg string
}

// NewUpcomingModel builds the board over the given store-backed Board,
// showing dayCount days starting at ref.
func NewUpcomingModel(board *schedule.Board, ref time.Time, dayCount int) (UpcomingModel, error) {
	ti := textinput.New()
	ti.Placeholder = "New task"
	ti.CharLimit = 200

	m := UpcomingModel{
		board:      board,
		controller: drag.NewController(board),
		days:       schedule.EnumerateDays(ref, dayCount),
		refDate:    ref,
		input:      ti,
	}
	if err := m.reload(); err != nil {
		return m, err
	}
	return m, nil
}

// reload refreshes every visible bucket from the store.
func (m *UpcomingModel) reload() error {
	buckets := make(map[schedule.DayKey][]*task.Task, len(m.days))
	for _, day := range m.days {
		bucket, err := m.board.BucketFor(day)
		if err != nil {
			return err
		}
		buckets[day] = bucket
	}
	m.buckets = buckets
	m.clampCursor()
	return nil
}

// Init implements tea.Model.
func (m UpcomingModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m UpcomingModel) Update(msg tea.Msg) (UpcomingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case msgs.TasksChangedMsg:
		if err := m.reload(); err != nil {
			m.errorMsg = err.Error()
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.composing {
			return m.updateComposer(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// updateMouse feeds pointer events through the drag controller. A drop
// is the only place a board mutation can happen.
func (m UpcomingModel) updateMouse(msg tea.MouseMsg) (UpcomingModel, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if target, ok := m.hitTest(msg.X, msg.Y); ok && target.Kind == drag.TargetTask {
			m.controller.Start(target.TaskID, target.Day, float64(msg.X), float64(msg.Y))
		}
		return m, nil

	case tea.MouseActionMotion:
		m.controller.Move(float64(msg.X), float64(msg.Y))
		if m.controller.State() == drag.StateDragging {
			if target, ok := m.hitTest(msg.X, msg.Y); ok {
				m.controller.Over(target)
			} else {
				m.controller.Over(drag.Target{Kind: drag.TargetNone})
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		mutation, err := m.controller.Drop()
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		if mutation != nil {
			if err := m.reload(); err != nil {
				m.errorMsg = err.Error()
			}
		}
		return m, nil
	}
	return m, nil
}

// updateComposer routes keys to the new-task input.
func (m UpcomingModel) updateComposer(msg tea.KeyMsg) (UpcomingModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		day := m.days[m.cursorDay]
		if _, err := m.board.InsertNew(day, m.input.Value()); err != nil {
			// Blank input is just an abandoned composer, not an error.
			if !errors.Is(err, schedule.ErrInvalidInput) {
				m.errorMsg = err.Error()
			}
		} else if err := m.reload(); err != nil {
			m.errorMsg = err.Error()
		}
		m.composing = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	case "esc":
		m.composing = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m UpcomingModel) updateKeys(msg tea.KeyMsg) (UpcomingModel, tea.Cmd) {
	m.errorMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		} else if m.cursorDay > 0 {
			m.cursorDay--
			m.cursorRow = max(0, len(m.bucketAt(m.cursorDay))-1)
		}

	case "down", "j":
		if m.cursorRow < len(m.bucketAt(m.cursorDay))-1 {
			m.cursorRow++
		} else if m.cursorDay < len(m.days)-1 {
			m.cursorDay++
			m.cursorRow = 0
		}

	case "left", "h":
		if m.cursorDay > 0 {
			m.cursorDay--
			m.clampCursor()
		}

	case "right", "l":
		if m.cursorDay < len(m.days)-1 {
			m.cursorDay++
			m.clampCursor()
		}

	case "K":
		m.reorderBy(-1)

	case "J":
		m.reorderBy(1)

	case "H":
		m.moveToDay(m.cursorDay - 1)

	case "L":
		m.moveToDay(m.cursorDay + 1)

	case "a":
		m.composing = true
		m.input.Focus()
		return m, textinput.Blink

	case " ":
		if t := m.cursorTask(); t != nil {
			err := m.board.Store().Update(t.ID, task.Fields{Completed: task.BoolPtr(!t.Completed)})
			if err != nil {
				m.errorMsg = err.Error()
			} else if err := m.reload(); err != nil {
				m.errorMsg = err.Error()
			}
		}

	case "enter":
		if t := m.cursorTask(); t != nil {
			id := t.ID
			return m, func() tea.Msg { return msgs.OpenFocusMsg{TaskID: id} }
		}

	case "t":
		day := string(m.days[m.cursorDay])
		return m, func() tea.Msg { return msgs.GoToTimeBlocksMsg{Day: day} }
	}
	return m, nil
}

// reorderBy moves the task under the cursor by delta within its day.
func (m *UpcomingModel) reorderBy(delta int) {
	bucket := m.bucketAt(m.cursorDay)
	if len(bucket) == 0 {
		return
	}
	to := m.cursorRow + delta
	if to < 0 || to >= len(bucket) {
		return
	}
	if _, err := m.board.Reorder(m.days[m.cursorDay], m.cursorRow, to); err != nil {
		m.errorMsg = err.Error()
		return
	}
	if err := m.reload(); err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.cursorRow = to
}

// moveToDay appends the task under the cursor to another visible day.
func (m *UpcomingModel) moveToDay(dayIdx int) {
	t := m.cursorTask()
	if t == nil || dayIdx < 0 || dayIdx >= len(m.days) {
		return
	}
	source := m.days[m.cursorDay]
	target := m.days[dayIdx]
	if _, err := m.board.MoveAcrossDays(t.ID, source, target, len(m.bucketAt(dayIdx))); err != nil {
		m.errorMsg = err.Error()
		return
	}
	if err := m.reload(); err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.cursorDay = dayIdx
	m.cursorRow = len(m.bucketAt(dayIdx)) - 1
}

func (m UpcomingModel) bucketAt(dayIdx int) []*task.Task {
	if dayIdx < 0 || dayIdx >= len(m.days) {
		return nil
	}
	return m.buckets[m.days[dayIdx]]
}

func (m UpcomingModel) cursorTask() *task.Task {
	bucket := m.bucketAt(m.cursorDay)
	if m.cursorRow < 0 || m.cursorRow >= len(bucket) {
		return nil
	}
	return bucket[m.cursorRow]
}

func (m *UpcomingModel) clampCursor() {
	if m.cursorDay < 0 {
		m.cursorDay = 0
	}
	if m.cursorDay >= len(m.days) {
		m.cursorDay = len(m.days) - 1
	}
	rows := len(m.bucketAt(m.cursorDay))
	if m.cursorRow >= rows {
		m.cursorRow = rows - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
}

// hitTest maps a terminal cell to the board element rendered there. It
// must mirror the View layout exactly: a day header or its trailing
// blank line is the day's drop region, a task line is that task.
func (m UpcomingModel) hitTest(x, y int) (drag.Target, bool) {
	line := boardHeaderLines
	for _, day := range m.days {
		bucket := m.buckets[day]

		if y == line {
			return drag.Target{Kind: drag.TargetDay, Day: day}, true
		}
		line++

		rows := len(bucket)
		if rows == 0 {
			rows = 1 // the "(no tasks)" placeholder still occupies a line
		}
		if m.composing && day == m.days[m.cursorDay] {
			rows++
		}
		for i := 0; i < rows; i++ {
			if y == line {
				if i < len(bucket) {
					return drag.Target{Kind: drag.TargetTask, Day: day, TaskID: bucket[i].ID}, true
				}
				return drag.Target{Kind: drag.TargetDay, Day: day}, true
			}
			line++
		}

		if y == line {
			return drag.Target{Kind: drag.TargetDay, Day: day}, true
		}
		line++
	}
	return drag.Target{}, false
}

// View implements tea.Model.
func (m UpcomingModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Upcoming"))
	b.WriteString("\n\n")

	for dayIdx, day := range m.days {
		b.WriteString(m.renderDayHeader(day))
		b.WriteString("\n")

		bucket := m.buckets[day]
		if len(bucket) == 0 {
			b.WriteString(styles.SubtleStyle.Render("  (no tasks)"))
			b.WriteString("\n")
		}
		for rowIdx, t := range bucket {
			b.WriteString(m.renderTaskRow(t, dayIdx, rowIdx))
			b.WriteString("\n")
		}
		if m.composing && dayIdx == m.cursorDay {
			b.WriteString("  + " + m.input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(m.errorMsg))
		b.WriteString("\n")
	}

	statusItems := []string{"↑↓ Navigate", "J/K Reorder", "H/L Move day", "a Add", "Enter Focus", "t Blocks", "q Quit"}
	right := ""
	if m.controller.State() == drag.StateDragging {
		right = styles.DraggingStyle.Render("dragging")
	}
	b.WriteString(components.NewStatusBar().RenderWithRight(m.width, statusItems, right))
	return b.String()
}

func (m UpcomingModel) renderDayHeader(day schedule.DayKey) string {
	date, err := day.Date()
	if err != nil {
		return styles.DayHeaderStyle.Render(string(day))
	}
	label := util.DayLabel(date, m.refDate)
	return styles.DayHeaderStyle.Render(fmt.Sprintf("%s · %s", label, date.Format("Mon Jan 2")))
}

func (m UpcomingModel) renderTaskRow(t *task.Task, dayIdx, rowIdx int) string {
	text := "  • "
	if t.Priority == task.PriorityHigh {
		text += styles.ErrorStyle.Render("! ")
	}
	text += t.Text
	if t.Category != "" {
		text += " " + styles.SubtleStyle.Render("#"+t.Category)
	}
	if t.TimeSpent > 0 {
		text += " " + styles.SubtleStyle.Render("("+util.FormatClock(t.TimeSpent)+")")
	}
	switch {
	case m.controller.State() == drag.StateDragging && m.controller.DraggedTask() == t.ID:
		return styles.DraggingStyle.Render(text)
	case dayIdx == m.cursorDay && rowIdx == m.cursorRow && !m.composing:
		return styles.SelectedStyle.Render(text)
	default:
		return text
	}
}
