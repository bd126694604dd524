package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayflow/internal/schedule"
	"dayflow/internal/task"
	"dayflow/internal/tui/components"
	"dayflow/internal/tui/msgs"
	"dayflow/internal/tui/styles"
	"dayflow/internal/util"
)

// timeBlocksPane says which column the cursor lives in.
type timeBlocksPane int

const (
	paneSlots timeBlocksPane = iota
	paneBacklog
)

// TimeBlocksModel is the hourly schedule for one day. The left pane
// lists the day's slots with their occupants, the right pane lists
// unscheduled tasks. Scheduling is select-then-place: pick a task in
// the backlog, then drop it on an empty slot.
type TimeBlocksModel struct {
	slots *schedule.Slots
	day   schedule.DayKey

	hours      []int
	occupants  map[int]*task.Task
	backlog    []*task.Task
	selectedID int64 // backlog task armed for placement, 0 when none

	pane       timeBlocksPane
	slotCursor int
	backCursor int

	width    int
	height   int
	errorMsg string
}

// NewTimeBlocksModel builds the view for the given day.
func NewTimeBlocksModel(slots *schedule.Slots, day schedule.DayKey) (TimeBlocksModel, error) {
	m := TimeBlocksModel{
		slots: slots,
		day:   day,
		hours: slots.Range().Hours(),
	}
	if err := m.reload(); err != nil {
		return m, err
	}
	return m, nil
}

// Day returns the day this view is showing.
func (m TimeBlocksModel) Day() schedule.DayKey {
	return m.day
}

// reload refreshes slot occupants and the unscheduled backlog.
func (m *TimeBlocksModel) reload() error {
	occupants := make(map[int]*task.Task, len(m.hours))
	for _, hour := range m.hours {
		t, err := m.slots.OccupantAt(m.day, hour)
		if err != nil {
			return err
		}
		if t != nil {
			occupants[hour] = t
		}
	}
	backlog, err := m.slots.Unscheduled()
	if err != nil {
		return err
	}
	m.occupants = occupants
	m.backlog = backlog
	if m.backCursor >= len(m.backlog) {
		m.backCursor = len(m.backlog) - 1
	}
	if m.backCursor < 0 {
		m.backCursor = 0
	}
	return nil
}

// Init implements tea.Model.
func (m TimeBlocksModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TimeBlocksModel) Update(msg tea.Msg) (TimeBlocksModel, tea.Cmd) {
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

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m TimeBlocksModel) updateKeys(msg tea.KeyMsg) (TimeBlocksModel, tea.Cmd) {
	m.errorMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.selectedID != 0 {
			m.selectedID = 0
			return m, nil
		}
		return m, func() tea.Msg { return msgs.GoToUpcomingMsg{} }

	case "tab":
		if m.pane == paneSlots {
			m.pane = paneBacklog
		} else {
			m.pane = paneSlots
		}

	case "up", "k":
		if m.pane == paneSlots && m.slotCursor > 0 {
			m.slotCursor--
		} else if m.pane == paneBacklog && m.backCursor > 0 {
			m.backCursor--
		}

	case "down", "j":
		if m.pane == paneSlots && m.slotCursor < len(m.hours)-1 {
			m.slotCursor++
		} else if m.pane == paneBacklog && m.backCursor < len(m.backlog)-1 {
			m.backCursor++
		}

	case "left", "h":
		m.shiftDay(-1)

	case "right", "l":
		m.shiftDay(1)

	case "enter":
		return m.place()

	case "x":
		return m.clearSlot()
	}
	return m, nil
}

// shiftDay moves the whole view to an adjacent day.
func (m *TimeBlocksModel) shiftDay(delta int) {
	date, err := m.day.Date()
	if err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.day = schedule.NewDayKey(date.AddDate(0, 0, delta))
	m.selectedID = 0
	if err := m.reload(); err != nil {
		m.errorMsg = err.Error()
	}
}

// place either arms the backlog task under the cursor or drops the
// armed task into the slot under the cursor.
func (m TimeBlocksModel) place() (TimeBlocksModel, tea.Cmd) {
	if m.pane == paneBacklog {
		if m.backCursor < len(m.backlog) {
			m.selectedID = m.backlog[m.backCursor].ID
			m.pane = paneSlots
		}
		return m, nil
	}

	if m.selectedID == 0 {
		// Enter on an occupied slot opens its task in the focus view.
		if t, ok := m.occupants[m.hours[m.slotCursor]]; ok {
			id := t.ID
			return m, func() tea.Msg { return msgs.OpenFocusMsg{TaskID: id} }
		}
		return m, nil
	}

	hour := m.hours[m.slotCursor]
	if _, err := m.slots.Schedule(m.selectedID, m.day, hour); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotOccupied):
			m.errorMsg = fmt.Sprintf("%s is already taken", util.FormatHour(hour))
		case errors.Is(err, schedule.ErrUnknownBucketOrIndex):
			m.errorMsg = "task no longer exists"
		default:
			m.errorMsg = err.Error()
		}
		m.selectedID = 0
		return m, nil
	}
	m.selectedID = 0
	if err := m.reload(); err != nil {
		m.errorMsg = err.Error()
	}
	return m, nil
}

// clearSlot unschedules the occupant of the slot under the cursor.
func (m TimeBlocksModel) clearSlot() (TimeBlocksModel, tea.Cmd) {
	if m.pane != paneSlots {
		return m, nil
	}
	t, ok := m.occupants[m.hours[m.slotCursor]]
	if !ok {
		return m, nil
	}
	if _, err := m.slots.Unschedule(t.ID); err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	if err := m.reload(); err != nil {
		m.errorMsg = err.Error()
	}
	return m, nil
}

// View implements tea.Model.
func (m TimeBlocksModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Time Blocks · " + m.dayTitle()))
	b.WriteString("\n\n")

	for i, hour := range m.hours {
		label := fmt.Sprintf("%7s  ", util.FormatHour(hour))
		line := label
		if t, ok := m.occupants[hour]; ok {
			line += t.Text
		} else {
			line += styles.SubtleStyle.Render("·")
		}
		if m.pane == paneSlots && i == m.slotCursor {
			line = styles.SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DayHeaderStyle.Render("Unscheduled"))
	b.WriteString("\n")
	if len(m.backlog) == 0 {
		b.WriteString(styles.SubtleStyle.Render("  (nothing waiting)"))
		b.WriteString("\n")
	}
	for i, t := range m.backlog {
		line := "  • " + t.Text
		switch {
		case t.ID == m.selectedID:
			line = styles.DraggingStyle.Render(line + "  [placing]")
		case m.pane == paneBacklog && i == m.backCursor:
			line = styles.SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.errorMsg))
		b.WriteString("\n")
	}

	statusItems := []string{"Tab Pane", "↑↓ Navigate", "←→ Day", "Enter Select/Place", "x Unschedule", "Esc Back", "q Quit"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))
	return b.String()
}

func (m TimeBlocksModel) dayTitle() string {
	date, err := m.day.Date()
	if err != nil {
		return string(m.day)
	}
	return util.DayLabel(date, time.Now()) + " · " + date.Format("Mon Jan 2")
}
