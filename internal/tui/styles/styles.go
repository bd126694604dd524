// Package styles defines shared lipgloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors
	warningColor   = lipgloss.Color("#AFAF5F") // Muted gold for in-flight state

	// TitleStyle for headers. No margins: views space headers
	// themselves so rendered lines map 1:1 to mouse rows.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// DayHeaderStyle for day column headers on the upcoming board
	DayHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for selected items in lists
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// DraggingStyle for the task row picked up by an active drag
	DraggingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	// CompletedStyle for completed task rows
	CompletedStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Strikethrough(true)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// BoxStyle for panel borders
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(1, 2)

	// ClockStyle for the large timer readout in the focus view
	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// BreakStyle for the pomodoro break readout
	BreakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
