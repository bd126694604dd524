package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dayflow/internal/tui/styles"
)

// StatusBar renders a bottom help bar showing contextual key hints,
// with an optional right-aligned segment for view state.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar string for the given width and items.
// Items are joined with " • " separator and padded to fill the width.
func (s StatusBar) Render(width int, items []string) string {
	return s.RenderWithRight(width, items, "")
}

// RenderWithRight renders the help items on the left and right-aligns
// the given segment, typically the active view's name or timer state.
func (s StatusBar) RenderWithRight(width int, items []string, right string) string {
	left := strings.Join(items, " • ")
	if right == "" {
		return styles.StatusBarStyle.Width(width).Render(left)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.StatusBarStyle.Width(width).Render(left)
	}
	return styles.StatusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
