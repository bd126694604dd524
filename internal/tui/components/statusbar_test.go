package components

import (
	"strings"
	"testing"
)

func TestStatusBar_Render_SingleItem(t *testing.T) {
	sb := NewStatusBar()
	result := sb.Render(50, []string{"q Quit"})

	if !strings.Contains(result, "q Quit") {
		t.Errorf("expected result to contain 'q Quit', got: %s", result)
	}
}

func TestStatusBar_Render_MultipleItems(t *testing.T) {
	sb := NewStatusBar()
	items := []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	result := sb.Render(60, items)

	for _, item := range items {
		if !strings.Contains(result, item) {
			t.Errorf("expected result to contain %q, got: %s", item, result)
		}
	}
	if !strings.Contains(result, "↑↓ Navigate • Enter Select • q Quit") {
		t.Errorf("expected items joined with ' • ', got: %s", result)
	}
}

func TestStatusBar_Render_EmptyItems(t *testing.T) {
	sb := NewStatusBar()
	// Should not panic; the bar still renders its styled padding.
	_ = sb.Render(50, []string{})
}

func TestStatusBar_Render_NarrowWidth(t *testing.T) {
	sb := NewStatusBar()
	items := []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	result := sb.Render(20, items)

	if result == "" {
		t.Error("expected non-empty result even with narrow width")
	}
}

func TestStatusBar_RenderWithRight_AlignsSegment(t *testing.T) {
	sb := NewStatusBar()
	result := sb.RenderWithRight(40, []string{"q Quit"}, "dragging")

	if !strings.Contains(result, "q Quit") {
		t.Errorf("expected result to contain 'q Quit', got: %s", result)
	}
	if !strings.Contains(result, "dragging") {
		t.Errorf("expected result to contain right segment, got: %s", result)
	}
	left := strings.Index(result, "q Quit")
	right := strings.Index(result, "dragging")
	if right <= left {
		t.Errorf("expected right segment after left items, got: %s", result)
	}
}

func TestStatusBar_RenderWithRight_DropsSegmentWhenCramped(t *testing.T) {
	sb := NewStatusBar()
	result := sb.RenderWithRight(10, []string{"q Quit"}, "a long right segment")

	if strings.Contains(result, "a long right segment") {
		t.Errorf("expected right segment to be dropped at narrow width, got: %s", result)
	}
}
