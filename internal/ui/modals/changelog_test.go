package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testChangelogEntries() []ChangelogEntry {
	return []ChangelogEntry{
		{
			Version: "0.3.0",
			Date:    "2025-06-01",
			Changes: []string{"Bulk delete for selected conversations", "Transcript search"},
		},
		{
			Version: "0.2.0",
			Changes: []string{"Theme picker"},
		},
	}
}

func TestChangelogState_Render(t *testing.T) {
	state := NewChangelogState(testChangelogEntries())
	rendered := state.Render()

	if !strings.Contains(rendered, "What's New") {
		t.Error("should contain title")
	}
	if !strings.Contains(rendered, "v0.3.0 (2025-06-01)") {
		t.Errorf("should render version header with date, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "v0.2.0") {
		t.Error("should render undated version header")
	}
	if !strings.Contains(rendered, "Theme picker") {
		t.Error("should render change lines")
	}
}

func TestChangelogState_ScrollClamped(t *testing.T) {
	state := NewChangelogState(testChangelogEntries())
	state.Render() // populates totalLines

	// Scrolling up from the top stays put
	state.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if state.ScrollOffset != 0 {
		t.Errorf("expected offset 0, got %d", state.ScrollOffset)
	}

	// A short changelog never scrolls down
	state.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if state.ScrollOffset != 0 {
		t.Errorf("short content should not scroll, got offset %d", state.ScrollOffset)
	}
}

func TestChangelogState_ScrollsLongContent(t *testing.T) {
	var changes []string
	for i := 0; i < ChangelogModalMaxVisible+5; i++ {
		changes = append(changes, "change")
	}
	state := NewChangelogState([]ChangelogEntry{{Version: "1.0.0", Changes: changes}})
	state.Render()

	state.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	if state.ScrollOffset != 1 {
		t.Errorf("expected offset 1 after down, got %d", state.ScrollOffset)
	}

	// Mouse wheel scrolls too
	state.Update(tea.MouseWheelMsg{Y: 1})
	if state.ScrollOffset != 2 {
		t.Errorf("expected offset 2 after wheel down, got %d", state.ScrollOffset)
	}
	state.Update(tea.MouseWheelMsg{Y: -1})
	if state.ScrollOffset != 1 {
		t.Errorf("expected offset 1 after wheel up, got %d", state.ScrollOffset)
	}
}

func TestWelcomeState_Render(t *testing.T) {
	state := NewWelcomeState()
	rendered := state.Render()

	if !strings.Contains(rendered, "Welcome to Recall!") {
		t.Error("should contain greeting")
	}
	if !strings.Contains(rendered, "Getting started:") {
		t.Error("should contain getting-started section")
	}
}
