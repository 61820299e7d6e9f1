package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestNewConfirmDeleteState(t *testing.T) {
	state := NewConfirmDeleteState("conv-1", "Trip planning")

	if state.ConversationID != "conv-1" {
		t.Errorf("expected conversation ID conv-1, got %q", state.ConversationID)
	}
	if state.SelectedIndex != 0 {
		t.Errorf("expected cursor to start on Cancel, got index %d", state.SelectedIndex)
	}
	if state.IsConfirmed() {
		t.Error("fresh state should not be confirmed")
	}
}

func TestConfirmDeleteState_Navigation(t *testing.T) {
	state := NewConfirmDeleteState("conv-1", "Trip planning")

	// Down moves to Delete
	state.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	if !state.IsConfirmed() {
		t.Error("expected Delete selected after down")
	}

	// Can't go past the end
	state.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	if state.SelectedIndex != 1 {
		t.Errorf("should stay at 1, got %d", state.SelectedIndex)
	}

	// Up moves back to Cancel
	state.Update(tea.KeyPressMsg{Code: -1, Text: "k"})
	if state.IsConfirmed() {
		t.Error("expected Cancel selected after up")
	}

	// Can't go past the start
	state.Update(tea.KeyPressMsg{Code: -1, Text: "k"})
	if state.SelectedIndex != 0 {
		t.Errorf("should stay at 0, got %d", state.SelectedIndex)
	}
}

func TestConfirmDeleteState_Render(t *testing.T) {
	state := NewConfirmDeleteState("conv-1", "Trip planning")
	rendered := state.Render()

	if !strings.Contains(rendered, "Delete Conversation") {
		t.Error("should contain title")
	}
	if !strings.Contains(rendered, "Trip planning") {
		t.Error("should show the conversation title")
	}
	if !strings.Contains(rendered, "Cancel") || !strings.Contains(rendered, "Delete") {
		t.Error("should list both options")
	}
}

func TestNewBulkDeleteState(t *testing.T) {
	ids := []string{"c1", "c2", "c3"}
	titles := []string{"One", "Two", "Three"}

	state := NewBulkDeleteState(ids, titles)

	if len(state.ConversationIDs()) != 3 {
		t.Errorf("expected 3 IDs, got %d", len(state.ConversationIDs()))
	}
	if state.IsConfirmed() {
		t.Error("fresh state should not be confirmed")
	}
}

func TestBulkDeleteState_SnapshotIsACopy(t *testing.T) {
	ids := []string{"c1", "c2"}
	state := NewBulkDeleteState(ids, []string{"One", "Two"})

	// Mutating the caller's slice must not reach the pending confirmation
	ids[0] = "mutated"

	got := state.ConversationIDs()
	if got[0] != "c1" {
		t.Errorf("expected snapshot to keep c1, got %q", got[0])
	}
}

func TestBulkDeleteState_Title(t *testing.T) {
	single := NewBulkDeleteState([]string{"c1"}, []string{"One"})
	if single.Title() != "Delete 1 Conversation" {
		t.Errorf("expected singular title, got %q", single.Title())
	}

	many := NewBulkDeleteState([]string{"c1", "c2"}, []string{"One", "Two"})
	if many.Title() != "Delete 2 Conversations" {
		t.Errorf("expected plural title, got %q", many.Title())
	}
}

func TestBulkDeleteState_Navigation(t *testing.T) {
	state := NewBulkDeleteState([]string{"c1"}, []string{"One"})

	state.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if !state.IsConfirmed() {
		t.Error("expected Delete selected after down")
	}

	state.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if state.IsConfirmed() {
		t.Error("expected Cancel selected after up")
	}
}

func TestBulkDeleteState_Render(t *testing.T) {
	titles := []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten"}
	ids := make([]string, len(titles))
	for i := range titles {
		ids[i] = titles[i]
	}
	state := NewBulkDeleteState(ids, titles)

	rendered := state.Render()

	if !strings.Contains(rendered, "Delete 10 Conversations") {
		t.Error("should contain title with count")
	}
	// Up to eight titles are listed, the rest collapse into a count
	if !strings.Contains(rendered, "Eight") {
		t.Error("should list the eighth title")
	}
	if strings.Contains(rendered, "Nine") {
		t.Error("should not list the ninth title")
	}
	if !strings.Contains(rendered, "and 2 more") {
		t.Errorf("should collapse overflow titles, got:\n%s", rendered)
	}
}
