package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/keys"
	"github.com/recallhq/recall/internal/ui/modals"
)

// requestDelete asks for confirmation before deleting the conversation
// under the sidebar cursor.
func (m *Model) requestDelete() (tea.Model, tea.Cmd) {
	conv := m.sidebar.SelectedConversation()
	if conv == nil {
		return m, nil
	}
	m.modal.Show(modals.NewConfirmDeleteState(conv.ID, conv.Title))
	return m, nil
}

// requestBulkDelete resolves the current selection against the loaded list
// and opens the confirmation with that snapshot. Stale IDs drop out here;
// if nothing survives the selection is unusable and the user is told so.
func (m *Model) requestBulkDelete() (tea.Model, tea.Cmd) {
	ids := m.sidebar.SelectedIDs()
	if len(ids) == 0 {
		return m, m.ShowFlashInfo("Select at least one conversation")
	}

	resolved := history.Resolve(m.sidebar.Conversations(), ids)
	if len(resolved) == 0 {
		return m, m.ShowFlashError("Selected conversations no longer exist")
	}

	resolvedIDs := make([]string, len(resolved))
	titles := make([]string, len(resolved))
	for i, conv := range resolved {
		resolvedIDs[i] = conv.ID
		titles[i] = conv.Title
	}
	m.modal.Show(modals.NewBulkDeleteState(resolvedIDs, titles))
	return m, nil
}

// handleConfirmDeleteModalKey drives the single-delete confirmation.
func (m *Model) handleConfirmDeleteModalKey(key string, msg tea.KeyPressMsg, state *modals.ConfirmDeleteState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		if !state.IsConfirmed() {
			m.modal.Hide()
			return m, nil
		}
		return m.confirmDelete(state)
	}
	return m.forwardModalKey(msg)
}

// confirmDelete fires the delete for a confirmed single-delete modal. The
// modal stays up until the result message closes it. A missing store fails
// loudly: the user confirmed a deletion that cannot happen.
func (m *Model) confirmDelete(state *modals.ConfirmDeleteState) (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.modal.Hide()
		return m, m.ShowFlashError("Conversation store is unavailable")
	}
	conv := history.Conversation{ID: state.ConversationID, Title: state.ConversationTitle}
	return m, m.deleteConversation(conv)
}

// handleBulkDeleteModalKey drives the bulk-delete confirmation.
func (m *Model) handleBulkDeleteModalKey(key string, msg tea.KeyPressMsg, state *modals.BulkDeleteState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		// Canceling keeps the selection; only completing a bulk delete
		// or leaving selection mode clears it.
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		if !state.IsConfirmed() {
			m.modal.Hide()
			return m, nil
		}
		return m.confirmBulkDelete(state)
	}
	return m.forwardModalKey(msg)
}

// confirmBulkDelete fires the deletions over the snapshot captured when the
// modal opened. Without a store or with an empty snapshot nothing happens
// and the modal stays up until Esc.
func (m *Model) confirmBulkDelete(state *modals.BulkDeleteState) (tea.Model, tea.Cmd) {
	ids := state.ConversationIDs()
	if m.store == nil || len(ids) == 0 {
		return m, nil
	}

	convs := make([]history.Conversation, len(ids))
	for i, id := range ids {
		convs[i] = history.Conversation{ID: id}
		if i < len(state.Titles) {
			convs[i].Title = state.Titles[i]
		}
	}
	return m, m.deleteConversations(convs)
}
