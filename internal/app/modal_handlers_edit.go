package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/keys"
	"github.com/recallhq/recall/internal/ui/modals"
)

// handleRenameModalKey drives the rename modal.
func (m *Model) handleRenameModalKey(key string, msg tea.KeyPressMsg, state *modals.RenameState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		title := state.GetNewTitle()
		if title == "" {
			m.modal.SetError("Title cannot be empty")
			return m, nil
		}
		m.modal.Hide()
		return m, m.renameConversation(state.ConversationID, title)

	case keys.CtrlG:
		return m.requestTitleSuggestion(state)
	}
	return m.forwardModalKey(msg)
}

// requestTitleSuggestion kicks off title generation for the rename modal.
func (m *Model) requestTitleSuggestion(state *modals.RenameState) (tea.Model, tea.Cmd) {
	if state.Generating {
		return m, nil
	}
	if !m.summarizer.Available() {
		m.modal.SetError("Set OPENAI_API_KEY to generate titles")
		return m, nil
	}

	m.modal.SetError("")
	state.SetGenerating(true)
	return m, m.suggestTitle(state.ConversationID)
}

// handleDuplicateModalKey drives the duplicate modal.
func (m *Model) handleDuplicateModalKey(key string, msg tea.KeyPressMsg, state *modals.DuplicateState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		title := state.GetTitle()
		if title == "" {
			m.modal.SetError("Title cannot be empty")
			return m, nil
		}
		m.modal.Hide()
		return m, m.duplicateConversation(state.SourceID, title)
	}
	return m.forwardModalKey(msg)
}

// handleExportModalKey drives the export modal.
func (m *Model) handleExportModalKey(key string, msg tea.KeyPressMsg, state *modals.ExportState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.CtrlP:
		conv := history.Conversation{ID: state.ConversationID, Title: state.ConversationTitle}
		return m, m.loadExportPreview(conv)

	case keys.Enter:
		conv := history.Conversation{ID: state.ConversationID, Title: state.ConversationTitle}
		if resolved := history.Resolve(m.sidebar.Conversations(), []string{conv.ID}); len(resolved) == 1 {
			conv = resolved[0]
		}
		m.modal.Hide()
		return m, m.exportConversation(conv, state.GetFormat(), state.DestDir)
	}
	return m.forwardModalKey(msg)
}

// handleExportPreviewModalKey drives the preview: Esc returns to the export
// modal, anything else scrolls the preview viewport.
func (m *Model) handleExportPreviewModalKey(key string, msg tea.KeyPressMsg, state *modals.ExportPreviewState) (tea.Model, tea.Cmd) {
	if key == keys.Escape {
		m.modal.Show(modals.NewExportState(state.ConversationID, state.ConversationTitle, m.config.GetExportDir()))
		return m, nil
	}
	return m.forwardModalKey(msg)
}
