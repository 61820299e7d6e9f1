package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/ui/modals"
)

// handleModalKey dispatches a key press to the handler for the visible
// modal's state type.
func (m *Model) handleModalKey(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch state := m.modal.State.(type) {
	case *modals.ConfirmDeleteState:
		return m.handleConfirmDeleteModalKey(key, msg, state)
	case *modals.BulkDeleteState:
		return m.handleBulkDeleteModalKey(key, msg, state)
	case *modals.RenameState:
		return m.handleRenameModalKey(key, msg, state)
	case *modals.DuplicateState:
		return m.handleDuplicateModalKey(key, msg, state)
	case *modals.ExportState:
		return m.handleExportModalKey(key, msg, state)
	case *modals.ExportPreviewState:
		return m.handleExportPreviewModalKey(key, msg, state)
	case *modals.SettingsState:
		return m.handleSettingsModalKey(key, msg, state)
	case *modals.ThemeState:
		return m.handleThemeModalKey(key, msg, state)
	case *modals.HelpState:
		return m.handleHelpModalKey(key, msg, state)
	case *modals.SearchMessagesState:
		return m.handleSearchMessagesModalKey(key, msg, state)
	case *modals.WelcomeState:
		return m.handleWelcomeModalKey(key)
	case *modals.ChangelogState:
		return m.handleChangelogModalKey(key, msg)
	}
	return m.forwardModalKey(msg)
}

// forwardModalKey passes a key press into the modal state's own Update.
func (m *Model) forwardModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
