package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/keys"
	"github.com/recallhq/recall/internal/ui"
	"github.com/recallhq/recall/internal/ui/modals"
)

// Update routes messages: window/focus events first, then key presses,
// then typed results from async commands, then ticks and mouse events,
// and finally whatever panel holds focus.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateSizes(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		return m, nil

	case tea.KeyPressMsg:
		if model, cmd := m.handleKeyPress(msg); model != nil {
			return model, cmd
		}
		// Unclaimed keys fall through to the focused panel below.

	case StartupModalMsg:
		return m.handleStartupModals()

	case modals.HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg)

	case conversationsLoadedMsg:
		return m.handleConversationsLoaded(msg)

	case messagesLoadedMsg:
		return m.handleMessagesLoaded(msg)

	case conversationDeletedMsg:
		return m.handleConversationDeleted(msg)

	case bulkDeleteDoneMsg:
		return m.handleBulkDeleteDone(msg)

	case conversationRenamedMsg:
		return m.handleConversationRenamed(msg)

	case titleSuggestedMsg:
		return m.handleTitleSuggested(msg)

	case conversationDuplicatedMsg:
		return m.handleConversationDuplicated(msg)

	case starToggledMsg:
		return m.handleStarToggled(msg)

	case exportDoneMsg:
		return m.handleExportDone(msg)

	case exportPreviewMsg:
		return m.handleExportPreview(msg)
	}

	// Key presses with a modal up never reach this point, so this only
	// feeds the modal non-key messages (input blinks, list updates).
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
	}

	if cmd, handled := m.handleTickMessages(msg); handled {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	if cmd := m.routeScrollAndMouseEvents(msg); cmd != nil {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Everything else goes to the focused panel.
	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
	} else {
		viewer, cmd := m.viewer.Update(msg)
		m.viewer = viewer
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKeyPress resolves a key press. A nil model means the key was not
// claimed and should go to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.modal.IsVisible() {
		return m.handleModalKey(key, msg)
	}

	if key == keys.Escape {
		if model, cmd, handled := m.handleEscapeKey(); handled {
			return model, cmd
		}
		return nil, nil
	}

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if model, cmd, handled := m.ExecuteShortcut(key); handled {
		return model, cmd
	}

	if key == keys.Enter {
		return m.handleEnterKey()
	}

	return nil, nil
}

// handleEscapeKey walks the escape chain: cancel search (including a filter
// kept after Enter), drop back from the viewer, then leave selection mode.
func (m *Model) handleEscapeKey() (tea.Model, tea.Cmd, bool) {
	if m.sidebar.IsSearchMode() || m.sidebar.HasFilter() {
		m.sidebar.ExitSearchMode()
		return m, nil, true
	}

	if m.focus == FocusViewer {
		m.setFocus(FocusSidebar)
		return m, nil, true
	}

	if m.sidebar.IsSelectionMode() {
		m.sidebar.ExitSelectionMode()
		return m, nil, true
	}

	return nil, nil, false
}

// handleEnterKey opens the conversation under the sidebar cursor. In search
// mode the key falls through so the sidebar can keep the filter instead.
func (m *Model) handleEnterKey() (tea.Model, tea.Cmd) {
	if m.focus != FocusSidebar || m.sidebar.IsSearchMode() {
		return nil, nil
	}

	conv := m.sidebar.SelectedConversation()
	if conv == nil {
		return m, nil
	}
	return m, m.openConversation(*conv)
}

// handleTickMessages deals with recurring timer and clipboard messages.
func (m *Model) handleTickMessages(msg tea.Msg) (tea.Cmd, bool) {
	switch msg.(type) {
	case ui.FlashTickMsg:
		m.footer.ClearIfExpired()
		if m.footer.HasFlash() {
			return ui.FlashTick(), true
		}
		return nil, true

	case ui.SelectionFlashTickMsg:
		// The copy-flash highlight lives in the viewer regardless of
		// which panel has focus.
		viewer, cmd := m.viewer.Update(msg)
		m.viewer = viewer
		return cmd, true

	case ui.ClipboardErrorMsg:
		return m.ShowFlashError("Failed to copy to clipboard"), true
	}
	return nil, false
}

