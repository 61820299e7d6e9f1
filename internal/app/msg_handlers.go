package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/logger"
	"github.com/recallhq/recall/internal/notification"
	"github.com/recallhq/recall/internal/ui/modals"
)

// handleConversationsLoaded installs a freshly loaded conversation list.
func (m *Model) handleConversationsLoaded(msg conversationsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logger.Error("app: could not load conversations: %v", msg.err)
		return m, m.ShowFlashError("Failed to load conversations")
	}
	m.sidebar.SetConversations(msg.conversations)
	return m, nil
}

// handleMessagesLoaded puts an opened conversation into the viewer.
func (m *Model) handleMessagesLoaded(msg messagesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logger.Error("app: could not load messages for %s: %v", msg.conversation.ID, msg.err)
		return m, m.ShowFlashError(fmt.Sprintf("Could not open %q", msg.conversation.Title))
	}

	m.viewer.SetConversation(msg.conversation, msg.messages)
	m.sidebar.SetActive(msg.conversation.ID)
	m.header.SetConversationTitle(msg.conversation.Title)
	m.header.SetStats(m.viewer.Stats())
	return m, nil
}

// installConversations applies a follow-up reload that rode along with a
// mutation result. A failed reload keeps the previous list on screen.
func (m *Model) installConversations(conversations []history.Conversation, loadErr error) {
	if loadErr != nil {
		logger.Error("app: could not reload conversations: %v", loadErr)
		return
	}
	m.sidebar.SetConversations(conversations)
}

// handleConversationDeleted finishes a single-conversation delete.
func (m *Model) handleConversationDeleted(msg conversationDeletedMsg) (tea.Model, tea.Cmd) {
	m.installConversations(msg.conversations, msg.loadErr)
	m.modal.Hide()

	if msg.err != nil {
		logger.Error("app: could not delete conversation %q: %v", msg.title, msg.err)
		return m, m.ShowFlashError(fmt.Sprintf("Could not delete %q", msg.title))
	}

	cmd := m.ShowFlashSuccess(fmt.Sprintf("Deleted %q", msg.title))
	if m.config.GetNotificationsEnabled() {
		if err := notification.DeletionCompleted(1); err != nil {
			logger.Warn("app: notification failed: %v", err)
		}
	}

	if msg.navigateHome {
		m.navigateHome()
	}
	return m, cmd
}

// handleBulkDeleteDone finishes a bulk delete: new list in, selection mode
// off, modal down, outcome flashed, and only then the optional jump home.
func (m *Model) handleBulkDeleteDone(msg bulkDeleteDoneMsg) (tea.Model, tea.Cmd) {
	m.installConversations(msg.conversations, msg.loadErr)
	m.sidebar.ExitSelectionMode()
	m.modal.Hide()

	result := msg.result
	var cmd tea.Cmd
	if result.Partial() {
		cmd = m.ShowFlashWarning(fmt.Sprintf("Deleted %d of %d conversations", result.Deleted, result.Requested))
	} else if result.Deleted == 1 {
		cmd = m.ShowFlashSuccess("Deleted 1 conversation")
	} else {
		cmd = m.ShowFlashSuccess(fmt.Sprintf("Deleted %d conversations", result.Deleted))
	}

	if result.Deleted > 0 && m.config.GetNotificationsEnabled() {
		if err := notification.DeletionCompleted(result.Deleted); err != nil {
			logger.Warn("app: notification failed: %v", err)
		}
	}

	if result.NavigateHome {
		m.navigateHome()
	}
	return m, cmd
}

// handleConversationRenamed finishes a rename.
func (m *Model) handleConversationRenamed(msg conversationRenamedMsg) (tea.Model, tea.Cmd) {
	m.installConversations(msg.conversations, msg.loadErr)

	if msg.err != nil {
		logger.Error("app: could not rename conversation: %v", msg.err)
		return m, m.ShowFlashError("Could not rename conversation")
	}

	if open := m.viewer.Conversation(); open != nil && open.ID == msg.conversation.ID {
		m.viewer.SetConversation(msg.conversation, m.viewer.Messages())
		m.header.SetConversationTitle(msg.conversation.Title)
	}
	return m, m.ShowFlashSuccess(fmt.Sprintf("Renamed to %q", msg.conversation.Title))
}

// handleTitleSuggested feeds a generated title into the rename modal, if it
// is still open for the same conversation.
func (m *Model) handleTitleSuggested(msg titleSuggestedMsg) (tea.Model, tea.Cmd) {
	state, ok := m.modal.State.(*modals.RenameState)
	if !ok || state.ConversationID != msg.conversationID {
		return m, nil
	}

	if msg.err != nil {
		logger.Warn("app: title suggestion failed: %v", msg.err)
		state.ApplySuggestedTitle("")
		m.modal.SetError("Could not generate a title")
		return m, nil
	}

	state.ApplySuggestedTitle(msg.title)
	return m, nil
}

// handleConversationDuplicated finishes a duplication.
func (m *Model) handleConversationDuplicated(msg conversationDuplicatedMsg) (tea.Model, tea.Cmd) {
	m.installConversations(msg.conversations, msg.loadErr)

	if msg.err != nil {
		logger.Error("app: could not duplicate conversation: %v", msg.err)
		return m, m.ShowFlashError("Could not duplicate conversation")
	}
	return m, m.ShowFlashSuccess(fmt.Sprintf("Created %q", msg.conversation.Title))
}

// handleStarToggled finishes a star toggle.
func (m *Model) handleStarToggled(msg starToggledMsg) (tea.Model, tea.Cmd) {
	m.installConversations(msg.conversations, msg.loadErr)

	if msg.err != nil {
		logger.Error("app: could not update starred flag: %v", msg.err)
		return m, m.ShowFlashError("Could not update conversation")
	}

	if msg.conversation.Starred {
		return m, m.ShowFlashSuccess(fmt.Sprintf("Starred %q", msg.conversation.Title))
	}
	return m, m.ShowFlashInfo(fmt.Sprintf("Unstarred %q", msg.conversation.Title))
}

// handleExportDone finishes an export.
func (m *Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logger.Error("app: export failed: %v", msg.err)
		return m, m.ShowFlashError("Export failed")
	}

	if m.config.GetNotificationsEnabled() {
		if err := notification.ExportCompleted(msg.path); err != nil {
			logger.Warn("app: notification failed: %v", err)
		}
	}
	return m, m.ShowFlashSuccess(fmt.Sprintf("Exported to %s", msg.path))
}

// handleExportPreview swaps the export modal for the rendered preview. The
// result is dropped when the user already closed the export modal.
func (m *Model) handleExportPreview(msg exportPreviewMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.modal.State.(*modals.ExportState); !ok {
		return m, nil
	}

	if msg.err != nil {
		logger.Error("app: could not render preview: %v", msg.err)
		m.modal.SetError("Could not render preview")
		return m, nil
	}

	m.modal.Show(modals.NewExportPreviewState(msg.conversationID, msg.title, msg.markdown))
	return m, nil
}

// handleHelpShortcutTrigger runs a shortcut chosen from the help modal.
// The modal lists display keys, which must map back to registry keys first.
func (m *Model) handleHelpShortcutTrigger(msg modals.HelpShortcutTriggeredMsg) (tea.Model, tea.Cmd) {
	key := executableKeyFor(msg.Key)
	if key == "" {
		return m, nil
	}
	if model, cmd, handled := m.ExecuteShortcut(key); handled {
		return model, cmd
	}
	return m, nil
}
