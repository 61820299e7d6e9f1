package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/recallhq/recall/internal/clipboard"
	"github.com/recallhq/recall/internal/logger"
	"github.com/recallhq/recall/internal/ui"
)

// ShowFlash puts a message in the footer and starts the expiry ticker.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError shows an error flash message.
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashWarning shows a warning flash message.
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

// ShowFlashInfo shows an informational flash message.
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

// ShowFlashSuccess shows a success flash message.
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// copyConversationLink writes the target conversation's deep link to the
// system clipboard.
func (m *Model) copyConversationLink() (tea.Model, tea.Cmd) {
	conv := m.targetConversation()
	if conv == nil {
		return m, nil
	}

	link := "recall://chat/" + conv.Slug
	if err := clipboard.WriteText(link); err != nil {
		logger.Warn("app: could not copy link for %s: %v", conv.ID, err)
		return m, m.ShowFlashError("Failed to copy to clipboard")
	}
	return m, m.ShowFlashSuccess("Copied link to clipboard")
}
