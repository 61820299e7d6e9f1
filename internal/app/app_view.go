package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recallhq/recall/internal/ui"
)

// View renders the full frame.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.SetContent(m.RenderToString())
	return view
}

// RenderToString produces the frame content. Split out from View so tests
// can assert on rendered output directly.
func (m *Model) RenderToString() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.updateFooterContext()

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.viewer.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), panels, m.footer.View())
}

// updateFooterContext refreshes the footer key hints to match the current
// mode before each render.
func (m *Model) updateFooterContext() {
	m.footer.SetContext(
		m.viewer.HasConversation(),
		m.focus == FocusSidebar,
		m.sidebar.IsSearchMode(),
		m.sidebar.IsSelectionMode(),
		m.sidebar.SelectedCount(),
	)
}

// updateSizes recalculates panel dimensions after a terminal resize.
func (m *Model) updateSizes(width, height int) {
	m.width = width
	m.height = height

	vc := ui.GetViewContext()
	vc.UpdateTerminalSize(width, height)

	m.header.SetWidth(vc.TerminalWidth)
	m.footer.SetWidth(vc.TerminalWidth)
	m.sidebar.SetSize(vc.SidebarWidth, vc.ContentHeight)
	m.viewer.SetSize(vc.ViewerWidth, vc.ContentHeight)
	m.modal.SetSize(vc.TerminalWidth, vc.TerminalHeight)
}
